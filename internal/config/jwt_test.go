package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envLookup(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestJWTConfigFromLookup(t *testing.T) {
	tests := []struct {
		name       string
		vars       map[string]string
		wantHours  int
		wantIssuer string
		wantErr    string
	}{
		{
			name:       "defaults",
			vars:       map[string]string{"JWT_SECRET": "s3cret"},
			wantHours:  DefaultJWTExpirationHours,
			wantIssuer: DefaultJWTIssuer,
		},
		{
			name:       "custom values",
			vars:       map[string]string{"JWT_SECRET": "s3cret", "JWT_EXPIRATION_HOURS": "48", "JWT_ISSUER": "ats-test"},
			wantHours:  48,
			wantIssuer: "ats-test",
		},
		{
			name:    "missing secret",
			vars:    map[string]string{},
			wantErr: "JWT_SECRET is required",
		},
		{
			name:    "empty secret",
			vars:    map[string]string{"JWT_SECRET": ""},
			wantErr: "JWT_SECRET is required",
		},
		{
			name:    "non-numeric expiration",
			vars:    map[string]string{"JWT_SECRET": "s3cret", "JWT_EXPIRATION_HOURS": "soon"},
			wantErr: "invalid JWT_EXPIRATION_HOURS",
		},
		{
			name:    "zero expiration",
			vars:    map[string]string{"JWT_SECRET": "s3cret", "JWT_EXPIRATION_HOURS": "0"},
			wantErr: "at least 1 hour",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := JWTConfigFromLookup(envLookup(tt.vars))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.vars["JWT_SECRET"], cfg.Secret)
			assert.Equal(t, tt.wantHours, cfg.ExpirationHours)
			assert.Equal(t, tt.wantIssuer, cfg.Issuer)
		})
	}
}

func TestNewJWTConfig_ReadsEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("JWT_EXPIRATION_HOURS", "12")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Secret)
	assert.Equal(t, 12, cfg.ExpirationHours)
}
