package ratelimit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock lets tests move time without sleeping.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestLimiter(t *testing.T, cfg *Config) (*Limiter, *fakeClock) {
	t.Helper()
	l := NewLimiter(cfg)
	t.Cleanup(l.Stop)
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	l.now = clock.Now
	return l, clock
}

func TestLimiter_BurstThenDeny(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled: true,
		EndpointConfigs: []EndpointConfig{
			{Path: "/ats/analyze", Method: "POST", Limit: 10, Window: time.Minute, Burst: 3},
		},
	})

	for i := 0; i < 3; i++ {
		allowed, info := l.Allow("10.0.0.1", "/ats/analyze", "POST")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 10, info.Limit)
		assert.Equal(t, 2-i, info.Remaining)
	}

	allowed, info := l.Allow("10.0.0.1", "/ats/analyze", "POST")
	assert.False(t, allowed)
	assert.Equal(t, 0, info.Remaining)
	// one token every 6s
	assert.InDelta(t, float64(6*time.Second), float64(info.RetryAfter), float64(time.Millisecond))
	assert.True(t, info.ResetTime.After(time.Date(2026, 1, 1, 0, 0, 17, 0, time.UTC)))
}

func TestLimiter_Refill(t *testing.T) {
	l, clock := newTestLimiter(t, &Config{
		Enabled: true,
		EndpointConfigs: []EndpointConfig{
			{Path: "/ats/analyze", Method: "POST", Limit: 60, Window: time.Minute, Burst: 1},
		},
	})

	allowed, _ := l.Allow("c", "/ats/analyze", "POST")
	require.True(t, allowed)
	allowed, _ = l.Allow("c", "/ats/analyze", "POST")
	require.False(t, allowed)

	clock.Advance(1100 * time.Millisecond)
	allowed, _ = l.Allow("c", "/ats/analyze", "POST")
	assert.True(t, allowed)
}

func TestLimiter_ClientsAndEndpointsAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  100,
		DefaultWindow: time.Minute,
		EndpointConfigs: []EndpointConfig{
			{Path: "/ats/analyze", Method: "POST", Limit: 1, Window: time.Hour, Burst: 1},
		},
	})

	allowed, _ := l.Allow("a", "/ats/analyze", "POST")
	require.True(t, allowed)
	allowed, _ = l.Allow("a", "/ats/analyze", "POST")
	assert.False(t, allowed)

	allowed, _ = l.Allow("b", "/ats/analyze", "POST")
	assert.True(t, allowed, "other clients keep their own bucket")

	allowed, info := l.Allow("a", "/ats/score/123", "GET")
	assert.True(t, allowed, "other endpoints fall back to the default limit")
	assert.Equal(t, 100, info.Limit)
}

func TestLimiter_WhitelistBlacklistDisabled(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Hour,
		Whitelist:     map[string]bool{"10.0.0.1": true},
		Blacklist:     map[string]bool{"10.0.0.2": true},
	})

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/ats/score", "POST")
		assert.True(t, allowed)
	}

	allowed, _ := l.Allow("10.0.0.2", "/ats/score", "POST")
	assert.False(t, allowed)

	disabled, _ := newTestLimiter(t, &Config{Enabled: false})
	for i := 0; i < 5; i++ {
		allowed, info := disabled.Allow("x", "/ats/analyze", "POST")
		assert.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiter_HealthIsUnlimited(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Hour})

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("c", "/health", "GET")
		assert.True(t, allowed)
	}
	assert.Equal(t, 0, l.bucketCount())
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 20, DefaultWindow: time.Hour})

	var allowedCount atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("c", "/ats/score/x", "GET"); ok {
				allowedCount.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(20), allowedCount.Load())
}

func TestLimiter_CleanupDropsIdleBuckets(t *testing.T) {
	l, clock := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute, IdleTTL: time.Hour})

	l.Allow("old", "/ats/score", "POST")
	clock.Advance(2 * time.Hour)
	l.Allow("new", "/ats/score", "POST")
	require.Equal(t, 2, l.bucketCount())

	l.cleanupBuckets()
	assert.Equal(t, 1, l.bucketCount())
}

func TestNewLimiter_NilConfig(t *testing.T) {
	l := NewLimiter(nil)
	defer l.Stop()

	allowed, info := l.Allow("c", AnalyzePath, "POST")
	assert.True(t, allowed)
	assert.Equal(t, 60, info.Limit)
}

func TestLimiter_StopTwice(t *testing.T) {
	l := NewLimiter(DefaultConfig())
	l.Stop()
	assert.NotPanics(t, l.Stop)
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/ats/analyze", Method: "POST", Limit: 1},
		{Path: "/ats/score/", Method: "GET", Limit: 2},
		{Path: "/ats/score", Method: "POST", Limit: 3},
	}

	assert.Equal(t, 1, MatchEndpoint("/ats/analyze", "POST", configs).Limit)
	assert.Equal(t, 2, MatchEndpoint("/ats/score/abc", "GET", configs).Limit)
	assert.Equal(t, 3, MatchEndpoint("/ats/score", "POST", configs).Limit)
	assert.Nil(t, MatchEndpoint("/ats/analyze", "GET", configs))
	assert.Nil(t, MatchEndpoint("/other", "POST", configs))
	assert.Zero(t, MatchEndpoint("/health", "GET", configs).Limit)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "50")
	t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2,")
	t.Setenv("RATE_LIMIT_ANALYZE_LIMIT", "5")

	cfg := LoadConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 50, cfg.DefaultLimit)
	assert.Equal(t, 30*time.Second, cfg.DefaultWindow)
	assert.Equal(t, map[string]bool{"10.0.0.1": true, "10.0.0.2": true}, cfg.Whitelist)
	assert.Empty(t, cfg.Blacklist)
	assert.Equal(t, 5, MatchEndpoint(AnalyzePath, "POST", cfg.EndpointConfigs).Limit)
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	assert.False(t, LoadConfig().Enabled)
}
