package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"resume": "resume.json",
		"job_url": "https://example.com/job",
		"concurrency": 8,
		"log_level": "debug",
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "resume.json", cfg.Resume)
	assert.Equal(t, "https://example.com/job", cfg.JobURL)
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_MutuallyExclusive(t *testing.T) {
	cfg := &Config{
		Job:    "job.txt",
		JobURL: "https://example.com/job",
	}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestValidate_NegativeConcurrency(t *testing.T) {
	cfg := &Config{Concurrency: -1}

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "concurrency")
}

func TestValidate_LogFormat(t *testing.T) {
	assert.NoError(t, (&Config{LogFormat: "pretty"}).Validate())
	assert.NoError(t, (&Config{LogFormat: "json"}).Validate())

	err := (&Config{LogFormat: "xml"}).Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "log_format")
}

func TestValidate_MissingFiles(t *testing.T) {
	err := (&Config{Resume: "/nonexistent/resume.json"}).Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "resume file not found")

	err = (&Config{Job: "/nonexistent/job.txt"}).Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "job file not found")
}

func TestValidate_ValidConfig(t *testing.T) {
	resume := filepath.Join(t.TempDir(), "resume.json")
	require.NoError(t, os.WriteFile(resume, []byte(`{}`), 0644))

	cfg := &Config{Resume: resume, Concurrency: 2}
	assert.NoError(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	flags := &Config{Resume: "cli.json"}
	defaults := Config{
		Resume:      "file.json",
		Job:         "job.txt",
		Out:         "report.json",
		DatabaseURL: "postgres://localhost/ats",
		LogLevel:    "warn",
	}

	merged := flags.MergeWithDefaults(defaults)

	assert.Equal(t, "cli.json", merged.Resume)
	assert.Equal(t, "job.txt", merged.Job)
	assert.Equal(t, "report.json", merged.Out)
	assert.Equal(t, "postgres://localhost/ats", merged.DatabaseURL)
	assert.Equal(t, "warn", merged.LogLevel)
	assert.Equal(t, DefaultConcurrency, merged.Concurrency)
}

func TestMergeWithDefaults_JobSourceFromFlagsWins(t *testing.T) {
	flags := &Config{JobURL: "https://example.com/job"}
	merged := flags.MergeWithDefaults(Config{Job: "job.txt", Concurrency: 9})

	assert.Empty(t, merged.Job, "a job URL from flags must not be paired with a job file from defaults")
	assert.Equal(t, "https://example.com/job", merged.JobURL)
	assert.Equal(t, 9, merged.Concurrency)
}
