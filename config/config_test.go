package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir()) // keep a developer .env out of the test

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, int64(10<<20), cfg.Server.MaxUploadBytes)
	assert.Equal(t, "tfserving", cfg.Model.Backend)
	assert.InDelta(t, 99.0, cfg.Model.ConfidenceThreshold, 1e-9)
	assert.Equal(t, 150, cfg.Model.InputHeight)
	assert.Equal(t, "file", cfg.Corpus.Driver)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Len(t, cfg.Model.LabelList(), 10)
	assert.Equal(t, "Bawang Bombai", cfg.Model.LabelList()[0])
	assert.Equal(t, "Wortel", cfg.Model.LabelList()[9])
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "8080")
	t.Setenv("CONFIDENCE_THRESHOLD", "95.5")
	t.Setenv("MODEL_TIMEOUT", "5s")
	t.Setenv("MODEL_LABELS", " Telur , Tomat ,")
	t.Setenv("CORPUS_DRIVER", "sqlite")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.InDelta(t, 95.5, cfg.Model.ConfidenceThreshold, 1e-9)
	assert.Equal(t, 5*time.Second, cfg.Model.Timeout)
	assert.Equal(t, []string{"Telur", "Tomat"}, cfg.Model.LabelList())
	assert.Equal(t, "sqlite", cfg.Corpus.Driver)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9000\ncorpus:\n  driver: sqlite\n"), 0o600))
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("PORT", "9100")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port, "environment wins over the file")
	assert.Equal(t, "sqlite", cfg.Corpus.Driver)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown backend", func(c *Config) { c.Model.Backend = "onnx" }},
		{"rekognition without arn", func(c *Config) { c.Model.Backend = "rekognition" }},
		{"tfserving without url", func(c *Config) { c.Model.URL = "" }},
		{"s3 without bucket", func(c *Config) { c.Corpus.Driver = "s3" }},
		{"threshold above 100", func(c *Config) { c.Model.ConfidenceThreshold = 101 }},
		{"blank labels", func(c *Config) { c.Model.Labels = " , " }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, defaultConfig().Validate())
}

func TestS3RegionFallback(t *testing.T) {
	assert.Equal(t, "ap-southeast-1", AWSConfig{Region: "ap-southeast-1"}.S3RegionOrDefault())
	assert.Equal(t, "us-east-1", AWSConfig{Region: "ap-southeast-1", S3Region: "us-east-1"}.S3RegionOrDefault())
}
