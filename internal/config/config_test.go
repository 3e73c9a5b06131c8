package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "LOG_LEVEL", "DEV_MODE", "FUND_DATASET", "TOP_N_PER_CATEGORY", "CORS_ALLOWED_ORIGINS",
		"OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL",
		"NARRATIVE_TIMEOUT", "NARRATIVE_MAX_RETRIES", "NARRATIVE_RATE_PER_SEC",
		"S3_REGION", "S3_ENDPOINT", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8001, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.DevMode)
	assert.Equal(t, "data/funds_sample.csv", cfg.FundDataset)
	assert.Equal(t, 3, cfg.TopNPerCategory)
	assert.Equal(t, "gpt-4o-mini", cfg.Narrative.OpenAIModel)
	assert.Equal(t, 30*time.Second, cfg.Narrative.Timeout)
	assert.Equal(t, 2, cfg.Narrative.MaxRetries)
	assert.Equal(t, 2.0, cfg.Narrative.RatePerSecond)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DEV_MODE", "true")
	t.Setenv("FUND_DATASET", "s3://funds/latest.msgpack")
	t.Setenv("TOP_N_PER_CATEGORY", "2")
	t.Setenv("NARRATIVE_TIMEOUT", "45")
	t.Setenv("NARRATIVE_RATE_PER_SEC", "0.5")
	t.Setenv("S3_ENDPOINT", "http://localhost:9000")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example, https://admin.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.DevMode)
	assert.Equal(t, "s3://funds/latest.msgpack", cfg.FundDataset)
	assert.Equal(t, 2, cfg.TopNPerCategory)
	assert.Equal(t, 45*time.Second, cfg.Narrative.Timeout)
	assert.Equal(t, 0.5, cfg.Narrative.ToServiceConfig().RatePerSecond)
	assert.Equal(t, "http://localhost:9000", cfg.S3.ToFundsConfig().Endpoint)
	assert.Equal(t, []string{"https://app.example", "https://admin.example"}, cfg.CORSOrigins)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-number")
	t.Setenv("NARRATIVE_TIMEOUT", "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8001, cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.Narrative.Timeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"zero port", func(c *Config) { c.Port = 0 }, true},
		{"negative top n", func(c *Config) { c.TopNPerCategory = -1 }, true},
		{"zero top n", func(c *Config) { c.TopNPerCategory = 0 }, false},
		{"no dataset", func(c *Config) { c.FundDataset = "" }, true},
		{"negative retries", func(c *Config) { c.Narrative.MaxRetries = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Port:            8001,
				FundDataset:     "data/funds_sample.csv",
				TopNPerCategory: 3,
				Narrative:       &NarrativeConfig{},
			}
			tt.mutate(cfg)

			if tt.wantErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}
