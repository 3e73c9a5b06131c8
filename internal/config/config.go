// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/aristath/fundadvisor/internal/modules/funds"
	"github.com/aristath/fundadvisor/internal/modules/narrative"
	"github.com/aristath/fundadvisor/internal/utils"
)

// Config holds application configuration
type Config struct {
	Port            int
	LogLevel        string
	DevMode         bool
	FundDataset     string // Local path or s3://bucket/key of the fund dataset
	TopNPerCategory int    // Funds recommended per allocation category
	CORSOrigins     []string
	Narrative       *NarrativeConfig
	S3              *S3Config
}

// NarrativeConfig holds settings for narrative generation
type NarrativeConfig struct {
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	Timeout       time.Duration
	MaxRetries    int
	RatePerSecond float64
}

// S3Config holds object storage settings for s3:// datasets
type S3Config struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// ToOpenAIConfig converts to the narrator's client settings
func (c *NarrativeConfig) ToOpenAIConfig() narrative.OpenAIConfig {
	return narrative.OpenAIConfig{
		APIKey:  c.OpenAIAPIKey,
		Model:   c.OpenAIModel,
		BaseURL: c.OpenAIBaseURL,
	}
}

// ToServiceConfig converts to the narrative service's resilience settings
func (c *NarrativeConfig) ToServiceConfig() narrative.Config {
	return narrative.Config{
		Timeout:       c.Timeout,
		MaxRetries:    c.MaxRetries,
		RatePerSecond: c.RatePerSecond,
	}
}

// ToFundsConfig converts to the dataset loader's S3 settings
func (c *S3Config) ToFundsConfig() funds.S3Config {
	return funds.S3Config{
		Region:          c.Region,
		Endpoint:        c.Endpoint,
		AccessKeyID:     c.AccessKeyID,
		SecretAccessKey: c.SecretAccessKey,
	}
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnvAsInt("PORT", 8001),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DevMode:         getEnvAsBool("DEV_MODE", false),
		FundDataset:     getEnv("FUND_DATASET", "data/funds_sample.csv"),
		TopNPerCategory: getEnvAsInt("TOP_N_PER_CATEGORY", 3),
		CORSOrigins:     utils.SplitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		Narrative: &NarrativeConfig{
			OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
			OpenAIModel:   getEnv("OPENAI_MODEL", narrative.DefaultModel),
			OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
			Timeout:       getEnvAsDuration("NARRATIVE_TIMEOUT", 30*time.Second),
			MaxRetries:    getEnvAsInt("NARRATIVE_MAX_RETRIES", 2),
			RatePerSecond: getEnvAsFloat("NARRATIVE_RATE_PER_SEC", 2),
		},
		S3: &S3Config{
			Region:          getEnv("S3_REGION", ""),
			Endpoint:        getEnv("S3_ENDPOINT", ""),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if c.TopNPerCategory < 0 {
		return fmt.Errorf("TOP_N_PER_CATEGORY must not be negative, got %d", c.TopNPerCategory)
	}
	if c.FundDataset == "" {
		return fmt.Errorf("FUND_DATASET is required")
	}
	if c.Narrative != nil && c.Narrative.MaxRetries < 0 {
		return fmt.Errorf("NARRATIVE_MAX_RETRIES must not be negative, got %d", c.Narrative.MaxRetries)
	}

	// Note: OPENAI_API_KEY is optional; without it every analysis uses the fallback narrative

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("45s") or plain seconds ("45")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
