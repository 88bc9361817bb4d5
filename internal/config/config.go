// ABOUTME: Centralized configuration for the recall note store
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
)

// Config holds all configuration for the recall system
type Config struct {
	// Storage settings
	DBPath string

	// OpenAI settings
	OpenAIKey      string
	ChatModel      string
	EmbeddingModel string
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration

	// Retrieval settings
	SimilarityThreshold float64
	TopK                int
	AnswerNotes         int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		DBPath:              getEnv("RECALL_DB_PATH", DefaultDBPath()),
		OpenAIKey:           os.Getenv("OPENAI_API_KEY"),
		ChatModel:           getEnv("RECALL_CHAT_MODEL", "gpt-4o-mini"),
		EmbeddingModel:      getEnv("RECALL_EMBEDDING_MODEL", "text-embedding-3-small"),
		Timeout:             getEnvDuration("OPENAI_TIMEOUT", 30*time.Second),
		MaxRetries:          getEnvInt("OPENAI_MAX_RETRIES", 3),
		RetryDelay:          getEnvDuration("OPENAI_RETRY_DELAY", 2*time.Second),
		SimilarityThreshold: getEnvFloat("RECALL_SIMILARITY_THRESHOLD", 0.15),
		TopK:                getEnvInt("RECALL_TOP_K", 10),
		AnswerNotes:         getEnvInt("RECALL_ANSWER_NOTES", 3),
	}

	return cfg, cfg.Validate()
}

// DefaultDBPath returns the XDG-compliant default database path.
// XDG_DATA_HOME overrides are respected for testing.
func DefaultDBPath() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = xdg.DataHome
	}
	return filepath.Join(dataHome, "recall", "notes.db")
}

func (c *Config) Validate() error {
	if c.SimilarityThreshold < -1 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("RECALL_SIMILARITY_THRESHOLD must be -1 to 1, got %f", c.SimilarityThreshold)
	}
	if c.TopK <= 0 {
		return fmt.Errorf("RECALL_TOP_K must be positive, got %d", c.TopK)
	}
	if c.AnswerNotes <= 0 {
		return fmt.Errorf("RECALL_ANSWER_NOTES must be positive, got %d", c.AnswerNotes)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
