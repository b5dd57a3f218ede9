package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/abhisek/quizly/internal/adaptive"
)

// Config holds application-level configuration. LLM provider configuration
// lives in the llm package and is loaded separately.
type Config struct {
	// Env selects the runtime mode: "dev" or "prod". Controls the log
	// encoder and gin mode.
	Env string

	// Addr is the HTTP listen address, e.g. ":8080".
	Addr string

	// CORSOrigins is the list of allowed origins for browser clients.
	CORSOrigins []string

	Postgres PostgresConfig

	// Adaptive holds the difficulty-adaptation policy. The thresholds are
	// deliberate configuration, not literals.
	Adaptive adaptive.Policy
}

// PostgresConfig holds connection settings for the relational store.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
}

// DSN renders the connection string for the postgres driver.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// Load reads configuration from the environment, falling back to defaults
// for unset values. A .env file in the working directory is loaded first
// when present.
func Load() (Config, error) {
	// Missing .env is fine; the process env is authoritative anyway.
	_ = godotenv.Load()

	cfg := Config{
		Env:         getEnv("QUIZLY_ENV", "dev"),
		Addr:        getEnv("QUIZLY_ADDR", ":8080"),
		CORSOrigins: []string{getEnv("QUIZLY_CORS_ORIGIN", "http://localhost:3000")},
		Postgres: PostgresConfig{
			Host:     getEnv("QUIZLY_PG_HOST", "localhost"),
			Port:     getEnv("QUIZLY_PG_PORT", "5432"),
			User:     getEnv("QUIZLY_PG_USER", "postgres"),
			Password: getEnv("QUIZLY_PG_PASSWORD", ""),
			Database: getEnv("QUIZLY_PG_DATABASE", "quizly"),
			SSLMode:  getEnv("QUIZLY_PG_SSLMODE", "disable"),
		},
		Adaptive: adaptive.DefaultPolicy(),
	}

	var err error
	if cfg.Adaptive.MinAnswers, err = getEnvInt("QUIZLY_ADAPT_MIN_ANSWERS", cfg.Adaptive.MinAnswers); err != nil {
		return Config{}, err
	}
	if cfg.Adaptive.StepUpAccuracy, err = getEnvFloat("QUIZLY_ADAPT_STEP_UP", cfg.Adaptive.StepUpAccuracy); err != nil {
		return Config{}, err
	}
	if cfg.Adaptive.StepDownAccuracy, err = getEnvFloat("QUIZLY_ADAPT_STEP_DOWN", cfg.Adaptive.StepDownAccuracy); err != nil {
		return Config{}, err
	}

	if err := cfg.Adaptive.Validate(); err != nil {
		return Config{}, fmt.Errorf("adaptive policy: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}
