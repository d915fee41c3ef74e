// pkg/config/config.go
package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	// Data stores
	Firestore *FirestoreConfig
	Postgres  *PostgresConfig // nil unless the optional relational load is enabled

	// Output settings
	OutputDir string

	// Export settings
	FetchConcurrency int
	FetchTimeout     time.Duration

	// Collection names in the source store
	RecipesCollection      string
	InteractionsCollection string
	UsersCollection        string
	IngredientsSub         string
	StepsSub               string

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		// Default values
		OutputDir:        getEnv("OUTPUT_DIR", "output"),
		FetchConcurrency: getEnvAsInt("FETCH_CONCURRENCY", 8),
		FetchTimeout:     time.Duration(getEnvAsInt("FETCH_TIMEOUT_SECONDS", 30)) * time.Second,

		RecipesCollection:      getEnv("RECIPES_COLLECTION", "recipes"),
		InteractionsCollection: getEnv("INTERACTIONS_COLLECTION", "interactions"),
		UsersCollection:        getEnv("USERS_COLLECTION", "users"),
		IngredientsSub:         getEnv("INGREDIENTS_SUBCOLLECTION", "ingredients"),
		StepsSub:               getEnv("STEPS_SUBCOLLECTION", "steps"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	fsConfig, err := LoadFirestoreConfig()
	if err != nil {
		return nil, errors.New("failed to load Firestore configuration: " + err.Error())
	}
	cfg.Firestore = fsConfig

	// The Postgres load is opt-in; skip its config entirely when disabled
	if getEnvAsBool("POSTGRES_ENABLED", false) {
		pgConfig, err := LoadPostgresConfig()
		if err != nil {
			return nil, errors.New("failed to load PostgreSQL configuration: " + err.Error())
		}
		cfg.Postgres = pgConfig
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	if c.Firestore == nil {
		return errors.New("firestore configuration is required")
	}

	if c.OutputDir == "" {
		return errors.New("output directory cannot be empty")
	}

	if c.FetchConcurrency <= 0 {
		return errors.New("fetch concurrency must be positive")
	}

	if c.FetchTimeout <= 0 {
		return errors.New("fetch timeout must be positive")
	}

	return nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
