package config

import (
	"os"
	"path/filepath"

	"fjacquet/sales-analytics/internal/logging"

	"github.com/joho/godotenv"
)

// LoadEnv loads environment variables from a .env file in the current or
// parent directory, if one exists. Variables already set are not overridden.
// It returns the file it loaded, or "" when none was found.
func LoadEnv() (string, error) {
	for _, envFile := range []string{".env", filepath.Join("..", ".env")} {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			return envFile, err
		}
		return envFile, nil
	}
	return "", nil
}

// ConfigureLogging builds a logger from LOG_LEVEL and LOG_FORMAT. It is used
// before the full configuration has been loaded.
func ConfigureLogging() logging.Logger {
	return logging.NewLogrusAdapter(GetEnv("LOG_LEVEL", "info"), GetEnv("LOG_FORMAT", "text"))
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}
