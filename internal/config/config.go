package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Endpoint           string
	KeystorePath       string
	DBPath             string
	LogLevel           string
	HTTPTimeoutSeconds int
}

// Load reads configuration from a .env file (if present) and environment
// variables, applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the bot still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Endpoint:           envOr("LICHESS_ENDPOINT", "https://lichess.org"),
		KeystorePath:       envOr("KEYSTORE_PATH", "accounts.json"),
		DBPath:             envOr("DB_PATH", "file:lichessbot.db"),
		LogLevel:           envOr("LOG_LEVEL", "INFO"),
		HTTPTimeoutSeconds: envIntOr("HTTP_TIMEOUT_SECONDS", 15),
	}
}

// Validate checks the configuration and reports every violation at once.
func (c Config) Validate() error {
	var problems []string

	if c.Endpoint == "" {
		problems = append(problems, "LICHESS_ENDPOINT cannot be empty")
	} else if !strings.HasPrefix(c.Endpoint, "https://") {
		problems = append(problems, "LICHESS_ENDPOINT must start with https://")
	}
	if c.KeystorePath == "" {
		problems = append(problems, "KEYSTORE_PATH cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}
	if c.HTTPTimeoutSeconds <= 0 {
		problems = append(problems, "HTTP_TIMEOUT_SECONDS must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  %s", strings.Join(problems, "\n  "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
