package cli

import (
	"os"

	redisstorage "github.com/cards10e/laquiniela247/internal/storage/redis"
)

// Config holds CLI configuration, sourced from the environment
type Config struct {
	StorageType string
	RedisURL    string
	PostgresDSN string
	Output      string
	Verbose     bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		StorageType: getEnvOrDefault("QUINIELA_STORAGE", "memory"),
		RedisURL:    getEnvOrDefault("QUINIELA_REDIS_URL", redisstorage.DefaultConfig().URL),
		PostgresDSN: os.Getenv("QUINIELA_POSTGRES_DSN"),
		Output:      "text",
		Verbose:     false,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
