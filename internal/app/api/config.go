package api

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port        string
	PostgresDSN string
}

// LoadConfig reads a .env file when present, then environment variables,
// applying defaults.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()
	cfg := Config{
		Port:        envDefault("PORT", "9090"),
		PostgresDSN: strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
