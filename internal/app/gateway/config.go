package gateway

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries environment-driven settings for the gateway process.
type Config struct {
	Port           string
	ServerURL      string
	RateLimitRPS   float64
	RateLimitBurst int
}

// LoadConfig reads a .env file when present, then environment variables,
// applying defaults.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()
	cfg := Config{
		Port:      envDefault("PORT", "8080"),
		ServerURL: envDefault("SHAREIT_SERVER_URL", "http://localhost:9090"),
	}
	if raw := strings.TrimSpace(os.Getenv("GATEWAY_RATE_LIMIT_RPS")); raw != "" {
		rps, err := strconv.ParseFloat(raw, 64)
		if err != nil || rps < 0 {
			return Config{}, fmt.Errorf("GATEWAY_RATE_LIMIT_RPS must be a non-negative number")
		}
		cfg.RateLimitRPS = rps
	}
	if raw := strings.TrimSpace(os.Getenv("GATEWAY_RATE_LIMIT_BURST")); raw != "" {
		burst, err := strconv.Atoi(raw)
		if err != nil || burst <= 0 {
			return Config{}, fmt.Errorf("GATEWAY_RATE_LIMIT_BURST must be a positive integer")
		}
		cfg.RateLimitBurst = burst
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
