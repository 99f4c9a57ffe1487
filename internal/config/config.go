package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from a .env file if present.
// Existing environment variables are not overwritten.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

type Config struct {
	ServerURL          string
	TieBannerSeconds   int
	OutboundQueueSize  int
	DialTimeoutSeconds int
	SendTimeoutSeconds int
	LogLevel           string
	StatusAddr         string // empty disables the local status endpoint
}

func Default() Config {
	return Config{
		ServerURL:          "ws://localhost:3001/ws",
		TieBannerSeconds:   3,
		OutboundQueueSize:  16,
		DialTimeoutSeconds: 10,
		SendTimeoutSeconds: 3,
		LogLevel:           "info",
	}
}

func Load() Config {
	cfg := Default()
	if raw := os.Getenv("IMPOSTOR_SERVER_URL"); raw != "" {
		cfg.ServerURL = raw
	}
	if raw := os.Getenv("TIE_BANNER_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.TieBannerSeconds = value
		}
	}
	if raw := os.Getenv("OUTBOUND_QUEUE_SIZE"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value >= 0 {
			cfg.OutboundQueueSize = value
		}
	}
	if raw := os.Getenv("DIAL_TIMEOUT_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.DialTimeoutSeconds = value
		}
	}
	if raw := os.Getenv("SEND_TIMEOUT_SECONDS"); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value > 0 {
			cfg.SendTimeoutSeconds = value
		}
	}
	if raw := os.Getenv("LOG_LEVEL"); raw != "" {
		cfg.LogLevel = raw
	}
	if raw := os.Getenv("STATUS_ADDR"); raw != "" {
		cfg.StatusAddr = raw
	}
	return cfg
}
