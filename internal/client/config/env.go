package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/pixeldrop/pixeldrop/internal/flagx"
)

// parseEnv overlays Config fields from environment variables, loading a
// .env file first when present (path from -c/-config, else "./.env").
//
// Recognized variables:
//
//	PIXELDROP_SERVER            API base URL
//	PIXELDROP_REQUEST_TIMEOUT   Go duration, e.g. "30s"
//	PIXELDROP_TRANSFER_TIMEOUT  Go duration, e.g. "5m"
func parseEnv(cfg *Config) {
	envFile := flagx.EnvFileFlags()
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)

	if v := os.Getenv("PIXELDROP_SERVER"); v != "" {
		cfg.ServerBaseURL = v
	}
	if v := os.Getenv("PIXELDROP_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("PIXELDROP_TRANSFER_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.TransferTimeout = d
		}
	}
}
