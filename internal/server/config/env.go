package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/pixeldrop/pixeldrop/internal/flagx"
)

// parseEnv overlays Config fields from environment variables. A .env file
// is loaded first when present (path from -c/-config, falling back to
// "./.env"); real environment variables win over the file, which is
// godotenv's default behavior.
//
// Recognized variables:
//
//	ADDRESS                 bind address (e.g. ":8080")
//	AUTH_PASSWORD           reference secret for the credential gate
//	AUTH_PASSWORD_HASH      bcrypt hash alternative to AUTH_PASSWORD
//	SESSION_SECRET          HMAC secret for session tokens
//	SESSION_TOKEN_VALIDITY  lifetime, Go duration syntax (e.g. "30m")
//	SESSION_TOKEN_REQUIRED  "true" to enforce bearer auth on presign
//	S3_ACCESS_KEY_ID        storage access key
//	S3_SECRET_ACCESS_KEY    storage secret key
//	S3_REGION               storage region ("auto" for R2)
//	S3_ENDPOINT             storage base endpoint URL
//	S3_BUCKET               bucket name
//	PUBLIC_IMAGE_DOMAIN     public base URL for uploaded objects
//	KEY_POLICY              exact | timestamp | random
func parseEnv(cfg *Config) {
	envFile := flagx.EnvFileFlags()
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile)

	setString(&cfg.EndpointAddr, "ADDRESS")
	setString(&cfg.AuthPassword, "AUTH_PASSWORD")
	setString(&cfg.AuthPasswordHash, "AUTH_PASSWORD_HASH")
	setString(&cfg.SessionSecret, "SESSION_SECRET")
	setString(&cfg.S3AccessKeyID, "S3_ACCESS_KEY_ID")
	setString(&cfg.S3SecretAccessKey, "S3_SECRET_ACCESS_KEY")
	setString(&cfg.S3Region, "S3_REGION")
	setString(&cfg.S3BaseEndpoint, "S3_ENDPOINT")
	setString(&cfg.S3Bucket, "S3_BUCKET")
	setString(&cfg.PublicBaseURL, "PUBLIC_IMAGE_DOMAIN")
	setString(&cfg.KeyPolicy, "KEY_POLICY")

	if v := os.Getenv("SESSION_TOKEN_VALIDITY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.SessionTokenValidity = d
		}
	}
	if v := os.Getenv("SESSION_TOKEN_REQUIRED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.SessionTokenRequired = b
		}
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
