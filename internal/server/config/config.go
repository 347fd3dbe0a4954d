// Package config handles configuration for the server component,
// including defaults, environment overlay (with optional .env file),
// and command-line flags.
package config

import "time"

// Key policies control how an object key is derived from an uploaded
// file's name. See Config.KeyPolicy.
const (
	// KeyPolicyExact uses the file name verbatim. Re-uploading the same
	// name overwrites the previous object (last-write-wins).
	KeyPolicyExact = "exact"
	// KeyPolicyTimestamp prefixes the file name with unix milliseconds.
	KeyPolicyTimestamp = "timestamp"
	// KeyPolicyRandom places a random UUID under a date path, ignoring
	// the file name entirely.
	KeyPolicyRandom = "random"
)

// Config holds runtime settings for the pixeldrop server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP API.
//   - AuthPassword: plaintext reference secret for the credential gate.
//   - AuthPasswordHash: bcrypt alternative to AuthPassword; set one, not both.
//   - SessionSecret: HMAC secret for signing session JWTs (HS256).
//   - SessionTokenValidity: session token lifetime.
//   - SessionTokenRequired: when true, /api/presign demands a bearer token.
//   - S3AccessKeyID / S3SecretAccessKey / S3Region / S3BaseEndpoint / S3Bucket:
//     object storage settings (any S3-compatible backend, including R2).
//   - PublicBaseURL: public domain objects are served from, no trailing slash.
//   - KeyPolicy: one of KeyPolicyExact, KeyPolicyTimestamp, KeyPolicyRandom.
type Config struct {
	EndpointAddr         string
	AuthPassword         string
	AuthPasswordHash     string
	SessionSecret        string
	SessionTokenValidity time.Duration
	SessionTokenRequired bool
	S3AccessKeyID        string
	S3SecretAccessKey    string
	S3Region             string
	S3BaseEndpoint       string
	S3Bucket             string
	PublicBaseURL        string
	KeyPolicy            string
}

// LoadDefaults populates Config with development defaults. Credentials and
// the gate password have no defaults: leaving them unset must surface as a
// configuration error at request time, not silently work.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.SessionTokenValidity = 30 * time.Minute
	c.S3Region = "auto"
	c.KeyPolicy = KeyPolicyExact
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment (optionally seeded from a .env file) and finally
// from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
