// Package config handles configuration for the token issuer: defaults, a
// .env file and environment variables, a JSON overlay and command-line flags,
// applied in that order.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/photosync/internal/common"
)

const (
	MinTokenTTL = 1
	MaxTokenTTL = 60
)

// Config holds runtime settings for the issuer.
//
// An empty JWTSecret disables bearer verification, which is only meant for
// local development.
type Config struct {
	ListenAddr      string
	JWTSecret       string
	S3Endpoint      string
	S3Region        string
	S3Bucket        string
	S3AccessKey     string
	S3SecretKey     string
	BlobPrefix      string
	TokenTTLMinutes int
	ShutdownTimeout time.Duration
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.ListenAddr = ":8080"
	c.JWTSecret = ""
	c.S3Endpoint = "http://127.0.0.1:9000"
	c.S3Region = "us-east-1"
	c.S3Bucket = "photos"
	c.S3AccessKey = "minioadmin"
	c.S3SecretKey = "minioadmin"
	c.BlobPrefix = "mobile-import"
	c.TokenTTLMinutes = 10
	c.ShutdownTimeout = 10 * time.Second
}

// LoadConfig builds a Config from defaults, the environment (after loading
// .env when present), the JSON file named by -c/-config and the flags in args.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and normalises the blob prefix.
func (c *Config) Validate() error {
	if c.TokenTTLMinutes < MinTokenTTL || c.TokenTTLMinutes > MaxTokenTTL {
		return fmt.Errorf("token ttl must be between %d and %d minutes, got %d: %w",
			MinTokenTTL, MaxTokenTTL, c.TokenTTLMinutes, common.ErrInvalidInput)
	}
	if c.S3Bucket == "" {
		return fmt.Errorf("s3 bucket is required: %w", common.ErrInvalidInput)
	}
	c.BlobPrefix = strings.Trim(c.BlobPrefix, "/")
	return nil
}

// TokenTTL is TokenTTLMinutes as a duration.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLMinutes) * time.Minute
}
