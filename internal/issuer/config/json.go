package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/photosync/internal/flagx"
	"github.com/dmitrijs2005/photosync/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	ListenAddr      string         `json:"listen_addr"`
	JWTSecret       string         `json:"jwt_secret"`
	S3Endpoint      string         `json:"s3_endpoint"`
	S3Region        string         `json:"s3_region"`
	S3Bucket        string         `json:"s3_bucket"`
	S3AccessKey     string         `json:"s3_access_key"`
	S3SecretKey     string         `json:"s3_secret_key"`
	BlobPrefix      string         `json:"blob_prefix"`
	TokenTTLMinutes int            `json:"token_ttl_minutes"`
	ShutdownTimeout timex.Duration `json:"shutdown_timeout"`
}

func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.ListenAddr, jc.ListenAddr)
	setString(&cfg.JWTSecret, jc.JWTSecret)
	setString(&cfg.S3Endpoint, jc.S3Endpoint)
	setString(&cfg.S3Region, jc.S3Region)
	setString(&cfg.S3Bucket, jc.S3Bucket)
	setString(&cfg.S3AccessKey, jc.S3AccessKey)
	setString(&cfg.S3SecretKey, jc.S3SecretKey)
	setString(&cfg.BlobPrefix, jc.BlobPrefix)
	if jc.TokenTTLMinutes != 0 {
		cfg.TokenTTLMinutes = jc.TokenTTLMinutes
	}
	if jc.ShutdownTimeout.Duration != 0 {
		cfg.ShutdownTimeout = jc.ShutdownTimeout.Duration
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
