package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/photosync/internal/flagx"
)

// parseFlags overlays cfg with command-line flags.
//
//	-a string   listen address
//	-s string   JWT HMAC secret (empty disables bearer checks)
//	-e string   S3 base endpoint
//	-g string   S3 region
//	-b string   S3 bucket
//	-u string   S3 access key
//	-p string   S3 secret key
//	-x string   blob name prefix
//	-t int      token lifetime in minutes (1..60)
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-s", "-e", "-g", "-b", "-u", "-p", "-x", "-t"})

	fs := flag.NewFlagSet("issuer", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ListenAddr, "a", cfg.ListenAddr, "listen address")
	fs.StringVar(&cfg.JWTSecret, "s", cfg.JWTSecret, "JWT secret")
	fs.StringVar(&cfg.S3Endpoint, "e", cfg.S3Endpoint, "S3 base endpoint")
	fs.StringVar(&cfg.S3Region, "g", cfg.S3Region, "S3 region")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket")
	fs.StringVar(&cfg.S3AccessKey, "u", cfg.S3AccessKey, "S3 access key")
	fs.StringVar(&cfg.S3SecretKey, "p", cfg.S3SecretKey, "S3 secret key")
	fs.StringVar(&cfg.BlobPrefix, "x", cfg.BlobPrefix, "blob name prefix")
	fs.IntVar(&cfg.TokenTTLMinutes, "t", cfg.TokenTTLMinutes, "token lifetime (in minutes)")

	return fs.Parse(args)
}
