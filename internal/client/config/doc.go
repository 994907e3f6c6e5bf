// Package config loads runtime configuration for the photosync client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-b string   backend base URL serving /v1/mobile/upload-token
//	-u string   user id sent with every token request
//	-l string   media library directory
//	-n int      how many recent items to list
//	-s string   state directory holding the local database
//	-t int      HTTP timeout (seconds)
//
// # JSON schema
//
// Durations use timex.Duration, so "45s" and integer nanoseconds both work:
//
//	{
//	  "backend_url": "http://127.0.0.1:8080",
//	  "user_id": "alice",
//	  "library_dir": "~/Pictures",
//	  "fetch_limit": 150,
//	  "state_dir": "~/.photosync",
//	  "http_timeout": "60s"
//	}
package config
