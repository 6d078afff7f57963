package config

import "time"

// DefaultAppConfig returns an AppConfig struct with sensible default
// values.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Backend: BackendConfig{
			DefaultBackend:     "localfs",
			LocalFSRootPath:    "./data",
			S3Region:           "us-east-1",
			S3PresignExpiry:    time.Hour,
			CloudUseSSL:        true,
			CloudPresignExpiry: time.Hour,
		},
	}
}
