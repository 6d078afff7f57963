// Package config provides configuration management for the silo CLI.
// It handles loading and validating configuration from YAML files and
// environment variables.
package config

import "time"

// AppConfig represents the complete application configuration.
type AppConfig struct {
	Log     LogConfig     `koanf:"log"`
	Backend BackendConfig `koanf:"backend"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// BackendConfig holds storage backend configuration.
type BackendConfig struct {
	// DefaultBackend selects the backend: "localfs", "s3" or "cloud".
	DefaultBackend string `koanf:"default_backend"`

	LocalFSRootPath string `koanf:"localfs_root_path"`

	S3AccessKey     string        `koanf:"s3_access_key"`
	S3SecretKey     string        `koanf:"s3_secret_key"`
	S3Region        string        `koanf:"s3_region"`
	S3BucketName    string        `koanf:"s3_bucket_name"`
	S3Endpoint      string        `koanf:"s3_endpoint"` // custom endpoint, e.g. for MinIO
	S3DisableSSL    bool          `koanf:"s3_disable_ssl"`
	S3PresignExpiry time.Duration `koanf:"s3_presign_expiry"`

	CloudEndpoint      string        `koanf:"cloud_endpoint"`
	CloudContainer     string        `koanf:"cloud_container"`
	CloudAccessKey     string        `koanf:"cloud_access_key"`
	CloudSecretKey     string        `koanf:"cloud_secret_key"`
	CloudRegion        string        `koanf:"cloud_region"`
	CloudUseSSL        bool          `koanf:"cloud_use_ssl"`
	CloudPresignExpiry time.Duration `koanf:"cloud_presign_expiry"`
}
