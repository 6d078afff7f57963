package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// LoadConfig loads configuration from the default config file
// locations, environment variables and defaults.
func LoadConfig() (AppConfig, error) {
	return LoadConfigFromFile("")
}

// LoadConfigFromFile loads configuration from multiple sources with
// strict priority:
// 1. Environment variables (highest priority)
// 2. Specified config file, or config.yaml/config.yml if present
// 3. Defaults (lowest priority)
func LoadConfigFromFile(configFilePath string) (AppConfig, error) {
	k := koanf.New(".")

	defaultCfg := DefaultAppConfig()
	if err := k.Load(structs.Provider(defaultCfg, "koanf"), nil); err != nil {
		return AppConfig{}, fmt.Errorf("failed to load default config: %w", err)
	}

	if configFilePath != "" {
		if _, err := os.Stat(configFilePath); err != nil {
			return AppConfig{}, fmt.Errorf("specified config file %s not found: %w", configFilePath, err)
		}
		if err := k.Load(file.Provider(configFilePath), yaml.Parser()); err != nil {
			return AppConfig{}, fmt.Errorf("failed to load config file %s: %w", configFilePath, err)
		}
	} else {
		for _, configFile := range []string{"config.yaml", "config.yml"} {
			if _, err := os.Stat(configFile); err == nil {
				if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
					return AppConfig{}, fmt.Errorf("failed to load config file %s: %w", configFile, err)
				}
				break
			}
		}
	}

	// Environment variables with SILO_ prefix, e.g.
	// SILO_BACKEND_S3_BUCKET_NAME maps to backend.s3_bucket_name.
	if err := k.Load(env.Provider("SILO_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "SILO_"))
		return strings.Replace(s, "_", ".", 1)
	}), nil); err != nil {
		return AppConfig{}, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg AppConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validateConfig validates that required configuration fields are set
// for the selected backend.
func validateConfig(cfg *AppConfig) error {
	switch cfg.Backend.DefaultBackend {
	case "localfs":
		if cfg.Backend.LocalFSRootPath == "" {
			return fmt.Errorf("backend.localfs_root_path is required")
		}
	case "s3":
		if cfg.Backend.S3BucketName == "" {
			return fmt.Errorf("backend.s3_bucket_name is required")
		}
	case "cloud":
		if cfg.Backend.CloudEndpoint == "" {
			return fmt.Errorf("backend.cloud_endpoint is required")
		}
		if cfg.Backend.CloudContainer == "" {
			return fmt.Errorf("backend.cloud_container is required")
		}
	default:
		return fmt.Errorf("backend.default_backend must be one of localfs, s3, cloud (got %q)", cfg.Backend.DefaultBackend)
	}

	return nil
}
