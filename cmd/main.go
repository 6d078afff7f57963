package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/silolabs/silo/backends/cloud"
	"github.com/silolabs/silo/backends/s3"
	"github.com/silolabs/silo/config"
	"github.com/silolabs/silo/storage"
)

var rootCmd = &cobra.Command{
	Use:   "silo",
	Short: "silo - uniform file access over local, S3 and cloud storage",
	Long: `silo exposes one file-access surface - open, read, write, exists,
size, delete - over a local directory, an S3 bucket, or any
S3-compatible cloud provider, selected by configuration.`,
}

var catCmd = &cobra.Command{
	Use:   "cat <path>",
	Short: "Print the content of a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCat,
}

var putCmd = &cobra.Command{
	Use:   "put <path> [local-file]",
	Short: "Write a file from a local file or stdin",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runPut,
}

var statCmd = &cobra.Command{
	Use:   "stat <path>",
	Short: "Show existence and size of a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runStat,
}

var rmCmd = &cobra.Command{
	Use:   "rm <path>",
	Short: "Delete a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runRm,
}

var urlCmd = &cobra.Command{
	Use:   "url <path>",
	Short: "Print a URL for a file, presigned where the backend requires it",
	Args:  cobra.ExactArgs(1),
	RunE:  runURL,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management commands",
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration",
	Long:  "Validate the silo configuration and display the loaded settings",
	RunE:  validateConfig,
}

var configFilePath string

func main() {
	rootCmd.PersistentFlags().StringVarP(&configFilePath, "config", "c", "", "Path to configuration file")

	configCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(catCmd, putCmd, statCmd, rmCmd, urlCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

// openStorage builds a Storage facade from the loaded configuration.
func openStorage() (*storage.Storage, *zap.Logger, error) {
	cfg, err := config.LoadConfigFromFile(configFilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := initializeLogger(cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	var st *storage.Storage
	switch cfg.Backend.DefaultBackend {
	case "localfs":
		st, err = storage.NewFileSystemStorage(cfg.Backend.LocalFSRootPath, storage.WithLogger(logger))
	case "s3":
		st, err = storage.NewS3Storage(s3.Config{
			Bucket:        cfg.Backend.S3BucketName,
			Region:        cfg.Backend.S3Region,
			AccessKey:     cfg.Backend.S3AccessKey,
			SecretKey:     cfg.Backend.S3SecretKey,
			Endpoint:      cfg.Backend.S3Endpoint,
			DisableSSL:    cfg.Backend.S3DisableSSL,
			PresignExpiry: cfg.Backend.S3PresignExpiry,
		}, storage.WithLogger(logger))
	case "cloud":
		st, err = storage.NewCloudStorage(context.Background(), cloud.Config{
			Endpoint:      cfg.Backend.CloudEndpoint,
			Container:     cfg.Backend.CloudContainer,
			AccessKey:     cfg.Backend.CloudAccessKey,
			SecretKey:     cfg.Backend.CloudSecretKey,
			Region:        cfg.Backend.CloudRegion,
			UseSSL:        cfg.Backend.CloudUseSSL,
			PresignExpiry: cfg.Backend.CloudPresignExpiry,
		}, storage.WithLogger(logger))
	default:
		err = fmt.Errorf("unknown backend %q", cfg.Backend.DefaultBackend)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize %s backend: %w", cfg.Backend.DefaultBackend, err)
	}

	return st, logger, nil
}

func runCat(cmd *cobra.Command, args []string) error {
	st, logger, err := openStorage()
	if err != nil {
		return err
	}
	defer st.Close()
	defer logger.Sync()

	return st.WithFile(cmd.Context(), args[0], "rb", func(h *storage.Handle) error {
		_, err := io.Copy(os.Stdout, h)
		return err
	})
}

func runPut(cmd *cobra.Command, args []string) error {
	st, logger, err := openStorage()
	if err != nil {
		return err
	}
	defer st.Close()
	defer logger.Sync()

	var src io.Reader = os.Stdin
	if len(args) == 2 {
		f, err := os.Open(args[1])
		if err != nil {
			return err
		}
		defer f.Close()
		src = f
	}

	return st.WithFile(cmd.Context(), args[0], "wb", func(h *storage.Handle) error {
		_, err := io.Copy(h, src)
		return err
	})
}

func runStat(cmd *cobra.Command, args []string) error {
	st, logger, err := openStorage()
	if err != nil {
		return err
	}
	defer st.Close()
	defer logger.Sync()

	exists, err := st.Exists(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if !exists {
		fmt.Printf("%s: not found\n", args[0])
		return nil
	}

	size, err := st.Size(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d bytes (%s)\n", args[0], size, st.Backend())
	return nil
}

func runRm(cmd *cobra.Command, args []string) error {
	st, logger, err := openStorage()
	if err != nil {
		return err
	}
	defer st.Close()
	defer logger.Sync()

	return st.Delete(cmd.Context(), args[0])
}

func runURL(cmd *cobra.Command, args []string) error {
	st, logger, err := openStorage()
	if err != nil {
		return err
	}
	defer st.Close()
	defer logger.Sync()

	url, err := st.URL(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Println(url)
	return nil
}

// validateConfig validates the silo configuration and displays the
// loaded settings.
func validateConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigFromFile(configFilePath)
	if err != nil {
		fmt.Printf("Configuration validation failed: %v\n", err)
		return err
	}

	fmt.Println("Configuration is valid")
	fmt.Printf("Backend: %s\n", cfg.Backend.DefaultBackend)
	switch cfg.Backend.DefaultBackend {
	case "localfs":
		fmt.Printf("Root: %s\n", cfg.Backend.LocalFSRootPath)
	case "s3":
		fmt.Printf("Bucket: %s\n", cfg.Backend.S3BucketName)
		fmt.Printf("Region: %s\n", cfg.Backend.S3Region)
		if cfg.Backend.S3Endpoint != "" {
			fmt.Printf("Endpoint: %s\n", cfg.Backend.S3Endpoint)
		}
	case "cloud":
		fmt.Printf("Endpoint: %s\n", cfg.Backend.CloudEndpoint)
		fmt.Printf("Container: %s\n", cfg.Backend.CloudContainer)
	}

	return nil
}

// initializeLogger creates a zap logger based on configuration.
func initializeLogger(logCfg config.LogConfig) (*zap.Logger, error) {
	var cfg zap.Config

	if logCfg.Format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	switch logCfg.Level {
	case "debug":
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		cfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	return cfg.Build()
}
