package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/philly/folio/internal/platform/logger"
	"github.com/spf13/viper"
)

// Storage drivers accepted in STORAGE_DRIVER
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	ServerAddress  string `mapstructure:"SERVER_ADDRESS"`
	Environment    string `mapstructure:"ENVIRONMENT"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`   // Logging level (debug, info, warn, error)
	LogBackend     string `mapstructure:"LOG_BACKEND"` // slog or zap
	LogFile        string `mapstructure:"LOG_FILE"`    // Rotating log file, zap backend only
	StorageDriver  string `mapstructure:"STORAGE_DRIVER"`
	SiteURL        string `mapstructure:"SITE_URL"` // Public site the posts are served from
	OGDefaultImage string `mapstructure:"OG_DEFAULT_IMAGE"`
}

func LoadConfig(bootstrapLogger *logger.BootstrapLogger) (Config, error) {
	ctx := context.Background()

	// Load .env file if it exists (godotenv will find it automatically)
	// It's okay if the file doesn't exist - we'll use environment variables
	if err := godotenv.Load(); err != nil {
		bootstrapLogger.Info(ctx, "no .env file found, using environment variables only")
	} else {
		bootstrapLogger.Info(ctx, "loaded .env file")
	}

	config, err := readConfig()
	if err != nil {
		bootstrapLogger.Error(ctx, "failed to unmarshal configuration", "error", err)
		return Config{}, err
	}

	bootstrapLogger.Info(ctx, "configuration loaded",
		"environment", config.Environment,
		"log_level", config.LogLevel,
		"log_backend", config.LogBackend,
		"server_address", config.ServerAddress,
		"storage_driver", config.StorageDriver,
		"site_url", config.SiteURL,
	)

	if err := config.Validate(); err != nil {
		bootstrapLogger.Error(ctx, "configuration validation failed", "error", err)
		return Config{}, err
	}

	bootstrapLogger.Info(ctx, "configuration validated successfully")
	return config, nil
}

// readConfig reads the configuration from the environment on top of the
// defaults. Surrounding whitespace and a trailing slash on SITE_URL are
// dropped.
func readConfig() (Config, error) {
	v := viper.New()

	v.SetDefault("DATABASE_URL", "postgresql://localhost:5432/folio?sslmode=disable")
	v.SetDefault("SERVER_ADDRESS", ":8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_BACKEND", logger.BackendSlog)
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	v.SetDefault("SITE_URL", "http://localhost:3000")
	v.SetDefault("OG_DEFAULT_IMAGE", "/images/og-default.png")

	// Viper will now see all environment variables, including those loaded by godotenv
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	config.SiteURL = strings.TrimRight(strings.TrimSpace(config.SiteURL), "/")
	config.StorageDriver = strings.ToLower(strings.TrimSpace(config.StorageDriver))
	config.LogBackend = strings.ToLower(strings.TrimSpace(config.LogBackend))
	return config, nil
}

// Validate reports the first setting that cannot start the service
func (c Config) Validate() error {
	switch c.StorageDriver {
	case StorageDriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s storage driver", c.StorageDriver)
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q (want %s or %s)", c.StorageDriver, StorageDriverPostgres, StorageDriverMemory)
	}

	switch c.LogBackend {
	case logger.BackendSlog, logger.BackendZap:
	default:
		return fmt.Errorf("unknown LOG_BACKEND %q (want %s or %s)", c.LogBackend, logger.BackendSlog, logger.BackendZap)
	}

	if c.SiteURL == "" {
		return fmt.Errorf("SITE_URL is required")
	}
	if !strings.HasPrefix(c.SiteURL, "http://") && !strings.HasPrefix(c.SiteURL, "https://") {
		return fmt.Errorf("SITE_URL must be an absolute http(s) URL, got %q", c.SiteURL)
	}
	return nil
}
