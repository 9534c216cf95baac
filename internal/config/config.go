// Package config loads service settings from the environment, optionally
// layered over a config file.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Blob backends selectable with BLOB_BACKEND.
const (
	BlobBackendDB    = "db"
	BlobBackendDisk  = "disk"
	BlobBackendMinIO = "minio"
)

// Config holds every externally configurable setting.
type Config struct {
	AppPort        string
	DatabaseDriver string
	DatabaseDSN    string
	DatabaseDebug  bool

	JWTSecret string
	TokenTTL  time.Duration // zero means tokens never expire
	CartSlots int

	BlobBackend string
	UploadDir   string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool

	RabbitMQURL string // empty disables catalog events
}

// Load reads configuration with viper. When CONFIG_FILE is set, that file is
// read first and environment variables override it.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("APP_PORT", ":4000")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "storefront.db?_busy_timeout=5000")
	v.SetDefault("DATABASE_DEBUG", false)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL", "0s")
	v.SetDefault("CART_SLOTS", 300)
	v.SetDefault("BLOB_BACKEND", BlobBackendDB)
	v.SetDefault("UPLOAD_DIR", "./upload/images")
	v.SetDefault("MINIO_ENDPOINT", "localhost:9000")
	v.SetDefault("MINIO_ACCESS_KEY", "")
	v.SetDefault("MINIO_SECRET_KEY", "")
	v.SetDefault("MINIO_BUCKET", "uploads")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("RABBITMQ_URL", "")
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
	}

	cfg := &Config{
		AppPort:        v.GetString("APP_PORT"),
		DatabaseDriver: v.GetString("DATABASE_DRIVER"),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		DatabaseDebug:  v.GetBool("DATABASE_DEBUG"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		TokenTTL:       v.GetDuration("TOKEN_TTL"),
		CartSlots:      v.GetInt("CART_SLOTS"),
		BlobBackend:    v.GetString("BLOB_BACKEND"),
		UploadDir:      v.GetString("UPLOAD_DIR"),
		MinIOEndpoint:  v.GetString("MINIO_ENDPOINT"),
		MinIOAccessKey: v.GetString("MINIO_ACCESS_KEY"),
		MinIOSecretKey: v.GetString("MINIO_SECRET_KEY"),
		MinIOBucket:    v.GetString("MINIO_BUCKET"),
		MinIOUseSSL:    v.GetBool("MINIO_USE_SSL"),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.TokenTTL < 0 {
		return fmt.Errorf("TOKEN_TTL must not be negative, got %s", c.TokenTTL)
	}
	if c.CartSlots <= 0 {
		return fmt.Errorf("CART_SLOTS must be positive, got %d", c.CartSlots)
	}
	switch c.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	switch c.BlobBackend {
	case BlobBackendDB, BlobBackendDisk:
	case BlobBackendMinIO:
		if c.MinIOEndpoint == "" || c.MinIOBucket == "" {
			return fmt.Errorf("MINIO_ENDPOINT and MINIO_BUCKET are required for the minio backend")
		}
	default:
		return fmt.Errorf("unsupported BLOB_BACKEND %q", c.BlobBackend)
	}
	return nil
}
