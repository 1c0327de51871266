package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	apperrors "github.com/stockfix/maintapi/pkg/errors"
)

type Config struct {
	Port                 string
	Environment          string
	Database             DatabaseConfig
	Shopify              ShopifyConfig
	Maintenance          MaintenanceConfig
	LogLevel             string
	ShopifyWebhookSecret string // SHOPIFY_WEBHOOK_SECRET: verify incoming Shopify webhooks (X-Shopify-Hmac-Sha256)
	AdminAPIKeyHash      string // ADMIN_API_KEY_HASH: bcrypt hash of the operator key for /v1/admin routes
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type ShopifyConfig struct {
	ShopDomain  string
	AccessToken string
	APIVersion  string
}

// MaintenanceConfig scopes the bulk operations. These are business knobs,
// not engineering: which locations may have inventory zeroed and which
// vendor the archive sweep targets.
type MaintenanceConfig struct {
	AllowedLocationIDs []string // ALLOWED_LOCATION_IDS: comma-separated Shopify location GIDs
	ArchiveVendor      string   // ARCHIVE_VENDOR: vendor name targeted by the archive sweep
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			Host:     getEnvOrViper("DB_HOST", "localhost"),
			Port:     getEnvOrViper("DB_PORT", "5432"),
			User:     getEnvOrViper("DB_USER", "postgres"),
			Password: getEnvOrViper("DB_PASSWORD", "postgres"),
			DBName:   getEnvOrViper("DB_NAME", "maintapi"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Shopify: ShopifyConfig{
			ShopDomain:  strings.TrimSpace(getEnvOrViper("SHOPIFY_SHOP_DOMAIN", "")),
			AccessToken: strings.TrimSpace(getEnvOrViper("SHOPIFY_ACCESS_TOKEN", "")),
			APIVersion:  getEnvOrViper("SHOPIFY_API_VERSION", "2025-01"),
		},
		Maintenance: MaintenanceConfig{
			AllowedLocationIDs: splitAndTrim(getEnvOrViper("ALLOWED_LOCATION_IDS", "")),
			ArchiveVendor:      strings.TrimSpace(getEnvOrViper("ARCHIVE_VENDOR", "")),
		},
		LogLevel:             getEnvOrViper("LOG_LEVEL", "info"),
		ShopifyWebhookSecret: strings.TrimSpace(getEnvOrViper("SHOPIFY_WEBHOOK_SECRET", "")),
		AdminAPIKeyHash:      strings.TrimSpace(getEnvOrViper("ADMIN_API_KEY_HASH", "")),
	}

	// Validate required fields
	if cfg.Shopify.ShopDomain == "" {
		return nil, &apperrors.ErrConfiguration{Setting: "SHOPIFY_SHOP_DOMAIN"}
	}
	if cfg.Shopify.AccessToken == "" {
		return nil, &apperrors.ErrConfiguration{Setting: "SHOPIFY_ACCESS_TOKEN"}
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
