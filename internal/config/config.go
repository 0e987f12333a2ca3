package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string
	Environment    string
	Database       DatabaseConfig
	Cart           CartConfig
	Redis          RedisConfig
	WebhookURL     string
	MigrationsPath string
	LogLevel       string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// CartConfig selects the session cart backend: "memory" for a single
// instance, "redis" when several instances serve the same sessions.
type CartConfig struct {
	Backend string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
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
	viper.SetDefault("CART_BACKEND", "memory")
	viper.SetDefault("MIGRATIONS_PATH", "./internal/repository/migrations")
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
			DBName:   getEnvOrViper("DB_NAME", "orderapi"),
			SSLMode:  getEnvOrViper("DB_SSLMODE", "disable"),
		},
		Cart: CartConfig{
			Backend: getEnvOrViper("CART_BACKEND", "memory"),
		},
		Redis: RedisConfig{
			Addr:     getEnvOrViper("REDIS_ADDR", "localhost:6379"),
			Password: getEnvOrViper("REDIS_PASSWORD", ""),
			DB:       viper.GetInt("REDIS_DB"),
		},
		WebhookURL:     getEnvOrViper("NOTIFY_WEBHOOK_URL", ""),
		MigrationsPath: getEnvOrViper("MIGRATIONS_PATH", "./internal/repository/migrations"),
		LogLevel:       getEnvOrViper("LOG_LEVEL", "info"),
	}

	if cfg.Cart.Backend != "memory" && cfg.Cart.Backend != "redis" {
		return nil, fmt.Errorf("CART_BACKEND must be \"memory\" or \"redis\", got %q", cfg.Cart.Backend)
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
