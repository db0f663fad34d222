package config

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	// WebServer Configuration
	WebServerPort int `mapstructure:"WEBSERVER_PORT"`

	// Database Configuration
	DatabaseDSN     string `mapstructure:"DATABASE_DSN" validate:"required"`
	DatabaseRetries int    `mapstructure:"DATABASE_RETRIES"`

	// Session cookie signing secret. A random per-process secret is generated
	// when unset, which invalidates all sessions on restart.
	SessionSecret string `mapstructure:"SESSION_SECRET"`

	// Outbound oEmbed fetch timeout in seconds.
	OEmbedTimeoutSeconds int `mapstructure:"OEMBED_TIMEOUT_SECONDS" validate:"gte=0"`
}

// use reflect to bind environment variables based on mapstructure tags
func bindEnv(c Config) {
	val := reflect.ValueOf(c)
	typ := val.Type()

	for i := 0; i < val.NumField(); i++ {
		tag := typ.Field(i).Tag.Get("mapstructure")
		if tag != "" {
			viper.BindEnv(tag)
		}
	}
}

func LoadConfig(ctx context.Context) (*Config, error) {
	bindEnv(Config{})
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("WEBSERVER_PORT", 8080)
	viper.SetDefault("DATABASE_RETRIES", 10)
	viper.SetDefault("OEMBED_TIMEOUT_SECONDS", 8)

	cfg := Config{}
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// The session secret stays out of the log line.
	slog.Info("Loaded configuration",
		"webserver_port", cfg.WebServerPort,
		"database_retries", cfg.DatabaseRetries,
		"oembed_timeout_seconds", cfg.OEmbedTimeoutSeconds,
	)

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
