package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"ingoa/internal/validator"
)

var ErrInvalidConfig = errors.New("invalid configuration")

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds server settings loaded from config files and environment variables.
type Config struct {
	Env             string        `mapstructure:"env" validate:"oneof=development production"`
	Port            string        `mapstructure:"port" validate:"required,numeric"`
	PlacesPath      string        `mapstructure:"places_path" validate:"required"`
	SessionTimeout  time.Duration `mapstructure:"session_timeout" validate:"gt=0"`
	CookieMaxAge    time.Duration `mapstructure:"cookie_max_age" validate:"gt=0"`
	StaticCacheAge  time.Duration `mapstructure:"static_cache_age" validate:"gte=0"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval" validate:"gt=0"`
	RateLimitRPS    int           `mapstructure:"rate_limit_rps" validate:"min=1"`
	RateLimitBurst  int           `mapstructure:"rate_limit_burst" validate:"min=1"`
	LogLevel        string        `mapstructure:"log_level" validate:"oneof=trace debug info warn error fatal panic disabled"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Load reads .env, an optional config/config.yaml and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	v.SetDefault("env", EnvDevelopment)
	v.SetDefault("port", "8080")
	v.SetDefault("places_path", "data/places.json")
	v.SetDefault("session_timeout", 2*time.Hour)
	v.SetDefault("cookie_max_age", 2*time.Hour)
	v.SetDefault("static_cache_age", 5*time.Minute)
	v.SetDefault("cleanup_interval", 10*time.Minute)
	v.SetDefault("rate_limit_rps", 5)
	v.SetDefault("rate_limit_burst", 10)
	v.SetDefault("log_level", "info")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("env", "ENV")
	_ = v.BindEnv("gin_mode", "GIN_MODE")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.Env = strings.ToLower(cfg.Env)
	if v.GetString("gin_mode") == "release" {
		cfg.Env = EnvProduction
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := validator.ValidateStruct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return &cfg, nil
}
