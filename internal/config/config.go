package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Gin      GinConfig      `mapstructure:"gin"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type DatabaseConfig struct {
	URL     string        `mapstructure:"url"`
	Name    string        `mapstructure:"name"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

// Address is the listen address for the HTTP server.
func (c Config) Address() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// envBindings maps config keys to the environment variables that set them.
var envBindings = map[string]string{
	"server.host":      "HOST",
	"server.port":      "PORT",
	"database.url":     "DATABASE_URL",
	"database.name":    "DATABASE_NAME",
	"database.timeout": "DATABASE_TIMEOUT",
	"log.level":        "LOG_LEVEL",
	"gin.mode":         "GIN_MODE",
}

// LoadConfig reads configuration from an optional .env file, an optional
// config.yaml in path, and the environment, in increasing precedence.
func LoadConfig(path string) (Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, err
		}
	}

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("database.timeout", "10s")
	v.SetDefault("log.level", "info")
	v.SetDefault("gin.mode", "release")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return Config{}, errors.New("server port must be between 1 and 65535")
	}
	switch cfg.Gin.Mode {
	case "debug", "release", "test":
	default:
		return Config{}, fmt.Errorf("gin mode must be debug, release or test, got %q", cfg.Gin.Mode)
	}
	return cfg, nil
}
