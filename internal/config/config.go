// Package config loads application settings from an optional YAML file with
// environment-variable overrides, falling back to local-development defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Database holds PostgreSQL connection settings.
type Database struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN builds a libpq-compatible connection string.
func (d Database) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// Studio holds the fixed strings embedded in calendar exports.
type Studio struct {
	Location string `yaml:"location"`
	WhatsApp string `yaml:"whatsapp"`
}

// RateLimit controls the fixed-window limiter applied to booking creation.
type RateLimit struct {
	Limit         int `yaml:"limit"`
	WindowSeconds int `yaml:"window_seconds"`
}

// Redis holds the optional Redis connection used for distributed rate
// limiting. An empty address selects the in-memory limiter.
type Redis struct {
	Addr string `yaml:"addr"`
}

// Config is the top-level application configuration.
type Config struct {
	Port           string    `yaml:"port"`
	Database       Database  `yaml:"database"`
	Studio         Studio    `yaml:"studio"`
	AllowedOrigins []string  `yaml:"allowed_origins"`
	RateLimit      RateLimit `yaml:"rate_limit"`
	Redis          Redis     `yaml:"redis"`
}

// Default returns the local-development configuration.
func Default() Config {
	return Config{
		Port: "8080",
		Database: Database{
			Host:     "localhost",
			Port:     "5432",
			User:     "postgres",
			Password: "postgres",
			Name:     "classbooking",
			SSLMode:  "disable",
		},
		AllowedOrigins: []string{"*"},
		RateLimit: RateLimit{
			Limit:         30,
			WindowSeconds: 60,
		},
	}
}

// Load reads configuration from the YAML file at path (skipped when path is
// empty or the file does not exist), then applies environment overrides on
// top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// Missing file is fine; env and defaults apply.
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	cfg.applyEnv()
	cfg.normalize()
	return cfg, nil
}

func (c *Config) applyEnv() {
	overlay(&c.Port, "PORT")
	overlay(&c.Database.Host, "DB_HOST")
	overlay(&c.Database.Port, "DB_PORT")
	overlay(&c.Database.User, "DB_USER")
	overlay(&c.Database.Password, "DB_PASSWORD")
	overlay(&c.Database.Name, "DB_NAME")
	overlay(&c.Database.SSLMode, "DB_SSLMODE")
	overlay(&c.Studio.Location, "STUDIO_LOCATION")
	overlay(&c.Studio.WhatsApp, "STUDIO_WHATSAPP")
	overlay(&c.Redis.Addr, "REDIS_ADDR")
}

func (c *Config) normalize() {
	def := Default()
	if c.Port == "" {
		c.Port = def.Port
	}
	if c.RateLimit.Limit <= 0 {
		c.RateLimit.Limit = def.RateLimit.Limit
	}
	if c.RateLimit.WindowSeconds <= 0 {
		c.RateLimit.WindowSeconds = def.RateLimit.WindowSeconds
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = def.AllowedOrigins
	}
}

func overlay(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
