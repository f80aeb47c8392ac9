package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Config defines the parkdesk service configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"PARKDESK_HTTP_PORT"`
	} `yaml:"http"`
	Database struct {
		DSN string `yaml:"dsn" env:"PARKDESK_POSTGRES_DSN"`
	} `yaml:"database"`
	Redis struct {
		Addr     string `yaml:"addr" env:"PARKDESK_REDIS_ADDR"`
		Password string `yaml:"password" env:"PARKDESK_REDIS_PASSWORD"`
		TTL      int    `yaml:"ttlSeconds" env:"PARKDESK_REDIS_TTL"`
	} `yaml:"redis"`
	Auth struct {
		Secret   string `yaml:"secret" env:"PARKDESK_JWT_SECRET"`
		TokenTTL int    `yaml:"tokenTTLSeconds" env:"PARKDESK_TOKEN_TTL"`
	} `yaml:"auth"`
	Facility struct {
		// UTCOffsetMinutes is the facility's fixed timezone offset used to
		// normalize operator-supplied timestamps. Defaults to +05:30.
		UTCOffsetMinutes int `yaml:"utcOffsetMinutes" env:"PARKDESK_UTC_OFFSET_MINUTES"`
	} `yaml:"facility"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8080"
	cfg.Redis.Addr = "localhost:6379"
	cfg.Redis.TTL = 86400
	cfg.Auth.TokenTTL = 86400
	cfg.Facility.UTCOffsetMinutes = 330

	if err := load(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return nil, errors.New("config: database dsn required")
	}
	if strings.TrimSpace(cfg.Auth.Secret) == "" {
		return nil, errors.New("config: auth secret required")
	}
	return cfg, nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// ActiveSessionTTL returns the redis cache ttl as a duration.
func (c *Config) ActiveSessionTTL() time.Duration {
	if c.Redis.TTL <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.Redis.TTL) * time.Second
}

// TokenTTL returns the operator token lifetime.
func (c *Config) TokenTTL() time.Duration {
	if c.Auth.TokenTTL <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.Auth.TokenTTL) * time.Second
}

// FacilityZone returns the facility's fixed-offset timezone.
func (c *Config) FacilityZone() *time.Location {
	offset := c.Facility.UTCOffsetMinutes
	name := fmt.Sprintf("UTC%+03d:%02d", offset/60, abs(offset%60))
	return time.FixedZone(name, offset*60)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
