// Package config loads settings from .env, built-in defaults and the
// environment, in that order of increasing priority.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Port        string        `koanf:"port"`
	GinMode     string        `koanf:"gin_mode"`
	DatabaseURL string        `koanf:"database_url"`
	StoreDriver string        `koanf:"store_driver"`
	JWTSecret   string        `koanf:"jwt_secret"`
	JWTIssuer   string        `koanf:"jwt_issuer"`
	AdminEmails string        `koanf:"admin_emails"` // comma separated
	LogLevel    string        `koanf:"log_level"`
	LogFormat   string        `koanf:"log_format"`
	CacheSize   int           `koanf:"cache_size"`
	CacheTTL    time.Duration `koanf:"cache_ttl"`
}

func defaults() Config {
	return Config{
		Port:        "8080",
		GinMode:     "release",
		DatabaseURL: "host=localhost user=postgres password=postgres dbname=mudawwana port=5432 sslmode=disable TimeZone=Asia/Riyadh",
		StoreDriver: StorePostgres,
		LogLevel:    "info",
		LogFormat:   "json",
		CacheSize:   500,
		CacheTTL:    5 * time.Minute,
	}
}

// Load reads .env if present, then overlays environment variables on the
// defaults. PORT maps to port, JWT_SECRET to jwt_secret and so on.
func Load() (*Config, error) {
	// .env is optional; real environment variables win over it
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}
	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.StoreDriver {
	case StorePostgres, StoreMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("CACHE_SIZE must be positive, got %d", c.CacheSize)
	}
	return nil
}

// Admins returns the lower-cased admin emails.
func (c *Config) Admins() map[string]bool {
	admins := make(map[string]bool)
	for _, e := range strings.Split(c.AdminEmails, ",") {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			admins[e] = true
		}
	}
	return admins
}
