package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

type Config struct {
	Server  ServerConfig
	App     AppConfig
	Session SessionConfig
}

type ServerConfig struct {
	Host string
	Port string
}

func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

type AppConfig struct {
	Env              string
	LogLevel         string
	MaxUploadSize    int64
	AdvisoryFileSize int64
	MaxEncoders      int
	DefaultQuality   int
	CatalogFile      string
	Timezone         *time.Location
}

type SessionConfig struct {
	Backend   string
	TTL       time.Duration
	RedisAddr string
}

// Load reads configuration from the environment on top of the defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVER_HOST", "")
	v.SetDefault("SERVER_PORT", "8081")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_UPLOAD_SIZE", 32*1024*1024) // 32MB
	v.SetDefault("ADVISORY_FILE_SIZE", 5*1024*1024)
	v.SetDefault("MAX_ENCODERS", 0)
	v.SetDefault("DEFAULT_QUALITY", 90)
	v.SetDefault("CATALOG_FILE", "")
	v.SetDefault("TIMEZONE", "Local")
	v.SetDefault("SESSION_BACKEND", SessionBackendMemory)
	v.SetDefault("SESSION_TTL", 30*time.Minute)
	v.SetDefault("REDIS_ADDR", "localhost:6379")

	v.AutomaticEnv()

	loc, err := time.LoadLocation(v.GetString("TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetString("SERVER_PORT"),
		},
		App: AppConfig{
			Env:              v.GetString("ENV"),
			LogLevel:         v.GetString("LOG_LEVEL"),
			MaxUploadSize:    v.GetInt64("MAX_UPLOAD_SIZE"),
			AdvisoryFileSize: v.GetInt64("ADVISORY_FILE_SIZE"),
			MaxEncoders:      v.GetInt("MAX_ENCODERS"),
			DefaultQuality:   v.GetInt("DEFAULT_QUALITY"),
			CatalogFile:      v.GetString("CATALOG_FILE"),
			Timezone:         loc,
		},
		Session: SessionConfig{
			Backend:   v.GetString("SESSION_BACKEND"),
			TTL:       v.GetDuration("SESSION_TTL"),
			RedisAddr: v.GetString("REDIS_ADDR"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.App.MaxUploadSize <= 0 {
		return fmt.Errorf("MAX_UPLOAD_SIZE must be positive, got %d", c.App.MaxUploadSize)
	}
	if c.App.DefaultQuality < 1 || c.App.DefaultQuality > 100 {
		return fmt.Errorf("DEFAULT_QUALITY must be within 1..100, got %d", c.App.DefaultQuality)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.Session.TTL)
	}
	switch c.Session.Backend {
	case SessionBackendMemory, SessionBackendRedis:
	default:
		return fmt.Errorf("unknown SESSION_BACKEND %q", c.Session.Backend)
	}
	return nil
}
