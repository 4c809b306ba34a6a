package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/caarlos0/env/v11"
)

type DB struct {
	URL             string        `env:"DATABASE_URL,required,notEmpty"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"1h"`
	ConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" envDefault:"15m"`
	MigrationsPath  string        `env:"MIGRATIONS_PATH" envDefault:"db/migrations"`
}

type MinIO struct {
	Endpoint       string        `env:"MINIO_ENDPOINT" envDefault:"localhost:9000"`
	PublicEndpoint string        `env:"MINIO_PUBLIC_ENDPOINT"`
	AccessKey      string        `env:"MINIO_ACCESS_KEY" envDefault:"minioadmin"`
	SecretKey      string        `env:"MINIO_SECRET_KEY" envDefault:"minioadmin"`
	Bucket         string        `env:"MINIO_BUCKET" envDefault:"ops-feed-exports"`
	UseSSL         bool          `env:"MINIO_USE_SSL" envDefault:"false"`
	PublicUseSSL   bool          `env:"MINIO_PUBLIC_USE_SSL" envDefault:"false"`
	Region         string        `env:"MINIO_REGION" envDefault:"us-east-1"`
	LinkExpiry     time.Duration `env:"EXPORT_LINK_EXPIRY" envDefault:"15m"`
}

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	DB DB

	RedisURL     string        `env:"REDIS_URL" envDefault:"redis://localhost:6379"`
	FeedCacheTTL time.Duration `env:"FEED_CACHE_TTL" envDefault:"30s"`

	JWTSecret string `env:"JWT_SECRET,required,notEmpty"`

	MinIO MinIO

	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"http://localhost:5173"`

	DisplayTimezone string `env:"DISPLAY_TIMEZONE" envDefault:"UTC"`
	LogLevel        string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string `env:"LOG_FORMAT" envDefault:"text"`
	LocalesPath     string `env:"LOCALES_PATH" envDefault:"locales"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if cfg.MinIO.PublicEndpoint == "" {
		cfg.MinIO.PublicEndpoint = cfg.MinIO.Endpoint
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Location resolves DisplayTimezone, the zone feed dates and clocks are
// rendered in.
func (c *Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.DisplayTimezone)
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid DISPLAY_TIMEZONE %q: %w", name, err)
	}
	return loc, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
