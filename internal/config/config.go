package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Env      string         `json:"env" yaml:"env"`
	Http     HttpConfig     `json:"http" yaml:"http"`
	Postgres PostgresConfig `json:"postgres" yaml:"postgres"`
	Redis    RedisConfig    `json:"redis" yaml:"redis"`
	Blob     BlobConfig     `json:"blob" yaml:"blob"`
	APIKey   string         `json:"api_key,omitempty" yaml:"apiKey"`
	Claims   ClaimsConfig   `json:"claims" yaml:"claims"`
}

type HttpConfig struct {
	Port            string        `json:"port" yaml:"port"`
	ReadTimeout     time.Duration `json:"read_timeout" yaml:"readTimeout"`
	WriteTimeout    time.Duration `json:"write_timeout" yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdownTimeout"`
}

type PostgresConfig struct {
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Database string `json:"database" yaml:"database"`
	User     string `json:"user" yaml:"user"`
	Password string `json:"password,omitempty" yaml:"password"`
	SSLMode  string `json:"ssl_mode" yaml:"sslMode"`

	MaxConns        int32         `yaml:"maxConns"`
	MinConns        int32         `yaml:"minConns"`
	MaxConnLifetime time.Duration `yaml:"maxConnLifetime"`
}

// Configured reports whether a claim store endpoint was supplied.
func (p PostgresConfig) Configured() bool {
	return p.Host != ""
}

type RedisConfig struct {
	Addr       string        `json:"addr" yaml:"addr"`
	Password   string        `json:"password,omitempty" yaml:"password"`
	DB         int           `json:"db" yaml:"db"`
	SessionTTL time.Duration `json:"session_ttl" yaml:"sessionTTL"`
	StatsTTL   time.Duration `json:"stats_ttl" yaml:"statsTTL"`
}

const (
	BlobDriverMinio = "minio"
	BlobDriverS3    = "s3"
)

type BlobConfig struct {
	Driver        string `json:"driver" yaml:"driver"`
	Endpoint      string `json:"endpoint" yaml:"endpoint"`
	AccessKey     string `json:"access_key,omitempty" yaml:"accessKey"`
	SecretKey     string `json:"secret_key,omitempty" yaml:"secretKey"`
	Bucket        string `json:"bucket" yaml:"bucket"`
	Region        string `json:"region" yaml:"region"`
	UseSSL        bool   `json:"use_ssl" yaml:"useSSL"`
	PublicBaseURL string `json:"public_base_url" yaml:"publicBaseURL"`
}

// Configured reports whether the blob endpoint and key were supplied.
func (b BlobConfig) Configured() bool {
	return b.Endpoint != "" && b.AccessKey != ""
}

type ClaimsConfig struct {
	Deadline      time.Duration `json:"deadline" yaml:"deadline"`
	SessionSpan   time.Duration `json:"session_span" yaml:"sessionSpan"`
	MaxPhotoBytes int64         `json:"max_photo_bytes" yaml:"maxPhotoBytes"`
	MaxWidth      int           `json:"max_width" yaml:"maxWidth"`
	MaxHeight     int           `json:"max_height" yaml:"maxHeight"`
	JPEGQuality   int           `json:"jpeg_quality" yaml:"jpegQuality"`
}

func defaults() *Config {
	return &Config{
		Env: "local",
		Http: HttpConfig{
			Port:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Postgres: PostgresConfig{
			Port:            5432,
			Database:        "claims_db",
			User:            "postgres",
			Password:        "postgres",
			SSLMode:         "disable",
			MaxConns:        20,
			MinConns:        1,
			MaxConnLifetime: 1 * time.Hour,
		},
		Redis: RedisConfig{
			Addr:       "redis-local:6379",
			SessionTTL: 48 * time.Hour,
			StatsTTL:   30 * time.Second,
		},
		Blob: BlobConfig{
			Driver: BlobDriverMinio,
			Bucket: "claim-photos",
			Region: "us-east-1",
		},
		Claims: ClaimsConfig{
			Deadline:      24 * time.Hour,
			SessionSpan:   30 * time.Minute,
			MaxPhotoBytes: 10 * 1024 * 1024,
			MaxWidth:      1920,
			MaxHeight:     1080,
			JPEGQuality:   85,
		},
	}
}

// Load builds the config from defaults, then the YAML file named by
// CONFIG_FILE (if any), then environment variables (.env included).
func Load(ctx context.Context) (*Config, error) {
	stdLogger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		stdLogger.Warn(".env load warning", slog.Any("error", err))
	}

	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if !cfg.Postgres.Configured() {
		stdLogger.Warn("POSTGRES_HOST is not set, claim store calls will fail until configured")
	}
	if !cfg.Blob.Configured() {
		stdLogger.Warn("BLOB_ENDPOINT or BLOB_ACCESS_KEY is not set, photo uploads will fail until configured")
	}

	stdLogger.Info("Config loaded successfully",
		slog.String("env", cfg.Env),
		slog.String("http_port", cfg.Http.Port),
		slog.String("postgres_db", cfg.Postgres.Database),
		slog.String("redis_addr", cfg.Redis.Addr),
		slog.String("blob_driver", cfg.Blob.Driver),
		slog.String("blob_bucket", cfg.Blob.Bucket))

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Env = getEnv("ENV", c.Env)

	c.Http.Port = getEnv("HTTP_PORT", c.Http.Port)
	c.Http.ReadTimeout = getEnvDuration("HTTP_READ_TIMEOUT", c.Http.ReadTimeout)
	c.Http.WriteTimeout = getEnvDuration("HTTP_WRITE_TIMEOUT", c.Http.WriteTimeout)
	c.Http.ShutdownTimeout = getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", c.Http.ShutdownTimeout)

	c.Postgres.Host = getEnv("POSTGRES_HOST", c.Postgres.Host)
	c.Postgres.Port = getEnvInt("POSTGRES_PORT", c.Postgres.Port)
	c.Postgres.Database = getEnv("POSTGRES_DB", c.Postgres.Database)
	c.Postgres.User = getEnv("POSTGRES_USER", c.Postgres.User)
	c.Postgres.Password = getEnv("POSTGRES_PASSWORD", c.Postgres.Password)
	c.Postgres.SSLMode = getEnv("POSTGRES_SSL_MODE", c.Postgres.SSLMode)

	c.Redis.Addr = getEnv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = getEnvInt("REDIS_DB", c.Redis.DB)
	c.Redis.SessionTTL = getEnvDuration("REDIS_SESSION_TTL", c.Redis.SessionTTL)
	c.Redis.StatsTTL = getEnvDuration("REDIS_STATS_TTL", c.Redis.StatsTTL)

	c.Blob.Driver = strings.ToLower(getEnv("BLOB_DRIVER", c.Blob.Driver))
	c.Blob.Endpoint = getEnv("BLOB_ENDPOINT", c.Blob.Endpoint)
	c.Blob.AccessKey = getEnv("BLOB_ACCESS_KEY", c.Blob.AccessKey)
	c.Blob.SecretKey = getEnv("BLOB_SECRET_KEY", c.Blob.SecretKey)
	c.Blob.Bucket = getEnv("BLOB_BUCKET", c.Blob.Bucket)
	c.Blob.Region = getEnv("BLOB_REGION", c.Blob.Region)
	c.Blob.UseSSL = getEnvBool("BLOB_USE_SSL", c.Blob.UseSSL)
	c.Blob.PublicBaseURL = getEnv("BLOB_PUBLIC_BASE_URL", c.Blob.PublicBaseURL)

	c.APIKey = getEnv("API_KEY", c.APIKey)

	c.Claims.Deadline = getEnvDuration("CLAIM_DEADLINE", c.Claims.Deadline)
	c.Claims.SessionSpan = getEnvDuration("CLAIM_PHOTO_SESSION_SPAN", c.Claims.SessionSpan)
	c.Claims.MaxPhotoBytes = int64(getEnvInt("CLAIM_MAX_PHOTO_BYTES", int(c.Claims.MaxPhotoBytes)))
	c.Claims.MaxWidth = getEnvInt("CLAIM_MAX_WIDTH", c.Claims.MaxWidth)
	c.Claims.MaxHeight = getEnvInt("CLAIM_MAX_HEIGHT", c.Claims.MaxHeight)
	c.Claims.JPEGQuality = getEnvInt("CLAIM_JPEG_QUALITY", c.Claims.JPEGQuality)
}

func (c *Config) Validate() error {
	if c.Http.Port == "" || c.Http.Port[0] != ':' {
		return errors.New("HTTP_PORT must start with ':' like ':8080'")
	}

	if c.Redis.Addr == "" {
		return errors.New("REDIS_ADDR required")
	}

	if c.APIKey == "" {
		return errors.New("API_KEY required")
	}

	switch c.Blob.Driver {
	case BlobDriverMinio, BlobDriverS3:
	default:
		return fmt.Errorf("BLOB_DRIVER must be %q or %q, got %q", BlobDriverMinio, BlobDriverS3, c.Blob.Driver)
	}

	if c.Claims.Deadline <= 0 || c.Claims.SessionSpan <= 0 {
		return errors.New("claim deadline and photo session span must be positive")
	}

	if c.Claims.JPEGQuality < 1 || c.Claims.JPEGQuality > 100 {
		return errors.New("CLAIM_JPEG_QUALITY must be within 1..100")
	}

	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
