package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dcamara/simple-portfolio/pkg/portfolio"
	docjson "github.com/dcamara/simple-portfolio/pkg/portfolio/docstore/jsonfile"
	docpostgres "github.com/dcamara/simple-portfolio/pkg/portfolio/docstore/postgres"
	fsstore "github.com/dcamara/simple-portfolio/pkg/portfolio/filestore/fs"
	s3store "github.com/dcamara/simple-portfolio/pkg/portfolio/filestore/s3"
)

// Config is the process-wide server configuration, loaded once from the
// environment.
type Config struct {
	Port        string `env:"PORT" env-default:"3001"`
	Environment string `env:"PORTFOLIO_ENV" env-default:"development"` // development, production

	// Document store configuration
	DocumentStore string `env:"PORTFOLIO_DOCUMENT_STORE" env-default:"jsonfile"` // "jsonfile", "postgres"
	DocumentPath  string `env:"PORTFOLIO_DB_PATH" env-default:"data/db.json"`
	DatabaseURL   string `env:"PORTFOLIO_DATABASE_URL"`

	// File store configuration
	FileStore string `env:"PORTFOLIO_FILE_STORE" env-default:"fs"` // "fs", "s3"
	UploadDir string `env:"PORTFOLIO_UPLOAD_DIR" env-default:"uploads"`
	S3        S3Config

	Auth AuthConfig
}

// AuthConfig configures the credential gate.
type AuthConfig struct {
	Secret          string `env:"PORTFOLIO_JWT_SECRET"`
	TokenTTLMinutes int    `env:"PORTFOLIO_TOKEN_TTL_MINUTES" env-default:"60"`

	// Bootstrap credential, written only when the document holds none.
	AdminUsername string `env:"PORTFOLIO_ADMIN_USERNAME" env-default:"admin"`
	AdminPassword string `env:"PORTFOLIO_ADMIN_PASSWORD"`
}

// S3Config configures the S3 file store variant.
type S3Config struct {
	Endpoint        string `env:"AWS_S3_ENDPOINT"`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY"`
	Bucket          string `env:"AWS_S3_BUCKET" env-default:"portfolio-uploads"`
	Region          string `env:"AWS_S3_REGION" env-default:"us-east-1"`
	UsePathStyle    bool   `env:"AWS_S3_USE_PATH_STYLE" env-default:"true"`
	CreateBucket    bool   `env:"AWS_S3_CREATE_BUCKET" env-default:"false"`
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}

	if cfg.Auth.Secret == "" && cfg.Environment == "development" {
		// Known hardening gap: acceptable for local development only.
		// Validate rejects the missing secret everywhere else.
		slog.Warn("PORTFOLIO_JWT_SECRET not set, using an insecure development secret")
		cfg.Auth.Secret = "insecure-development-secret"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate validates the server configuration
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	if c.Auth.Secret == "" {
		return errors.New("PORTFOLIO_JWT_SECRET is required outside development")
	}

	switch c.DocumentStore {
	case "jsonfile":
		if c.DocumentPath == "" {
			return errors.New("PORTFOLIO_DB_PATH is required for the jsonfile document store")
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return errors.New("PORTFOLIO_DATABASE_URL is required for the postgres document store")
		}
	default:
		return fmt.Errorf("unknown document store %q", c.DocumentStore)
	}

	switch c.FileStore {
	case "fs":
		if c.UploadDir == "" {
			return errors.New("PORTFOLIO_UPLOAD_DIR is required for the fs file store")
		}
	case "s3":
		if c.S3.Bucket == "" {
			return errors.New("AWS_S3_BUCKET is required for the s3 file store")
		}
	default:
		return fmt.Errorf("unknown file store %q", c.FileStore)
	}

	return nil
}

// TokenTTL returns the configured token expiration window.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLMinutes) * time.Minute
}

// BuildDocumentStore constructs the configured document store. The
// returned cleanup releases any underlying connections.
func (c *Config) BuildDocumentStore(ctx context.Context) (portfolio.DocumentStore, func(), error) {
	switch c.DocumentStore {
	case "jsonfile":
		store, err := docjson.New(c.DocumentPath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil

	case "postgres":
		pool, err := pgxpool.New(ctx, c.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create connection pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}
		store := docpostgres.New(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown document store %q", c.DocumentStore)
	}
}

// BuildFileStore constructs the configured file store.
func (c *Config) BuildFileStore() (portfolio.FileStore, error) {
	switch c.FileStore {
	case "fs":
		return fsstore.New(fsstore.Config{BaseDir: c.UploadDir})

	case "s3":
		return s3store.New(s3store.Config{
			Region:                 c.S3.Region,
			Bucket:                 c.S3.Bucket,
			AccessKeyID:            c.S3.AccessKeyID,
			SecretAccessKey:        c.S3.SecretAccessKey,
			Endpoint:               c.S3.Endpoint,
			UsePathStyle:           c.S3.UsePathStyle,
			CreateBucketIfNotExist: c.S3.CreateBucket,
		})

	default:
		return nil, fmt.Errorf("unknown file store %q", c.FileStore)
	}
}
