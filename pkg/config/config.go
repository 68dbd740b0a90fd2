// Package config loads process-wide configuration from the environment.
// Everything here is read once at startup and read-only afterwards.
package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

type ServerConfig struct {
	Addr string `env:"SERVER_ADDR" env-default:":3000"`
	// Storage selects the repository backend: "postgres" or "memory".
	// The in-memory backend exists for demos and local development.
	Storage string `env:"STORAGE" env-default:"postgres"`
}

type DbConfig struct {
	Host     string `env:"PG_HOST" env-default:"localhost"`
	Port     uint16 `env:"PG_PORT" env-default:"5432"`
	Database string `env:"PG_DATABASE" env-default:"conduit_db"`
	User     string `env:"PG_USER" env-default:"conduit"`
	Password string `env:"PG_PASSWORD" env-default:"pwd"`
}

func (d DbConfig) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Database)
}

type JwtConfig struct {
	// Rotating the secret invalidates every outstanding token.
	Secret      string `env:"JWT_SECRET" env-default:"very-secure-jwt-secret"`
	TokenExpiry string `env:"TOKEN_EXPIRY" env-default:"1440h"`
}

type S3Config struct {
	Region          string `env:"S3_REGION" env-default:"us-east-1"`
	Bucket          string `env:"S3_BUCKET" env-default:"shif-bucket"`
	AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	// BaseEndpoint overrides the AWS endpoint, for S3-compatible stores.
	BaseEndpoint string `env:"S3_BASE_ENDPOINT"`
	// PublicBaseURL is the URL prefix under which uploaded objects are
	// publicly readable; article image URLs must live under it.
	PublicBaseURL string `env:"S3_PUBLIC_BASE_URL" env-default:"https://shif-bucket.s3.amazonaws.com"`
}

type Config struct {
	Server ServerConfig
	Db     DbConfig
	Jwt    JwtConfig
	S3     S3Config
}

// Load reads the full configuration from the environment
func Load() (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("reading config from env: %w", err)
	}
	return cfg, nil
}
