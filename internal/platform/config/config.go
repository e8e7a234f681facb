// Copyright (c) 2026 Majalla. All rights reserved.
// Author: eng@majalla.net

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, MinIO, SMTP) via constructors.
  - Zero Hidden State: No global variables are used to store config.

This ensures the application is Twelve-Factor compliant by storing config in the env.
*/
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Majalla submission API.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis): wizard sessions + submission ledger
	RedisURL string `env:"REDIS_URL,required"`

	// JWT verification key for returning contributors. Tokens are minted by
	// the main site; this service only verifies them.
	JWTPubKeyPath string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// Object Storage (MinIO / S3-compatible) for cover and inline images
	MinIOEndpoint  string `env:"MINIO_ENDPOINT,required"`
	MinIOAccessKey string `env:"MINIO_ACCESS_KEY,required"`
	MinIOSecretKey string `env:"MINIO_SECRET_KEY,required"`
	MinIOBucket    string `env:"MINIO_BUCKET"    envDefault:"majalla-media"`
	MinIOUseSSL    bool   `env:"MINIO_USE_SSL"   envDefault:"false"`
	MediaBaseURL   string `env:"MEDIA_BASE_URL"  envDefault:""`

	// SMTP delivery for contributor confirmation emails.
	// When SMTPHost is empty the mailer degrades to log-only mode.
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT"      envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM"      envDefault:"editor@majalla.net"`

	// Submission content bounds. User-facing strings live in formconfig;
	// these are the enforcement limits.
	MinWords          int    `env:"SUBMISSION_MIN_WORDS"     envDefault:"50"`
	MaxWords          int    `env:"SUBMISSION_MAX_WORDS"     envDefault:"5000"`
	MaxFileSizeMB     int    `env:"SUBMISSION_MAX_FILE_MB"   envDefault:"5"`
	AllowedExtensions string `env:"SUBMISSION_ALLOWED_EXT"   envDefault:"jpg,jpeg,png,webp"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// Use the 'env' package to map environment variables to struct fields.
	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedExtensionList splits the comma-separated extension allow-list.
func (c *Config) AllowedExtensionList() []string {
	parts := strings.Split(c.AllowedExtensions, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// MaxFileSizeBytes returns the upload ceiling in bytes.
func (c *Config) MaxFileSizeBytes() int64 {
	return int64(c.MaxFileSizeMB) * 1024 * 1024
}
