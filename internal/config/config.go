// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"time"
)

// StructuredConfig is the top-level configuration container for the
// qr-keeper server. It aggregates all sub-configurations and is populated by
// merging values from environment variables, command-line flags, an optional
// JSON file and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings: version, logging, public URL
	// and token verification parameters.
	App App `envPrefix:"APP_"`

	// Envelope holds key-derivation parameters for new and existing envelopes.
	Envelope Envelope `envPrefix:"ENVELOPE_"`

	// QR holds renderer and inline-capacity settings.
	QR QR `envPrefix:"QR_"`

	// Shortener holds short-code generation and listing settings.
	Shortener Shortener `envPrefix:"SHORTENER_"`

	// Storage holds configuration for the record store and the blob store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and limits for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// Version is the semantic version string of the running application.
	// Exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is a zerolog level name (debug, info, warn, error).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`

	// PublicBaseURL is the externally visible origin used to build short
	// URLs and blob locator URLs (e.g. "https://qrk.example.com").
	// Env: APP_PUBLIC_BASE_URL
	PublicBaseURL string `env:"PUBLIC_BASE_URL"`

	// TokenSignKey is the HMAC secret used to verify bearer tokens.
	// When empty every bearer token is rejected.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the expected "iss" claim of bearer tokens.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`
}

// Envelope holds PBKDF2 work-factor settings.
type Envelope struct {
	// Iterations is the work factor written into new envelopes.
	// Env: ENVELOPE_ITERATIONS
	Iterations int `env:"ITERATIONS"`

	// MaxIterations is the largest work factor accepted when opening an
	// envelope.
	// Env: ENVELOPE_MAX_ITERATIONS
	MaxIterations int `env:"MAX_ITERATIONS"`
}

// QR holds renderer settings.
type QR struct {
	// InlineCapacity is the largest serialized envelope, in bytes, that is
	// embedded directly in the QR code. Larger envelopes are offloaded to
	// the blob store.
	// Env: QR_INLINE_CAPACITY
	InlineCapacity int `env:"INLINE_CAPACITY"`

	// RecoveryLevel is the error-correction level: L, M, Q or H.
	// Env: QR_RECOVERY_LEVEL
	RecoveryLevel string `env:"RECOVERY_LEVEL"`

	// ImageSize is the PNG width and height in pixels.
	// Env: QR_IMAGE_SIZE
	ImageSize int `env:"IMAGE_SIZE"`
}

// Shortener holds short-link settings.
type Shortener struct {
	// CodeLength is the length of generated short codes.
	// Env: SHORTENER_CODE_LENGTH
	CodeLength int `env:"CODE_LENGTH"`

	// MaxAttempts bounds insert retries after a generated code collides.
	// Env: SHORTENER_MAX_ATTEMPTS
	MaxAttempts int `env:"MAX_ATTEMPTS"`

	// DefaultPageSize is used when a list request carries no limit.
	// Env: SHORTENER_DEFAULT_PAGE_SIZE
	DefaultPageSize int `env:"DEFAULT_PAGE_SIZE"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the record store connection settings.
	DB DB `envPrefix:"DB_"`

	// Files holds the file-system blob store settings.
	Files Files `envPrefix:"FILES_"`

	// S3 holds the object-storage blob store settings.
	S3 S3 `envPrefix:"S3_"`

	// Timeout bounds every single store call.
	// Env: STORAGE_TIMEOUT
	Timeout time.Duration `env:"TIMEOUT"`
}

// DB holds connection settings for the record store.
type DB struct {
	// DSN selects the backend: "postgres://..." for PostgreSQL,
	// "file:..." or a *.db / *.sqlite path for SQLite, "memory" for the
	// in-process store.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Files holds file-system settings for the blob store.
type Files struct {
	// BlobDir is the directory where offloaded envelopes are written.
	// Env: STORAGE_FILES_BLOB_DIR
	BlobDir string `env:"BLOB_DIR"`
}

// S3 holds settings for an S3-compatible blob store (AWS S3, MinIO).
type S3 struct {
	// Bucket enables the S3 blob store when non-empty.
	// Env: STORAGE_S3_BUCKET
	Bucket string `env:"BUCKET"`

	// Region is the bucket region.
	// Env: STORAGE_S3_REGION
	Region string `env:"REGION"`

	// Endpoint overrides the service endpoint (e.g. "http://127.0.0.1:9000").
	// Env: STORAGE_S3_ENDPOINT
	Endpoint string `env:"ENDPOINT"`

	// AccessKey and SecretKey are static credentials. When both are empty
	// the default AWS credential chain is used.
	// Env: STORAGE_S3_ACCESS_KEY, STORAGE_S3_SECRET_KEY
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`

	// Prefix is prepended to every object key.
	// Env: STORAGE_S3_PREFIX
	Prefix string `env:"PREFIX"`

	// UsePathStyle forces path-style addressing, required by MinIO.
	// Env: STORAGE_S3_USE_PATH_STYLE
	UsePathStyle bool `env:"USE_PATH_STYLE"`
}

// Server holds network and limit settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// MaxUploadBytes caps the body of protect requests.
	// Env: SERVER_MAX_UPLOAD_BYTES
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SweepInterval is how often expired links are purged. Zero disables
	// the sweeper.
	// Env: WORKERS_SWEEP_INTERVAL
	SweepInterval time.Duration `env:"SWEEP_INTERVAL"`

	// ExpiredRetention is how long an expired link is kept before it is
	// purged, so its owner can still see it in listings.
	// Env: WORKERS_EXPIRED_RETENTION
	ExpiredRetention time.Duration `env:"EXPIRED_RETENTION"`
}

// GetStructuredConfig loads, merges, and validates the server configuration
// from all available sources. For every field the first source that sets it
// wins:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	return loadStructuredConfig(os.Args[1:])
}

func loadStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		withDefaults().
		build()
}
