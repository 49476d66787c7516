package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when a
// configuration group is incomplete or invalid.
var (
	// ErrInvalidAppConfigs indicates invalid application-level settings
	// (for example, a relative public base URL or an unknown log level).
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidEnvelopeConfigs indicates a work factor below the minimum.
	ErrInvalidEnvelopeConfigs = errors.New("invalid envelope configuration")
	// ErrInvalidQRConfigs indicates an unknown recovery level or an inline
	// capacity the renderer cannot hold.
	ErrInvalidQRConfigs = errors.New("invalid qr configuration")
	// ErrInvalidShortenerConfigs indicates an unusable code length or
	// retry ceiling.
	ErrInvalidShortenerConfigs = errors.New("invalid shortener configuration")
	// ErrInvalidStorageConfigs indicates invalid storage settings.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidServerConfigs indicates invalid transport settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidWorkerConfigs indicates negative worker durations.
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrInvalidClientConfigs indicates an unusable client setup.
	ErrInvalidClientConfigs = errors.New("invalid client configuration")
)
