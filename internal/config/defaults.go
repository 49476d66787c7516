package config

import "time"

// Default values applied after all other sources.
const (
	DefaultVersion        = "dev"
	DefaultLogLevel       = "info"
	DefaultPublicBaseURL  = "http://localhost:8080"
	DefaultTokenIssuer    = "qr-keeper"
	DefaultIterations     = 310_000
	DefaultMaxIterations  = 10_000_000
	DefaultInlineCapacity = 1200
	DefaultRecoveryLevel  = "M"
	DefaultImageSize      = 512
	DefaultCodeLength     = 6
	DefaultMaxAttempts    = 10
	DefaultPageSize       = 20
	DefaultDSN            = "memory"
	DefaultS3Region       = "us-east-1"
	DefaultHTTPAddress    = "localhost:8080"
	DefaultMaxUploadBytes = 10 << 20

	DefaultStorageTimeout   = 5 * time.Second
	DefaultRequestTimeout   = 30 * time.Second
	DefaultExpiredRetention = 30 * 24 * time.Hour
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Version:       DefaultVersion,
			LogLevel:      DefaultLogLevel,
			PublicBaseURL: DefaultPublicBaseURL,
			TokenIssuer:   DefaultTokenIssuer,
		},
		Envelope: Envelope{
			Iterations:    DefaultIterations,
			MaxIterations: DefaultMaxIterations,
		},
		QR: QR{
			InlineCapacity: DefaultInlineCapacity,
			RecoveryLevel:  DefaultRecoveryLevel,
			ImageSize:      DefaultImageSize,
		},
		Shortener: Shortener{
			CodeLength:      DefaultCodeLength,
			MaxAttempts:     DefaultMaxAttempts,
			DefaultPageSize: DefaultPageSize,
		},
		Storage: Storage{
			DB:      DB{DSN: DefaultDSN},
			S3:      S3{Region: DefaultS3Region},
			Timeout: DefaultStorageTimeout,
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
			MaxUploadBytes: DefaultMaxUploadBytes,
		},
		Workers: Workers{
			ExpiredRetention: DefaultExpiredRetention,
		},
	}
}
