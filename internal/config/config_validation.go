// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/MKhiriev/go-qr-keeper/internal/encoder"
	"github.com/rs/zerolog"
)

const (
	// MinIterations is the smallest configurable PBKDF2 work factor.
	MinIterations = 10_000

	MinCodeLength = 4
	MaxCodeLength = 50
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup. All violations are
// reported together.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	if u, err := url.Parse(cfg.App.PublicBaseURL); err != nil || !u.IsAbs() || u.Host == "" {
		errs = append(errs, fmt.Errorf("%w: public base url %q must be absolute", ErrInvalidAppConfigs, cfg.App.PublicBaseURL))
	}
	if _, err := zerolog.ParseLevel(cfg.App.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("%w: log level %q", ErrInvalidAppConfigs, cfg.App.LogLevel))
	}

	if cfg.Envelope.Iterations < MinIterations {
		errs = append(errs, fmt.Errorf("%w: iterations must be at least %d", ErrInvalidEnvelopeConfigs, MinIterations))
	}
	if cfg.Envelope.MaxIterations < cfg.Envelope.Iterations {
		errs = append(errs, fmt.Errorf("%w: max iterations below iterations", ErrInvalidEnvelopeConfigs))
	}

	level, err := encoder.ParseLevel(cfg.QR.RecoveryLevel)
	if err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidQRConfigs, err))
	} else if maxPayload := encoder.MaxPayload(level); cfg.QR.InlineCapacity <= 0 || cfg.QR.InlineCapacity > maxPayload {
		errs = append(errs, fmt.Errorf("%w: inline capacity must be in (0, %d] for level %s", ErrInvalidQRConfigs, maxPayload, level))
	}
	if cfg.QR.ImageSize < 0 {
		errs = append(errs, fmt.Errorf("%w: negative image size", ErrInvalidQRConfigs))
	}

	if cfg.Shortener.CodeLength < MinCodeLength || cfg.Shortener.CodeLength > MaxCodeLength {
		errs = append(errs, fmt.Errorf("%w: code length must be in [%d, %d]", ErrInvalidShortenerConfigs, MinCodeLength, MaxCodeLength))
	}
	if cfg.Shortener.MaxAttempts < 1 {
		errs = append(errs, fmt.Errorf("%w: max attempts must be positive", ErrInvalidShortenerConfigs))
	}
	if cfg.Shortener.DefaultPageSize < 1 || cfg.Shortener.DefaultPageSize > 100 {
		errs = append(errs, fmt.Errorf("%w: default page size must be in [1, 100]", ErrInvalidShortenerConfigs))
	}

	if cfg.Storage.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("%w: timeout must be positive", ErrInvalidStorageConfigs))
	}

	if cfg.Server.HTTPAddress == "" {
		errs = append(errs, fmt.Errorf("%w: empty http address", ErrInvalidServerConfigs))
	}
	if cfg.Server.MaxUploadBytes <= 0 {
		errs = append(errs, fmt.Errorf("%w: max upload bytes must be positive", ErrInvalidServerConfigs))
	}

	if cfg.Workers.SweepInterval < 0 || cfg.Workers.ExpiredRetention < 0 {
		errs = append(errs, ErrInvalidWorkerConfigs)
	}

	return errors.Join(errs...)
}
