// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package encoder renders text payloads into QR code images.
package encoder

//go:generate mockgen -source=interfaces.go -destination=../mock/encoder_mock.go -package=mock

// Encoder renders a text payload into an image.
type Encoder interface {
	// Encode renders text into PNG bytes. Text longer than MaxPayload
	// returns [ErrPayloadTooLarge] and the renderer is not invoked.
	Encode(text string) ([]byte, error)

	// MaxPayload is the largest payload in bytes a single symbol can hold at
	// the configured recovery level.
	MaxPayload() int
}
