// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package encoder

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

// Level is a QR error-correction level.
type Level string

const (
	LevelL Level = "L"
	LevelM Level = "M"
	LevelQ Level = "Q"
	LevelH Level = "H"
)

// DefaultImageSize is the PNG width and height in pixels.
const DefaultImageSize = 512

// byte-mode capacity of a version 40 symbol
var maxPayload = map[Level]int{
	LevelL: 2953,
	LevelM: 2331,
	LevelQ: 1663,
	LevelH: 1273,
}

var recoveryLevels = map[Level]qrcode.RecoveryLevel{
	LevelL: qrcode.Low,
	LevelM: qrcode.Medium,
	LevelQ: qrcode.High,
	LevelH: qrcode.Highest,
}

// ParseLevel accepts a level name in any case.
func ParseLevel(s string) (Level, error) {
	level := Level(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := maxPayload[level]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
	return level, nil
}

// MaxPayload returns the byte-mode capacity of the largest symbol at the
// given level, or 0 for an unknown level.
func MaxPayload(level Level) int {
	return maxPayload[level]
}

type qrEncoder struct {
	level Level
	size  int
}

// NewQREncoder returns an [Encoder] backed by go-qrcode. A non-positive
// size falls back to [DefaultImageSize].
func NewQREncoder(level Level, size int) (Encoder, error) {
	if _, ok := maxPayload[level]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
	}
	if size <= 0 {
		size = DefaultImageSize
	}

	return &qrEncoder{level: level, size: size}, nil
}

func (e *qrEncoder) Encode(text string) ([]byte, error) {
	if len(text) > e.MaxPayload() {
		return nil, ErrPayloadTooLarge
	}

	png, err := qrcode.Encode(text, recoveryLevels[e.level], e.size)
	if err != nil {
		return nil, fmt.Errorf("render qr code: %w", err)
	}

	return png, nil
}

func (e *qrEncoder) MaxPayload() int {
	return maxPayload[e.level]
}
