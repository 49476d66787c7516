// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// MinPassphraseLength is the minimum passphrase length in characters.
	MinPassphraseLength = 8

	// DefaultIterations is the PBKDF2-HMAC-SHA256 work factor used for new
	// envelopes when none is configured (OWASP 2023 recommendation).
	DefaultIterations = 310_000

	// DefaultMaxIterations caps the work factor accepted from an envelope.
	DefaultMaxIterations = 10_000_000

	keySize = 32 // AES-256
)

// envelopeCodec is the private implementation of [EnvelopeCodec].
type envelopeCodec struct {
	iterations    int
	maxIterations int

	// random is the entropy source for salts and IVs.
	random io.Reader
}

// NewEnvelopeCodec constructs an [EnvelopeCodec] that derives keys with the
// given PBKDF2 iteration count. Non-positive values fall back to
// [DefaultIterations] and [DefaultMaxIterations].
func NewEnvelopeCodec(iterations, maxIterations int) EnvelopeCodec {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	if maxIterations < iterations {
		maxIterations = iterations
	}

	return &envelopeCodec{
		iterations:    iterations,
		maxIterations: maxIterations,
		random:        rand.Reader,
	}
}

// Encrypt implements [EnvelopeCodec]. A fresh salt and IV are read from the
// OS CSPRNG on every call, so encrypting the same plaintext twice with the
// same passphrase yields different envelopes.
func (c *envelopeCodec) Encrypt(plaintext []byte, passphrase string) (Envelope, error) {
	if utf8.RuneCountInString(passphrase) < MinPassphraseLength {
		return Envelope{}, ErrInvalidPassphrase
	}

	salt := make([]byte, SaltSize)
	if _, err := io.ReadFull(c.random, salt); err != nil {
		return Envelope{}, fmt.Errorf("generate salt: %w", err)
	}

	iv := make([]byte, IVSize)
	if _, err := io.ReadFull(c.random, iv); err != nil {
		return Envelope{}, fmt.Errorf("generate iv: %w", err)
	}

	gcm, err := newGCM(deriveKey(passphrase, salt, c.iterations))
	if err != nil {
		return Envelope{}, err
	}

	envelope := Envelope{
		Iterations: c.iterations,
		Salt:       salt,
		IV:         iv,
	}
	envelope.Ciphertext = gcm.Seal(nil, iv, plaintext, envelope.header())

	return envelope, nil
}

// Decrypt implements [EnvelopeCodec]. The key is re-derived from the salt
// and iteration count stored in the envelope, not from the codec defaults.
//
// When the envelope cannot be parsed a key is still derived against a dummy
// salt, so malformed input costs about as much as a wrong passphrase.
func (c *envelopeCodec) Decrypt(serialized []byte, passphrase string) ([]byte, error) {
	envelope, err := ParseEnvelope(serialized)
	if err != nil || envelope.Iterations > c.maxIterations {
		_ = deriveKey(passphrase, make([]byte, SaltSize), c.iterations)
		return nil, ErrDecryptionFailed
	}

	gcm, err := newGCM(deriveKey(passphrase, envelope.Salt, envelope.Iterations))
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	plaintext, err := gcm.Open(nil, envelope.IV, envelope.Ciphertext, envelope.header())
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	return plaintext, nil
}

func deriveKey(passphrase string, salt []byte, iterations int) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, iterations, keySize, sha256.New)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return gcm, nil
}
