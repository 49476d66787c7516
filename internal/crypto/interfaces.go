// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto implements passphrase-based encryption of arbitrary
// payloads into self-describing envelopes.
//
// Scheme:
//
//	salt, iv = random(16), random(12)                      (fresh per call)
//	key      = PBKDF2-HMAC-SHA256(passphrase, salt, iter)  (32 bytes)
//	ct       = AES-256-GCM(key, iv, plaintext, aad=header)
//	envelope = "qrk1." iter "." b64(salt) "." b64(iv) "." b64(ct)
//
// The package performs no I/O and never logs.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/envelope_codec_mock.go -package=mock

// EnvelopeCodec encrypts payloads into envelopes and opens them again.
type EnvelopeCodec interface {
	// Encrypt seals plaintext with a key derived from passphrase.
	// Returns [ErrInvalidPassphrase] for passphrases shorter than
	// [MinPassphraseLength] characters.
	Encrypt(plaintext []byte, passphrase string) (Envelope, error)

	// Decrypt parses a serialized envelope and opens it. Every failure
	// (malformed input, wrong passphrase, tampering) is reported as
	// [ErrDecryptionFailed].
	Decrypt(serialized []byte, passphrase string) ([]byte, error)
}
