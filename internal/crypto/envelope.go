// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strconv"
)

const (
	// EnvelopeTag prefixes every serialized envelope and identifies the format.
	EnvelopeTag = "qrk1"

	// SaltSize is the length of the random PBKDF2 salt in bytes.
	SaltSize = 16

	// IVSize is the length of the random AES-GCM nonce in bytes.
	IVSize = 12

	// TagSize is the length of the GCM authentication tag appended to the
	// ciphertext.
	TagSize = 16

	separator = '.'
)

// b64 is strict so that a flipped character can never decode to the same bytes.
var b64 = base64.RawURLEncoding.Strict()

var errMalformedEnvelope = errors.New("malformed envelope")

// Envelope is one encrypted payload together with everything needed to open
// it except the passphrase.
//
// Iterations is recorded at encryption time so that raising the default
// work factor later does not break existing envelopes.
type Envelope struct {
	Iterations int
	Salt       []byte
	IV         []byte
	Ciphertext []byte
}

// header returns the serialized prefix "qrk1.<iter>.<salt>.<iv>". It is
// bound to the ciphertext as GCM additional data.
func (e Envelope) header() []byte {
	buf := make([]byte, 0, len(EnvelopeTag)+12+b64.EncodedLen(len(e.Salt))+b64.EncodedLen(len(e.IV)))
	buf = append(buf, EnvelopeTag...)
	buf = append(buf, separator)
	buf = strconv.AppendInt(buf, int64(e.Iterations), 10)
	buf = append(buf, separator)
	buf = b64.AppendEncode(buf, e.Salt)
	buf = append(buf, separator)
	buf = b64.AppendEncode(buf, e.IV)
	return buf
}

// MarshalText implements [encoding.TextMarshaler]. The output only contains
// characters from the base64url alphabet, digits and dots, so it survives a
// QR byte-mode round trip unchanged.
func (e Envelope) MarshalText() ([]byte, error) {
	if e.Iterations < 1 || len(e.Salt) != SaltSize || len(e.IV) != IVSize || len(e.Ciphertext) < TagSize {
		return nil, errMalformedEnvelope
	}

	buf := e.header()
	buf = append(buf, separator)
	buf = b64.AppendEncode(buf, e.Ciphertext)
	return buf, nil
}

// String returns the serialized envelope or an empty string when the
// envelope is incomplete.
func (e Envelope) String() string {
	text, err := e.MarshalText()
	if err != nil {
		return ""
	}
	return string(text)
}

// ParseEnvelope splits a serialized envelope into its fields. It checks the
// format tag and all field lengths but cannot tell whether the ciphertext is
// authentic; that is decided by Decrypt.
func ParseEnvelope(serialized []byte) (Envelope, error) {
	parts := bytes.Split(bytes.TrimSpace(serialized), []byte{separator})
	if len(parts) != 5 || string(parts[0]) != EnvelopeTag {
		return Envelope{}, errMalformedEnvelope
	}

	iterations, err := strconv.Atoi(string(parts[1]))
	if err != nil || iterations < 1 {
		return Envelope{}, errMalformedEnvelope
	}

	salt, err := b64.DecodeString(string(parts[2]))
	if err != nil || len(salt) != SaltSize {
		return Envelope{}, errMalformedEnvelope
	}

	iv, err := b64.DecodeString(string(parts[3]))
	if err != nil || len(iv) != IVSize {
		return Envelope{}, errMalformedEnvelope
	}

	ciphertext, err := b64.DecodeString(string(parts[4]))
	if err != nil || len(ciphertext) < TagSize {
		return Envelope{}, errMalformedEnvelope
	}

	return Envelope{
		Iterations: iterations,
		Salt:       salt,
		IV:         iv,
		Ciphertext: ciphertext,
	}, nil
}
