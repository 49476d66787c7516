package crypto

import "errors"

var (
	// ErrInvalidPassphrase is returned by Encrypt when the passphrase is
	// empty or shorter than MinPassphraseLength characters.
	ErrInvalidPassphrase = errors.New("invalid passphrase")

	// ErrDecryptionFailed covers a wrong passphrase as well as a corrupted,
	// truncated or tampered envelope. The cases are not
	// distinguished.
	ErrDecryptionFailed = errors.New("decryption failed")
)
