package models

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a JWT token with convenience accessors for caller identity.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [jwt.RegisteredClaims] for standard claim access (subject, expiry, etc.).
//
// OwnerID is a cached copy of the "sub" (subject) claim. The core treats it
// as an opaque string and never interprets its contents.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides access to the standard JWT claim set
	// (sub, exp, iat, nbf, iss, aud, jti) as defined by RFC 7519.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// OwnerID is the caller identity extracted from the "sub" claim.
	OwnerID string `json:"-"`
}

// GetOwnerID returns the token's subject claim.
//
// Returns an error if the subject claim is missing or empty.
func (t *Token) GetOwnerID() (string, error) {
	subject, err := t.GetSubject()
	if err != nil {
		return "", fmt.Errorf("error extracting OwnerID from token: %w", err)
	}
	if subject == "" {
		return "", errors.New("empty subject")
	}

	return subject, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
