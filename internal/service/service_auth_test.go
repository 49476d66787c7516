package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-qr-keeper/internal/config"
	"github.com/MKhiriev/go-qr-keeper/internal/logger"
	"github.com/MKhiriev/go-qr-keeper/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToken(t *testing.T) {
	cfg := config.App{TokenSignKey: "sign-key", TokenIssuer: "qr-keeper"}
	svc := NewAuthService(cfg, logger.Nop())

	valid, err := utils.GenerateJWTToken("qr-keeper", "owner-42", time.Hour, "sign-key")
	require.NoError(t, err)

	token, err := svc.ParseToken(context.Background(), valid.SignedString)
	require.NoError(t, err)
	assert.Equal(t, "owner-42", token.OwnerID)

	otherKey, err := utils.GenerateJWTToken("qr-keeper", "owner-42", time.Hour, "other-key")
	require.NoError(t, err)
	otherIssuer, err := utils.GenerateJWTToken("someone-else", "owner-42", time.Hour, "sign-key")
	require.NoError(t, err)

	for name, raw := range map[string]string{
		"garbage":      "not.a.token",
		"wrong key":    otherKey.SignedString,
		"wrong issuer": otherIssuer.SignedString,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ParseToken(context.Background(), raw)
			assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
		})
	}
}

func TestParseToken_EmptySignKeyRejectsEverything(t *testing.T) {
	svc := NewAuthService(config.App{TokenIssuer: "qr-keeper"}, logger.Nop())

	signed, err := utils.GenerateJWTToken("qr-keeper", "owner-42", time.Hour, "sign-key")
	require.NoError(t, err)

	_, err = svc.ParseToken(context.Background(), signed.SignedString)
	assert.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
