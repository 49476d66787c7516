package service

import (
	"context"

	"github.com/MKhiriev/go-qr-keeper/internal/config"
	"github.com/MKhiriev/go-qr-keeper/internal/logger"
	"github.com/MKhiriev/go-qr-keeper/internal/utils"
	"github.com/MKhiriev/go-qr-keeper/models"
)

// authService verifies bearer tokens issued for this deployment. It never
// issues tokens itself; the subject claim is used as an opaque owner ID.
type authService struct {
	signKey string
	issuer  string

	logger *logger.Logger
}

// NewAuthService returns an [AuthService] that checks the HS256 signature
// against cfg.TokenSignKey and the "iss" claim against cfg.TokenIssuer.
// With an empty sign key every token is rejected.
func NewAuthService(cfg config.App, logger *logger.Logger) AuthService {
	if cfg.TokenSignKey == "" {
		logger.Warn().Msg("token sign key is empty, owner routes are unreachable")
	}

	return &authService{
		signKey: cfg.TokenSignKey,
		issuer:  cfg.TokenIssuer,
		logger:  logger,
	}
}

// ParseToken returns [ErrTokenIsExpiredOrInvalid] for any failure: bad
// signature, wrong issuer, missing subject or expiry in the past.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.signKey, a.issuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "authService.ParseToken").Msg("token rejected")
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
