package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-qr-keeper/internal/config"
	"github.com/MKhiriev/go-qr-keeper/internal/logger"
)

// appInfoService reports the version served by GET /api/version.
type appInfoService struct {
	version string
	logger  *logger.Logger
}

// NewAppInfoService fails with [ErrVersionIsNotSpecified] for a blank
// cfg.Version.
func NewAppInfoService(cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	logger.Debug().Str("version", version).Msg("app info service ready")

	return &appInfoService{version: version, logger: logger}, nil
}

func (s *appInfoService) GetAppVersion(_ context.Context) string {
	return s.version
}
