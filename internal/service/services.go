package service

import (
	"fmt"

	"github.com/MKhiriev/go-qr-keeper/internal/config"
	"github.com/MKhiriev/go-qr-keeper/internal/crypto"
	"github.com/MKhiriev/go-qr-keeper/internal/encoder"
	"github.com/MKhiriev/go-qr-keeper/internal/logger"
	"github.com/MKhiriev/go-qr-keeper/internal/placement"
	"github.com/MKhiriev/go-qr-keeper/internal/store"
)

type Services struct {
	AuthService       AuthService
	AppInfoService    AppInfoService
	HealthService     HealthService
	ShortLinkService  ShortLinkService
	ProtectionService ProtectionService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	level, err := encoder.ParseLevel(cfg.QR.RecoveryLevel)
	if err != nil {
		return nil, fmt.Errorf("qr renderer: %w", err)
	}

	enc, err := encoder.NewQREncoder(level, cfg.QR.ImageSize)
	if err != nil {
		return nil, fmt.Errorf("qr renderer: %w", err)
	}

	router, err := placement.NewRouter(storages.Blobs, cfg.App.PublicBaseURL, enc.MaxPayload(), cfg.Storage.Timeout, logger)
	if err != nil {
		return nil, err
	}

	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	codec := crypto.NewEnvelopeCodec(cfg.Envelope.Iterations, cfg.Envelope.MaxIterations)

	return &Services{
		AuthService:       NewAuthService(cfg.App, logger),
		AppInfoService:    appInfo,
		HealthService:     NewHealthService(storages, cfg.Storage.Timeout, logger),
		ShortLinkService:  NewShortLinkService(storages.ShortLinks, enc, *cfg, logger),
		ProtectionService: NewProtectionService(codec, router, enc, cfg.QR.InlineCapacity, logger),
	}, nil
}
