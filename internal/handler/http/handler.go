package http

import (
	"time"

	"github.com/MKhiriev/go-qr-keeper/internal/config"
	"github.com/MKhiriev/go-qr-keeper/internal/logger"
	"github.com/MKhiriev/go-qr-keeper/internal/service"
)

type Handler struct {
	services *service.Services

	// maxUploadBytes caps every request body.
	maxUploadBytes int64
	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		maxUploadBytes: cfg.MaxUploadBytes,
		requestTimeout: cfg.RequestTimeout,
		logger:         logger,
	}
}
