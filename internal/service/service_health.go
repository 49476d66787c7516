package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-qr-keeper/internal/logger"
)

// Pinger is satisfied by store.Storages.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthService struct {
	storage Pinger
	timeout time.Duration
	logger  *logger.Logger
}

func NewHealthService(storage Pinger, timeout time.Duration, logger *logger.Logger) HealthService {
	return &healthService{
		storage: storage,
		timeout: timeout,
		logger:  logger,
	}
}

func (s *healthService) Check(ctx context.Context) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if err := s.storage.Ping(ctx); err != nil {
		s.logger.Warn().Err(err).Str("func", "healthService.Check").Msg("storage is not reachable")
		return err
	}

	return nil
}
