package workers

import (
	"github.com/MKhiriev/go-qr-keeper/internal/config"
	"github.com/MKhiriev/go-qr-keeper/internal/logger"
	"github.com/MKhiriev/go-qr-keeper/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the background workers enabled by cfg. A disabled
// sweeper is simply left out.
func NewWorkers(storages *store.Storages, cfg config.Workers, logger *logger.Logger) *Workers {
	ws := &Workers{}

	if cfg.SweepInterval > 0 && cfg.ExpiredRetention > 0 {
		ws.workers = append(ws.workers, NewExpiredLinkSweeper(storages.ShortLinks, cfg.SweepInterval, cfg.ExpiredRetention, logger))
	} else {
		logger.Info().Msg("expired link sweeper disabled")
	}

	return ws
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

// Stop stops the workers in reverse start order.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}
