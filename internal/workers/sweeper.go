// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-qr-keeper/internal/logger"
	"github.com/MKhiriev/go-qr-keeper/internal/store"
)

// sweepTimeout bounds a single purge so a stuck backend cannot pin the
// sweeper goroutine.
const sweepTimeout = 30 * time.Second

// ExpiredLinkSweeper periodically hard-deletes links whose expiry lies more
// than retention in the past.
type ExpiredLinkSweeper struct {
	links     store.ShortLinkStore
	interval  time.Duration
	retention time.Duration
	now       func() time.Time
	logger    *logger.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

func NewExpiredLinkSweeper(links store.ShortLinkStore, interval, retention time.Duration, logger *logger.Logger) *ExpiredLinkSweeper {
	return &ExpiredLinkSweeper{
		links:     links,
		interval:  interval,
		retention: retention,
		now:       time.Now,
		logger:    logger,
	}
}

// Run starts the sweep loop. Calling Run more than once has no effect.
func (s *ExpiredLinkSweeper) Run() {
	s.once.Do(func() {
		ctx, cancel := context.WithCancel(context.Background())
		s.cancel = cancel

		s.wg.Add(1)
		go s.loop(ctx)

		s.logger.Info().
			Dur("interval", s.interval).
			Dur("retention", s.retention).
			Msg("expired link sweeper started")
	})
}

// Stop cancels the loop and waits for an in-flight sweep to return.
func (s *ExpiredLinkSweeper) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.wg.Wait()
}

func (s *ExpiredLinkSweeper) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs one purge and returns the number of removed links. Failures
// are logged and reported as zero; the next tick retries.
func (s *ExpiredLinkSweeper) Sweep(ctx context.Context) int64 {
	ctx, cancel := context.WithTimeout(ctx, sweepTimeout)
	defer cancel()

	cutoff := s.now().UTC().Add(-s.retention)
	deleted, err := s.links.DeleteExpiredBefore(ctx, cutoff)
	if err != nil {
		s.logger.Err(err).Time("cutoff", cutoff).Msg("expired link sweep failed")
		return 0
	}

	if deleted > 0 {
		s.logger.Info().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("expired links purged")
	}
	return deleted
}
