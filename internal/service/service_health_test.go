package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-qr-keeper/internal/logger"
	"github.com/stretchr/testify/assert"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthService_Check(t *testing.T) {
	ok := NewHealthService(pingerFunc(func(context.Context) error { return nil }), time.Second, logger.Nop())
	assert.NoError(t, ok.Check(context.Background()))

	down := errors.New("connection refused")
	failing := NewHealthService(pingerFunc(func(context.Context) error { return down }), time.Second, logger.Nop())
	assert.ErrorIs(t, failing.Check(context.Background()), down)
}

func TestHealthService_CheckAppliesTimeout(t *testing.T) {
	svc := NewHealthService(pingerFunc(func(ctx context.Context) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return nil
	}), time.Second, logger.Nop())

	assert.NoError(t, svc.Check(context.Background()))
}
