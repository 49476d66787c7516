package service

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-qr-keeper/internal/config"
	"github.com/MKhiriev/go-qr-keeper/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppInfoService(t *testing.T) {
	tests := []struct {
		name    string
		version string
		want    string
		wantErr error
	}{
		{name: "plain", version: "1.0.0", want: "1.0.0"},
		{name: "pre-release with build metadata", version: "v1.2.3-beta+build.42", want: "v1.2.3-beta+build.42"},
		{name: "surrounding whitespace", version: "  v2.0.0\n", want: "v2.0.0"},
		{name: "empty", version: "", wantErr: ErrVersionIsNotSpecified},
		{name: "blank", version: "   ", wantErr: ErrVersionIsNotSpecified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewAppInfoService(config.App{Version: tt.version}, logger.Nop())
			if tt.wantErr != nil {
				assert.Nil(t, svc)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, svc.GetAppVersion(context.Background()))
		})
	}
}

func TestGetAppVersion_IgnoresCancelledContext(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "1.0.0"}, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, "1.0.0", svc.GetAppVersion(ctx))
}
