package app

import (
	"errors"
	"fmt"
	"testing"

	"github.com/MKhiriev/go-qr-keeper/internal/adapter"
	"github.com/stretchr/testify/assert"
)

func TestHint(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "conflict", err: fmt.Errorf("%w: alias is already taken", adapter.ErrConflict), want: MsgAliasTaken},
		{name: "unprocessable", err: adapter.ErrUnprocessable, want: MsgDecryptionFailed},
		{name: "gone", err: adapter.ErrGone, want: MsgLinkExpired},
		{name: "unauthorized", err: adapter.ErrUnauthorized, want: MsgTokenIsExpiredOrInvalid},
		{name: "unknown", err: errors.New("dial tcp: connection refused"), want: ""},
		{name: "nil", err: nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Hint(tt.err))
		})
	}
}
