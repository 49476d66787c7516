package encoder

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "L", want: LevelL},
		{in: "m", want: LevelM},
		{in: " q ", want: LevelQ},
		{in: "H", want: LevelH},
		{in: "", wantErr: true},
		{in: "X", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownLevel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMaxPayload(t *testing.T) {
	assert.Equal(t, 2953, MaxPayload(LevelL))
	assert.Equal(t, 2331, MaxPayload(LevelM))
	assert.Equal(t, 1663, MaxPayload(LevelQ))
	assert.Equal(t, 1273, MaxPayload(LevelH))
	assert.Zero(t, MaxPayload("Z"))
}

func TestNewQREncoder(t *testing.T) {
	_, err := NewQREncoder("Z", 256)
	assert.ErrorIs(t, err, ErrUnknownLevel)

	enc, err := NewQREncoder(LevelM, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultImageSize, enc.(*qrEncoder).size)
	assert.Equal(t, 2331, enc.MaxPayload())
}

func TestQREncoder_Encode(t *testing.T) {
	enc, err := NewQREncoder(LevelM, 256)
	require.NoError(t, err)

	png, err := enc.Encode("qrk1.1000.c2FsdA.aXY.Y2lwaGVydGV4dA")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngSignature))
}

func TestQREncoder_EncodeAtCapacity(t *testing.T) {
	enc, err := NewQREncoder(LevelH, 128)
	require.NoError(t, err)

	png, err := enc.Encode(strings.Repeat("a", enc.MaxPayload()))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngSignature))
}

func TestQREncoder_EncodeTooLarge(t *testing.T) {
	enc, err := NewQREncoder(LevelQ, 128)
	require.NoError(t, err)

	png, err := enc.Encode(strings.Repeat("a", enc.MaxPayload()+1))
	assert.ErrorIs(t, err, ErrPayloadTooLarge)
	assert.Nil(t, png)
}
