package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnvelope() Envelope {
	return Envelope{
		Iterations: 1000,
		Salt:       bytes.Repeat([]byte{0x01}, SaltSize),
		IV:         bytes.Repeat([]byte{0x02}, IVSize),
		Ciphertext: bytes.Repeat([]byte{0x03}, TagSize+4),
	}
}

func TestEnvelope_MarshalParse(t *testing.T) {
	e := testEnvelope()

	text, err := e.MarshalText()
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(text, []byte("qrk1.1000.")))
	assert.Equal(t, 4, bytes.Count(text, []byte{'.'}))

	parsed, err := ParseEnvelope(text)
	require.NoError(t, err)
	assert.Equal(t, e, parsed)
}

func TestEnvelope_TextIsQRSafe(t *testing.T) {
	text, err := testEnvelope().MarshalText()
	require.NoError(t, err)

	for _, b := range text {
		ok := b == '.' || b == '-' || b == '_' ||
			(b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
		assert.Truef(t, ok, "unexpected byte %q in envelope", b)
	}
}

func TestEnvelope_ParseTrimsWhitespace(t *testing.T) {
	text, err := testEnvelope().MarshalText()
	require.NoError(t, err)

	parsed, err := ParseEnvelope(append(append([]byte("  \n"), text...), '\n'))
	require.NoError(t, err)
	assert.Equal(t, 1000, parsed.Iterations)
}

func TestEnvelope_MarshalRejectsIncomplete(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Envelope)
	}{
		{name: "zero iterations", mutate: func(e *Envelope) { e.Iterations = 0 }},
		{name: "short salt", mutate: func(e *Envelope) { e.Salt = e.Salt[:4] }},
		{name: "short iv", mutate: func(e *Envelope) { e.IV = nil }},
		{name: "ciphertext shorter than tag", mutate: func(e *Envelope) { e.Ciphertext = e.Ciphertext[:TagSize-1] }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := testEnvelope()
			tt.mutate(&e)

			_, err := e.MarshalText()
			assert.Error(t, err)
			assert.Empty(t, e.String())
		})
	}
}
