package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-qr-keeper/internal/crypto"
	"github.com/MKhiriev/go-qr-keeper/internal/encoder"
	"github.com/MKhiriev/go-qr-keeper/internal/logger"
	"github.com/MKhiriev/go-qr-keeper/internal/placement"
	"github.com/MKhiriev/go-qr-keeper/internal/store"
	"github.com/MKhiriev/go-qr-keeper/models"
)

// protectionService composes encryption, placement and rendering.
//
// The passphrase and plaintext are never logged.
type protectionService struct {
	codec   crypto.EnvelopeCodec
	router  *placement.Router
	encoder encoder.Encoder

	// inlineCapacity is the largest envelope carried inside the QR code.
	inlineCapacity int

	logger *logger.Logger
}

// NewProtectionService constructs a [ProtectionService].
func NewProtectionService(codec crypto.EnvelopeCodec, router *placement.Router, enc encoder.Encoder, inlineCapacity int, logger *logger.Logger) ProtectionService {
	return &protectionService{
		codec:          codec,
		router:         router,
		encoder:        enc,
		inlineCapacity: inlineCapacity,
		logger:         logger,
	}
}

// Protect encrypts req.Data, decides the placement of the envelope and
// renders the resulting text.
//
// Errors: crypto.ErrInvalidPassphrase, placement.ErrPayloadUnroutable,
// store.ErrStorageUnavailable.
func (p *protectionService) Protect(ctx context.Context, req models.ProtectRequest) (models.ProtectResult, error) {
	log := logger.FromContext(ctx)

	envelope, err := p.codec.Encrypt(req.Data, req.Passphrase)
	if err != nil {
		return models.ProtectResult{}, err
	}

	serialized, err := envelope.MarshalText()
	if err != nil {
		log.Err(err).Str("func", "protectionService.Protect").Msg("error serializing envelope")
		return models.ProtectResult{}, fmt.Errorf("serialize envelope: %w", err)
	}

	placed, err := p.router.Route(ctx, serialized, p.inlineCapacity)
	if err != nil {
		log.Err(err).Str("func", "protectionService.Protect").Int("envelope_size", len(serialized)).Msg("error placing envelope")
		return models.ProtectResult{}, err
	}

	png, err := p.encoder.Encode(placed.Text)
	if err != nil {
		if errors.Is(err, encoder.ErrPayloadTooLarge) {
			return models.ProtectResult{}, fmt.Errorf("%w: %w", placement.ErrPayloadUnroutable, err)
		}
		log.Err(err).Str("func", "protectionService.Protect").Msg("error rendering qr code")
		return models.ProtectResult{}, err
	}

	log.Debug().
		Str("func", "protectionService.Protect").
		Str("mode", string(placed.Mode)).
		Int("envelope_size", len(serialized)).
		Msg("payload protected")

	return models.ProtectResult{
		Mode:         placed.Mode,
		Text:         placed.Text,
		QRCode:       png,
		Blob:         placed.Blob,
		Filename:     req.Filename,
		EnvelopeSize: len(serialized),
	}, nil
}

// Reveal accepts either an inline envelope or a locator URL of this
// service and returns the plaintext.
//
// URLs of other origins and undecodable input are both reported as
// crypto.ErrDecryptionFailed. A locator whose blob is gone yields
// [ErrNotFound].
func (p *protectionService) Reveal(ctx context.Context, req models.RevealRequest) ([]byte, error) {
	serialized, err := p.router.Resolve(ctx, req.Text)
	switch {
	case errors.Is(err, placement.ErrForeignLocator):
		return nil, crypto.ErrDecryptionFailed
	case errors.Is(err, store.ErrBlobNotFound):
		return nil, ErrNotFound
	case err != nil:
		logger.FromContext(ctx).Err(err).Str("func", "protectionService.Reveal").Msg("error resolving locator")
		return nil, err
	}

	return p.codec.Decrypt(serialized, req.Passphrase)
}

func (p *protectionService) FetchBlob(ctx context.Context, locator string) ([]byte, error) {
	data, err := p.router.Fetch(ctx, locator)
	if errors.Is(err, store.ErrBlobNotFound) {
		return nil, ErrNotFound
	}
	return data, err
}
