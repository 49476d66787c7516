package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/MKhiriev/go-qr-keeper/internal/config"
	"github.com/MKhiriev/go-qr-keeper/internal/crypto"
	"github.com/MKhiriev/go-qr-keeper/internal/placement"
	"github.com/MKhiriev/go-qr-keeper/internal/service"
	"github.com/MKhiriev/go-qr-keeper/internal/store"
	"github.com/MKhiriev/go-qr-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fakePNG = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func multipartBody(t *testing.T, fields map[string]string, fileName string, file []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := mw.CreateFormFile("file", fileName)
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	return body, mw.FormDataContentType()
}

// ─────────────────────────────────────────────
// protect
// ─────────────────────────────────────────────

func TestProtect_MultipartFile(t *testing.T) {
	router, ts := newTestRouter(t, defaultServerConfig())
	secret := []byte{0x00, 0x01, 0xfe, 0xff}

	ts.protection.EXPECT().Protect(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req models.ProtectRequest) (models.ProtectResult, error) {
			assert.Equal(t, secret, req.Data)
			assert.Equal(t, "correct horse battery", req.Passphrase)
			assert.Equal(t, "keys.bin", req.Filename)
			return models.ProtectResult{
				Mode:         models.PlacementInline,
				Text:         "qrk1.1000.a.b.c",
				QRCode:       fakePNG,
				Filename:     req.Filename,
				EnvelopeSize: 15,
			}, nil
		})

	body, contentType := multipartBody(t, map[string]string{"passphrase": "correct horse battery"}, "keys.bin", secret)
	req := httptest.NewRequest(http.MethodPost, "/api/protect", body)
	req.Header.Set("Content-Type", contentType)

	rec := serve(router, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var res models.ProtectResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, models.PlacementInline, res.Mode)
	assert.Equal(t, "qrk1.1000.a.b.c", res.Text)
	assert.Equal(t, fakePNG, res.QRCode)
	assert.Equal(t, "keys.bin", res.Filename)
}

func TestProtect_TextFormAsPNG(t *testing.T) {
	router, ts := newTestRouter(t, defaultServerConfig())

	ts.protection.EXPECT().Protect(gomock.Any(), models.ProtectRequest{Data: []byte("my note"), Passphrase: "long passphrase"}).
		Return(models.ProtectResult{
			Mode:   models.PlacementOffloaded,
			Text:   "http://localhost:8080/b/0b8f7a4e-58b7-4b7e-9d3c-3f7c3b1c2d4e",
			QRCode: fakePNG,
			Blob:   &models.BlobReference{Locator: "0b8f7a4e-58b7-4b7e-9d3c-3f7c3b1c2d4e", Size: 1500},
		}, nil)

	form := url.Values{"text": {"my note"}, "passphrase": {"long passphrase"}}
	req := httptest.NewRequest(http.MethodPost, "/api/protect?format=png", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := serve(router, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "offloaded", rec.Header().Get(headerPlacementMode))
	assert.Equal(t, "0b8f7a4e-58b7-4b7e-9d3c-3f7c3b1c2d4e", rec.Header().Get(headerBlobLocator))
	assert.Equal(t, fakePNG, rec.Body.Bytes())
}

func TestProtect_NoPayload(t *testing.T) {
	router, _ := newTestRouter(t, defaultServerConfig())

	body, contentType := multipartBody(t, map[string]string{"passphrase": "long passphrase"}, "", nil)
	req := httptest.NewRequest(http.MethodPost, "/api/protect", body)
	req.Header.Set("Content-Type", contentType)

	rec := serve(router, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"error":%q}`, ErrNoPayload.Error()), readBody(t, rec))
}

func TestProtect_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "short passphrase", err: crypto.ErrInvalidPassphrase, wantStatus: http.StatusBadRequest},
		{name: "unroutable", err: fmt.Errorf("%w: too big", placement.ErrPayloadUnroutable), wantStatus: http.StatusRequestEntityTooLarge},
		{name: "storage down", err: fmt.Errorf("%w: timeout", store.ErrStorageUnavailable), wantStatus: http.StatusServiceUnavailable},
		{name: "unexpected", err: assert.AnError, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, ts := newTestRouter(t, defaultServerConfig())
			ts.protection.EXPECT().Protect(gomock.Any(), gomock.Any()).Return(models.ProtectResult{}, tt.err)

			form := url.Values{"text": {"x"}, "passphrase": {"long passphrase"}}
			req := httptest.NewRequest(http.MethodPost, "/api/protect", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

			rec := serve(router, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.NotContains(t, readBody(t, rec), "long passphrase")
		})
	}
}

func TestProtect_BodyTooLarge(t *testing.T) {
	router, _ := newTestRouter(t, config.Server{MaxUploadBytes: 128})

	body, contentType := multipartBody(t, map[string]string{"passphrase": "long passphrase"}, "big.bin", bytes.Repeat([]byte("a"), 4096))
	req := httptest.NewRequest(http.MethodPost, "/api/protect", body)
	req.Header.Set("Content-Type", contentType)

	rec := serve(router, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestProtect_ChunkedBodyTooLarge(t *testing.T) {
	router, _ := newTestRouter(t, config.Server{MaxUploadBytes: 128})

	body, contentType := multipartBody(t, map[string]string{"passphrase": "long passphrase"}, "big.bin", bytes.Repeat([]byte("a"), 4096))
	req := httptest.NewRequest(http.MethodPost, "/api/protect", body)
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = -1

	rec := serve(router, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

// ─────────────────────────────────────────────
// reveal
// ─────────────────────────────────────────────

func TestReveal_Success(t *testing.T) {
	router, ts := newTestRouter(t, defaultServerConfig())

	ts.protection.EXPECT().Reveal(gomock.Any(), models.RevealRequest{Text: "qrk1.1000.a.b.c", Passphrase: "long passphrase"}).
		Return([]byte{0x00, 'h', 'i'}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/reveal", strings.NewReader(`{"text":"qrk1.1000.a.b.c","passphrase":"long passphrase"}`))
	rec := serve(router, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/octet-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	assert.Equal(t, []byte{0x00, 'h', 'i'}, rec.Body.Bytes())
}

func TestReveal_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "invalid json", body: `{"text":`, wantStatus: http.StatusBadRequest},
		{name: "decryption failed", body: `{"text":"x","passphrase":"y"}`, err: crypto.ErrDecryptionFailed, wantStatus: http.StatusUnprocessableEntity},
		{name: "blob gone", body: `{"text":"x","passphrase":"y"}`, err: service.ErrNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, ts := newTestRouter(t, defaultServerConfig())
			if tt.err != nil {
				ts.protection.EXPECT().Reveal(gomock.Any(), gomock.Any()).Return(nil, tt.err)
			}

			rec := serve(router, httptest.NewRequest(http.MethodPost, "/api/reveal", strings.NewReader(tt.body)))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

// ─────────────────────────────────────────────
// blob
// ─────────────────────────────────────────────

func TestGetBlob(t *testing.T) {
	router, ts := newTestRouter(t, defaultServerConfig())

	ts.protection.EXPECT().FetchBlob(gomock.Any(), "abc").Return([]byte("qrk1.1000.a.b.c"), nil)
	rec := serve(router, httptest.NewRequest(http.MethodGet, "/b/abc", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "qrk1.1000.a.b.c", readBody(t, rec))

	ts.protection.EXPECT().FetchBlob(gomock.Any(), "missing").Return(nil, service.ErrNotFound)
	rec = serve(router, httptest.NewRequest(http.MethodGet, "/b/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
