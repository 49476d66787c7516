package adapter

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/go-qr-keeper/internal/config"
	"github.com/MKhiriev/go-qr-keeper/internal/logger"
	"github.com/MKhiriev/go-qr-keeper/internal/utils"
	"github.com/MKhiriev/go-qr-keeper/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter] bound to cfg.ServerURL. The token from cfg, if any, is
// attached to every request.
//
// Returns an error if cfg.ServerURL is empty or cannot be parsed as a
// valid URL.
func NewHTTPServerAdapter(cfg config.ClientConfig, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}

	a := &httpServerAdapter{
		client: utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		logger: logger,
	}
	a.SetToken(cfg.Token)

	return a, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Version implements [ServerAdapter] via GET /api/version.
func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.request(ctx).Get("/api/version")
	if err != nil {
		return "", fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

// Protect implements [ServerAdapter]. A payload with a filename is uploaded
// as a multipart file; anything else is sent as the text form field.
func (h *httpServerAdapter) Protect(ctx context.Context, req models.ProtectRequest) (models.ProtectResult, error) {
	var result models.ProtectResult

	r := h.request(ctx).SetResult(&result)
	if req.Filename != "" {
		r.SetFileReader("file", req.Filename, bytes.NewReader(req.Data)).
			SetMultipartFormData(map[string]string{
				"passphrase": req.Passphrase,
				"filename":   req.Filename,
			})
	} else {
		r.SetFormData(map[string]string{
			"passphrase": req.Passphrase,
			"text":       string(req.Data),
		})
	}

	resp, err := r.Post("/api/protect")
	if err != nil {
		return models.ProtectResult{}, fmt.Errorf("protect request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ProtectResult{}, err
	}

	h.logger.Debug().
		Str("mode", string(result.Mode)).
		Int("envelope_size", result.EnvelopeSize).
		Msg("artifact created")

	return result, nil
}

// Reveal implements [ServerAdapter] via POST /api/reveal. The response body
// is the raw plaintext.
func (h *httpServerAdapter) Reveal(ctx context.Context, req models.RevealRequest) ([]byte, error) {
	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/api/reveal")
	if err != nil {
		return nil, fmt.Errorf("reveal request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return resp.Body(), nil
}

// Shorten implements [ServerAdapter] via POST /api/links.
func (h *httpServerAdapter) Shorten(ctx context.Context, req models.ShortenRequest) (models.ShortenResponse, error) {
	var result models.ShortenResponse

	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&result).
		Post("/api/links")
	if err != nil {
		return models.ShortenResponse{}, fmt.Errorf("shorten request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ShortenResponse{}, err
	}

	return result, nil
}

// ListLinks implements [ServerAdapter]. Non-positive limit and negative
// offset are left to the server defaults.
func (h *httpServerAdapter) ListLinks(ctx context.Context, limit, offset int) (models.ShortLinkPage, error) {
	var page models.ShortLinkPage

	r := h.request(ctx).SetResult(&page)
	if limit > 0 {
		r.SetQueryParam("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		r.SetQueryParam("offset", strconv.Itoa(offset))
	}

	resp, err := r.Get("/api/links")
	if err != nil {
		return models.ShortLinkPage{}, fmt.Errorf("list links request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ShortLinkPage{}, err
	}

	return page, nil
}

func (h *httpServerAdapter) GetLink(ctx context.Context, id int64) (models.ShortLink, error) {
	var link models.ShortLink

	resp, err := h.request(ctx).
		SetResult(&link).
		Get(linkPath(id))
	if err != nil {
		return models.ShortLink{}, fmt.Errorf("get link request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ShortLink{}, err
	}

	return link, nil
}

func (h *httpServerAdapter) UpdateLink(ctx context.Context, id int64, update LinkUpdate) (models.ShortLink, error) {
	var link models.ShortLink

	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(update).
		SetResult(&link).
		Patch(linkPath(id))
	if err != nil {
		return models.ShortLink{}, fmt.Errorf("update link request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ShortLink{}, err
	}

	return link, nil
}

func (h *httpServerAdapter) ToggleLink(ctx context.Context, id int64) (models.ToggleResponse, error) {
	var toggled models.ToggleResponse

	resp, err := h.request(ctx).
		SetResult(&toggled).
		Patch(linkPath(id) + "/toggle")
	if err != nil {
		return models.ToggleResponse{}, fmt.Errorf("toggle link request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ToggleResponse{}, err
	}

	return toggled, nil
}

func (h *httpServerAdapter) DeleteLink(ctx context.Context, id int64) error {
	resp, err := h.request(ctx).Delete(linkPath(id))
	if err != nil {
		return fmt.Errorf("delete link request: %w", err)
	}

	return mapHTTPError(resp)
}

// request attaches the bearer token when one is set.
func (h *httpServerAdapter) request(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

func linkPath(id int64) string {
	return "/api/links/" + strconv.FormatInt(id, 10)
}
