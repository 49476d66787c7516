// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-qr-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestValidator() *ShortLinkValidator {
	return &ShortLinkValidator{now: func() time.Time { return fixedNow }}
}

func ptrTime(t time.Time) *time.Time { return &t }
func ptrStr(s string) *string        { return &s }
func ptrBool(b bool) *bool           { return &b }

// ---------------------------------------------------------------------------
// TestNewShortLinkValidator
// ---------------------------------------------------------------------------

func TestNewShortLinkValidator(t *testing.T) {
	v := NewShortLinkValidator()
	require.NotNil(t, v)
	_, ok := v.(*ShortLinkValidator)
	assert.True(t, ok)
}

func TestValidate_UnsupportedType(t *testing.T) {
	err := newTestValidator().Validate(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestValidate_UnknownField(t *testing.T) {
	err := newTestValidator().Validate(context.Background(), models.ShortenRequest{}, "nope")
	assert.ErrorIs(t, err, ErrUnknownField)
}

// ---------------------------------------------------------------------------
// URL
// ---------------------------------------------------------------------------

func TestValidateURL(t *testing.T) {
	valid := []string{
		"https://example.com",
		"http://example.com/path?q=1#frag",
		"https://sub.example.co.uk:8443/a/b",
		"http://127.0.0.1:8080/",
	}
	for _, u := range valid {
		assert.NoError(t, ValidateURL(u), u)
	}

	invalid := []string{
		"",
		"example.com",
		"/relative/path",
		"ftp://example.com/file",
		"javascript:alert(1)",
		"https://",
		"http:///path",
		" https://example.com",
		"https://example.com/" + strings.Repeat("a", MaxURLLength),
	}
	for _, u := range invalid {
		assert.ErrorIs(t, ValidateURL(u), ErrInvalidURL, u)
	}
}

// ---------------------------------------------------------------------------
// Alias
// ---------------------------------------------------------------------------

func TestValidateAlias(t *testing.T) {
	tests := []struct {
		alias string
		ok    bool
	}{
		{alias: "ab", ok: false},
		{alias: "abc", ok: true},
		{alias: "My Alias!", ok: false},
		{alias: "ok_alias-1", ok: true},
		{alias: strings.Repeat("a", MaxAliasLength), ok: true},
		{alias: strings.Repeat("a", MaxAliasLength+1), ok: false},
		{alias: "ümlaut", ok: false},
		{alias: "api", ok: false},
		{alias: "HEALTH", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			err := ValidateAlias(tt.alias)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidAlias)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// ShortenRequest
// ---------------------------------------------------------------------------

func TestValidateShortenRequest(t *testing.T) {
	base := models.ShortenRequest{OriginalURL: "https://example.com"}

	tests := []struct {
		name    string
		mutate  func(*models.ShortenRequest)
		wantErr error
	}{
		{name: "minimal", mutate: func(*models.ShortenRequest) {}},
		{name: "generated alias is allowed", mutate: func(r *models.ShortenRequest) { r.CustomAlias = "" }},
		{name: "bad url", mutate: func(r *models.ShortenRequest) { r.OriginalURL = "nope" }, wantErr: ErrInvalidURL},
		{name: "bad alias", mutate: func(r *models.ShortenRequest) { r.CustomAlias = "ab" }, wantErr: ErrInvalidAlias},
		{
			name:    "expiry one second in the past",
			mutate:  func(r *models.ShortenRequest) { r.ExpiresAt = ptrTime(fixedNow.Add(-time.Second)) },
			wantErr: ErrInvalidExpiry,
		},
		{
			name:   "expiry in the future",
			mutate: func(r *models.ShortenRequest) { r.ExpiresAt = ptrTime(fixedNow.Add(time.Hour)) },
		},
		{
			name:    "title too long",
			mutate:  func(r *models.ShortenRequest) { r.Title = strings.Repeat("т", MaxTitleLength+1) },
			wantErr: ErrInvalidTitle,
		},
		{
			name:    "description too long",
			mutate:  func(r *models.ShortenRequest) { r.Description = strings.Repeat("d", MaxDescriptionLength+1) },
			wantErr: ErrInvalidDescription,
		},
		{
			name:    "too many tags",
			mutate:  func(r *models.ShortenRequest) { r.Tags = manyTags(MaxTags + 1) },
			wantErr: ErrInvalidTags,
		},
		{
			name:   "duplicate tags count once",
			mutate: func(r *models.ShortenRequest) { r.Tags = append(manyTags(MaxTags), "t0", "t1") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.mutate(&req)

			err := newTestValidator().Validate(context.Background(), &req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateShortenRequest_OwnerFieldOnDemand(t *testing.T) {
	v := newTestValidator()
	req := models.ShortenRequest{OriginalURL: "https://example.com"}

	assert.NoError(t, v.Validate(context.Background(), req))
	assert.ErrorIs(t, v.Validate(context.Background(), req, FieldOwnerID), ErrInvalidOwnerID)
}

// ---------------------------------------------------------------------------
// ShortLinkUpdate
// ---------------------------------------------------------------------------

func TestValidateShortLinkUpdate(t *testing.T) {
	v := newTestValidator()
	ctx := context.Background()

	assert.ErrorIs(t, v.Validate(ctx, models.ShortLinkUpdate{IsActive: ptrBool(true)}), ErrInvalidOwnerID)
	assert.ErrorIs(t, v.Validate(ctx, models.ShortLinkUpdate{OwnerID: "o"}), ErrNoFieldsToUpdate)
	assert.NoError(t, v.Validate(ctx, models.ShortLinkUpdate{OwnerID: "o", Title: ptrStr("new")}))
	assert.ErrorIs(t, v.Validate(ctx, &models.ShortLinkUpdate{
		OwnerID: "o", Title: ptrStr(strings.Repeat("x", MaxTitleLength+1)),
	}), ErrInvalidTitle)
}

// ---------------------------------------------------------------------------
// NormalizeTags
// ---------------------------------------------------------------------------

func TestNormalizeTags(t *testing.T) {
	assert.Nil(t, NormalizeTags(nil))
	assert.Equal(t, []string{}, NormalizeTags([]string{" ", ""}))
	assert.Equal(t, []string{"go", "qr", "Go"}, NormalizeTags([]string{"go", " qr ", "go", "Go", "qr"}))
}

func manyTags(n int) []string {
	tags := make([]string, n)
	for i := range tags {
		tags[i] = fmt.Sprintf("t%d", i)
	}
	return tags
}
