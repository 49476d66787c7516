package models

import "time"

// ShortLink represents one alias-to-URL mapping.
//
// Code is unique across all records of a store instance. ClickCount only
// grows; it is reset solely by deleting the record.
type ShortLink struct {
	// ID is assigned by the store and never changes.
	ID int64 `json:"id"`

	// OwnerID is the opaque caller identity that created the link.
	// Empty for anonymous links; anonymous links cannot be managed later.
	OwnerID string `json:"owner_id,omitempty"`

	// Code is the short alias resolved under /s/{code}.
	Code string `json:"code"`

	// IsCustomAlias reports whether Code was chosen by the caller.
	IsCustomAlias bool `json:"is_custom_alias"`

	// OriginalURL is the absolute URL the code redirects to.
	OriginalURL string `json:"original_url"`

	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags,omitempty"`

	ClickCount int64 `json:"click_count"`

	// IsActive is toggled by the owner. Disabled links fail resolution.
	IsActive bool `json:"is_active"`

	// ExpiresAt is optional. A link past its expiry fails resolution even
	// when IsActive is true.
	ExpiresAt *time.Time `json:"expires_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the ShortLink model.
func (s ShortLink) TableName() string {
	return "short_links"
}

// IsExpired reports whether the link has an expiry that lies before now.
func (s ShortLink) IsExpired(now time.Time) bool {
	return s.ExpiresAt != nil && s.ExpiresAt.Before(now)
}

// ShortenRequest carries the caller input for issuing a new short link.
type ShortenRequest struct {
	OriginalURL string     `json:"url"`
	CustomAlias string     `json:"alias,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Tags        []string   `json:"tags,omitempty"`

	// OwnerID is taken from the authenticated caller, never from the body.
	OwnerID string `json:"-"`
}

// ShortLinkPage is one page of an owner's links, newest first.
type ShortLinkPage struct {
	Links   []ShortLink `json:"links"`
	Total   int64       `json:"total"`
	Limit   int         `json:"limit"`
	Offset  int         `json:"offset"`
	HasMore bool        `json:"has_more"`
}

// ShortenResponse is returned by the links endpoint after a successful shorten.
type ShortenResponse struct {
	Link     ShortLink `json:"link"`
	ShortURL string    `json:"short_url"`

	// QRCode is the PNG rendering of ShortURL, base64-encoded by encoding/json.
	QRCode []byte `json:"qr_code,omitempty"`
}

// ToggleResponse reports the activation state after a toggle.
type ToggleResponse struct {
	ID       int64 `json:"id"`
	IsActive bool  `json:"is_active"`
}

// ShortLinkUpdate names the mutable fields of an owner's link. Nil fields
// are left unchanged.
type ShortLinkUpdate struct {
	ID      int64
	OwnerID string

	IsActive    *bool
	Title       *string
	Description *string
	Tags        []string

	UpdatedAt time.Time
}
