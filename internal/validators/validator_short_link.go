package validators

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/MKhiriev/go-qr-keeper/models"
)

const (
	FieldURL         = "url"
	FieldAlias       = "alias"
	FieldExpiresAt   = "expires_at"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldTags        = "tags"
	FieldOwnerID     = "owner_id"
	FieldUpdate      = "update"
)

const (
	MaxURLLength         = 2048
	MinAliasLength       = 3
	MaxAliasLength       = 50
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
	MaxTags              = 20
	MaxTagLength         = 50
)

var aliasPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ReservedAliases collide with top-level routes and cannot be claimed.
var ReservedAliases = []string{"api", "b", "s", "health"}

type ShortLinkValidator struct {
	now func() time.Time
}

func NewShortLinkValidator() Validator {
	return &ShortLinkValidator{now: time.Now}
}

func (v *ShortLinkValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.ShortenRequest:
		return v.validateShortenRequest(ctx, value, fields...)
	case *models.ShortenRequest:
		return v.validateShortenRequest(ctx, *value, fields...)

	case models.ShortLinkUpdate:
		return v.validateShortLinkUpdate(ctx, value, fields...)
	case *models.ShortLinkUpdate:
		return v.validateShortLinkUpdate(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *ShortLinkValidator) validateShortenRequest(_ context.Context, req models.ShortenRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldURL, FieldAlias, FieldExpiresAt, FieldTitle, FieldDescription, FieldTags}
	}

	for _, f := range fields {
		switch f {
		case FieldURL:
			if err := ValidateURL(req.OriginalURL); err != nil {
				return err
			}
		case FieldAlias:
			// empty alias means "generate one"
			if req.CustomAlias == "" {
				continue
			}
			if err := ValidateAlias(req.CustomAlias); err != nil {
				return err
			}
		case FieldExpiresAt:
			if req.ExpiresAt != nil && !req.ExpiresAt.After(v.now()) {
				return ErrInvalidExpiry
			}
		case FieldTitle:
			if utf8.RuneCountInString(req.Title) > MaxTitleLength {
				return ErrInvalidTitle
			}
		case FieldDescription:
			if utf8.RuneCountInString(req.Description) > MaxDescriptionLength {
				return ErrInvalidDescription
			}
		case FieldTags:
			if err := validateTags(req.Tags); err != nil {
				return err
			}
		case FieldOwnerID:
			if req.OwnerID == "" {
				return ErrInvalidOwnerID
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}

func (v *ShortLinkValidator) validateShortLinkUpdate(_ context.Context, update models.ShortLinkUpdate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldOwnerID, FieldUpdate, FieldTitle, FieldDescription, FieldTags}
	}

	for _, f := range fields {
		switch f {
		case FieldOwnerID:
			if update.OwnerID == "" {
				return ErrInvalidOwnerID
			}
		case FieldUpdate:
			if update.IsActive == nil && update.Title == nil && update.Description == nil && update.Tags == nil {
				return ErrNoFieldsToUpdate
			}
		case FieldTitle:
			if update.Title != nil && utf8.RuneCountInString(*update.Title) > MaxTitleLength {
				return ErrInvalidTitle
			}
		case FieldDescription:
			if update.Description != nil && utf8.RuneCountInString(*update.Description) > MaxDescriptionLength {
				return ErrInvalidDescription
			}
		case FieldTags:
			if err := validateTags(update.Tags); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, f)
		}
	}

	return nil
}

// ValidateURL accepts absolute http and https URLs with a host, up to
// [MaxURLLength] characters.
func ValidateURL(raw string) error {
	if raw == "" || len(raw) > MaxURLLength || strings.TrimSpace(raw) != raw {
		return ErrInvalidURL
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidURL
	}
	if u.Hostname() == "" {
		return ErrInvalidURL
	}

	return nil
}

// ValidateAlias checks a caller-chosen short code.
func ValidateAlias(alias string) error {
	if len(alias) < MinAliasLength || len(alias) > MaxAliasLength {
		return fmt.Errorf("%w: length must be between %d and %d", ErrInvalidAlias, MinAliasLength, MaxAliasLength)
	}
	if !aliasPattern.MatchString(alias) {
		return fmt.Errorf("%w: only letters, digits, '_' and '-' are allowed", ErrInvalidAlias)
	}
	if slices.Contains(ReservedAliases, strings.ToLower(alias)) {
		return fmt.Errorf("%w: %q is reserved", ErrInvalidAlias, alias)
	}
	return nil
}

// NormalizeTags trims tags, drops empty ones and removes duplicates while
// keeping first-occurrence order.
func NormalizeTags(tags []string) []string {
	if tags == nil {
		return nil
	}

	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

func validateTags(tags []string) error {
	normalized := NormalizeTags(tags)
	if len(normalized) > MaxTags {
		return fmt.Errorf("%w: at most %d tags", ErrInvalidTags, MaxTags)
	}
	for _, tag := range normalized {
		if utf8.RuneCountInString(tag) > MaxTagLength {
			return fmt.Errorf("%w: tag %q is longer than %d characters", ErrInvalidTags, tag, MaxTagLength)
		}
	}
	return nil
}
