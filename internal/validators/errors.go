package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidURL         = errors.New("invalid url")
	ErrInvalidAlias       = errors.New("invalid alias")
	ErrInvalidExpiry      = errors.New("expiry must lie in the future")
	ErrInvalidTitle       = errors.New("title is too long")
	ErrInvalidDescription = errors.New("description is too long")
	ErrInvalidTags        = errors.New("invalid tags")
	ErrInvalidOwnerID     = errors.New("invalid owner id")
	ErrNoFieldsToUpdate   = errors.New("at least one field must be provided for update")
)
