package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrGone                = errors.New("gone")
	ErrPayloadTooLarge     = errors.New("payload too large")
	ErrUnprocessable       = errors.New("unprocessable")
	ErrInternalServerError = errors.New("internal server error")
	ErrUnavailable         = errors.New("service unavailable")
)
