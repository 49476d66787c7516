package placement

import "errors"

var (
	// ErrPayloadUnroutable is returned when neither the envelope itself nor
	// the locator URL of its offloaded copy fits into a single QR symbol.
	ErrPayloadUnroutable = errors.New("payload unroutable")

	// ErrForeignLocator is returned by Resolve for URLs that do not point
	// at this deployment's blob endpoint.
	ErrForeignLocator = errors.New("locator does not belong to this service")

	// ErrInvalidRouterConfig is returned by NewRouter.
	ErrInvalidRouterConfig = errors.New("invalid router config")
)
