package encoder

import "errors"

var (
	// ErrPayloadTooLarge is returned when the text exceeds the symbol capacity.
	ErrPayloadTooLarge = errors.New("payload too large for a single QR symbol")

	// ErrUnknownLevel is returned by ParseLevel for anything but L, M, Q or H.
	ErrUnknownLevel = errors.New("unknown QR recovery level")
)
