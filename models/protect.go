package models

// PlacementMode tells where the encoded artifact's payload lives.
type PlacementMode string

const (
	// PlacementInline means the QR code carries the envelope itself.
	PlacementInline PlacementMode = "inline"

	// PlacementOffloaded means the envelope was written to the blob store
	// and the QR code carries a retrieval URL.
	PlacementOffloaded PlacementMode = "offloaded"
)

// BlobReference points at an envelope stored out of band.
type BlobReference struct {
	// Locator is an opaque, unguessable, URL-safe identifier.
	Locator string `json:"locator"`

	// Size is the number of stored bytes.
	Size int64 `json:"size"`
}

// ProtectRequest carries the secret to protect.
//
// Passphrase must never be logged or serialized.
type ProtectRequest struct {
	Data       []byte `json:"-"`
	Passphrase string `json:"-"`
	Filename   string `json:"filename,omitempty"`
}

// ProtectResult describes the produced artifact.
type ProtectResult struct {
	Mode PlacementMode `json:"mode"`

	// Text is the exact string encoded into the QR code: the serialized
	// envelope for inline placement or the retrieval URL when offloaded.
	Text string `json:"text"`

	// QRCode is the PNG image, base64-encoded by encoding/json.
	QRCode []byte `json:"qr_code"`

	// Blob is set only for offloaded placement.
	Blob *BlobReference `json:"blob,omitempty"`

	Filename string `json:"filename,omitempty"`

	// EnvelopeSize is the length of the serialized envelope in bytes.
	EnvelopeSize int `json:"envelope_size"`
}

// RevealRequest is the body of a decrypt call. Text is whatever was scanned
// from the QR code.
type RevealRequest struct {
	Text       string `json:"text"`
	Passphrase string `json:"passphrase"`
}
