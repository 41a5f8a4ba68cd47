package models

// UploadPayload is one image submitted for ingestion, already reduced to raw
// bytes by the transport layer (multipart) or still base64-encoded (JSON).
// Exactly one of Data and Base64Data is expected to be set.
type UploadPayload struct {
	// Data holds the raw file bytes when the upload arrived as multipart
	// form data.
	Data []byte `json:"-"`

	// Base64Data holds the base64-encoded bytes when the upload arrived as a
	// JSON payload. A "data:<mime>;base64," data-URL prefix is permitted and
	// stripped before decoding.
	Base64Data string `json:"image_data"`

	// Filename is the client-declared file name; its extension is validated
	// against the configured allow-list.
	Filename string `json:"filename"`

	// Description is an optional free-text description of the image.
	Description string `json:"description"`
}

// Upload statuses reported per item in batch results.
const (
	UploadStatusUploaded  = "uploaded"
	UploadStatusDuplicate = "duplicate"
	UploadStatusError     = "error"
)

// UploadResult is the per-item outcome of a batch ingestion. A failed item
// never aborts its siblings; the Error field carries the reason instead.
type UploadResult struct {
	// Image is the stored record. Zero-valued when Status is "error".
	Image Image `json:"image"`

	// Status is one of the UploadStatus* constants.
	Status string `json:"status"`

	// Error is the human-readable failure reason for "error" items.
	Error string `json:"error,omitempty"`
}

// ImageFilter narrows an image listing. A zero UploadedBy means no owner
// restriction.
type ImageFilter struct {
	UploadedBy int64
	Limit      int
	Offset     int
}
