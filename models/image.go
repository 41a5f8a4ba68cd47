package models

import "time"

// Image is a content-addressed reference to an uploaded image file.
//
// The raw bytes live on disk under the media root at FilePath; the database
// row holds only metadata. FileHash is the SHA-256 digest of the exact
// uploaded bytes and is unique across all rows: the store never holds two
// records for the same byte sequence.
type Image struct {
	// ImageID is the internal unique identifier of the image record.
	ImageID int64 `json:"id"`

	// FileHash is the hex-encoded SHA-256 digest of the raw file bytes.
	FileHash string `json:"file_hash"`

	// FilePath is the storage path relative to the media root,
	// e.g. "images/<hash>.jpg".
	FilePath string `json:"file_path"`

	// OriginalFilename is the client-supplied file name, if any.
	OriginalFilename string `json:"original_filename,omitempty"`

	// Description is an optional free-text description supplied at upload.
	Description string `json:"description,omitempty"`

	// FileSize is the size of the stored file in bytes.
	FileSize int64 `json:"file_size"`

	// UploadedAt is the timestamp of the first upload of this content.
	UploadedAt time.Time `json:"uploaded_at"`

	// UploadedBy is the ID of the owning user. Nil when the owner was
	// deleted: removing a user keeps their images, reference cleared.
	UploadedBy *int64 `json:"uploaded_by,omitempty"`
}

// TableName returns the name of the database table
// associated with the Image model.
func (i Image) TableName() string {
	return "images"
}
