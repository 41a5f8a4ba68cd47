package store

import (
	"context"

	"github.com/PedroVerardo/skinone-Upload-Classification/models"
)

// UserRepository persists and looks up user accounts.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	TouchLastLogin(ctx context.Context, userID int64) error
	ListUsers(ctx context.Context) ([]models.User, error)
}

// ImageRepository persists content-addressed image metadata. CreateImage
// surfaces a unique violation on file_hash as [ErrHashAlreadyExists] so the
// caller can resolve the concurrent-upload race into a dedup hit.
type ImageRepository interface {
	CreateImage(ctx context.Context, image models.Image) (models.Image, error)
	FindImageByHash(ctx context.Context, fileHash string) (models.Image, error)
	FindImageByID(ctx context.Context, imageID int64) (models.Image, error)
	ListImages(ctx context.Context, filter models.ImageFilter) ([]models.Image, int64, error)
}

// ClassificationRepository persists classification records.
type ClassificationRepository interface {
	CreateClassification(ctx context.Context, classification models.Classification) (models.Classification, error)
	FindClassificationByID(ctx context.Context, classificationID int64) (models.Classification, error)
	UpdateClassification(ctx context.Context, update models.ClassificationUpdate) (models.Classification, error)
	DeleteClassification(ctx context.Context, classificationID int64) error
	ListClassifications(ctx context.Context, filter models.ClassificationFilter) ([]models.Classification, int64, error)
}

// MetricsRepository computes read-only aggregate counts for administrative
// reporting.
type MetricsRepository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountImages(ctx context.Context) (int64, error)
	CountClassifications(ctx context.Context) (int64, error)
	CountClassificationsByStage(ctx context.Context) (map[string]int64, error)
	CountUsersBySpecialty(ctx context.Context) (map[string]int64, error)
}

// ImageFileStorage is the blob sink for uploaded image bytes. Files are named
// by content hash, so a path is written at most once; saving the same name
// again is a no-op.
type ImageFileStorage interface {
	// Save writes data under fileName inside the images directory and
	// returns the stored path relative to the media root. If the file
	// already exists the write is skipped and the same path is returned.
	Save(fileName string, data []byte) (string, error)

	// Exists reports whether a file with the given name is present.
	Exists(fileName string) bool

	// Remove deletes the file with the given name. Removing a missing file
	// is not an error.
	Remove(fileName string) error
}

// ErrorClassificator maps low-level database errors to a retry decision.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
