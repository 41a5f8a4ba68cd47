package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/PedroVerardo/skinone-Upload-Classification/internal/logger"
	"github.com/PedroVerardo/skinone-Upload-Classification/models"
	"github.com/jackc/pgerrcode"
)

// imageRepository is the PostgreSQL-backed implementation of
// [ImageRepository]. It persists content-addressed image metadata against
// the "images" table; the bytes themselves live in [ImageFileStorage].
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (image_id, file_hash, uploaded_by).
type imageRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewImageRepository constructs an [ImageRepository] backed by the provided
// database connection and logger.
func NewImageRepository(db *DB, logger *logger.Logger) ImageRepository {
	logger.Debug().Msg("creating image repository")
	return &imageRepository{
		db:     db,
		logger: logger,
	}
}

// CreateImage persists a new image record and returns the fully populated
// [models.Image] with server-assigned fields (ImageID, UploadedAt).
//
// The images table carries a unique constraint on file_hash. Two uploads of
// the same content may race past the pre-insert hash lookup; the loser of
// that race hits unique_violation here and is reported as
// [ErrHashAlreadyExists] so the service can re-fetch the winning record and
// resolve the race into a dedup hit.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrHashAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Scan failure → returned directly.
func (r *imageRepository) CreateImage(ctx context.Context, image models.Image) (models.Image, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createImage, image.FileHash, image.FilePath, image.OriginalFilename, image.Description, image.FileSize, image.UploadedBy)

	// create image record in db
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*imageRepository.CreateImage").Msg("error: row is nil")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Image{}, ErrHashAlreadyExists
		default:
			return models.Image{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	// scan saved image from db
	if err := row.Scan(&image.ImageID, &image.FileHash, &image.FilePath, &image.OriginalFilename, &image.Description, &image.FileSize, &image.UploadedAt, &image.UploadedBy); err != nil {
		log.Err(err).Str("func", "*imageRepository.CreateImage").Msg("error: scanning error")

		if postgresError(err) == pgerrcode.UniqueViolation {
			return models.Image{}, ErrHashAlreadyExists
		}
		return models.Image{}, err
	}

	return image, nil
}

// FindImageByHash retrieves the image record whose file_hash matches the
// given lowercase hex SHA-256 digest.
//
// Error handling:
//   - No matching row ([sql.ErrNoRows]) → [ErrImageNotFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *imageRepository) FindImageByHash(ctx context.Context, fileHash string) (models.Image, error) {
	log := logger.FromContext(ctx)

	var foundImage models.Image
	row := r.db.QueryRowContext(ctx, findImageByHash, fileHash)

	// find image by content hash
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*imageRepository.FindImageByHash").Msg("error: row is nil")
		return models.Image{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	// scan found image from db
	if err := row.Scan(&foundImage.ImageID, &foundImage.FileHash, &foundImage.FilePath, &foundImage.OriginalFilename, &foundImage.Description, &foundImage.FileSize, &foundImage.UploadedAt, &foundImage.UploadedBy); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Image{}, ErrImageNotFound
		}

		log.Err(err).Str("func", "*imageRepository.FindImageByHash").Msg("error: scanning error")
		return models.Image{}, err
	}

	return foundImage, nil
}

// FindImageByID retrieves an image record by its primary key.
//
// Error handling mirrors [imageRepository.FindImageByHash]: a missing row is
// reported as [ErrImageNotFound].
func (r *imageRepository) FindImageByID(ctx context.Context, imageID int64) (models.Image, error) {
	log := logger.FromContext(ctx)

	var foundImage models.Image
	row := r.db.QueryRowContext(ctx, findImageByID, imageID)

	// find image by id
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*imageRepository.FindImageByID").Msg("error: row is nil")
		return models.Image{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	// scan found image from db
	if err := row.Scan(&foundImage.ImageID, &foundImage.FileHash, &foundImage.FilePath, &foundImage.OriginalFilename, &foundImage.Description, &foundImage.FileSize, &foundImage.UploadedAt, &foundImage.UploadedBy); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Image{}, ErrImageNotFound
		}

		log.Err(err).Str("func", "*imageRepository.FindImageByID").Msg("error: scanning error")
		return models.Image{}, err
	}

	return foundImage, nil
}

// ListImages retrieves image records matching the filter, newest first,
// together with the total count of matching rows before pagination.
//
// The listing and its count companion are built dynamically via
// [buildListImagesQuery] and [buildCountImagesQuery].
func (r *imageRepository) ListImages(ctx context.Context, filter models.ImageFilter) ([]models.Image, int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListImagesQuery(filter).ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "*imageRepository.ListImages").
			Msg("failed to build image listing query")
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, queryErr := r.db.QueryContext(ctx, query, args...)
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", "*imageRepository.ListImages").
			Int64("uploaded_by", filter.UploadedBy).
			Msg("failed to execute query for listing images")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
	}
	defer rows.Close()

	images := make([]models.Image, 0, 50)

	for rows.Next() {
		var image models.Image

		scanErr := rows.Scan(
			&image.ImageID,
			&image.FileHash,
			&image.FilePath,
			&image.OriginalFilename,
			&image.Description,
			&image.FileSize,
			&image.UploadedAt,
			&image.UploadedBy,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "*imageRepository.ListImages").
				Msg("failed to scan image row")
			return nil, 0, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		images = append(images, image)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*imageRepository.ListImages").
			Msg("error occurred during rows iteration")
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	total, err := r.countImages(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return images, total, nil
}

// countImages computes the total number of image records matching the
// filter regardless of pagination.
func (r *imageRepository) countImages(ctx context.Context, filter models.ImageFilter) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCountImagesQuery(filter).ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "*imageRepository.countImages").
			Msg("failed to build image count query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int64
	if scanErr := r.db.QueryRowContext(ctx, query, args...).Scan(&total); scanErr != nil {
		log.Err(scanErr).
			Str("func", "*imageRepository.countImages").
			Msg("failed to scan image count")
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
	}

	return total, nil
}
