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

// classificationRepository is the PostgreSQL-backed implementation of
// [ClassificationRepository]. It executes all classification CRUD operations
// against the "classifications" table.
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that all database interactions are traced with
// structured fields (classification_id, image_id, user_id).
type classificationRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewClassificationRepository constructs a [ClassificationRepository] backed
// by the provided database connection and logger.
func NewClassificationRepository(db *DB, logger *logger.Logger) ClassificationRepository {
	logger.Debug().Msg("creating classification repository")
	return &classificationRepository{
		db:     db,
		logger: logger,
	}
}

// CreateClassification persists a new classification record and returns the
// fully populated [models.Classification] with server-assigned fields
// (ClassificationID, CreatedAt, UpdatedAt).
//
// Error handling:
//   - PostgreSQL foreign_key_violation (23503) → [ErrImageNotFound]: the
//     referenced image was deleted between validation and insert.
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Scan failure → returned directly.
func (r *classificationRepository) CreateClassification(ctx context.Context, classification models.Classification) (models.Classification, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createClassification, classification.UserID, classification.ImageID, classification.Stage, classification.Observations)

	// create classification record in db
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*classificationRepository.CreateClassification").Msg("error: row is nil")

		switch postgresError(err) {
		case pgerrcode.ForeignKeyViolation:
			return models.Classification{}, ErrImageNotFound
		default:
			return models.Classification{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	// scan saved classification from db
	if err := row.Scan(&classification.ClassificationID, &classification.UserID, &classification.ImageID, &classification.Stage, &classification.Observations, &classification.CreatedAt, &classification.UpdatedAt); err != nil {
		log.Err(err).Str("func", "*classificationRepository.CreateClassification").Msg("error: scanning error")

		if postgresError(err) == pgerrcode.ForeignKeyViolation {
			return models.Classification{}, ErrImageNotFound
		}
		return models.Classification{}, err
	}

	return classification, nil
}

// FindClassificationByID retrieves a classification record by its primary key.
//
// Error handling:
//   - No matching row ([sql.ErrNoRows]) → [ErrClassificationNotFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *classificationRepository) FindClassificationByID(ctx context.Context, classificationID int64) (models.Classification, error) {
	log := logger.FromContext(ctx)

	var found models.Classification
	row := r.db.QueryRowContext(ctx, findClassificationByID, classificationID)

	// find classification by id
	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*classificationRepository.FindClassificationByID").Msg("error: row is nil")
		return models.Classification{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	// scan found classification from db
	if err := row.Scan(&found.ClassificationID, &found.UserID, &found.ImageID, &found.Stage, &found.Observations, &found.CreatedAt, &found.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Classification{}, ErrClassificationNotFound
		}

		log.Err(err).Str("func", "*classificationRepository.FindClassificationByID").Msg("error: scanning error")
		return models.Classification{}, err
	}

	return found, nil
}

// UpdateClassification applies a partial update to a classification record
// and returns its post-update state.
//
// The UPDATE query is built dynamically via [buildUpdateClassificationQuery]
// so that only the provided fields are touched; updated_at is always
// stamped.
//
// Error handling:
//   - Update with no field changes → [ErrNothingToUpdate].
//   - Target row does not exist → [ErrClassificationNotFound].
func (r *classificationRepository) UpdateClassification(ctx context.Context, update models.ClassificationUpdate) (models.Classification, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateClassificationQuery(update)
	if err != nil {
		if errors.Is(err, ErrNothingToUpdate) {
			log.Warn().
				Str("func", "*classificationRepository.UpdateClassification").
				Int64("classification_id", update.ClassificationID).
				Msg("no fields to update")
			return models.Classification{}, err
		}

		log.Err(err).
			Str("func", "*classificationRepository.UpdateClassification").
			Int64("classification_id", update.ClassificationID).
			Msg("failed to build update query")
		return models.Classification{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var updated models.Classification
	row := r.db.QueryRowContext(ctx, query, args...)

	if rowErr := row.Err(); rowErr != nil {
		log.Err(rowErr).
			Str("func", "*classificationRepository.UpdateClassification").
			Int64("classification_id", update.ClassificationID).
			Msg("failed to execute update query")
		return models.Classification{}, fmt.Errorf("%w: %w", ErrExecutingQuery, rowErr)
	}

	if scanErr := row.Scan(&updated.ClassificationID, &updated.UserID, &updated.ImageID, &updated.Stage, &updated.Observations, &updated.CreatedAt, &updated.UpdatedAt); scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return models.Classification{}, ErrClassificationNotFound
		}

		log.Err(scanErr).
			Str("func", "*classificationRepository.UpdateClassification").
			Int64("classification_id", update.ClassificationID).
			Msg("error: scanning error")
		return models.Classification{}, scanErr
	}

	return updated, nil
}

// DeleteClassification removes a classification record by its primary key.
// Deleting a record that does not exist returns
// [ErrClassificationNotFound].
func (r *classificationRepository) DeleteClassification(ctx context.Context, classificationID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteClassification, classificationID)
	if err != nil {
		log.Err(err).
			Str("func", "*classificationRepository.DeleteClassification").
			Int64("classification_id", classificationID).
			Msg("failed to execute delete query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "*classificationRepository.DeleteClassification").
			Int64("classification_id", classificationID).
			Msg("failed to read affected rows count")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if affected == 0 {
		log.Warn().
			Str("func", "*classificationRepository.DeleteClassification").
			Int64("classification_id", classificationID).
			Msg("record not found")
		return ErrClassificationNotFound
	}

	return nil
}

// ListClassifications retrieves classification records matching the filter,
// newest first, together with the total count of matching rows before
// pagination.
//
// The listing and its count companion are built dynamically via
// [buildListClassificationsQuery] and [buildCountClassificationsQuery] so
// that both apply identical predicates.
func (r *classificationRepository) ListClassifications(ctx context.Context, filter models.ClassificationFilter) ([]models.Classification, int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListClassificationsQuery(filter).ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "*classificationRepository.ListClassifications").
			Msg("failed to build classification listing query")
		return nil, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, queryErr := r.db.QueryContext(ctx, query, args...)
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", "*classificationRepository.ListClassifications").
			Int64("user_id", filter.UserID).
			Int64("image_id", filter.ImageID).
			Msg("failed to execute query for listing classifications")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
	}
	defer rows.Close()

	classifications := make([]models.Classification, 0, 50)

	for rows.Next() {
		var classification models.Classification

		scanErr := rows.Scan(
			&classification.ClassificationID,
			&classification.UserID,
			&classification.ImageID,
			&classification.Stage,
			&classification.Observations,
			&classification.CreatedAt,
			&classification.UpdatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "*classificationRepository.ListClassifications").
				Msg("failed to scan classification row")
			return nil, 0, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		classifications = append(classifications, classification)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "*classificationRepository.ListClassifications").
			Msg("error occurred during rows iteration")
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	total, err := r.countClassifications(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return classifications, total, nil
}

// countClassifications computes the total number of classification records
// matching the filter regardless of pagination.
func (r *classificationRepository) countClassifications(ctx context.Context, filter models.ClassificationFilter) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCountClassificationsQuery(filter).ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "*classificationRepository.countClassifications").
			Msg("failed to build classification count query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int64
	if scanErr := r.db.QueryRowContext(ctx, query, args...).Scan(&total); scanErr != nil {
		log.Err(scanErr).
			Str("func", "*classificationRepository.countClassifications").
			Msg("failed to scan classification count")
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
	}

	return total, nil
}
