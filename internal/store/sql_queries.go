package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/PedroVerardo/skinone-Upload-Classification/models"
)

const (
	createUser = `INSERT INTO users (email, password_hash, name, coren, specialty, institution, is_staff, is_active)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING user_id, email, password_hash, name, coren, specialty, institution, is_staff, is_active, created_at, last_login;`

	findUserByEmail = `SELECT user_id, email, password_hash, name, coren, specialty, institution, is_staff, is_active, created_at, last_login
    FROM users
    WHERE email = $1;`

	findUserByID = `SELECT user_id, email, password_hash, name, coren, specialty, institution, is_staff, is_active, created_at, last_login
    FROM users
    WHERE user_id = $1;`

	touchLastLogin = `UPDATE users SET last_login = NOW() WHERE user_id = $1;`

	listUsers = `SELECT user_id, email, password_hash, name, coren, specialty, institution, is_staff, is_active, created_at, last_login
    FROM users
    ORDER BY created_at DESC;`

	createImage = `INSERT INTO images (file_hash, file_path, original_filename, description, file_size, uploaded_by)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING image_id, file_hash, file_path, original_filename, description, file_size, uploaded_at, uploaded_by;`

	findImageByHash = `SELECT image_id, file_hash, file_path, original_filename, description, file_size, uploaded_at, uploaded_by
    FROM images
    WHERE file_hash = $1;`

	findImageByID = `SELECT image_id, file_hash, file_path, original_filename, description, file_size, uploaded_at, uploaded_by
    FROM images
    WHERE image_id = $1;`

	createClassification = `INSERT INTO classifications (user_id, image_id, stage, observations)
    VALUES ($1, $2, $3, $4)
    RETURNING classification_id, user_id, image_id, stage, observations, created_at, updated_at;`

	findClassificationByID = `SELECT classification_id, user_id, image_id, stage, observations, created_at, updated_at
    FROM classifications
    WHERE classification_id = $1;`

	deleteClassification = `DELETE FROM classifications WHERE classification_id = $1;`
)

// psql is the shared squirrel statement builder configured for PostgreSQL
// ($N) placeholders. All dynamic (filtered) queries are built through it.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildListImagesQuery builds the filtered, newest-first image listing query.
func buildListImagesQuery(filter models.ImageFilter) sq.SelectBuilder {
	query := psql.
		Select("image_id", "file_hash", "file_path", "original_filename", "description", "file_size", "uploaded_at", "uploaded_by").
		From("images").
		OrderBy("uploaded_at DESC", "image_id DESC")

	if filter.UploadedBy != 0 {
		query = query.Where(sq.Eq{"uploaded_by": filter.UploadedBy})
	}
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	return query
}

// buildCountImagesQuery builds the total-count companion of the image listing.
func buildCountImagesQuery(filter models.ImageFilter) sq.SelectBuilder {
	query := psql.Select("COUNT(*)").From("images")

	if filter.UploadedBy != 0 {
		query = query.Where(sq.Eq{"uploaded_by": filter.UploadedBy})
	}

	return query
}

// classificationConditions translates a filter into squirrel predicates
// shared by the listing query and its count companion.
func classificationConditions(filter models.ClassificationFilter) []sq.Sqlizer {
	var conditions []sq.Sqlizer

	if filter.ImageID != 0 {
		conditions = append(conditions, sq.Eq{"image_id": filter.ImageID})
	}
	if filter.Stage != "" {
		conditions = append(conditions, sq.Eq{"stage": filter.Stage})
	}
	if filter.UserID != 0 {
		conditions = append(conditions, sq.Eq{"user_id": filter.UserID})
	}

	return conditions
}

// buildListClassificationsQuery builds the filtered, newest-first
// classification listing query with pagination.
func buildListClassificationsQuery(filter models.ClassificationFilter) sq.SelectBuilder {
	query := psql.
		Select("classification_id", "user_id", "image_id", "stage", "observations", "created_at", "updated_at").
		From("classifications").
		OrderBy("created_at DESC", "classification_id DESC")

	for _, condition := range classificationConditions(filter) {
		query = query.Where(condition)
	}

	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset()))
	}

	return query
}

// buildCountClassificationsQuery builds the total-count companion of the
// classification listing.
func buildCountClassificationsQuery(filter models.ClassificationFilter) sq.SelectBuilder {
	query := psql.Select("COUNT(*)").From("classifications")

	for _, condition := range classificationConditions(filter) {
		query = query.Where(condition)
	}

	return query
}

// buildUpdateClassificationQuery builds a partial UPDATE for a
// classification record. Only non-nil fields of the update are included in
// the SET clause; updated_at is always stamped. Returns
// [ErrNothingToUpdate] when the update carries no field changes.
func buildUpdateClassificationQuery(update models.ClassificationUpdate) (string, []interface{}, error) {
	query := psql.Update("classifications")

	changes := 0
	if update.Stage != nil {
		query = query.Set("stage", *update.Stage)
		changes++
	}
	if update.Observations != nil {
		query = query.Set("observations", *update.Observations)
		changes++
	}

	if changes == 0 {
		return "", nil, ErrNothingToUpdate
	}

	query = query.
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"classification_id": update.ClassificationID}).
		Suffix("RETURNING classification_id, user_id, image_id, stage, observations, created_at, updated_at")

	return query.ToSql()
}

// buildCountByStageQuery builds the classifications-per-stage group-by.
func buildCountByStageQuery() sq.SelectBuilder {
	return psql.
		Select("stage", "COUNT(*)").
		From("classifications").
		GroupBy("stage").
		OrderBy("stage")
}

// buildCountBySpecialtyQuery builds the users-per-specialty group-by,
// skipping users without a specialty.
func buildCountBySpecialtyQuery() sq.SelectBuilder {
	return psql.
		Select("specialty", "COUNT(*)").
		From("users").
		Where(sq.NotEq{"specialty": ""}).
		GroupBy("specialty").
		OrderBy("specialty")
}
