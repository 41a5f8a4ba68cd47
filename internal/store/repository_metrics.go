package store

import (
	"context"
	"fmt"

	"github.com/PedroVerardo/skinone-Upload-Classification/internal/logger"
)

// metricsRepository is the PostgreSQL-backed implementation of
// [MetricsRepository]. All methods are read-only aggregate queries used by
// the administrative metrics report.
type metricsRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewMetricsRepository constructs a [MetricsRepository] backed by the
// provided database connection and logger.
func NewMetricsRepository(db *DB, logger *logger.Logger) MetricsRepository {
	logger.Debug().Msg("creating metrics repository")
	return &metricsRepository{
		db:     db,
		logger: logger,
	}
}

// CountUsers returns the total number of registered accounts.
func (r *metricsRepository) CountUsers(ctx context.Context) (int64, error) {
	return r.countTable(ctx, "users")
}

// CountImages returns the total number of stored image records.
func (r *metricsRepository) CountImages(ctx context.Context) (int64, error) {
	return r.countTable(ctx, "images")
}

// CountClassifications returns the total number of classification records.
func (r *metricsRepository) CountClassifications(ctx context.Context) (int64, error) {
	return r.countTable(ctx, "classifications")
}

// countTable executes a COUNT(*) over the named table. The table name comes
// from the fixed call sites above, never from user input.
func (r *metricsRepository) countTable(ctx context.Context, table string) (int64, error) {
	log := logger.FromContext(ctx)

	query, _, err := psql.Select("COUNT(*)").From(table).ToSql()
	if err != nil {
		log.Err(err).
			Str("func", "*metricsRepository.countTable").
			Str("table", table).
			Msg("failed to build count query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int64
	if scanErr := r.db.QueryRowContext(ctx, query).Scan(&total); scanErr != nil {
		log.Err(scanErr).
			Str("func", "*metricsRepository.countTable").
			Str("table", table).
			Msg("failed to scan count")
		return 0, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
	}

	return total, nil
}

// CountClassificationsByStage returns the number of classification records
// per stage label. Stages with no records are absent from the map.
func (r *metricsRepository) CountClassificationsByStage(ctx context.Context) (map[string]int64, error) {
	return r.groupedCount(ctx, buildCountByStageQuery(), "*metricsRepository.CountClassificationsByStage")
}

// CountUsersBySpecialty returns the number of registered accounts per
// declared specialty. Users without a specialty are excluded.
func (r *metricsRepository) CountUsersBySpecialty(ctx context.Context) (map[string]int64, error) {
	return r.groupedCount(ctx, buildCountBySpecialtyQuery(), "*metricsRepository.CountUsersBySpecialty")
}

// groupedCount executes a two-column (label, count) group-by query and
// collects the result into a map.
func (r *metricsRepository) groupedCount(ctx context.Context, builder interface {
	ToSql() (string, []interface{}, error)
}, funcName string) (map[string]int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Msg("failed to build grouped count query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, queryErr := r.db.QueryContext(ctx, query, args...)
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", funcName).
			Msg("failed to execute grouped count query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
	}
	defer rows.Close()

	counts := make(map[string]int64)

	for rows.Next() {
		var label string
		var count int64

		if scanErr := rows.Scan(&label, &count); scanErr != nil {
			log.Err(scanErr).
				Str("func", funcName).
				Msg("failed to scan grouped count row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		counts[label] = count
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", funcName).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return counts, nil
}
