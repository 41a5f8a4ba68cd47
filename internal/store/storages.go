package store

import (
	"context"
	"fmt"

	"github.com/PedroVerardo/skinone-Upload-Classification/internal/config"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/logger"
	"github.com/PedroVerardo/skinone-Upload-Classification/migrations"
)

// Storages aggregates every persistence backend used by the application:
// the PostgreSQL-backed repositories and the filesystem image store.
type Storages struct {
	UserRepository           UserRepository
	ImageRepository          ImageRepository
	ClassificationRepository ClassificationRepository
	MetricsRepository        MetricsRepository
	ImageFileStorage         ImageFileStorage

	db *DB
}

// NewStorages connects to PostgreSQL, applies pending schema migrations,
// prepares the media directory, and wires up all repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, err
	}

	if migrateErr := migrations.Migrate(db.DB); migrateErr != nil {
		log.Err(migrateErr).Str("func", "NewStorages").Msg("failed to apply database migrations")
		return nil, fmt.Errorf("failed to apply database migrations: %w", migrateErr)
	}

	fileStorage, err := NewImageFileStorage(cfg.Media, log)
	if err != nil {
		return nil, err
	}

	return &Storages{
		UserRepository:           NewUserRepository(db, log),
		ImageRepository:          NewImageRepository(db, log),
		ClassificationRepository: NewClassificationRepository(db, log),
		MetricsRepository:        NewMetricsRepository(db, log),
		ImageFileStorage:         fileStorage,
		db:                       db,
	}, nil
}

// Close releases the underlying database connection pool.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
