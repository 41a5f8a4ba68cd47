package service

import (
	"context"
	"fmt"
	"time"

	"github.com/PedroVerardo/skinone-Upload-Classification/internal/logger"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/store"
	"github.com/PedroVerardo/skinone-Upload-Classification/models"
)

// metricsService is the concrete implementation of MetricsService. It
// assembles the administrative usage report from the read-only aggregate
// repository and exposes the full user roster.
type metricsService struct {
	metricsRepository store.MetricsRepository
	userRepository    store.UserRepository
	logger            *logger.Logger
}

// NewMetricsService constructs a MetricsService wired to the given
// repositories.
func NewMetricsService(metricsRepository store.MetricsRepository, userRepository store.UserRepository, logger *logger.Logger) MetricsService {
	return &metricsService{
		metricsRepository: metricsRepository,
		userRepository:    userRepository,
		logger:            logger,
	}
}

// CollectMetrics gathers the aggregate counters into one report stamped with
// the generation time.
func (s *metricsService) CollectMetrics(ctx context.Context) (models.Metrics, error) {
	log := logger.FromContext(ctx)

	totalUsers, err := s.metricsRepository.CountUsers(ctx)
	if err != nil {
		log.Err(err).Msg("failed to count users")
		return models.Metrics{}, fmt.Errorf("failed to count users: %w", err)
	}

	totalImages, err := s.metricsRepository.CountImages(ctx)
	if err != nil {
		log.Err(err).Msg("failed to count images")
		return models.Metrics{}, fmt.Errorf("failed to count images: %w", err)
	}

	totalClassifications, err := s.metricsRepository.CountClassifications(ctx)
	if err != nil {
		log.Err(err).Msg("failed to count classifications")
		return models.Metrics{}, fmt.Errorf("failed to count classifications: %w", err)
	}

	byStage, err := s.metricsRepository.CountClassificationsByStage(ctx)
	if err != nil {
		log.Err(err).Msg("failed to group classifications by stage")
		return models.Metrics{}, fmt.Errorf("failed to group classifications by stage: %w", err)
	}

	bySpecialty, err := s.metricsRepository.CountUsersBySpecialty(ctx)
	if err != nil {
		log.Err(err).Msg("failed to group users by specialty")
		return models.Metrics{}, fmt.Errorf("failed to group users by specialty: %w", err)
	}

	return models.Metrics{
		TotalUsers:             totalUsers,
		TotalImages:            totalImages,
		TotalClassifications:   totalClassifications,
		ClassificationsByStage: byStage,
		UsersBySpecialty:       bySpecialty,
		GeneratedAt:            time.Now().UTC(),
	}, nil
}

// ListUsers returns the full account roster, newest first. Password hashes
// never leave the model's JSON boundary.
func (s *metricsService) ListUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	users, err := s.userRepository.ListUsers(ctx)
	if err != nil {
		log.Err(err).Msg("user roster listing failed")
		return nil, fmt.Errorf("user roster listing failed: %w", err)
	}

	return users, nil
}
