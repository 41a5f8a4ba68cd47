package service

import (
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/config"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/logger"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/store"
	"github.com/PedroVerardo/skinone-Upload-Classification/models"
)

// Services aggregates every application service behind its interface.
type Services struct {
	AuthService           AuthService
	ImageService          ImageService
	ClassificationService ClassificationService
	MetricsService        MetricsService
}

// NewServices wires every service to its storage backends. The stage set is
// parsed once at startup and shared by all consumers.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, stages *models.StageSet, logger *logger.Logger) *Services {
	return &Services{
		AuthService:           NewAuthService(storages.UserRepository, cfg.App, logger),
		ImageService:          NewImageService(storages.ImageRepository, storages.ImageFileStorage, cfg.App, logger),
		ClassificationService: NewClassificationService(storages.ClassificationRepository, storages.ImageRepository, stages, logger),
		MetricsService:        NewMetricsService(storages.MetricsRepository, storages.UserRepository, logger),
	}
}
