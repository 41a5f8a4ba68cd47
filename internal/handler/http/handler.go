package http

import (
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/config"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/logger"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/service"
)

type Handler struct {
	services *service.Services

	// maxUploadBytes bounds multipart memory use and single file size.
	maxUploadBytes int64

	// maxBatchSize bounds the number of files in one batch request.
	maxBatchSize int

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		maxUploadBytes: cfg.MaxUploadBytes,
		maxBatchSize:   cfg.MaxBatchSize,
		logger:         logger,
	}
}
