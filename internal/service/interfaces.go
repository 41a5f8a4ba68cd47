package service

import (
	"context"

	"github.com/PedroVerardo/skinone-Upload-Classification/models"
)

type AuthService interface {
	RegisterUser(ctx context.Context, request models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, email, password string) (models.User, error)
	VerifyEmailPassword(ctx context.Context, email, password string) (models.User, error)
	GetUser(ctx context.Context, userID int64) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type ImageService interface {
	Ingest(ctx context.Context, owner models.User, payload models.UploadPayload) (models.Image, bool, error)
	IngestBatch(ctx context.Context, owner models.User, payloads []models.UploadPayload) ([]models.UploadResult, error)
	GetImage(ctx context.Context, imageID int64) (models.Image, error)
	ListImages(ctx context.Context, filter models.ImageFilter) ([]models.Image, int64, error)
}

type ClassificationService interface {
	Classify(ctx context.Context, userID, imageID int64, stage, observations string) (models.Classification, error)
	GetClassification(ctx context.Context, classificationID int64) (models.Classification, error)
	UpdateClassification(ctx context.Context, actor models.User, classificationID int64, request models.UpdateClassificationRequest) (models.Classification, error)
	DeleteClassification(ctx context.Context, actor models.User, classificationID int64) error
	ListClassifications(ctx context.Context, actor models.User, filter models.ClassificationFilter) ([]models.Classification, int64, error)
	ValidStage(stage string) bool
	Choices() []models.StageChoice
}

type MetricsService interface {
	CollectMetrics(ctx context.Context) (models.Metrics, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}
