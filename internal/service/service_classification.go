package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/PedroVerardo/skinone-Upload-Classification/internal/logger"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/store"
	"github.com/PedroVerardo/skinone-Upload-Classification/models"
)

// classificationService is the concrete implementation of
// ClassificationService. It validates stage labels against the configured
// stage set, enforces author-or-staff authorization on edits, and applies
// the visibility rule on listings.
type classificationService struct {
	classificationRepository store.ClassificationRepository
	imageRepository          store.ImageRepository
	stages                   *models.StageSet
	logger                   *logger.Logger
}

// NewClassificationService constructs a ClassificationService wired to the
// given repositories and stage set.
func NewClassificationService(classificationRepository store.ClassificationRepository, imageRepository store.ImageRepository, stages *models.StageSet, logger *logger.Logger) ClassificationService {
	return &classificationService{
		classificationRepository: classificationRepository,
		imageRepository:          imageRepository,
		stages:                   stages,
		logger:                   logger,
	}
}

// Classify records one classification of an image by a user.
//
// The stage label is validated against the configured set before any lookup,
// so an invalid stage never costs a database round trip. The image must
// exist; a reference that disappears between the check and the insert is
// caught by the foreign key and reported the same way.
func (s *classificationService) Classify(ctx context.Context, userID, imageID int64, stage, observations string) (models.Classification, error) {
	log := logger.FromContext(ctx)

	if !s.stages.Contains(stage) {
		log.Error().Str("stage", stage).Msg("stage is not a member of the configured set")
		return models.Classification{}, fmt.Errorf("%w: %q", ErrInvalidStage, stage)
	}

	if _, err := s.imageRepository.FindImageByID(ctx, imageID); err != nil {
		log.Err(err).Int64("image_id", imageID).Msg("classified image lookup failed")
		return models.Classification{}, fmt.Errorf("classified image lookup failed: %w", err)
	}

	created, err := s.classificationRepository.CreateClassification(ctx, models.Classification{
		UserID:       userID,
		ImageID:      imageID,
		Stage:        stage,
		Observations: observations,
	})
	if err != nil {
		log.Err(err).Int64("image_id", imageID).Int64("user_id", userID).Msg("classification creation failed")
		return models.Classification{}, fmt.Errorf("classification creation failed: %w", err)
	}

	return created, nil
}

// GetClassification retrieves a classification record by ID.
func (s *classificationService) GetClassification(ctx context.Context, classificationID int64) (models.Classification, error) {
	log := logger.FromContext(ctx)

	classification, err := s.classificationRepository.FindClassificationByID(ctx, classificationID)
	if err != nil {
		log.Err(err).Int64("classification_id", classificationID).Msg("classification search by id failed")
		return models.Classification{}, fmt.Errorf("classification search by id failed: %w", err)
	}

	return classification, nil
}

// UpdateClassification applies a partial update to a classification.
//
// The actor must be the record's author or a staff user, otherwise
// [ErrPermissionDenied]. A provided stage must belong to the configured set.
// An update carrying no fields returns [ErrNothingToUpdate].
func (s *classificationService) UpdateClassification(ctx context.Context, actor models.User, classificationID int64, request models.UpdateClassificationRequest) (models.Classification, error) {
	log := logger.FromContext(ctx)

	if request.Stage == nil && request.Observations == nil {
		return models.Classification{}, ErrNothingToUpdate
	}
	if request.Stage != nil && !s.stages.Contains(*request.Stage) {
		log.Error().Str("stage", *request.Stage).Msg("stage is not a member of the configured set")
		return models.Classification{}, fmt.Errorf("%w: %q", ErrInvalidStage, *request.Stage)
	}

	existing, err := s.classificationRepository.FindClassificationByID(ctx, classificationID)
	if err != nil {
		log.Err(err).Int64("classification_id", classificationID).Msg("classification search by id failed")
		return models.Classification{}, fmt.Errorf("classification search by id failed: %w", err)
	}

	if !canModify(actor, existing) {
		log.Error().
			Int64("classification_id", classificationID).
			Int64("actor_id", actor.UserID).
			Int64("author_id", existing.UserID).
			Msg("actor may not modify this classification")
		return models.Classification{}, ErrPermissionDenied
	}

	updated, err := s.classificationRepository.UpdateClassification(ctx, models.ClassificationUpdate{
		ClassificationID: classificationID,
		Stage:            request.Stage,
		Observations:     request.Observations,
	})
	if err != nil {
		if errors.Is(err, store.ErrNothingToUpdate) {
			return models.Classification{}, ErrNothingToUpdate
		}

		log.Err(err).Int64("classification_id", classificationID).Msg("classification update failed")
		return models.Classification{}, fmt.Errorf("classification update failed: %w", err)
	}

	return updated, nil
}

// DeleteClassification removes a classification. Authorization follows
// [classificationService.UpdateClassification]: author or staff only.
func (s *classificationService) DeleteClassification(ctx context.Context, actor models.User, classificationID int64) error {
	log := logger.FromContext(ctx)

	existing, err := s.classificationRepository.FindClassificationByID(ctx, classificationID)
	if err != nil {
		log.Err(err).Int64("classification_id", classificationID).Msg("classification search by id failed")
		return fmt.Errorf("classification search by id failed: %w", err)
	}

	if !canModify(actor, existing) {
		log.Error().
			Int64("classification_id", classificationID).
			Int64("actor_id", actor.UserID).
			Int64("author_id", existing.UserID).
			Msg("actor may not delete this classification")
		return ErrPermissionDenied
	}

	if deleteErr := s.classificationRepository.DeleteClassification(ctx, classificationID); deleteErr != nil {
		log.Err(deleteErr).Int64("classification_id", classificationID).Msg("classification deletion failed")
		return fmt.Errorf("classification deletion failed: %w", deleteErr)
	}

	return nil
}

// ListClassifications retrieves classification records matching the filter,
// newest first, with the total matching count.
//
// Non-staff actors are always restricted to their own records: any user_id
// filter they supply is silently overridden with their own ID. Staff actors
// may filter by any user or see all records.
func (s *classificationService) ListClassifications(ctx context.Context, actor models.User, filter models.ClassificationFilter) ([]models.Classification, int64, error) {
	log := logger.FromContext(ctx)

	if !actor.IsStaff {
		filter.UserID = actor.UserID
	}

	classifications, total, err := s.classificationRepository.ListClassifications(ctx, filter)
	if err != nil {
		log.Err(err).Int64("actor_id", actor.UserID).Msg("classification listing failed")
		return nil, 0, fmt.Errorf("classification listing failed: %w", err)
	}

	return classifications, total, nil
}

// ValidStage reports whether stage is a member of the configured set.
// Request handlers use it to reject an unknown label before any image
// bytes are persisted.
func (s *classificationService) ValidStage(stage string) bool {
	return s.stages.Contains(stage)
}

// Choices returns the configured stage set as value/display pairs.
func (s *classificationService) Choices() []models.StageChoice {
	return s.stages.Choices()
}

// canModify reports whether the actor may edit or delete the given
// classification: the author always can, staff can edit anything.
func canModify(actor models.User, classification models.Classification) bool {
	return actor.IsStaff || actor.UserID == classification.UserID
}
