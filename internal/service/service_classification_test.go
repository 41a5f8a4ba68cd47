// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pedro Verardo

package service

import (
	"context"
	"testing"

	"github.com/PedroVerardo/skinone-Upload-Classification/internal/logger"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/store"
	"github.com/PedroVerardo/skinone-Upload-Classification/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock: store.ClassificationRepository
// ─────────────────────────────────────────────

type mockClassificationRepository struct {
	createFn   func(ctx context.Context, classification models.Classification) (models.Classification, error)
	findByIDFn func(ctx context.Context, classificationID int64) (models.Classification, error)
	updateFn   func(ctx context.Context, update models.ClassificationUpdate) (models.Classification, error)
	deleteFn   func(ctx context.Context, classificationID int64) error
	listFn     func(ctx context.Context, filter models.ClassificationFilter) ([]models.Classification, int64, error)
}

func (m *mockClassificationRepository) CreateClassification(ctx context.Context, classification models.Classification) (models.Classification, error) {
	if m.createFn != nil {
		return m.createFn(ctx, classification)
	}
	return classification, nil
}

func (m *mockClassificationRepository) FindClassificationByID(ctx context.Context, classificationID int64) (models.Classification, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, classificationID)
	}
	return models.Classification{}, store.ErrClassificationNotFound
}

func (m *mockClassificationRepository) UpdateClassification(ctx context.Context, update models.ClassificationUpdate) (models.Classification, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, update)
	}
	return models.Classification{}, nil
}

func (m *mockClassificationRepository) DeleteClassification(ctx context.Context, classificationID int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, classificationID)
	}
	return nil
}

func (m *mockClassificationRepository) ListClassifications(ctx context.Context, filter models.ClassificationFilter) ([]models.Classification, int64, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, 0, nil
}

// ─────────────────────────────────────────────
// Helper
// ─────────────────────────────────────────────

func newTestClassificationService(t *testing.T, classifications *mockClassificationRepository, images *mockImageRepository) ClassificationService {
	t.Helper()

	stages, err := models.ParseStageSet(models.DefaultStages)
	require.NoError(t, err)

	return NewClassificationService(classifications, images, stages, logger.Nop())
}

func imageExists(imageID int64) *mockImageRepository {
	return &mockImageRepository{
		findByIDFn: func(_ context.Context, id int64) (models.Image, error) {
			if id == imageID {
				return models.Image{ImageID: id}, nil
			}
			return models.Image{}, store.ErrImageNotFound
		},
	}
}

// ─────────────────────────────────────────────
// Classify
// ─────────────────────────────────────────────

func TestClassificationService_Classify_Success(t *testing.T) {
	repo := &mockClassificationRepository{
		createFn: func(_ context.Context, classification models.Classification) (models.Classification, error) {
			assert.Equal(t, int64(1), classification.UserID)
			assert.Equal(t, int64(2), classification.ImageID)
			assert.Equal(t, "stage2", classification.Stage)
			classification.ClassificationID = 10
			return classification, nil
		},
	}
	svc := newTestClassificationService(t, repo, imageExists(2))

	created, err := svc.Classify(context.Background(), 1, 2, "stage2", "irregular borders")

	require.NoError(t, err)
	assert.Equal(t, int64(10), created.ClassificationID)
}

func TestClassificationService_Classify_InvalidStageBeforeLookup(t *testing.T) {
	images := &mockImageRepository{
		findByIDFn: func(_ context.Context, _ int64) (models.Image, error) {
			t.Fatal("invalid stage must be rejected before any image lookup")
			return models.Image{}, nil
		},
	}
	svc := newTestClassificationService(t, &mockClassificationRepository{}, images)

	_, err := svc.Classify(context.Background(), 1, 2, "stageX", "")
	require.ErrorIs(t, err, ErrInvalidStage)
}

func TestClassificationService_Classify_ImageNotFound(t *testing.T) {
	svc := newTestClassificationService(t, &mockClassificationRepository{}, imageExists(2))

	_, err := svc.Classify(context.Background(), 1, 404, "stage1", "")
	require.ErrorIs(t, err, store.ErrImageNotFound)
}

// ─────────────────────────────────────────────
// UpdateClassification
// ─────────────────────────────────────────────

func existingClassification(authorID int64) *mockClassificationRepository {
	return &mockClassificationRepository{
		findByIDFn: func(_ context.Context, classificationID int64) (models.Classification, error) {
			return models.Classification{
				ClassificationID: classificationID,
				UserID:           authorID,
				ImageID:          2,
				Stage:            "stage1",
			}, nil
		},
		updateFn: func(_ context.Context, update models.ClassificationUpdate) (models.Classification, error) {
			updated := models.Classification{ClassificationID: update.ClassificationID, UserID: authorID, ImageID: 2, Stage: "stage1"}
			if update.Stage != nil {
				updated.Stage = *update.Stage
			}
			if update.Observations != nil {
				updated.Observations = *update.Observations
			}
			return updated, nil
		},
	}
}

func TestClassificationService_Update_ByAuthor(t *testing.T) {
	svc := newTestClassificationService(t, existingClassification(1), &mockImageRepository{})

	newStage := "stage3"
	updated, err := svc.UpdateClassification(context.Background(), models.User{UserID: 1}, 10, models.UpdateClassificationRequest{Stage: &newStage})

	require.NoError(t, err)
	assert.Equal(t, "stage3", updated.Stage)
}

func TestClassificationService_Update_ByStaff(t *testing.T) {
	svc := newTestClassificationService(t, existingClassification(1), &mockImageRepository{})

	observations := "staff correction"
	updated, err := svc.UpdateClassification(context.Background(), models.User{UserID: 99, IsStaff: true}, 10, models.UpdateClassificationRequest{Observations: &observations})

	require.NoError(t, err)
	assert.Equal(t, "staff correction", updated.Observations)
}

func TestClassificationService_Update_ByStrangerDenied(t *testing.T) {
	svc := newTestClassificationService(t, existingClassification(1), &mockImageRepository{})

	newStage := "stage3"
	_, err := svc.UpdateClassification(context.Background(), models.User{UserID: 99}, 10, models.UpdateClassificationRequest{Stage: &newStage})

	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestClassificationService_Update_InvalidStage(t *testing.T) {
	svc := newTestClassificationService(t, existingClassification(1), &mockImageRepository{})

	badStage := "nonsense"
	_, err := svc.UpdateClassification(context.Background(), models.User{UserID: 1}, 10, models.UpdateClassificationRequest{Stage: &badStage})

	require.ErrorIs(t, err, ErrInvalidStage)
}

func TestClassificationService_Update_NothingToUpdate(t *testing.T) {
	svc := newTestClassificationService(t, existingClassification(1), &mockImageRepository{})

	_, err := svc.UpdateClassification(context.Background(), models.User{UserID: 1}, 10, models.UpdateClassificationRequest{})
	require.ErrorIs(t, err, ErrNothingToUpdate)
}

func TestClassificationService_Update_NotFound(t *testing.T) {
	svc := newTestClassificationService(t, &mockClassificationRepository{}, &mockImageRepository{})

	newStage := "stage3"
	_, err := svc.UpdateClassification(context.Background(), models.User{UserID: 1}, 404, models.UpdateClassificationRequest{Stage: &newStage})

	require.ErrorIs(t, err, store.ErrClassificationNotFound)
}

// ─────────────────────────────────────────────
// DeleteClassification
// ─────────────────────────────────────────────

func TestClassificationService_Delete_ByAuthor(t *testing.T) {
	deleted := false
	repo := existingClassification(1)
	repo.deleteFn = func(_ context.Context, classificationID int64) error {
		deleted = true
		assert.Equal(t, int64(10), classificationID)
		return nil
	}
	svc := newTestClassificationService(t, repo, &mockImageRepository{})

	err := svc.DeleteClassification(context.Background(), models.User{UserID: 1}, 10)

	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestClassificationService_Delete_ByStrangerDenied(t *testing.T) {
	repo := existingClassification(1)
	repo.deleteFn = func(_ context.Context, _ int64) error {
		t.Fatal("denied delete must not reach the repository")
		return nil
	}
	svc := newTestClassificationService(t, repo, &mockImageRepository{})

	err := svc.DeleteClassification(context.Background(), models.User{UserID: 99}, 10)
	require.ErrorIs(t, err, ErrPermissionDenied)
}

func TestClassificationService_Delete_NotFound(t *testing.T) {
	svc := newTestClassificationService(t, &mockClassificationRepository{}, &mockImageRepository{})

	err := svc.DeleteClassification(context.Background(), models.User{UserID: 1}, 404)
	require.ErrorIs(t, err, store.ErrClassificationNotFound)
}

// ─────────────────────────────────────────────
// ListClassifications
// ─────────────────────────────────────────────

func TestClassificationService_List_NonStaffRestrictedToSelf(t *testing.T) {
	repo := &mockClassificationRepository{
		listFn: func(_ context.Context, filter models.ClassificationFilter) ([]models.Classification, int64, error) {
			assert.Equal(t, int64(1), filter.UserID, "non-staff filter must be forced to the actor")
			return nil, 0, nil
		},
	}
	svc := newTestClassificationService(t, repo, &mockImageRepository{})

	// the actor asks for someone else's records
	_, _, err := svc.ListClassifications(context.Background(), models.User{UserID: 1}, models.ClassificationFilter{UserID: 99})
	require.NoError(t, err)
}

func TestClassificationService_List_StaffMayFilterAnyUser(t *testing.T) {
	repo := &mockClassificationRepository{
		listFn: func(_ context.Context, filter models.ClassificationFilter) ([]models.Classification, int64, error) {
			assert.Equal(t, int64(99), filter.UserID)
			return []models.Classification{{ClassificationID: 1}}, 1, nil
		},
	}
	svc := newTestClassificationService(t, repo, &mockImageRepository{})

	classifications, total, err := svc.ListClassifications(context.Background(), models.User{UserID: 1, IsStaff: true}, models.ClassificationFilter{UserID: 99})

	require.NoError(t, err)
	assert.Len(t, classifications, 1)
	assert.Equal(t, int64(1), total)
}

// ─────────────────────────────────────────────
// Choices
// ─────────────────────────────────────────────

func TestClassificationService_Choices(t *testing.T) {
	svc := newTestClassificationService(t, &mockClassificationRepository{}, &mockImageRepository{})

	choices := svc.Choices()

	require.Len(t, choices, 7)
	assert.Equal(t, "stage1", choices[0].Value)
	assert.Equal(t, "Stage 1", choices[0].Display)
	assert.Equal(t, "notunderstand", choices[6].Value)
}

func TestClassificationService_ValidStage(t *testing.T) {
	svc := newTestClassificationService(t, &mockClassificationRepository{}, &mockImageRepository{})

	assert.True(t, svc.ValidStage("stage1"))
	assert.True(t, svc.ValidStage("notunderstand"))
	assert.False(t, svc.ValidStage("bogus"))
	assert.False(t, svc.ValidStage(""))
}
