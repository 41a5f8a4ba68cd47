package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/PedroVerardo/skinone-Upload-Classification/internal/app"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/logger"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/utils"
	"github.com/PedroVerardo/skinone-Upload-Classification/models"
)

func (h *Handler) createClassification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Message: app.MsgAuthenticationRequired}, http.StatusUnauthorized)
		return
	}

	var request models.CreateClassificationRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Message: app.MsgInvalidDataProvided}, http.StatusBadRequest)
		return
	}

	classification, err := h.services.ClassificationService.Classify(ctx, user.UserID, request.ImageID, request.Stage, request.Observations)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, classification, http.StatusCreated)
}

func (h *Handler) listClassifications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Message: app.MsgAuthenticationRequired}, http.StatusUnauthorized)
		return
	}

	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	limit := queryInt(r, "limit", defaultListLimit)
	if limit < 1 || limit > maxListLimit {
		limit = defaultListLimit
	}

	filter := models.ClassificationFilter{
		ImageID: int64(queryInt(r, "image_id", 0)),
		Stage:   r.URL.Query().Get("stage"),
		UserID:  int64(queryInt(r, "user_id", 0)),
		Page:    page,
		Limit:   limit,
	}

	classifications, total, err := h.services.ClassificationService.ListClassifications(ctx, user, filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	utils.WriteJSON(w, models.ClassificationListResponse{
		Classifications: classifications,
		Pagination: models.Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalCount:  total,
			HasNext:     page < totalPages,
			HasPrevious: page > 1,
		},
	}, http.StatusOK)
}

func (h *Handler) getClassification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	classificationID, ok := h.classificationIDFromPath(w, r)
	if !ok {
		return
	}

	classification, err := h.services.ClassificationService.GetClassification(ctx, classificationID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, classification, http.StatusOK)
}

func (h *Handler) updateClassification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Message: app.MsgAuthenticationRequired}, http.StatusUnauthorized)
		return
	}

	classificationID, ok := h.classificationIDFromPath(w, r)
	if !ok {
		return
	}

	var request models.UpdateClassificationRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Message: app.MsgInvalidDataProvided}, http.StatusBadRequest)
		return
	}

	updated, err := h.services.ClassificationService.UpdateClassification(ctx, user, classificationID, request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteClassification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Message: app.MsgAuthenticationRequired}, http.StatusUnauthorized)
		return
	}

	classificationID, ok := h.classificationIDFromPath(w, r)
	if !ok {
		return
	}

	if err := h.services.ClassificationService.DeleteClassification(ctx, user, classificationID); err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, map[string]string{"message": "classification deleted"}, http.StatusOK)
}

// stageChoices lists the configured stage set. Intentionally unauthenticated
// so clients can render the vocabulary before login.
func (h *Handler) stageChoices(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.StageChoicesResponse{
		Choices: h.services.ClassificationService.Choices(),
	}, http.StatusOK)
}

// classificationIDFromPath parses the {classificationID} path parameter,
// answering 400 itself when the value is not an integer.
func (h *Handler) classificationIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	log := logger.FromRequest(r)

	classificationID, err := strconv.ParseInt(chi.URLParam(r, "classificationID"), 10, 64)
	if err != nil {
		log.Err(err).Msg("invalid classification id in path")
		utils.WriteJSON(w, models.ErrorResponse{Message: app.MsgInvalidDataProvided}, http.StatusBadRequest)
		return 0, false
	}

	return classificationID, true
}
