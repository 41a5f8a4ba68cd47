package http

import (
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/PedroVerardo/skinone-Upload-Classification/internal/app"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/logger"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/service"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/utils"
	"github.com/PedroVerardo/skinone-Upload-Classification/models"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

func (h *Handler) listImages(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := queryInt(r, "limit", defaultListLimit)
	if limit < 1 || limit > maxListLimit {
		limit = defaultListLimit
	}
	offset := queryInt(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	filter := models.ImageFilter{
		UploadedBy: int64(queryInt(r, "uploaded_by", 0)),
		Limit:      limit,
		Offset:     offset,
	}

	images, total, err := h.services.ImageService.ListImages(ctx, filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.ImageListResponse{
		Images:     images,
		TotalCount: total,
		Limit:      limit,
		Offset:     offset,
	}, http.StatusOK)
}

func (h *Handler) getImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	imageID, err := strconv.ParseInt(chi.URLParam(r, "imageID"), 10, 64)
	if err != nil {
		log.Err(err).Msg("invalid image id in path")
		utils.WriteJSON(w, models.ErrorResponse{Message: app.MsgInvalidDataProvided}, http.StatusBadRequest)
		return
	}

	image, err := h.services.ImageService.GetImage(ctx, imageID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, image, http.StatusOK)
}

// uploadSingle ingests one multipart image from the "image" form field.
// A dedup hit answers 200 with duplicate:true; fresh content answers 201.
func (h *Handler) uploadSingle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Message: app.MsgAuthenticationRequired}, http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		log.Err(err).Msg("failed to parse multipart form")
		utils.WriteJSON(w, models.ErrorResponse{Message: app.MsgNoImageProvided}, http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		log.Err(err).Msg("no image file in form")
		utils.WriteJSON(w, models.ErrorResponse{Message: app.MsgNoImageProvided}, http.StatusBadRequest)
		return
	}
	defer file.Close()

	payload, err := filePayload(file, header, r.FormValue("description"))
	if err != nil {
		log.Err(err).Msg("failed to read uploaded file")
		utils.WriteJSON(w, models.ErrorResponse{Message: app.MsgInternalServerError}, http.StatusInternalServerError)
		return
	}

	image, isNew, err := h.services.ImageService.Ingest(ctx, user, payload)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	status := http.StatusCreated
	if !isNew {
		status = http.StatusOK
	}

	utils.WriteJSON(w, models.SingleUploadResponse{
		Image:     image,
		Duplicate: !isNew,
	}, status)
}

// uploadBatch ingests every file of the repeated multipart "images" field
// with independent per-item outcomes.
func (h *Handler) uploadBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payloads, user, ok := h.multipartBatchPayloads(w, r)
	if !ok {
		return
	}

	results, err := h.services.ImageService.IngestBatch(ctx, user, payloads)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, batchResponse(results), http.StatusCreated)
}

func (h *Handler) multipartBatchPayloads(w http.ResponseWriter, r *http.Request) ([]models.UploadPayload, models.User, bool) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Message: app.MsgAuthenticationRequired}, http.StatusUnauthorized)
		return nil, models.User{}, false
	}

	if err := r.ParseMultipartForm(h.maxUploadBytes * int64(h.maxBatchSize)); err != nil {
		log.Err(err).Msg("failed to parse multipart form")
		utils.WriteJSON(w, models.ErrorResponse{Message: app.MsgNoImageProvided}, http.StatusBadRequest)
		return nil, models.User{}, false
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		utils.WriteJSON(w, models.ErrorResponse{Message: app.MsgNoImageProvided}, http.StatusBadRequest)
		return nil, models.User{}, false
	}

	payloads := make([]models.UploadPayload, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			log.Err(err).Str("filename", header.Filename).Msg("failed to open uploaded file")
			utils.WriteJSON(w, models.ErrorResponse{Message: app.MsgInternalServerError}, http.StatusInternalServerError)
			return nil, models.User{}, false
		}

		payload, readErr := filePayload(file, header, r.FormValue("description"))
		file.Close()
		if readErr != nil {
			log.Err(readErr).Str("filename", header.Filename).Msg("failed to read uploaded file")
			utils.WriteJSON(w, models.ErrorResponse{Message: app.MsgInternalServerError}, http.StatusInternalServerError)
			return nil, models.User{}, false
		}

		payloads = append(payloads, payload)
	}

	return payloads, user, true
}

// uploadBase64 ingests one JSON-carried base64 image. Response shape and
// status semantics match uploadSingle.
func (h *Handler) uploadBase64(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Message: app.MsgAuthenticationRequired}, http.StatusUnauthorized)
		return
	}

	var payload models.UploadPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Message: app.MsgInvalidDataProvided}, http.StatusBadRequest)
		return
	}

	image, isNew, err := h.services.ImageService.Ingest(ctx, user, payload)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	status := http.StatusCreated
	if !isNew {
		status = http.StatusOK
	}

	utils.WriteJSON(w, models.SingleUploadResponse{
		Image:     image,
		Duplicate: !isNew,
	}, status)
}

// uploadBase64Batch ingests a JSON array of base64 images with independent
// per-item outcomes.
func (h *Handler) uploadBase64Batch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		utils.WriteJSON(w, models.ErrorResponse{Message: app.MsgAuthenticationRequired}, http.StatusUnauthorized)
		return
	}

	var request models.Base64BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Message: app.MsgInvalidDataProvided}, http.StatusBadRequest)
		return
	}

	results, err := h.services.ImageService.IngestBatch(ctx, user, request.Images)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, batchResponse(results), http.StatusCreated)
}

// uploadWithStage ingests the multipart "images" files and classifies every
// successfully stored image with the stage given in the query string. A
// dedup hit still produces a new classification against the existing image.
//
// The stage label is checked against the configured set before any image is
// persisted, so an unknown label rejects the whole request without side
// effects. A classify failure after ingestion is reported on that item; the
// stored image is kept.
func (h *Handler) uploadWithStage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	stage := r.URL.Query().Get("stage")
	if stage == "" {
		log.Error().Msg("missing stage query parameter")
		utils.WriteJSON(w, models.ErrorResponse{Message: app.MsgInvalidDataProvided}, http.StatusBadRequest)
		return
	}
	if !h.services.ClassificationService.ValidStage(stage) {
		log.Error().Str("stage", stage).Msg("unknown stage in query")
		h.writeError(w, r, service.ErrInvalidStage)
		return
	}

	payloads, user, ok := h.multipartBatchPayloads(w, r)
	if !ok {
		return
	}

	results, err := h.services.ImageService.IngestBatch(ctx, user, payloads)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	classified := make([]models.Classification, 0, len(results))
	for i := range results {
		if results[i].Status == models.UploadStatusError {
			continue
		}

		classification, classifyErr := h.services.ClassificationService.Classify(ctx, user.UserID, results[i].Image.ImageID, stage, "")
		if classifyErr != nil {
			log.Err(classifyErr).Int64("image_id", results[i].Image.ImageID).Msg("classification after upload failed")
			results[i].Error = "image stored but classification failed"
			continue
		}

		classified = append(classified, classification)
	}

	utils.WriteJSON(w, models.UploadWithStageResponse{
		UploadBatchID: uuid.NewString(),
		Uploaded:      results,
		Stage:         stage,
		Classified:    classified,
	}, http.StatusCreated)
}

// filePayload drains one multipart file into an upload payload.
func filePayload(file multipart.File, header *multipart.FileHeader, description string) (models.UploadPayload, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return models.UploadPayload{}, err
	}

	return models.UploadPayload{
		Data:        data,
		Filename:    header.Filename,
		Description: description,
	}, nil
}

// batchResponse assembles the common batch reply with a generated batch ID
// and the uploaded (non-error) count.
func batchResponse(results []models.UploadResult) models.BatchUploadResponse {
	uploaded := 0
	for _, result := range results {
		if result.Status != models.UploadStatusError {
			uploaded++
		}
	}

	return models.BatchUploadResponse{
		UploadBatchID: uuid.NewString(),
		Uploaded:      results,
		TotalUploaded: uploaded,
	}
}

// queryInt reads an integer query parameter with a fallback default.
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return value
}
