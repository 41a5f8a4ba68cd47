package http

import (
	"errors"
	"net/http"

	"github.com/PedroVerardo/skinone-Upload-Classification/internal/app"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/logger"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/service"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/store"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/utils"
	"github.com/PedroVerardo/skinone-Upload-Classification/models"
)

// errorStatusMap translates service and store sentinels into HTTP status
// codes. Validation failures are 400 (not 422 or 409) to match the public
// registration contract.
var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrValidationFailed:        http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrPermissionDenied:        http.StatusForbidden,
	service.ErrNoImageProvided:         http.StatusBadRequest,
	service.ErrFileTooLarge:            http.StatusBadRequest,
	service.ErrInvalidFileType:         http.StatusBadRequest,
	service.ErrInvalidBase64Data:       http.StatusBadRequest,
	service.ErrBatchTooLarge:           http.StatusBadRequest,
	service.ErrInvalidStage:            http.StatusBadRequest,
	service.ErrNothingToUpdate:         http.StatusBadRequest,

	store.ErrEmailAlreadyExists:     http.StatusBadRequest,
	store.ErrNoUserWasFound:         http.StatusNotFound,
	store.ErrImageNotFound:          http.StatusNotFound,
	store.ErrClassificationNotFound: http.StatusNotFound,
	store.ErrNothingToUpdate:        http.StatusBadRequest,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
	store.ErrScanningRows:     http.StatusInternalServerError,
}

// errorMessageMap translates known sentinels into the public reply message.
// Anything missing here falls back to the generic internal error message.
var errorMessageMap = map[error]string{
	service.ErrInvalidDataProvided:     app.MsgInvalidDataProvided,
	service.ErrValidationFailed:        app.MsgValidationFailed,
	service.ErrWrongPassword:           app.MsgInvalidEmailPassword,
	service.ErrTokenIsExpiredOrInvalid: app.MsgTokenIsExpiredOrInvalid,
	service.ErrPermissionDenied:        app.MsgAccessDenied,
	service.ErrNoImageProvided:         app.MsgNoImageProvided,

	store.ErrEmailAlreadyExists:     app.MsgEmailAlreadyExists,
	store.ErrNoUserWasFound:         app.MsgUserNotFound,
	store.ErrImageNotFound:          app.MsgImageNotFound,
	store.ErrClassificationNotFound: app.MsgClassificationNotFound,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

func messageFromError(err error) string {
	for target, message := range errorMessageMap {
		if errors.Is(err, target) {
			return message
		}
	}

	switch statusFromError(err) {
	case http.StatusBadRequest:
		// detail messages of 4xx input failures are safe to expose
		return err.Error()
	default:
		return app.MsgInternalServerError
	}
}

// writeError maps err onto the {message, errors} reply body. Field-keyed
// validation details are attached when the error chain carries a
// [service.ValidationError]. Unexpected failures stay generic; details go to
// the server log only.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	response := models.ErrorResponse{Message: messageFromError(err)}

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		response.Errors = validationErr.Fields
	}

	if status >= http.StatusInternalServerError {
		log.Err(err).Msg("request failed with server error")
	}

	utils.WriteJSON(w, response, status)
}
