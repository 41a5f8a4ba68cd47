package http

import (
	"net/http"

	"github.com/PedroVerardo/skinone-Upload-Classification/internal/utils"
	"github.com/PedroVerardo/skinone-Upload-Classification/models"
)

func (h *Handler) adminMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.services.MetricsService.CollectMetrics(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, metrics, http.StatusOK)
}

func (h *Handler) adminUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.MetricsService.ListUsers(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.UserListResponse{
		Users:      users,
		TotalCount: len(users),
	}, http.StatusOK)
}
