package http

import (
	"encoding/json"
	"net/http"

	"github.com/PedroVerardo/skinone-Upload-Classification/internal/app"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/logger"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/utils"
	"github.com/PedroVerardo/skinone-Upload-Classification/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Message: app.MsgInvalidDataProvided}, http.StatusBadRequest)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, request)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	log.Info().Int64("id", registeredUser.UserID).Str("email", registeredUser.Email).Msg("user registered")

	utils.WriteJSON(w, models.RegisterResponse{
		ID:    registeredUser.UserID,
		Name:  registeredUser.Name,
		Email: registeredUser.Email,
	}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Message: app.MsgInvalidDataProvided}, http.StatusBadRequest)
		return
	}

	foundUser, err := h.services.AuthService.Login(ctx, request.Email, request.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		utils.WriteJSON(w, models.ErrorResponse{Message: app.MsgInternalServerError}, http.StatusInternalServerError)
		return
	}

	log.Info().Int64("id", foundUser.UserID).Msg("user successfully logged in")

	utils.WriteJSON(w, models.LoginResponse{
		Token: token.SignedString,
		User: models.LoginUser{
			ID:    foundUser.UserID,
			Name:  foundUser.Name,
			Email: foundUser.Email,
		},
	}, http.StatusOK)
}

func (h *Handler) verifyEmailPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteJSON(w, models.ErrorResponse{Message: app.MsgInvalidDataProvided}, http.StatusBadRequest)
		return
	}

	verifiedUser, err := h.services.AuthService.VerifyEmailPassword(ctx, request.Email, request.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.VerifyEmailPasswordResponse{
		Success: true,
		UserID:  verifiedUser.UserID,
	}, http.StatusOK)
}

// verifyToken reports the validity of the presented bearer token. Reaching
// this handler at all means the auth middleware accepted the token, so the
// reply only echoes the resolved identity.
func (h *Handler) verifyToken(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		log.Error().Msg("no authenticated user in request context")
		utils.WriteJSON(w, models.ErrorResponse{Message: app.MsgAuthenticationRequired}, http.StatusUnauthorized)
		return
	}

	utils.WriteJSON(w, models.VerifyTokenResponse{
		Valid:  true,
		UserID: user.UserID,
	}, http.StatusOK)
}
