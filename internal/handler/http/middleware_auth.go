package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/PedroVerardo/skinone-Upload-Classification/internal/app"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/logger"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/store"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/utils"
	"github.com/PedroVerardo/skinone-Upload-Classification/models"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It inspects the incoming "Authorization" header, extracts the bearer token,
// validates it via [service.AuthService.ParseToken], resolves the token's
// subject into a full user record, and — on success — stores the
// authenticated user in the request context under [utils.UserCtxKey] before
// delegating to the next handler.
//
// The middleware rejects requests with HTTP 401 Unauthorized in the following cases:
//   - The "Authorization" header is absent, malformed, or carries no token.
//   - The token is expired, malformed, or signed with the wrong key.
//   - The token's subject no longer exists.
//   - The account has been deactivated since the token was issued; tokens
//     are not revocable, so is_active is re-checked on every request.
//
// All rejection events are logged using the context-scoped logger obtained
// via [logger.FromRequest].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			utils.WriteJSON(w, models.ErrorResponse{Message: app.MsgAuthenticationRequired}, http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			utils.WriteJSON(w, models.ErrorResponse{Message: app.MsgAuthenticationRequired}, http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("error occurred during parsing token")
			utils.WriteJSON(w, models.ErrorResponse{Message: app.MsgTokenIsExpiredOrInvalid}, http.StatusUnauthorized)
			return
		}

		// Token verification already parsed the subject claim into UserID.
		userID := token.UserID

		user, err := h.services.AuthService.GetUser(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrNoUserWasFound) {
				log.Error().Int64("user_id", userID).Msg("token subject no longer exists")
				utils.WriteJSON(w, models.ErrorResponse{Message: app.MsgTokenIsExpiredOrInvalid}, http.StatusUnauthorized)
				return
			}

			log.Err(err).Int64("user_id", userID).Msg("failed to resolve token subject")
			utils.WriteJSON(w, models.ErrorResponse{Message: app.MsgInternalServerError}, http.StatusInternalServerError)
			return
		}

		if !user.IsActive {
			log.Error().Int64("user_id", user.UserID).Msg("deactivated account presented a valid token")
			utils.WriteJSON(w, models.ErrorResponse{Message: app.MsgAccountDeactivated}, http.StatusUnauthorized)
			return
		}

		// Store the authenticated user in the context so that downstream
		// handlers can retrieve the full identity without another lookup.
		ctx = context.WithValue(ctx, utils.UserCtxKey, user)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminOnly gates a subtree to staff users. It must run after [Handler.auth]
// so the authenticated user is already in the context.
func (h *Handler) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		user, ok := utils.GetUserFromContext(r.Context())
		if !ok {
			log.Error().Msg("no authenticated user in request context")
			utils.WriteJSON(w, models.ErrorResponse{Message: app.MsgAuthenticationRequired}, http.StatusUnauthorized)
			return
		}

		if !user.IsStaff {
			log.Error().Int64("user_id", user.UserID).Msg("non-staff user called an admin endpoint")
			utils.WriteJSON(w, models.ErrorResponse{Message: app.MsgAdminRequired}, http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
