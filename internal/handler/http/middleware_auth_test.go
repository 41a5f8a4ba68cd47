package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PedroVerardo/skinone-Upload-Classification/internal/config"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/logger"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/service"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/store"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/utils"
	"github.com/PedroVerardo/skinone-Upload-Classification/models"
)

// subjectToken builds a parsed token carrying userID, the shape that token
// verification returns to callers.
func subjectToken(userID int64) models.Token {
	return models.Token{UserID: userID}
}

// nextRecorder is a terminal handler that records whether it was reached and
// which user the middleware stored in the context.
type nextRecorder struct {
	called bool
	user   models.User
	hasUsr bool
}

func (n *nextRecorder) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n.called = true
		n.user, n.hasUsr = utils.GetUserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware_Success(t *testing.T) {
	auth := &mockAuthService{
		parseTokenFn: func(_ context.Context, tokenString string) (models.Token, error) {
			require.Equal(t, "valid-token", tokenString)
			return subjectToken(1), nil
		},
		getUserFn: func(_ context.Context, userID int64) (models.User, error) {
			require.Equal(t, int64(1), userID)
			return activeUser, nil
		},
	}

	h := newTestHandler(t, &service.Services{AuthService: auth})
	next := &nextRecorder{}

	req := httptest.NewRequest(http.MethodGet, "/images/", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()

	h.auth(next.handler()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, next.called)
	require.True(t, next.hasUsr)
	assert.Equal(t, int64(1), next.user.UserID)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	h := newTestHandler(t, &service.Services{AuthService: &mockAuthService{}})
	next := &nextRecorder{}

	req := httptest.NewRequest(http.MethodGet, "/images/", nil)
	rec := httptest.NewRecorder()

	h.auth(next.handler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, next.called)
	assert.Contains(t, rec.Body.String(), "authentication required")
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	h := newTestHandler(t, &service.Services{AuthService: &mockAuthService{}})
	next := &nextRecorder{}

	req := httptest.NewRequest(http.MethodGet, "/images/", nil)
	req.Header.Set("Authorization", "Bearer")
	rec := httptest.NewRecorder()

	h.auth(next.handler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, next.called)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	auth := &mockAuthService{
		parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
			return models.Token{}, service.ErrTokenIsExpiredOrInvalid
		},
	}

	h := newTestHandler(t, &service.Services{AuthService: auth})
	next := &nextRecorder{}

	req := httptest.NewRequest(http.MethodGet, "/images/", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	rec := httptest.NewRecorder()

	h.auth(next.handler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, next.called)
	assert.Contains(t, rec.Body.String(), "token is expired or invalid")
}

// TestAuthMiddleware_SubjectGone verifies that a syntactically valid token
// whose user row no longer exists is rejected as invalid, not as a server
// error.
func TestAuthMiddleware_SubjectGone(t *testing.T) {
	auth := &mockAuthService{
		parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
			return subjectToken(404), nil
		},
		getUserFn: func(_ context.Context, _ int64) (models.User, error) {
			return models.User{}, store.ErrNoUserWasFound
		},
	}

	h := newTestHandler(t, &service.Services{AuthService: auth})
	next := &nextRecorder{}

	req := httptest.NewRequest(http.MethodGet, "/images/", nil)
	req.Header.Set("Authorization", "Bearer orphan-token")
	rec := httptest.NewRecorder()

	h.auth(next.handler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, next.called)
}

// TestAuthMiddleware_Deactivated verifies that is_active is re-checked on
// every request even while the token itself is still valid.
func TestAuthMiddleware_Deactivated(t *testing.T) {
	auth := &mockAuthService{
		parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
			return subjectToken(1), nil
		},
		getUserFn: func(_ context.Context, _ int64) (models.User, error) {
			return models.User{UserID: 1, IsActive: false}, nil
		},
	}

	h := newTestHandler(t, &service.Services{AuthService: auth})
	next := &nextRecorder{}

	req := httptest.NewRequest(http.MethodGet, "/images/", nil)
	req.Header.Set("Authorization", "Bearer stale-token")
	rec := httptest.NewRecorder()

	h.auth(next.handler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, next.called)
	assert.Contains(t, rec.Body.String(), "account is deactivated")
}

func TestAuthMiddleware_LookupFailure(t *testing.T) {
	auth := &mockAuthService{
		parseTokenFn: func(_ context.Context, _ string) (models.Token, error) {
			return subjectToken(1), nil
		},
		getUserFn: func(_ context.Context, _ int64) (models.User, error) {
			return models.User{}, errors.New("db connection lost")
		},
	}

	h := newTestHandler(t, &service.Services{AuthService: auth})
	next := &nextRecorder{}

	req := httptest.NewRequest(http.MethodGet, "/images/", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()

	h.auth(next.handler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, next.called)
}

// ─────────────────────────────────────────────
// full token round trip
// ─────────────────────────────────────────────

// stubUserRepository satisfies store.UserRepository with a single fixed user.
type stubUserRepository struct {
	user models.User
}

func (s *stubUserRepository) CreateUser(_ context.Context, _ models.User) (models.User, error) {
	return s.user, nil
}

func (s *stubUserRepository) FindUserByEmail(_ context.Context, _ string) (models.User, error) {
	return s.user, nil
}

func (s *stubUserRepository) FindUserByID(_ context.Context, userID int64) (models.User, error) {
	if userID != s.user.UserID {
		return models.User{}, store.ErrNoUserWasFound
	}
	return s.user, nil
}

func (s *stubUserRepository) TouchLastLogin(_ context.Context, _ int64) error {
	return nil
}

func (s *stubUserRepository) ListUsers(_ context.Context) ([]models.User, error) {
	return []models.User{s.user}, nil
}

// TestAuthMiddleware_RealTokenRoundTrip drives the middleware through the
// real auth service: a token issued by CreateToken must authenticate the
// request, with the subject resolved back to the issuing user.
func TestAuthMiddleware_RealTokenRoundTrip(t *testing.T) {
	auth := service.NewAuthService(&stubUserRepository{user: activeUser}, config.App{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "skinone-test",
		TokenDuration: time.Hour,
	}, logger.Nop())

	token, err := auth.CreateToken(context.Background(), activeUser)
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	h := newTestHandler(t, &service.Services{AuthService: auth})
	next := &nextRecorder{}

	req := httptest.NewRequest(http.MethodGet, "/images/", nil)
	req.Header.Set("Authorization", "Bearer "+token.SignedString)
	rec := httptest.NewRecorder()

	h.auth(next.handler()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, next.called)
	require.True(t, next.hasUsr)
	assert.Equal(t, activeUser.UserID, next.user.UserID)
}

// ─────────────────────────────────────────────
// adminOnly
// ─────────────────────────────────────────────

func TestAdminOnly_Staff(t *testing.T) {
	h := newTestHandler(t, &service.Services{})
	next := &nextRecorder{}

	req := withUser(httptest.NewRequest(http.MethodGet, "/admin/metrics", nil), staffUser)
	rec := httptest.NewRecorder()

	h.adminOnly(next.handler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, next.called)
}

func TestAdminOnly_NonStaff(t *testing.T) {
	h := newTestHandler(t, &service.Services{})
	next := &nextRecorder{}

	req := withUser(httptest.NewRequest(http.MethodGet, "/admin/metrics", nil), activeUser)
	rec := httptest.NewRecorder()

	h.adminOnly(next.handler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, next.called)
	assert.Contains(t, rec.Body.String(), "administrator privileges required")
}

func TestAdminOnly_NoUserInContext(t *testing.T) {
	h := newTestHandler(t, &service.Services{})
	next := &nextRecorder{}

	req := httptest.NewRequest(http.MethodGet, "/admin/metrics", nil)
	rec := httptest.NewRecorder()

	h.adminOnly(next.handler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, next.called)
}
