// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Pedro Verardo

package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/PedroVerardo/skinone-Upload-Classification/internal/config"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/logger"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/store"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/utils"
	"github.com/PedroVerardo/skinone-Upload-Classification/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createFn      func(ctx context.Context, user models.User) (models.User, error)
	findByEmailFn func(ctx context.Context, email string) (models.User, error)
	findByIDFn    func(ctx context.Context, userID int64) (models.User, error)
	touchFn       func(ctx context.Context, userID int64) error
	listFn        func(ctx context.Context) ([]models.User, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, userID)
	}
	return models.User{}, nil
}

func (m *mockUserRepository) TouchLastLogin(ctx context.Context, userID int64) error {
	if m.touchFn != nil {
		return m.touchFn(ctx, userID)
	}
	return nil
}

func (m *mockUserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Helper
// ─────────────────────────────────────────────

func newTestAuthService(repo *mockUserRepository) AuthService {
	cfg := config.App{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "skinone-test",
		TokenDuration: time.Hour,
	}
	return NewAuthService(repo, cfg, logger.Nop())
}

func validRegistration() models.RegisterRequest {
	return models.RegisterRequest{
		Email:    "ana@example.com",
		Password: "secret123",
		Name:     "Ana",
	}
}

// ─────────────────────────────────────────────
// RegisterUser
// ─────────────────────────────────────────────

func TestAuthService_RegisterUser_Success(t *testing.T) {
	repo := &mockUserRepository{
		createFn: func(_ context.Context, user models.User) (models.User, error) {
			assert.Equal(t, "ana@example.com", user.Email)
			assert.True(t, user.IsActive)
			assert.False(t, user.IsStaff)
			assert.NotEqual(t, "secret123", user.PasswordHash)
			user.UserID = 1
			return user, nil
		},
	}
	svc := newTestAuthService(repo)

	registered, err := svc.RegisterUser(context.Background(), validRegistration())

	require.NoError(t, err)
	assert.Equal(t, int64(1), registered.UserID)
	assert.True(t, utils.CheckPassword(registered.PasswordHash, "secret123"))
}

func TestAuthService_RegisterUser_LowercasesEmail(t *testing.T) {
	repo := &mockUserRepository{
		createFn: func(_ context.Context, user models.User) (models.User, error) {
			assert.Equal(t, "ana@example.com", user.Email)
			return user, nil
		},
	}
	svc := newTestAuthService(repo)

	request := validRegistration()
	request.Email = "  ANA@Example.COM "

	_, err := svc.RegisterUser(context.Background(), request)
	require.NoError(t, err)
}

func TestAuthService_RegisterUser_InvalidEmail(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	cases := []string{
		"",
		"no-at-sign.example.com",
		"two@@example.com",
		"dots..dots@example.com",
		"a@b",
		".leading@example.com",
	}

	for _, email := range cases {
		request := validRegistration()
		request.Email = email

		_, err := svc.RegisterUser(context.Background(), request)

		require.ErrorIs(t, err, ErrValidationFailed, "email %q should be rejected", email)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Fields, "email")
	}
}

func TestAuthService_RegisterUser_WeakPassword(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	cases := []string{
		"short1",
		"alllettersonly",
		"123456789",
		strings.Repeat("a1", 50), // over bcrypt's 72-byte input limit
	}

	for _, password := range cases {
		request := validRegistration()
		request.Password = password

		_, err := svc.RegisterUser(context.Background(), request)

		require.ErrorIs(t, err, ErrValidationFailed, "password %q should be rejected", password)

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Contains(t, validationErr.Fields, "password")
	}
}

// TestAuthService_RegisterUser_MaxLengthPassword verifies that the longest
// accepted password still hashes: bcrypt rejects inputs over 72 bytes, so
// anything validation lets through must be within that limit.
func TestAuthService_RegisterUser_MaxLengthPassword(t *testing.T) {
	repo := &mockUserRepository{
		createFn: func(_ context.Context, user models.User) (models.User, error) {
			user.UserID = 1
			return user, nil
		},
	}
	svc := newTestAuthService(repo)

	request := validRegistration()
	request.Password = strings.Repeat("a1", 36) // 72 bytes exactly

	registered, err := svc.RegisterUser(context.Background(), request)

	require.NoError(t, err)
	assert.NotEmpty(t, registered.PasswordHash)
}

func TestAuthService_RegisterUser_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepository{
		createFn: func(_ context.Context, _ models.User) (models.User, error) {
			return models.User{}, store.ErrEmailAlreadyExists
		},
	}
	svc := newTestAuthService(repo)

	_, err := svc.RegisterUser(context.Background(), validRegistration())

	require.ErrorIs(t, err, ErrValidationFailed)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Fields, "email")
}

// ─────────────────────────────────────────────
// Login / VerifyEmailPassword
// ─────────────────────────────────────────────

func storedUser(t *testing.T, password string) models.User {
	t.Helper()

	hash, err := utils.HashPassword(password)
	require.NoError(t, err)

	return models.User{
		UserID:       1,
		Email:        "ana@example.com",
		Name:         "Ana",
		PasswordHash: hash,
		IsActive:     true,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	touched := false
	user := storedUser(t, "secret123")
	repo := &mockUserRepository{
		findByEmailFn: func(_ context.Context, email string) (models.User, error) {
			assert.Equal(t, "ana@example.com", email)
			return user, nil
		},
		touchFn: func(_ context.Context, userID int64) error {
			touched = true
			assert.Equal(t, int64(1), userID)
			return nil
		},
	}
	svc := newTestAuthService(repo)

	loggedIn, err := svc.Login(context.Background(), "ANA@example.com", "secret123")

	require.NoError(t, err)
	assert.Equal(t, user.UserID, loggedIn.UserID)
	assert.True(t, touched, "last_login must be refreshed on login")
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := &mockUserRepository{
		findByEmailFn: func(_ context.Context, _ string) (models.User, error) {
			return storedUser(t, "secret123"), nil
		},
	}
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), "ana@example.com", "wrongpass1")
	require.ErrorIs(t, err, ErrWrongPassword)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := &mockUserRepository{
		findByEmailFn: func(_ context.Context, _ string) (models.User, error) {
			return models.User{}, store.ErrNoUserWasFound
		},
	}
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), "missing@example.com", "secret123")
	require.ErrorIs(t, err, ErrWrongPassword)
}

func TestAuthService_Login_DeactivatedAccount(t *testing.T) {
	user := storedUser(t, "secret123")
	user.IsActive = false
	repo := &mockUserRepository{
		findByEmailFn: func(_ context.Context, _ string) (models.User, error) {
			return user, nil
		},
	}
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), "ana@example.com", "secret123")
	require.ErrorIs(t, err, ErrWrongPassword)
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	_, err := svc.Login(context.Background(), "", "")
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_Login_TouchFailureDoesNotFailLogin(t *testing.T) {
	repo := &mockUserRepository{
		findByEmailFn: func(_ context.Context, _ string) (models.User, error) {
			return storedUser(t, "secret123"), nil
		},
		touchFn: func(_ context.Context, _ int64) error {
			return errors.New("db is down")
		},
	}
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), "ana@example.com", "secret123")
	require.NoError(t, err)
}

func TestAuthService_VerifyEmailPassword_DoesNotTouchLastLogin(t *testing.T) {
	repo := &mockUserRepository{
		findByEmailFn: func(_ context.Context, _ string) (models.User, error) {
			return storedUser(t, "secret123"), nil
		},
		touchFn: func(_ context.Context, _ int64) error {
			t.Fatal("verify must not refresh last_login")
			return nil
		},
	}
	svc := newTestAuthService(repo)

	verified, err := svc.VerifyEmailPassword(context.Background(), "ana@example.com", "secret123")

	require.NoError(t, err)
	assert.Equal(t, int64(1), verified.UserID)
}

// ─────────────────────────────────────────────
// Tokens
// ─────────────────────────────────────────────

func TestAuthService_TokenRoundTrip(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	token, err := svc.CreateToken(context.Background(), models.User{UserID: 42})
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(context.Background(), token.SignedString)
	require.NoError(t, err)

	userID, err := parsed.GetUserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestAuthService_ParseToken_Invalid(t *testing.T) {
	svc := newTestAuthService(&mockUserRepository{})

	_, err := svc.ParseToken(context.Background(), "not-a-token")
	require.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
