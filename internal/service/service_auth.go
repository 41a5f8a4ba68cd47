package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PedroVerardo/skinone-Upload-Classification/internal/config"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/logger"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/store"
	"github.com/PedroVerardo/skinone-Upload-Classification/internal/utils"
	"github.com/PedroVerardo/skinone-Upload-Classification/models"
)

// authService is the concrete implementation of AuthService.
// It handles user registration, credential verification, and JWT token
// lifecycle using a UserRepository for persistence and bcrypt for password
// hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService wired to the given UserRepository
// and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only after
// construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// RegisterUser creates a new user account.
//
// The email is validated for shape and normalised to lower case, the password
// is checked for minimum strength and hashed with bcrypt, then persistence is
// delegated to the UserRepository. New accounts are active and non-staff.
//
// Returns the persisted user (with a server-assigned UserID) or:
//   - A [ValidationError] wrapping [ErrValidationFailed] when any field fails
//     validation, including a duplicate email ([store.ErrEmailAlreadyExists]
//     is reshaped into a field-keyed validation failure to match the public
//     registration contract).
func (a *authService) RegisterUser(ctx context.Context, request models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	request.Email = strings.ToLower(strings.TrimSpace(request.Email))

	if validationErr := validateRegistration(request); validationErr != nil {
		log.Error().Str("email", request.Email).Msg("registration validation failed")
		return models.User{}, validationErr
	}

	passwordHash, err := utils.HashPassword(request.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user := models.User{
		Email:        request.Email,
		Name:         request.Name,
		PasswordHash: passwordHash,
		Coren:        request.Coren,
		Specialty:    request.Specialty,
		Institution:  request.Institution,
		IsActive:     true,
	}

	registeredUser, err := a.userRepository.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			log.Error().Str("email", request.Email).Msg("email already registered")
			return models.User{}, newValidationError("email", "user with this email already exists")
		}

		log.Err(err).Str("email", request.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing user and refreshes last_login.
//
// Returns the authenticated user record or:
//   - ErrInvalidDataProvided if email or password is empty.
//   - ErrWrongPassword on unknown email, bcrypt mismatch, or a deactivated
//     account; the three cases are indistinguishable to the caller.
func (a *authService) Login(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	foundUser, err := a.verifyCredentials(ctx, email, password)
	if err != nil {
		return models.User{}, err
	}

	if touchErr := a.userRepository.TouchLastLogin(ctx, foundUser.UserID); touchErr != nil {
		// login still succeeds, last_login is best effort
		log.Err(touchErr).Int64("user_id", foundUser.UserID).Msg("failed to refresh last login timestamp")
	}

	return foundUser, nil
}

// VerifyEmailPassword checks a credential pair without issuing a token.
// Error semantics are identical to [authService.Login] but last_login is
// not refreshed.
func (a *authService) VerifyEmailPassword(ctx context.Context, email, password string) (models.User, error) {
	return a.verifyCredentials(ctx, email, password)
}

// verifyCredentials looks up the account by lower-cased email and compares
// the supplied password against the stored bcrypt hash. Deactivated accounts
// fail verification even with correct credentials.
func (a *authService) verifyCredentials(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if email == "" || password == "" {
		log.Error().Msg("empty credentials provided")
		return models.User{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Error().Str("email", email).Msg("unknown email")
			return models.User{}, ErrWrongPassword
		}

		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !utils.CheckPassword(foundUser.PasswordHash, password) {
		log.Error().Int64("id", foundUser.UserID).Str("email", foundUser.Email).Msg("wrong password")
		return models.User{}, ErrWrongPassword
	}

	if !foundUser.IsActive {
		log.Error().Int64("id", foundUser.UserID).Str("email", foundUser.Email).Msg("account is deactivated")
		return models.User{}, ErrWrongPassword
	}

	return foundUser, nil
}

// GetUser retrieves a user account by ID. Used by the auth middleware to
// resolve token subjects into full identities.
func (a *authService) GetUser(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	foundUser, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("user search by id failed")
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}

	return foundUser, nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the configured
// tokenIssuer as the "iss" claim, and expires after tokenDuration.
//
// Returns the token model on success or a wrapped error if JWT generation fails.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.UserID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature and
// the issuer claim. Any validation failure (expired, wrong issuer, malformed)
// is normalised to ErrTokenIsExpiredOrInvalid so that callers do not need to
// inspect low-level JWT errors.
//
// Returns the decoded token model on success or ErrTokenIsExpiredOrInvalid on
// any validation failure.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
