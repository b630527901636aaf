package services

import (
	"context"
	"strings"
	"time"

	"github.com/mkowalczyk/campushub/internal/app/models"
	"github.com/mkowalczyk/campushub/internal/pkg/apperrors"
	"github.com/mkowalczyk/campushub/internal/pkg/auth"
	"github.com/mkowalczyk/campushub/internal/pkg/logger"
	"github.com/mkowalczyk/campushub/internal/pkg/ratelimit"
	"github.com/mkowalczyk/campushub/internal/pkg/validation"
)

// Login throttling: attempts are keyed per e-mail address so one noisy
// address cannot lock out the whole login endpoint.
const (
	loginRateLimitKeyPrefix = "login:"
	loginMaxAttempts        = 5
	loginWindow             = 15 * time.Minute
)

// UserStore is the user persistence surface the auth service needs
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateLastLogin(ctx context.Context, userID int64) error
}

// TokenStore is the refresh token persistence surface the auth service needs
type TokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetTokenByValue(ctx context.Context, token string) (userID int64, expiryDate time.Time, isRevoked bool, err error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID int64) error
}

// AuthService handles registration, login, logout and token refresh
type AuthService struct {
	userStore   UserStore
	tokenStore  TokenStore
	jwtService  *auth.JWTService
	loginLimits ratelimit.Limiter
}

// NewAuthService creates a new AuthService
func NewAuthService(userStore UserStore, tokenStore TokenStore, jwtService *auth.JWTService, loginLimits ratelimit.Limiter) *AuthService {
	return &AuthService{
		userStore:   userStore,
		tokenStore:  tokenStore,
		jwtService:  jwtService,
		loginLimits: loginLimits,
	}
}

// TokenPair bundles the artifacts of a successful authentication
type TokenPair struct {
	AccessToken           string
	RefreshToken          string
	ExpiresIn             int
	RefreshTokenExpiresIn int
}

// Register creates a new student account and logs it in. The password policy
// applies only here; login accepts whatever hash matches.
func (s *AuthService) Register(ctx context.Context, email, password, firstName, lastName string) (*models.User, *TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if !validation.ValidEmail(email) {
		return nil, nil, apperrors.NewValidationError("invalid email format")
	}
	if reason := validation.PasswordPolicy(password); reason != "" {
		return nil, nil, apperrors.NewValidationError(reason)
	}
	if !validation.ValidName(firstName) || !validation.ValidName(lastName) {
		return nil, nil, apperrors.NewValidationError("first and last name must be between 2 and 100 characters")
	}

	exists, err := s.userStore.EmailExists(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, apperrors.ErrEmailAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password during registration")
		return nil, nil, err
	}

	user := &models.User{
		Email:     email,
		Password:  hashedPassword,
		FirstName: firstName,
		LastName:  lastName,
		RoleType:  models.RoleStudent,
		IsActive:  true,
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		return nil, nil, err
	}

	logger.Info().Int64("userId", user.ID).Str("email", user.Email).Msg("User registered")

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Login authenticates a user by email and password. Attempts are throttled
// per e-mail; a throttled call fails before credentials are even checked.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, *TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	limitKey := loginRateLimitKeyPrefix + email

	allowed, err := s.loginLimits.Allow(ctx, limitKey, loginMaxAttempts, loginWindow)
	if err != nil {
		// A broken limiter must not take logins down with it.
		logger.Error().Err(err).Msg("Login rate limiter unavailable, allowing attempt")
		allowed = true
	}
	if !allowed {
		retryAfter, raErr := s.loginLimits.RemainingSeconds(ctx, limitKey)
		if raErr != nil {
			retryAfter = int(loginWindow.Seconds())
		}
		logger.Warn().Str("email", email).Msg("Login attempt rate limited")
		return nil, nil, apperrors.NewCustomError(apperrors.ErrRateLimited, "too many login attempts, try again later").
			WithDetails(map[string]interface{}{"retryAfter": retryAfter})
	}

	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		// Same answer for unknown email and wrong password.
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, nil, apperrors.ErrAccountDisabled
	}

	if err := s.userStore.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.Warn().Err(err).Int64("userId", user.ID).Msg("Failed to stamp last login")
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	logger.Info().Int64("userId", user.ID).Msg("User logged in")
	return user, pair, nil
}

// Logout revokes all of the user's refresh tokens. The access token stays
// valid until it expires.
func (s *AuthService) Logout(ctx context.Context, userID int64) error {
	if err := s.tokenStore.RevokeAllUserTokens(ctx, userID); err != nil {
		return err
	}
	logger.Info().Int64("userId", userID).Msg("User logged out")
	return nil
}

// RefreshToken rotates a refresh token: the presented token is revoked and a
// fresh pair is issued.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*models.User, *TokenPair, error) {
	userID, expiryDate, isRevoked, err := s.tokenStore.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, nil, apperrors.ErrTokenNotFound
	}
	if isRevoked {
		return nil, nil, apperrors.ErrTokenRevoked
	}
	if time.Now().After(expiryDate) {
		return nil, nil, apperrors.ErrTokenExpired
	}

	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if !user.IsActive {
		return nil, nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenStore.RevokeToken(ctx, refreshToken); err != nil {
		return nil, nil, err
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// GetCurrentUser loads the authenticated user's profile
func (s *AuthService) GetCurrentUser(ctx context.Context, userID int64) (*models.User, error) {
	return s.userStore.GetByID(ctx, userID)
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		logger.Error().Err(err).Int64("userId", user.ID).Msg("Failed to generate token pair")
		return nil, err
	}

	if err := s.tokenStore.CreateToken(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		logger.Error().Err(err).Int64("userId", user.ID).Msg("Failed to store refresh token")
		return nil, err
	}

	return &TokenPair{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		ExpiresIn:             expiresIn,
		RefreshTokenExpiresIn: refreshExpiresIn,
	}, nil
}
