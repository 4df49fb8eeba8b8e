package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/bboom-app/bboom-api/app/observability/metrics"
	"github.com/bboom-app/bboom-api/config"
	"github.com/bboom-app/bboom-api/internal/api"
)

var _ AuthService = (*AuthServiceImpl)(nil)

var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("timing-equalizer"), bcrypt.DefaultCost)

// AuthService is the business-logic contract for identity operations.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
	Login(ctx context.Context, username, password string) (accessToken, refreshToken string, err error)
	RefreshSession(ctx context.Context, refreshToken string) (string, string, error)
	AuthenticateUser(ctx context.Context, username, password string) (*User, error)
}

type AuthServiceImpl struct {
	repo   AuthRepo
	cfg    *config.Config
	policy PasswordPolicy
	logger *slog.Logger
}

func NewAuthService(repo AuthRepo, cfg *config.Config, logger *slog.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		repo:   repo,
		cfg:    cfg,
		policy: NewPasswordPolicy(cfg.Password.MinLength),
		logger: logger,
	}
}

// Register validates the candidate credentials, hashes the password and
// persists the user. Validation failures come back as api.FieldErrors; a taken
// username comes back wrapping api.ErrConflict. Nothing is persisted on
// failure.
func (s *AuthServiceImpl) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	start := time.Now()
	defer func() {
		m := metrics.Get()
		m.RegisterRequestsTotal.Add(ctx, 1)
		m.RegisterDurationSeconds.Record(ctx, time.Since(start).Seconds())
	}()

	if fieldErrors := s.validateRegistration(req); fieldErrors != nil {
		return nil, fieldErrors
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, req.Username, req.Email, string(hash))
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "User registered", slog.String("username", user.Username))
	return &RegisterResponse{ID: user.ID, Username: user.Username, Email: user.Email}, nil
}

// validateRegistration mirrors the registration contract: required fields,
// password/repeat equality, then the strength policy. A mismatch is reported
// alone, as a non-field error, before any policy check runs.
func (s *AuthServiceImpl) validateRegistration(req RegisterRequest) api.FieldErrors {
	fieldErrors := api.FieldErrors{}
	if req.Username == "" {
		fieldErrors.Add("username", "This field is required.")
	}
	if req.Password == "" {
		fieldErrors.Add("password", "This field is required.")
	}
	if len(fieldErrors) > 0 {
		return fieldErrors
	}

	if req.Password != req.PasswordRepeat {
		fieldErrors.Add(api.NonFieldErrors, "Password mismatch")
		return fieldErrors
	}

	return s.policy.Validate(req.Password, req.Username, req.Email)
}

// AuthenticateUser resolves a {username, password} pair to an active user.
// Unknown username, wrong password and inactive account are deliberately
// indistinguishable: all return api.ErrUnauthenticated.
func (s *AuthServiceImpl) AuthenticateUser(ctx context.Context, username, password string) (*User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			// Burn a comparison anyway so timing does not leak existence
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, api.ErrUnauthenticated
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, api.ErrUnauthenticated
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, api.ErrUnauthenticated
	}
	return user, nil
}

// Login authenticates the credentials and issues an access/refresh token pair.
func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (string, string, error) {
	m := metrics.Get()
	m.LoginRequestsTotal.Add(ctx, 1)

	user, err := s.AuthenticateUser(ctx, username, password)
	if err != nil {
		m.LoginFailuresTotal.Add(ctx, 1)
		return "", "", err
	}

	return s.issueTokenPair(ctx, user)
}

// RefreshSession rotates a refresh token: the old token is revoked and a fresh
// pair is issued. Expired, revoked or unknown tokens fail with
// api.ErrUnauthenticated.
func (s *AuthServiceImpl) RefreshSession(ctx context.Context, refreshToken string) (string, string, error) {
	rt, err := s.repo.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return "", "", api.ErrUnauthenticated
		}
		return "", "", err
	}
	if time.Now().After(rt.ExpiresAt) || rt.RevokedAt != nil {
		return "", "", api.ErrUnauthenticated
	}

	user, err := s.repo.GetUserByID(ctx, rt.UserID)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			return "", "", api.ErrUnauthenticated
		}
		return "", "", err
	}
	if !user.IsActive {
		return "", "", api.ErrUnauthenticated
	}

	if err := s.repo.RevokeRefreshToken(ctx, refreshToken); err != nil {
		s.logger.WarnContext(ctx, "Failed to revoke rotated refresh token", slog.Any("error", err))
	}

	return s.issueTokenPair(ctx, user)
}

func (s *AuthServiceImpl) issueTokenPair(ctx context.Context, user *User) (string, string, error) {
	accessToken, err := generateAccessToken(user, s.cfg.JWT)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken := uuid.NewString()
	expiresAt := time.Now().Add(s.cfg.JWT.RefreshTokenTTL)
	if err := s.repo.StoreRefreshToken(ctx, user.ID, refreshToken, expiresAt); err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// generateAccessToken signs an HS256 access token carrying the user's public
// identity claims.
func generateAccessToken(user *User, jwtCfg config.JWTConfig) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:   user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    jwtCfg.Issuer,
			Audience:  jwt.ClaimStrings{jwtCfg.Audience},
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(jwtCfg.AccessTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(jwtCfg.SecretKey))
}
