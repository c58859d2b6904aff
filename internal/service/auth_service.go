package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/cafeteria-service/internal/auth"
	"github.com/spec-kit/cafeteria-service/internal/config"
	"github.com/spec-kit/cafeteria-service/internal/domain"
	"github.com/spec-kit/cafeteria-service/internal/repository"
	apperrors "github.com/spec-kit/cafeteria-service/pkg/util/errorutil"
)

// AuthService coordinates credential verification, token issuance and the
// token-to-session bridge lookup.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
}

// NewAuthService builds the service. It fails when the signing key is
// missing, so a misconfigured process never starts serving.
func NewAuthService(cfg config.Config, deps AuthDependencies) (*AuthService, error) {
	tokenMgr, err := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)
	if err != nil {
		return nil, err
	}
	return &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   tokenMgr,
		bcryptCost: cfg.Auth.BcryptCost,
	}, nil
}

// Authenticate verifies a login identifier and secret. An unknown email and a
// wrong password produce the same outcome; callers cannot enumerate accounts.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	return user, nil
}

// IssueToken authenticates the credentials and mints a bearer token whose
// subject is the user's email.
func (s *AuthService) IssueToken(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	token, exp, err := s.tokenMgr.Generate(user.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// ResolveToken verifies raw and resolves its subject to a user. Invalid
// signature, expiry and an unresolvable subject all collapse to one outward
// failure; the caller learns only that the token did not work.
func (s *AuthService) ResolveToken(ctx context.Context, raw string) (*domain.User, error) {
	if !s.tokenMgr.Verify(raw) {
		return nil, apperrors.NewUnauthorized("invalid token")
	}
	subject, err := s.tokenMgr.Subject(raw)
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid token")
	}
	user, err := s.users.GetByEmail(ctx, subject)
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid token")
	}
	return user, nil
}

// RegisterClient creates a new CLIENT account.
func (s *AuthService) RegisterClient(ctx context.Context, name, email, password, address string) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Address:      address,
		Role:         domain.RoleClient,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
