package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jwt-auth-api/backend/internal/core/domain"
	"github.com/jwt-auth-api/backend/internal/core/ports"
)

// dummyPassword is hashed once per service so a login for an unknown email
// still pays for one full hash comparison.
const dummyPassword = "timing-equalizer"

// AuthService implements registration and login.
type AuthService struct {
	store     ports.UserStore
	hasher    ports.PasswordHasher
	tokens    ports.TokenIssuer
	throttle  ports.LoginThrottle
	logger    zerolog.Logger
	dummyHash string
	now       func() time.Time
}

// AuthOption customises an AuthService.
type AuthOption func(*AuthService)

// WithLoginThrottle enables lockout after repeated failed logins.
func WithLoginThrottle(t ports.LoginThrottle) AuthOption {
	return func(s *AuthService) { s.throttle = t }
}

func NewAuthService(store ports.UserStore, hasher ports.PasswordHasher, tokens ports.TokenIssuer, logger zerolog.Logger, opts ...AuthOption) (*AuthService, error) {
	dummy, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("prepare dummy hash: %w", err)
	}
	s := &AuthService{
		store:     store,
		hasher:    hasher,
		tokens:    tokens,
		logger:    logger,
		dummyHash: dummy,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Register creates a ROLE_USER account and returns it with a fresh token.
// No token is issued when the insert fails.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", domain.ErrMissingCredentials
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Roles:        []string{domain.RoleUser},
		CreatedAt:    s.now().UTC(),
	}

	created, err := s.store.Insert(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			s.logger.Info().Str("email", email).Msg("registration rejected: email already registered")
		}
		return nil, "", err
	}

	// The user stays persisted if signing fails; the caller can log in later.
	token, err := s.tokens.Issue(created)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user registered")
	return created, token, nil
}

// Login verifies the credentials and returns a token. Unknown emails and
// wrong passwords fail with the same domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", domain.ErrMissingCredentials
	}

	if s.isBlocked(ctx, email) {
		s.logger.Warn().Str("email", email).Msg("login blocked: too many failed attempts")
		return "", domain.ErrTooManyAttempts
	}

	user, err := s.store.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return "", fmt.Errorf("find user: %w", err)
	}

	if user == nil {
		_ = s.hasher.Verify(s.dummyHash, password)
		s.recordFailure(ctx, email)
		return "", domain.ErrInvalidCredentials
	}
	if !s.hasher.Verify(user.PasswordHash, password) {
		s.recordFailure(ctx, email)
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	s.resetFailures(ctx, email)
	return token, nil
}

// Throttle errors never block a login.

func (s *AuthService) isBlocked(ctx context.Context, email string) bool {
	if s.throttle == nil {
		return false
	}
	blocked, err := s.throttle.Blocked(ctx, email)
	if err != nil {
		s.logger.Error().Err(err).Msg("login throttle check failed")
		return false
	}
	return blocked
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	s.logger.Info().Str("email", email).Msg("login failed: invalid credentials")
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		s.logger.Error().Err(err).Msg("login throttle record failed")
	}
}

func (s *AuthService) resetFailures(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.Reset(ctx, email); err != nil {
		s.logger.Error().Err(err).Msg("login throttle reset failed")
	}
}
