package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/example/user-product-api/internal/api/metrics"
	"github.com/example/user-product-api/internal/core/domain"
	"github.com/example/user-product-api/internal/core/ports"
)

// AuthService implements login and registration on top of the user lifecycle
// service, the password hasher and the token service.
type AuthService struct {
	users     ports.UserRepository
	lifecycle ports.UserService
	hasher    ports.PasswordHasher
	tokens    ports.TokenService
	logger    zerolog.Logger
}

func NewAuthService(users ports.UserRepository, lifecycle ports.UserService, hasher ports.PasswordHasher, tokens ports.TokenService, logger zerolog.Logger) *AuthService {
	return &AuthService{
		users:     users,
		lifecycle: lifecycle,
		hasher:    hasher,
		tokens:    tokens,
		logger:    logger,
	}
}

// Login verifies the credentials and issues a bearer token bound to the
// username. An unknown username and a wrong password are deliberately
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.TokenResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresIn, err := s.tokens.Issue(user.Username)
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("username", user.Username).Msg("login succeeded")

	return &ports.TokenResult{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn.Milliseconds(),
	}, nil
}

// Register creates a new account through the user lifecycle service, so role
// resolution and the ROLE_USER fallback behave exactly as admin creation.
func (s *AuthService) Register(ctx context.Context, in ports.CreateUserInput) (*ports.UserView, error) {
	view, err := s.lifecycle.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("username", view.Username).Msg("user registered")
	return view, nil
}
