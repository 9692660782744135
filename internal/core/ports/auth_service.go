package ports

import (
	"context"
	"time"

	"github.com/example/user-product-api/internal/core/domain"
)

// TokenResult is the payload returned by a successful login. ExpiresIn is the
// validity window in milliseconds.
type TokenResult struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// AuthService implements credential verification and account registration.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*TokenResult, error)
	Register(ctx context.Context, in CreateUserInput) (*UserView, error)
}

// TokenService issues and verifies stateless, signed identity tokens bound to
// a subject (the username). There is no revocation mechanism; a token stays
// valid for its full window.
type TokenService interface {
	Issue(subject string) (token string, expiresIn time.Duration, err error)
	// Verify checks signature and expiry and returns the embedded subject.
	// Any failure is reported as domain.ErrInvalidToken.
	Verify(token string) (subject string, err error)
}

// Authorizer resolves a verified subject to its account and checks role
// membership. An absent (or soft-deleted) account fails with
// domain.ErrUnauthenticated; an insufficient role set fails with
// domain.ErrForbidden. An empty requiredRole permits any resolved account.
type Authorizer interface {
	Authorize(ctx context.Context, username, requiredRole string) (domain.Identity, error)
}

// PasswordHasher produces and verifies one-way salted password digests.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	// Verify reports only match or no match, never why.
	Verify(plain, digest string) bool
}
