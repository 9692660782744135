package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/example/user-product-api/internal/core/domain"
)

type stubGate struct {
	identities map[string]domain.Identity
}

func (g *stubGate) Authorize(_ context.Context, username, requiredRole string) (domain.Identity, error) {
	identity, ok := g.identities[username]
	if !ok {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	if requiredRole == "" {
		return identity, nil
	}
	for _, r := range identity.Roles {
		if r == requiredRole {
			return identity, nil
		}
	}
	return domain.Identity{}, domain.ErrForbidden
}

func newAuthorizeContext(t *testing.T, subject any) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if subject != nil {
		c.Set("subject", subject)
	}
	return c
}

func TestAuthorize_AllowsAndInjectsIdentity(t *testing.T) {
	gate := &stubGate{identities: map[string]domain.Identity{
		"alice": {UserID: 1, Username: "alice", Name: "Alice", Roles: []string{domain.RoleAdmin}},
	}}
	c := newAuthorizeContext(t, "alice")

	called := false
	handler := Authorize(gate, domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		identity, ok := c.Get("identity").(domain.Identity)
		if !ok {
			t.Fatalf("identity not set on context")
		}
		if identity.UserID != 1 {
			t.Fatalf("unexpected identity: %+v", identity)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuthorize_MissingSubject(t *testing.T) {
	gate := &stubGate{identities: map[string]domain.Identity{}}
	c := newAuthorizeContext(t, nil)

	handler := Authorize(gate, "")(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthorize_UnknownSubject(t *testing.T) {
	gate := &stubGate{identities: map[string]domain.Identity{}}
	c := newAuthorizeContext(t, "ghost")

	handler := Authorize(gate, "")(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthorize_Forbidden(t *testing.T) {
	gate := &stubGate{identities: map[string]domain.Identity{
		"bob": {UserID: 2, Username: "bob", Roles: []string{domain.RoleUser}},
	}}
	c := newAuthorizeContext(t, "bob")

	handler := Authorize(gate, domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
