package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/example/user-product-api/internal/core/domain"
)

// ctxIdentity extracts the identity injected by the Authorize middleware and
// performs a fast-fail check before any service call: a missing identity
// means the middleware chain did not run, so the request cannot proceed.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	identity, ok := c.Get("identity").(domain.Identity)
	if !ok || identity.Username == "" {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	return identity, nil
}
