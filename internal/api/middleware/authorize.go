package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/example/user-product-api/internal/api/metrics"
	"github.com/example/user-product-api/internal/core/domain"
	"github.com/example/user-product-api/internal/core/ports"
)

// Authorize enforces the endpoint's role requirement through the
// authorization gate and injects the resolved identity into the request
// context under "identity". An empty requiredRole still resolves the account,
// so a soft-deleted user is rejected even with a valid token.
func Authorize(gate ports.Authorizer, requiredRole string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			subject, _ := c.Get("subject").(string)
			if subject == "" {
				return domain.ErrUnauthenticated
			}

			identity, err := gate.Authorize(c.Request().Context(), subject, requiredRole)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrUnauthenticated):
					metrics.AuthorizationDenialsTotal.WithLabelValues("unknown_subject").Inc()
				case errors.Is(err, domain.ErrForbidden):
					metrics.AuthorizationDenialsTotal.WithLabelValues("missing_role").Inc()
				}
				return err
			}

			c.Set("identity", identity)
			return next(c)
		}
	}
}
