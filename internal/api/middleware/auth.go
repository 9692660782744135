package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/example/user-product-api/internal/api/metrics"
	"github.com/example/user-product-api/internal/core/domain"
	"github.com/example/user-product-api/internal/core/ports"
)

// Authenticate verifies the bearer token and injects the verified subject
// into the request context under "subject". Verification is stateless; the
// subject is not resolved against the store here, that is the authorization
// gate's job.
func Authenticate(tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				metrics.TokenVerificationsTotal.WithLabelValues("rejected").Inc()
				return domain.ErrUnauthenticated
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.TokenVerificationsTotal.WithLabelValues("rejected").Inc()
				return domain.ErrUnauthenticated
			}

			subject, err := tokens.Verify(parts[1])
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("rejected").Inc()
				return domain.ErrInvalidToken
			}

			metrics.TokenVerificationsTotal.WithLabelValues("accepted").Inc()
			c.Set("subject", subject)
			return next(c)
		}
	}
}
