package http

import (
	"net/http"

	"livetrack/internal/adapters/in/auth"
	"livetrack/internal/core/ports"

	"github.com/labstack/echo/v4"
)

const identityContextKey = "identity"

// RequireIdentity authenticates every request in the group from the
// Authorization header and stores the resulting identity in the echo context.
func RequireIdentity(verifier *auth.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			identity, err := verifier.Verify(ctx.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Missing or invalid token",
				})
			}

			ctx.Set(identityContextKey, identity)
			return next(ctx)
		}
	}
}

func identityFrom(ctx echo.Context) (ports.Identity, bool) {
	identity, ok := ctx.Get(identityContextKey).(ports.Identity)
	return identity, ok
}
