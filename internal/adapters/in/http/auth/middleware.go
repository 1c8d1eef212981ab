package auth

import (
	"strings"

	"github.com/labstack/echo/v4"
)

const identityKey = "ferryops.identity"

// RequireRole rejects requests without a valid bearer token for one of roles
// and stores the identity for IdentityFrom. Errors are left to the echo error
// handler.
func RequireRole(gate *Gate, roles ...Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := gate.Authorize(BearerToken(c), roles...)
			if err != nil {
				return err
			}
			c.Set(identityKey, identity)
			return next(c)
		}
	}
}

// BearerToken reads "Authorization: Bearer <token>". Browsers cannot set
// headers on a websocket upgrade, so the token query parameter is accepted as
// well.
func BearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return c.QueryParam("token")
}

// IdentityFrom returns the identity stored by RequireRole.
func IdentityFrom(c echo.Context) (Identity, bool) {
	identity, ok := c.Get(identityKey).(Identity)
	return identity, ok
}
