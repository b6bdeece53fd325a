package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"greenlands/pkg/apperr"
	"greenlands/pkg/policy"
	"greenlands/pkg/token"
)

const identityKey = "identity"

// RequireAuth resolves the Authorization: Bearer header into an identity and
// rejects the request before the handler runs. 401 when the header is
// absent, 401 when the token is malformed or expired.
func RequireAuth(tm *token.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Request().Header.Get("Authorization")
			if h == "" || !strings.HasPrefix(h, "Bearer ") {
				return apperr.Unauthenticated(c, "No token, authorization denied")
			}
			id, err := tm.Parse(strings.TrimPrefix(h, "Bearer "))
			if err != nil {
				return apperr.InvalidToken(c)
			}
			c.Set(identityKey, id)
			return next(c)
		}
	}
}

// RequireRoles gates a route group on the policy table entry for route.
// Runs after RequireAuth.
func RequireRoles(route string) echo.MiddlewareFunc {
	allowed := policy.AllowedRoles(route)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return apperr.Unauthenticated(c, "No token, authorization denied")
			}
			if !policy.Allowed(id.Role, allowed) {
				return apperr.Forbidden(c)
			}
			return next(c)
		}
	}
}

// IdentityFrom returns the identity RequireAuth attached to the request.
func IdentityFrom(c echo.Context) (policy.Identity, bool) {
	id, ok := c.Get(identityKey).(policy.Identity)
	return id, ok
}

// SetIdentity is for tests that call handlers without the middleware stack.
func SetIdentity(c echo.Context, id policy.Identity) {
	c.Set(identityKey, id)
}
