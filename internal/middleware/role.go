package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Role claim values issued at login. Superusers get ADMIN, everyone
// else STAFF.
const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

// RequireRole rejects requests whose "role" context value, as stored by
// JWTAuth, is not in the allowed set. Missing or mistyped roles are
// treated the same as disallowed ones.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
