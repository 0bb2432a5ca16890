// Package middleware holds the reusable Echo middleware: JWT auth,
// role checks, the Redis response cache and the Redis token bucket.
package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// AccessTokenCookie is the cookie the login handler sets alongside the
// JSON token response so browser clients work without managing headers.
const AccessTokenCookie = "access_token"

// JWTAuth validates the access token and injects "user_id" (uint64) and
// "role" (string) into the request context. The token is taken from the
// Authorization header when it carries a Bearer prefix, otherwise from
// the access_token cookie, so both API clients and browsers pass the
// same gate.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := tokenFromRequest(c)
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing access token"})
			}

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			// Numeric claims decode as float64.
			sub, ok := claims["sub"].(float64)
			if !ok || sub <= 0 {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}
			role, _ := claims["role"].(string)

			c.Set("user_id", uint64(sub))
			c.Set("role", role)
			return next(c)
		}
	}
}

func tokenFromRequest(c echo.Context) string {
	if auth := c.Request().Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if ck, err := c.Cookie(AccessTokenCookie); err == nil && ck.Value != "" {
		return ck.Value
	}
	return ""
}
