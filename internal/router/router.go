// Package router registers the HTTP routes of the API.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Yohannes19/sbms/internal/handler"
	"github.com/Yohannes19/sbms/internal/middleware"
)

// RegisterRoutes registers the unauthenticated routes. Only the health
// check lives here; everything else is behind auth.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the auth endpoints. Register, login and
// refresh live under /v1/auth without a token; logout and /v1/me
// require one. Extra middleware (the rate limiter, keyed by IP for
// these anonymous routes) applies to the whole auth group.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	g := e.Group("/v1/auth", extra...)
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout, middleware.JWTAuth(jwtSecret))

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}
