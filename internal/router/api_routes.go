package router

import (
	"github.com/labstack/echo/v4"

	"github.com/Yohannes19/sbms/internal/handler"
	"github.com/Yohannes19/sbms/internal/middleware"
)

// APIHandlers bundles the handlers behind the protected /v1 group.
type APIHandlers struct {
	Tenants   *handler.TenantHandler
	Rooms     *handler.RoomHandler
	Contracts *handler.ContractHandler
	Payments  *handler.PaymentHandler
	Dashboard *handler.DashboardHandler
}

// RegisterAPI registers the rental endpoints under /v1. Every route
// requires a valid token with the STAFF or ADMIN role; destructive
// deletes are ADMIN only. Extra middleware (rate limiter, response
// cache) runs after the auth gate, so it sees the authenticated
// user_id and can never answer a request JWTAuth would have rejected.
func RegisterAPI(e *echo.Echo, h APIHandlers, jwtSecret string, extra ...echo.MiddlewareFunc) {
	mw := append([]echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(middleware.RoleAdmin, middleware.RoleStaff),
	}, extra...)
	g := e.Group("/v1", mw...)
	adminOnly := middleware.RequireRole(middleware.RoleAdmin)

	// ---- Tenants ----
	g.POST("/tenants", h.Tenants.Create)
	g.GET("/tenants", h.Tenants.List)
	g.GET("/tenants/:id", h.Tenants.Get)
	g.PUT("/tenants/:id", h.Tenants.Update)
	g.PATCH("/tenants/:id", h.Tenants.Update)
	g.DELETE("/tenants/:id", h.Tenants.Delete, adminOnly)

	// ---- Rooms ----
	g.POST("/rooms", h.Rooms.Create)
	g.GET("/rooms", h.Rooms.List)
	g.GET("/rooms/:id", h.Rooms.Get)
	g.PUT("/rooms/:id", h.Rooms.Update)
	g.PATCH("/rooms/:id", h.Rooms.Update)
	g.DELETE("/rooms/:id", h.Rooms.Delete, adminOnly)

	// ---- Contracts ----
	g.POST("/contracts", h.Contracts.Create)
	g.GET("/contracts", h.Contracts.List)
	g.GET("/contracts/:id", h.Contracts.Get)
	g.PUT("/contracts/:id", h.Contracts.Update)
	g.PATCH("/contracts/:id", h.Contracts.Update)
	g.DELETE("/contracts/:id", h.Contracts.Delete, adminOnly)
	g.GET("/contracts/:id/payments", h.Contracts.ListPayments)

	// ---- Payments ----
	g.POST("/payments", h.Payments.Create)
	g.GET("/payments", h.Payments.List)
	g.GET("/payments/:id", h.Payments.Get)
	g.DELETE("/payments/:id", h.Payments.Delete, adminOnly)

	// ---- Dashboard ----
	g.GET("/dashboard", h.Dashboard.Summary)
}
