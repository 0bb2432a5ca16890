package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Yohannes19/sbms/internal/money"
	"github.com/Yohannes19/sbms/internal/repository"
)

// DashboardHandler aggregates the headline numbers shown on the
// landing screen.
type DashboardHandler struct {
	Tenants   *repository.TenantRepo
	Rooms     *repository.RoomRepo
	Contracts *repository.ContractRepo
	Payments  *repository.PaymentRepo
}

func NewDashboardHandler(t *repository.TenantRepo, r *repository.RoomRepo, c *repository.ContractRepo, p *repository.PaymentRepo) *DashboardHandler {
	if t == nil || r == nil || c == nil || p == nil {
		panic("nil repository passed to NewDashboardHandler")
	}
	return &DashboardHandler{Tenants: t, Rooms: r, Contracts: c, Payments: p}
}

// Summary handles GET /v1/dashboard.
func (h *DashboardHandler) Summary(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	tenants, err := h.Tenants.Count(ctx)
	if err != nil {
		return writeServiceError(c, err)
	}
	rooms, err := h.Rooms.Count(ctx)
	if err != nil {
		return writeServiceError(c, err)
	}
	active, err := h.Contracts.CountActive(ctx)
	if err != nil {
		return writeServiceError(c, err)
	}
	collected, err := h.Payments.TotalCollected(ctx)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"tenants":          tenants,
		"rooms":            rooms,
		"active_contracts": active,
		"total_collected":  json.Number(money.FormatCents(collected)),
	})
}
