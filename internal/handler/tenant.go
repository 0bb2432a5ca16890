package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Yohannes19/sbms/internal/model"
	"github.com/Yohannes19/sbms/internal/repository"
)

// TenantHandler serves the tenant CRUD endpoints.
type TenantHandler struct {
	Tenants *repository.TenantRepo
}

func NewTenantHandler(tenants *repository.TenantRepo) *TenantHandler {
	if tenants == nil {
		panic("nil repository passed to NewTenantHandler")
	}
	return &TenantHandler{Tenants: tenants}
}

type tenantResp struct {
	ID        uint64  `json:"id"`
	Name      string  `json:"name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	CreatedAt string  `json:"created_at"`
}

func toTenantResp(t *model.Tenant) tenantResp {
	return tenantResp{ID: t.ID, Name: t.Name, Email: t.Email, Phone: t.Phone, CreatedAt: t.CreatedAt}
}

type tenantCreateReq struct {
	Name  string  `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// bindTenantCreate accepts either a JSON body or a form post.
func bindTenantCreate(c echo.Context) (tenantCreateReq, error) {
	var req tenantCreateReq
	if isForm(c) {
		f, err := parseForm(c)
		if err != nil {
			return req, err
		}
		req.Name, _ = f.String("name")
		if v, ok := f.String("email"); ok && v != "" {
			req.Email = &v
		}
		if v, ok := f.String("phone"); ok && v != "" {
			req.Phone = &v
		}
		return req, nil
	}
	return req, c.Bind(&req)
}

// Create handles POST /v1/tenants.
func (h *TenantHandler) Create(c echo.Context) error {
	req, err := bindTenantCreate(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required", "field": "name"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	t := &model.Tenant{Name: req.Name, Email: req.Email, Phone: req.Phone}
	if err := h.Tenants.Create(ctx, t); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toTenantResp(t))
}

// List handles GET /v1/tenants.
func (h *TenantHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	tenants, err := h.Tenants.List(ctx)
	if err != nil {
		return writeServiceError(c, err)
	}
	out := make([]tenantResp, 0, len(tenants))
	for i := range tenants {
		out = append(out, toTenantResp(&tenants[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"tenants": out})
}

// Get handles GET /v1/tenants/:id.
func (h *TenantHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	t, err := h.Tenants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTenantNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "tenant not found"})
		}
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toTenantResp(t))
}

type tenantUpdateReq struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// Update handles PATCH /v1/tenants/:id. Absent fields keep their
// value; an empty email or phone clears the column.
func (h *TenantHandler) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req tenantUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	t, err := h.Tenants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTenantNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "tenant not found"})
		}
		return writeServiceError(c, err)
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "name cannot be empty", "field": "name"})
		}
		t.Name = name
	}
	if req.Email != nil {
		if *req.Email == "" {
			t.Email = nil
		} else {
			t.Email = req.Email
		}
	}
	if req.Phone != nil {
		if *req.Phone == "" {
			t.Phone = nil
		} else {
			t.Phone = req.Phone
		}
	}
	if err := h.Tenants.Update(ctx, t); err != nil {
		if errors.Is(err, repository.ErrTenantNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "tenant not found"})
		}
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toTenantResp(t))
}

// Delete handles DELETE /v1/tenants/:id. Tenants with contracts are
// only removed when ?cascade=true, taking their contracts and payments
// along; otherwise the delete is rejected with 409.
func (h *TenantHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	err = h.Tenants.Delete(ctx, id, cascadeQuery(c))
	switch {
	case err == nil:
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, repository.ErrTenantNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "tenant not found"})
	case errors.Is(err, repository.ErrHasDependents):
		return c.JSON(http.StatusConflict, echo.Map{"error": "tenant has contracts; pass cascade=true to delete them as well"})
	default:
		return writeServiceError(c, err)
	}
}
