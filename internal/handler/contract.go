package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Yohannes19/sbms/internal/model"
	"github.com/Yohannes19/sbms/internal/money"
	"github.com/Yohannes19/sbms/internal/service"
)

// ContractHandler serves the contract endpoints on top of the
// ContractService, which owns the overlap invariant.
type ContractHandler struct {
	Contracts *service.ContractService
	Payments  *service.PaymentService
}

func NewContractHandler(contracts *service.ContractService, payments *service.PaymentService) *ContractHandler {
	if contracts == nil || payments == nil {
		panic("nil service passed to NewContractHandler")
	}
	return &ContractHandler{Contracts: contracts, Payments: payments}
}

type contractResp struct {
	ID        uint64      `json:"id"`
	TenantID  uint64      `json:"tenant_id"`
	RoomID    uint64      `json:"room_id"`
	StartDate string      `json:"start_date"`
	EndDate   *string     `json:"end_date"`
	Rent      json.Number `json:"rent_amount"`
	Active    bool        `json:"active"`
	CreatedAt string      `json:"created_at"`
	UpdatedAt string      `json:"updated_at"`
}

func toContractResp(ct *model.Contract) contractResp {
	return contractResp{
		ID:        ct.ID,
		TenantID:  ct.TenantID,
		RoomID:    ct.RoomID,
		StartDate: ct.StartDate,
		EndDate:   ct.EndDate,
		Rent:      json.Number(money.FormatCents(ct.RentCents)),
		Active:    ct.Active,
		CreatedAt: ct.CreatedAt,
		UpdatedAt: ct.UpdatedAt,
	}
}

type contractCreateReq struct {
	TenantID  uint64      `json:"tenant_id"`
	RoomID    uint64      `json:"room_id"`
	StartDate string      `json:"start_date"`
	EndDate   *string     `json:"end_date"`
	Rent      json.Number `json:"rent_amount"`
}

func bindContractCreate(c echo.Context) (service.CreateContractInput, error) {
	var in service.CreateContractInput
	if isForm(c) {
		f, err := parseForm(c)
		if err != nil {
			return in, err
		}
		if n, _, err := f.Uint("tenant_id"); err != nil {
			return in, err
		} else {
			in.TenantID = n
		}
		if n, _, err := f.Uint("room_id"); err != nil {
			return in, err
		} else {
			in.RoomID = n
		}
		in.StartDate, _ = f.String("start_date")
		if v, ok := f.String("end_date"); ok && v != "" {
			in.EndDate = &v
		}
		if n, _, err := f.Cents("rent_amount"); err != nil {
			return in, err
		} else {
			in.RentCents = n
		}
		return in, nil
	}

	var req contractCreateReq
	if err := c.Bind(&req); err != nil {
		return in, err
	}
	in.TenantID = req.TenantID
	in.RoomID = req.RoomID
	in.StartDate = req.StartDate
	if req.EndDate != nil && *req.EndDate != "" {
		in.EndDate = req.EndDate
	}
	if req.Rent != "" {
		cents, err := money.ParseCents(req.Rent.String())
		if err != nil {
			return in, &service.ValidationError{Field: "rent_amount", Reason: "must be a decimal amount"}
		}
		in.RentCents = cents
	}
	return in, nil
}

// Create handles POST /v1/contracts.
func (h *ContractHandler) Create(c echo.Context) error {
	in, err := bindContractCreate(c)
	if err != nil {
		return writeBindError(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	ct, err := h.Contracts.Create(ctx, in)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toContractResp(ct))
}

// List handles GET /v1/contracts.
func (h *ContractHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	contracts, err := h.Contracts.List(ctx)
	if err != nil {
		return writeServiceError(c, err)
	}
	out := make([]contractResp, 0, len(contracts))
	for i := range contracts {
		out = append(out, toContractResp(&contracts[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"contracts": out})
}

// Get handles GET /v1/contracts/:id. The response includes the exact
// total paid so far.
func (h *ContractHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	ct, err := h.Contracts.Get(ctx, id)
	if err != nil {
		return writeServiceError(c, err)
	}
	total, err := h.Payments.TotalPaid(ctx, id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"contract":   toContractResp(ct),
		"total_paid": json.Number(money.FormatCents(total)),
	})
}

type contractUpdateReq struct {
	StartDate *string      `json:"start_date"`
	EndDate   *string      `json:"end_date"`
	Rent      *json.Number `json:"rent_amount"`
	Active    *bool        `json:"active"`
}

// Update handles PATCH /v1/contracts/:id. An explicit empty end_date
// makes the contract open-ended; date or active changes re-run the
// overlap check.
func (h *ContractHandler) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req contractUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	in := service.UpdateContractInput{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Active:    req.Active,
	}
	if req.Rent != nil {
		cents, err := money.ParseCents(req.Rent.String())
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid rent_amount", "field": "rent_amount"})
		}
		in.RentCents = &cents
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	ct, err := h.Contracts.Update(ctx, id, in)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toContractResp(ct))
}

// Delete handles DELETE /v1/contracts/:id?cascade=true.
func (h *ContractHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Contracts.Delete(ctx, id, cascadeQuery(c)); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListPayments handles GET /v1/contracts/:id/payments, returning the
// payment history along with the running total.
func (h *ContractHandler) ListPayments(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	payments, err := h.Payments.ListByContract(ctx, id)
	if err != nil {
		return writeServiceError(c, err)
	}
	total, err := h.Payments.TotalPaid(ctx, id)
	if err != nil {
		return writeServiceError(c, err)
	}
	out := make([]paymentResp, 0, len(payments))
	for i := range payments {
		out = append(out, toPaymentResp(&payments[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"payments":   out,
		"total_paid": json.Number(money.FormatCents(total)),
	})
}
