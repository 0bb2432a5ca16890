package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Yohannes19/sbms/internal/model"
	"github.com/Yohannes19/sbms/internal/money"
	"github.com/Yohannes19/sbms/internal/service"
)

// PaymentHandler serves the payment endpoints. Payments are append
// only: create, read and delete, no update.
type PaymentHandler struct {
	Payments *service.PaymentService
}

func NewPaymentHandler(payments *service.PaymentService) *PaymentHandler {
	if payments == nil {
		panic("nil service passed to NewPaymentHandler")
	}
	return &PaymentHandler{Payments: payments}
}

type paymentResp struct {
	ID         uint64      `json:"id"`
	ContractID uint64      `json:"contract_id"`
	Amount     json.Number `json:"amount"`
	PaidAt     string      `json:"paid_at"`
	Method     *string     `json:"method"`
	Note       *string     `json:"note"`
}

func toPaymentResp(p *model.Payment) paymentResp {
	return paymentResp{
		ID:         p.ID,
		ContractID: p.ContractID,
		Amount:     json.Number(money.FormatCents(p.AmountCents)),
		PaidAt:     p.PaidAt,
		Method:     p.Method,
		Note:       p.Note,
	}
}

type paymentCreateReq struct {
	ContractID uint64      `json:"contract_id"`
	Amount     json.Number `json:"amount"`
	Method     *string     `json:"method"`
	Note       *string     `json:"note"`
}

func bindPaymentCreate(c echo.Context) (service.CreatePaymentInput, error) {
	var in service.CreatePaymentInput
	if isForm(c) {
		f, err := parseForm(c)
		if err != nil {
			return in, err
		}
		if n, _, err := f.Uint("contract_id"); err != nil {
			return in, err
		} else {
			in.ContractID = n
		}
		if n, _, err := f.Cents("amount"); err != nil {
			return in, err
		} else {
			in.AmountCents = n
		}
		if v, ok := f.String("method"); ok && v != "" {
			in.Method = &v
		}
		if v, ok := f.String("note"); ok && v != "" {
			in.Note = &v
		}
		return in, nil
	}

	var req paymentCreateReq
	if err := c.Bind(&req); err != nil {
		return in, err
	}
	in.ContractID = req.ContractID
	in.Method = req.Method
	in.Note = req.Note
	if req.Amount != "" {
		cents, err := money.ParseCents(req.Amount.String())
		if err != nil {
			return in, &service.ValidationError{Field: "amount", Reason: "must be a decimal amount"}
		}
		in.AmountCents = cents
	}
	return in, nil
}

// Create handles POST /v1/payments.
func (h *PaymentHandler) Create(c echo.Context) error {
	in, err := bindPaymentCreate(c)
	if err != nil {
		return writeBindError(c, err)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Payments.Create(ctx, in)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toPaymentResp(p))
}

// List handles GET /v1/payments.
func (h *PaymentHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	payments, err := h.Payments.List(ctx)
	if err != nil {
		return writeServiceError(c, err)
	}
	out := make([]paymentResp, 0, len(payments))
	for i := range payments {
		out = append(out, toPaymentResp(&payments[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"payments": out})
}

// Get handles GET /v1/payments/:id.
func (h *PaymentHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	p, err := h.Payments.Get(ctx, id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toPaymentResp(p))
}

// Delete handles DELETE /v1/payments/:id.
func (h *PaymentHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Payments.Delete(ctx, id); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
