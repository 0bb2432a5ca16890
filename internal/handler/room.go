package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Yohannes19/sbms/internal/model"
	"github.com/Yohannes19/sbms/internal/money"
	"github.com/Yohannes19/sbms/internal/repository"
)

// RoomHandler serves the room CRUD endpoints.
type RoomHandler struct {
	Rooms *repository.RoomRepo
}

func NewRoomHandler(rooms *repository.RoomRepo) *RoomHandler {
	if rooms == nil {
		panic("nil repository passed to NewRoomHandler")
	}
	return &RoomHandler{Rooms: rooms}
}

// roomResp renders the price as a decimal string so clients never see
// raw cents.
type roomResp struct {
	ID        uint64      `json:"id"`
	Number    string      `json:"number"`
	Floor     *string     `json:"floor"`
	Capacity  int         `json:"capacity"`
	Price     json.Number `json:"price"`
	Amenities []string    `json:"amenities"`
	Active    bool        `json:"active"`
}

func toRoomResp(r *model.Room) roomResp {
	return roomResp{
		ID:        r.ID,
		Number:    r.Number,
		Floor:     r.Floor,
		Capacity:  r.Capacity,
		Price:     json.Number(money.FormatCents(r.PriceCents)),
		Amenities: r.Amenities,
		Active:    r.Active,
	}
}

type roomCreateReq struct {
	Number    string      `json:"number"`
	Floor     *string     `json:"floor"`
	Capacity  int         `json:"capacity"`
	Price     json.Number `json:"price"`
	Amenities []string    `json:"amenities"`
	Active    *bool       `json:"active"` // nil means the default, true
}

func bindRoomCreate(c echo.Context) (roomCreateReq, int64, error) {
	var req roomCreateReq
	if isForm(c) {
		f, err := parseForm(c)
		if err != nil {
			return req, 0, err
		}
		req.Number, _ = f.String("number")
		if v, ok := f.String("floor"); ok && v != "" {
			req.Floor = &v
		}
		if n, ok, err := f.Int("capacity"); err != nil {
			return req, 0, err
		} else if ok {
			req.Capacity = n
		}
		cents := int64(0)
		if n, ok, err := f.Cents("price"); err != nil {
			return req, 0, err
		} else if ok {
			cents = n
		}
		req.Amenities = f.List("amenities")
		// Checkbox: only an explicit token overrides the default.
		if _, ok := f.String("active"); ok {
			b := f.Bool("active")
			req.Active = &b
		}
		return req, cents, nil
	}
	if err := c.Bind(&req); err != nil {
		return req, 0, err
	}
	cents := int64(0)
	if req.Price != "" {
		n, err := money.ParseCents(req.Price.String())
		if err != nil {
			return req, 0, err
		}
		cents = n
	}
	return req, cents, nil
}

// Create handles POST /v1/rooms.
func (h *RoomHandler) Create(c echo.Context) error {
	req, priceCents, err := bindRoomCreate(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Number = strings.TrimSpace(req.Number)
	if req.Number == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "number is required", "field": "number"})
	}
	if req.Capacity < 0 || priceCents < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacity and price cannot be negative"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	rm := &model.Room{
		Number:     req.Number,
		Floor:      req.Floor,
		Capacity:   req.Capacity,
		PriceCents: priceCents,
		Amenities:  req.Amenities,
		Active:     active,
	}
	if err := h.Rooms.Create(ctx, rm); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toRoomResp(rm))
}

// List handles GET /v1/rooms.
func (h *RoomHandler) List(c echo.Context) error {
	ctx, cancel := reqCtx(c)
	defer cancel()

	rooms, err := h.Rooms.List(ctx)
	if err != nil {
		return writeServiceError(c, err)
	}
	out := make([]roomResp, 0, len(rooms))
	for i := range rooms {
		out = append(out, toRoomResp(&rooms[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": out})
}

// Get handles GET /v1/rooms/:id.
func (h *RoomHandler) Get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	rm, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toRoomResp(rm))
}

type roomUpdateReq struct {
	Number    *string      `json:"number"`
	Floor     *string      `json:"floor"`
	Capacity  *int         `json:"capacity"`
	Price     *json.Number `json:"price"`
	Amenities *[]string    `json:"amenities"`
	Active    *bool        `json:"active"`
}

// Update handles PATCH /v1/rooms/:id with the usual patch semantics:
// absent fields stay, an empty floor clears it.
func (h *RoomHandler) Update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req roomUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	rm, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return writeServiceError(c, err)
	}
	if req.Number != nil {
		number := strings.TrimSpace(*req.Number)
		if number == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "number cannot be empty", "field": "number"})
		}
		rm.Number = number
	}
	if req.Floor != nil {
		if *req.Floor == "" {
			rm.Floor = nil
		} else {
			rm.Floor = req.Floor
		}
	}
	if req.Capacity != nil {
		if *req.Capacity < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacity cannot be negative", "field": "capacity"})
		}
		rm.Capacity = *req.Capacity
	}
	if req.Price != nil {
		cents, err := money.ParseCents(req.Price.String())
		if err != nil || cents < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid price", "field": "price"})
		}
		rm.PriceCents = cents
	}
	if req.Amenities != nil {
		rm.Amenities = *req.Amenities
	}
	if req.Active != nil {
		rm.Active = *req.Active
	}
	if err := h.Rooms.Update(ctx, rm); err != nil {
		if errors.Is(err, repository.ErrRoomNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toRoomResp(rm))
}

// Delete handles DELETE /v1/rooms/:id with the same cascade guard as
// tenants.
func (h *RoomHandler) Delete(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := reqCtx(c)
	defer cancel()

	err = h.Rooms.Delete(ctx, id, cascadeQuery(c))
	switch {
	case err == nil:
		return c.NoContent(http.StatusNoContent)
	case errors.Is(err, repository.ErrRoomNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
	case errors.Is(err, repository.ErrHasDependents):
		return c.JSON(http.StatusConflict, echo.Map{"error": "room has contracts; pass cascade=true to delete them as well"})
	default:
		return writeServiceError(c, err)
	}
}
