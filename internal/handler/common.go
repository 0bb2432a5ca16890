// Package handler wires HTTP requests to the repositories and services.
// Handlers bind JSON bodies (or classic form posts), run the operation
// with a per-request timeout and translate the typed service errors to
// status codes: NotFoundError 404, ValidationError 400, ConflictError 409.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Yohannes19/sbms/internal/form"
	"github.com/Yohannes19/sbms/internal/service"
)

const dbTimeout = 5 * time.Second

// reqCtx derives a bounded context from the request.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// idParam parses the :id path parameter.
func idParam(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// cascadeQuery reads the ?cascade query flag on delete endpoints.
func cascadeQuery(c echo.Context) bool {
	switch strings.ToLower(c.QueryParam("cascade")) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

// isForm reports whether the request carries a classic form post
// instead of JSON.
func isForm(c echo.Context) bool {
	ct := c.Request().Header.Get(echo.HeaderContentType)
	return strings.HasPrefix(ct, echo.MIMEApplicationForm) ||
		strings.HasPrefix(ct, echo.MIMEMultipartForm)
}

// parseForm parses the request body into a typed form wrapper.
func parseForm(c echo.Context) (*form.Form, error) {
	if err := c.Request().ParseForm(); err != nil {
		return nil, err
	}
	return form.New(c.Request().PostForm), nil
}

// writeBindError reports a 400 for malformed request bodies, keeping
// the field name when the failure came from a typed coercion.
func writeBindError(c echo.Context, err error) error {
	var fe *form.FieldError
	var ve *service.ValidationError
	if errors.As(err, &fe) || errors.As(err, &ve) {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
}

// writeServiceError maps the typed service errors onto HTTP statuses.
// Anything unrecognized is a 500 with a generic body so internals do
// not leak to clients.
func writeServiceError(c echo.Context, err error) error {
	var nf *service.NotFoundError
	if errors.As(err, &nf) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": nf.Error()})
	}
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Error(), "field": ve.Field})
	}
	var cf *service.ConflictError
	if errors.As(err, &cf) {
		resp := echo.Map{"error": cf.Error()}
		if cf.ContractID != 0 {
			resp["contract_id"] = cf.ContractID
		}
		return c.JSON(http.StatusConflict, resp)
	}
	var fe *form.FieldError
	if errors.As(err, &fe) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": fe.Error(), "field": fe.Field})
	}
	c.Logger().Errorf("internal error: %v", err)
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
