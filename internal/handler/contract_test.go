package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Yohannes19/sbms/internal/model"
	"github.com/Yohannes19/sbms/internal/service"
)

type testEnv struct {
	e        *echo.Echo
	contract *ContractHandler
	payment  *PaymentHandler
	tenantID uint64
	roomID   uint64
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	tenants := service.NewMemTenantStore()
	rooms := service.NewMemRoomStore()
	payments := service.NewMemPaymentStore()
	contracts := service.NewMemContractStore(payments)

	contractSvc := service.NewContractService(tenants, rooms, contracts, nil)
	paymentSvc := service.NewPaymentService(contracts, payments, nil)

	return &testEnv{
		e:        echo.New(),
		contract: NewContractHandler(contractSvc, paymentSvc),
		payment:  NewPaymentHandler(paymentSvc),
		tenantID: tenants.Put(model.Tenant{Name: "Sara Tadesse"}).ID,
		roomID:   rooms.Put(model.Room{Number: "101", Capacity: 2, Active: true}).ID,
	}
}

func (env *testEnv) jsonReq(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return env.e.NewContext(req, rec), rec
}

func (env *testEnv) formReq(method, target string, values url.Values) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	return env.e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	dec := json.NewDecoder(rec.Body)
	dec.UseNumber()
	require.NoError(t, dec.Decode(&m))
	return m
}

func (env *testEnv) createContract(t *testing.T, body string) map[string]any {
	t.Helper()
	c, rec := env.jsonReq(http.MethodPost, "/v1/contracts", body)
	require.NoError(t, env.contract.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody(t, rec)
}

func TestContractEndpointCreate(t *testing.T) {
	env := newTestEnv(t)

	body := `{"tenant_id":1,"room_id":1,"start_date":"2025-01-01","end_date":"2025-12-31","rent_amount":500.00}`
	got := env.createContract(t, body)

	assert.Equal(t, json.Number("1"), got["id"])
	assert.Equal(t, json.Number("500.00"), got["rent_amount"])
	assert.Equal(t, true, got["active"])
	assert.Equal(t, "2025-01-01", got["start_date"])
}

func TestContractEndpointCreateForm(t *testing.T) {
	env := newTestEnv(t)

	v := url.Values{}
	v.Set("tenant_id", "1")
	v.Set("room_id", "1")
	v.Set("start_date", "2025-01-01")
	v.Set("end_date", "2025-12-31")
	v.Set("rent_amount", "450.50")
	c, rec := env.formReq(http.MethodPost, "/v1/contracts", v)
	require.NoError(t, env.contract.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	got := decodeBody(t, rec)
	assert.Equal(t, json.Number("450.50"), got["rent_amount"])
}

func TestContractEndpointOverlapConflict(t *testing.T) {
	env := newTestEnv(t)
	env.createContract(t, `{"tenant_id":1,"room_id":1,"start_date":"2025-01-01","end_date":"2025-12-31","rent_amount":500}`)

	c, rec := env.jsonReq(http.MethodPost, "/v1/contracts",
		`{"tenant_id":1,"room_id":1,"start_date":"2025-06-01","end_date":"2026-01-01","rent_amount":500}`)
	require.NoError(t, env.contract.Create(c))
	require.Equal(t, http.StatusConflict, rec.Code)

	got := decodeBody(t, rec)
	assert.Equal(t, json.Number("1"), got["contract_id"], "conflict names the colliding contract")
}

func TestContractEndpointValidation(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name string
		body string
	}{
		{"zero rent", `{"tenant_id":1,"room_id":1,"start_date":"2025-01-01","rent_amount":0}`},
		{"bad date order", `{"tenant_id":1,"room_id":1,"start_date":"2025-06-01","end_date":"2025-01-01","rent_amount":500}`},
		{"malformed rent", `{"tenant_id":1,"room_id":1,"start_date":"2025-01-01","rent_amount":"12,50"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := env.jsonReq(http.MethodPost, "/v1/contracts", tc.body)
			require.NoError(t, env.contract.Create(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}

	t.Run("unknown tenant", func(t *testing.T) {
		c, rec := env.jsonReq(http.MethodPost, "/v1/contracts",
			`{"tenant_id":42,"room_id":1,"start_date":"2025-01-01","rent_amount":500}`)
		require.NoError(t, env.contract.Create(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestContractEndpointGetWithTotal(t *testing.T) {
	env := newTestEnv(t)
	env.createContract(t, `{"tenant_id":1,"room_id":1,"start_date":"2025-01-01","end_date":"2025-12-31","rent_amount":500}`)

	for _, amount := range []string{"500.00", "250.50"} {
		c, rec := env.jsonReq(http.MethodPost, "/v1/payments",
			`{"contract_id":1,"amount":`+amount+`,"method":"bank"}`)
		require.NoError(t, env.payment.Create(c))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	c, rec := env.jsonReq(http.MethodGet, "/v1/contracts/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.contract.Get(c))
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeBody(t, rec)
	assert.Equal(t, json.Number("750.50"), got["total_paid"])
}

func TestContractEndpointListPayments(t *testing.T) {
	env := newTestEnv(t)
	env.createContract(t, `{"tenant_id":1,"room_id":1,"start_date":"2025-01-01","end_date":"2025-12-31","rent_amount":500}`)

	c, rec := env.jsonReq(http.MethodPost, "/v1/payments", `{"contract_id":1,"amount":100}`)
	require.NoError(t, env.payment.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = env.jsonReq(http.MethodGet, "/v1/contracts/1/payments", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.contract.ListPayments(c))
	require.Equal(t, http.StatusOK, rec.Code)

	got := decodeBody(t, rec)
	assert.Equal(t, json.Number("100.00"), got["total_paid"])
	assert.Len(t, got["payments"], 1)
}

func TestContractEndpointDeleteGuard(t *testing.T) {
	env := newTestEnv(t)
	env.createContract(t, `{"tenant_id":1,"room_id":1,"start_date":"2025-01-01","end_date":"2025-12-31","rent_amount":500}`)

	c, rec := env.jsonReq(http.MethodPost, "/v1/payments", `{"contract_id":1,"amount":100}`)
	require.NoError(t, env.payment.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	c, rec = env.jsonReq(http.MethodDelete, "/v1/contracts/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.contract.Delete(c))
	assert.Equal(t, http.StatusConflict, rec.Code, "delete without cascade is rejected")

	c, rec = env.jsonReq(http.MethodDelete, "/v1/contracts/1?cascade=true", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.contract.Delete(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	c, rec = env.jsonReq(http.MethodGet, "/v1/contracts/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.contract.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestContractEndpointUpdate(t *testing.T) {
	env := newTestEnv(t)
	env.createContract(t, `{"tenant_id":1,"room_id":1,"start_date":"2025-01-01","end_date":"2025-06-30","rent_amount":500}`)
	env.createContract(t, `{"tenant_id":1,"room_id":1,"start_date":"2025-07-01","end_date":"2025-12-31","rent_amount":500}`)

	t.Run("rent patch", func(t *testing.T) {
		c, rec := env.jsonReq(http.MethodPatch, "/v1/contracts/1", `{"rent_amount":"550.25"}`)
		c.SetParamNames("id")
		c.SetParamValues("1")
		require.NoError(t, env.contract.Update(c))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		got := decodeBody(t, rec)
		assert.Equal(t, json.Number("550.25"), got["rent_amount"])
	})

	t.Run("date stretch into neighbour", func(t *testing.T) {
		c, rec := env.jsonReq(http.MethodPatch, "/v1/contracts/1", `{"end_date":"2025-07-01"}`)
		c.SetParamNames("id")
		c.SetParamValues("1")
		require.NoError(t, env.contract.Update(c))
		require.Equal(t, http.StatusConflict, rec.Code)
		got := decodeBody(t, rec)
		assert.Equal(t, json.Number("2"), got["contract_id"])
	})
}

func TestPaymentEndpointValidation(t *testing.T) {
	env := newTestEnv(t)
	env.createContract(t, `{"tenant_id":1,"room_id":1,"start_date":"2025-01-01","rent_amount":500}`)

	c, rec := env.jsonReq(http.MethodPost, "/v1/payments", `{"contract_id":1,"amount":0}`)
	require.NoError(t, env.payment.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = env.jsonReq(http.MethodPost, "/v1/payments", `{"contract_id":77,"amount":100}`)
	require.NoError(t, env.payment.Create(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPaymentEndpointDelete(t *testing.T) {
	env := newTestEnv(t)
	env.createContract(t, `{"tenant_id":1,"room_id":1,"start_date":"2025-01-01","rent_amount":500}`)

	c, rec := env.jsonReq(http.MethodPost, "/v1/payments", `{"contract_id":1,"amount":100}`)
	require.NoError(t, env.payment.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decodeBody(t, rec)
	id, err := created["id"].(json.Number).Int64()
	require.NoError(t, err)

	c, rec = env.jsonReq(http.MethodDelete, "/v1/payments/"+strconv.FormatInt(id, 10), "")
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatInt(id, 10))
	require.NoError(t, env.payment.Delete(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	c, rec = env.jsonReq(http.MethodGet, "/v1/payments/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, env.payment.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
