package handler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindRoomForm(t *testing.T, v url.Values) (roomCreateReq, int64) {
	t.Helper()
	env := newTestEnv(t)
	c, _ := env.formReq(http.MethodPost, "/v1/rooms", v)
	req, cents, err := bindRoomCreate(c)
	require.NoError(t, err)
	return req, cents
}

func TestRoomFormBind(t *testing.T) {
	v := url.Values{}
	v.Set("number", "204")
	v.Set("floor", "2")
	v.Set("capacity", "3")
	v.Set("price", "350.00")
	v.Set("amenities", "wifi, balcony")

	req, cents := bindRoomForm(t, v)
	assert.Equal(t, "204", req.Number)
	assert.Equal(t, 3, req.Capacity)
	assert.Equal(t, int64(35000), cents)
	assert.Equal(t, []string{"wifi", "balcony"}, req.Amenities)
	assert.Nil(t, req.Active, "absent checkbox keeps the default")
}

func TestRoomFormBindActiveCheckbox(t *testing.T) {
	v := url.Values{}
	v.Set("number", "204")

	v.Set("active", "on")
	req, _ := bindRoomForm(t, v)
	require.NotNil(t, req.Active)
	assert.True(t, *req.Active)

	v.Set("active", "false")
	req, _ = bindRoomForm(t, v)
	require.NotNil(t, req.Active)
	assert.False(t, *req.Active)
}

func TestRoomJSONBindActiveDefault(t *testing.T) {
	env := newTestEnv(t)
	c, _ := env.jsonReq(http.MethodPost, "/v1/rooms", `{"number":"310","price":420.00,"active":false}`)
	req, cents, err := bindRoomCreate(c)
	require.NoError(t, err)
	assert.Equal(t, int64(42000), cents)
	require.NotNil(t, req.Active)
	assert.False(t, *req.Active)

	c, _ = env.jsonReq(http.MethodPost, "/v1/rooms", `{"number":"310","price":420.00}`)
	req, _, err = bindRoomCreate(c)
	require.NoError(t, err)
	assert.Nil(t, req.Active)
}
