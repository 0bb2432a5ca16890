package form

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedAccess(t *testing.T) {
	f := New(url.Values{
		"tenant_id":   {"7"},
		"capacity":    {"2"},
		"rent_amount": {"1000.50"},
		"active":      {"on"},
		"amenities":   {"wifi, tv, "},
		"floor":       {"  3 "},
		"empty":       {""},
	})

	id, ok, err := f.Uint("tenant_id")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint64(7), id)

	cap, ok, err := f.Int("capacity")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, cap)

	cents, ok, err := f.Cents("rent_amount")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(100050), cents)

	assert.True(t, f.Bool("active"))
	assert.Equal(t, []string{"wifi", "tv"}, f.List("amenities"))

	floor, ok := f.String("floor")
	require.True(t, ok)
	assert.Equal(t, "3", floor)

	_, ok = f.String("empty")
	assert.False(t, ok)
	_, ok = f.String("missing")
	assert.False(t, ok)
}

func TestCheckboxTokens(t *testing.T) {
	truthy := []string{"on", "true", "1", "yes", "On", "TRUE"}
	for _, v := range truthy {
		f := New(url.Values{"flag": {v}})
		assert.True(t, f.Bool("flag"), "token %q", v)
	}
	for _, v := range []string{"off", "false", "0", "no", ""} {
		f := New(url.Values{"flag": {v}})
		assert.False(t, f.Bool("flag"), "token %q", v)
	}
}

func TestCoercionFailuresNameTheField(t *testing.T) {
	f := New(url.Values{"capacity": {"two"}, "rent_amount": {"1,000"}})

	_, present, err := f.Int("capacity")
	assert.True(t, present)
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "capacity", fe.Field)

	_, present, err = f.Cents("rent_amount")
	assert.True(t, present)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "rent_amount", fe.Field)
}
