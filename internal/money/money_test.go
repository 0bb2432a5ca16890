package money

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"1000", 100000},
		{"1000.00", 100000},
		{"1000.5", 100050},
		{"1000.50", 100050},
		{"250.50", 25050},
		{"0.01", 1},
		{".50", 50},
		{"-12.34", -1234},
		{" 800.00 ", 80000},
	}
	for _, tc := range cases {
		got, err := ParseCents(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestParseCentsRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", ".", "1,000.00", "1e3", "12.345", "abc", "10.x"} {
		_, err := ParseCents(in)
		assert.Error(t, err, "input %q", in)
	}
}

func TestParseCentsRejectsOverlongAmounts(t *testing.T) {
	// int64 max is 19 digits of cents; amounts long enough to wrap
	// must error instead of coming back as a bogus positive value.
	for _, in := range []string{
		strings.Repeat("9", 16),
		strings.Repeat("9", 19) + ".99",
		"-" + strings.Repeat("1", 30),
	} {
		_, err := ParseCents(in)
		assert.Error(t, err, "input %q", in)
	}

	got, err := ParseCents(strings.Repeat("9", 15))
	require.NoError(t, err)
	assert.Equal(t, int64(999999999999999)*100, got)
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "1000.50", FormatCents(100050))
	assert.Equal(t, "0.00", FormatCents(0))
	assert.Equal(t, "0.05", FormatCents(5))
	assert.Equal(t, "-12.34", FormatCents(-1234))
}

func TestRoundTripPreservesExactSums(t *testing.T) {
	a, err := ParseCents("500.00")
	require.NoError(t, err)
	b, err := ParseCents("250.50")
	require.NoError(t, err)
	assert.Equal(t, "750.50", FormatCents(a+b))
}
