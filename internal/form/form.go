// Package form coerces textual form input into typed values.  Browser
// forms send everything as strings: numbers, checkbox tokens, date
// fields and comma-separated lists all arrive as text.  A Form wraps the
// submitted values and converts them field by field, reporting failures
// as FieldErrors that name the offending field.
package form

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/Yohannes19/sbms/internal/money"
)

// FieldError describes a single field that failed coercion or
// validation.  It is safe to show to API clients.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Form wraps submitted form values for typed access.  Missing fields and
// empty strings are treated the same: not present.
type Form struct {
	values url.Values
}

// New returns a Form over the given values.
func New(v url.Values) *Form { return &Form{values: v} }

// String returns the trimmed value for key and whether it was present
// and non-empty.
func (f *Form) String(key string) (string, bool) {
	v := strings.TrimSpace(f.values.Get(key))
	return v, v != ""
}

// Uint parses key as an unsigned integer (used for entity IDs).
func (f *Form) Uint(key string) (uint64, bool, error) {
	v, ok := f.String(key)
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, true, &FieldError{Field: key, Reason: "must be a whole number"}
	}
	return n, true, nil
}

// Int parses key as a signed integer.
func (f *Form) Int(key string) (int, bool, error) {
	v, ok := f.String(key)
	if !ok {
		return 0, false, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, true, &FieldError{Field: key, Reason: "must be a whole number"}
	}
	return n, true, nil
}

// Cents parses key as a decimal money amount and returns integer cents.
func (f *Form) Cents(key string) (int64, bool, error) {
	v, ok := f.String(key)
	if !ok {
		return 0, false, nil
	}
	c, err := money.ParseCents(v)
	if err != nil {
		return 0, true, &FieldError{Field: key, Reason: "must be a decimal amount like 1000.00"}
	}
	return c, true, nil
}

// Bool interprets checkbox-style tokens.  Browsers send "on" for a
// checked box and omit the field entirely for an unchecked one, so any
// recognized truthy token counts and everything else is false.
func (f *Form) Bool(key string) bool {
	v, ok := f.String(key)
	if !ok {
		return false
	}
	switch strings.ToLower(v) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// List splits a comma-separated field into trimmed, non-empty items.
// "wifi, tv," -> ["wifi" "tv"].
func (f *Form) List(key string) []string {
	v, ok := f.String(key)
	if !ok {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
