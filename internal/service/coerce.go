package service

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/msomdec/moviedb/internal/domain"
)

// CoercionState tells an absent cell apart from one that failed to parse.
type CoercionState int

const (
	Absent CoercionState = iota
	Valid
	Invalid
)

func (s CoercionState) String() string {
	switch s {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	}
	return "absent"
}

// Coerced is the outcome of converting one raw import cell.
type Coerced[T any] struct {
	Value T
	State CoercionState
	Raw   string
}

// Ptr returns the value when valid and nil otherwise.
func (c Coerced[T]) Ptr() *T {
	if c.State != Valid {
		return nil
	}
	v := c.Value
	return &v
}

func absent[T any]() Coerced[T] { return Coerced[T]{State: Absent} }

func invalid[T any](raw string) Coerced[T] { return Coerced[T]{State: Invalid, Raw: raw} }

func valid[T any](v T, raw string) Coerced[T] { return Coerced[T]{Value: v, State: Valid, Raw: raw} }

// CoerceYear parses a release year. Integral floats such as "1999.0",
// common in spreadsheet exports, are accepted.
func CoerceYear(raw string) Coerced[int] {
	s := strings.TrimSpace(raw)
	if s == "" {
		return absent[int]()
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n <= 0 || n > 9999 {
			return invalid[int](raw)
		}
		return valid(n, raw)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || f <= 0 || f > 9999 {
		return invalid[int](raw)
	}
	return valid(int(f), raw)
}

// CoerceRating parses a 0-10 rating. A comma is accepted as the decimal
// separator.
func CoerceRating(raw string) Coerced[float64] {
	s := strings.TrimSpace(raw)
	if s == "" {
		return absent[float64]()
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || !domain.ValidRating(f) {
		return invalid[float64](raw)
	}
	return valid(f, raw)
}

var dateLayouts = []string{
	"2006-01-02",
	"2/1/2006",
	"2.1.2006",
	"2-1-2006",
	"2006/1/2",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// CoerceDate parses a watch date permissively into ISO form. Numeric
// dates are read day first, matching the display form.
func CoerceDate(raw string) Coerced[string] {
	s := strings.TrimSpace(raw)
	if s == "" {
		return absent[string]()
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return valid(domain.FormatISODate(t), raw)
		}
	}
	t, err := dateparse.ParseAny(s, dateparse.PreferMonthFirst(false))
	if err != nil {
		return invalid[string](raw)
	}
	return valid(domain.FormatISODate(t), raw)
}
