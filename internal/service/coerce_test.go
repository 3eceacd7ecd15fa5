package service_test

import (
	"testing"

	"github.com/msomdec/moviedb/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestCoerceYear(t *testing.T) {
	tests := []struct {
		raw   string
		state service.CoercionState
		want  int
	}{
		{"1999", service.Valid, 1999},
		{" 2010 ", service.Valid, 2010},
		{"1999.0", service.Valid, 1999},
		{"", service.Absent, 0},
		{"   ", service.Absent, 0},
		{"PG", service.Invalid, 0},
		{"1999.5", service.Invalid, 0},
		{"-5", service.Invalid, 0},
		{"NaN", service.Invalid, 0},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			got := service.CoerceYear(tc.raw)
			assert.Equal(t, tc.state, got.State)
			assert.Equal(t, tc.want, got.Value)
			if tc.state == service.Valid {
				assert.NotNil(t, got.Ptr())
			} else {
				assert.Nil(t, got.Ptr())
			}
		})
	}
}

func TestCoerceRating(t *testing.T) {
	tests := []struct {
		raw   string
		state service.CoercionState
		want  float64
	}{
		{"8.8", service.Valid, 8.8},
		{"7,5", service.Valid, 7.5},
		{"10", service.Valid, 10},
		{"0", service.Valid, 0},
		{"", service.Absent, 0},
		{"10.1", service.Invalid, 0},
		{"-1", service.Invalid, 0},
		{"great", service.Invalid, 0},
		{"NaN", service.Invalid, 0},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			got := service.CoerceRating(tc.raw)
			assert.Equal(t, tc.state, got.State)
			assert.InDelta(t, tc.want, got.Value, 1e-9)
		})
	}
}

func TestCoerceDate(t *testing.T) {
	tests := []struct {
		raw   string
		state service.CoercionState
		want  string
	}{
		{"2023-12-25", service.Valid, "2023-12-25"},
		{"25/12/2023", service.Valid, "2023-12-25"},
		{"5/3/2021", service.Valid, "2021-03-05"},
		{"25.12.2023", service.Valid, "2023-12-25"},
		{"2023-12-25T20:15:00Z", service.Valid, "2023-12-25"},
		{"December 25, 2023", service.Valid, "2023-12-25"},
		{"", service.Absent, ""},
		{"not a date", service.Invalid, ""},
		{"31/02/2023", service.Invalid, ""},
	}

	for _, tc := range tests {
		t.Run(tc.raw, func(t *testing.T) {
			got := service.CoerceDate(tc.raw)
			assert.Equal(t, tc.state, got.State)
			assert.Equal(t, tc.want, got.Value)
		})
	}
}

func TestCoercionState_String(t *testing.T) {
	assert.Equal(t, "absent", service.Absent.String())
	assert.Equal(t, "valid", service.Valid.String())
	assert.Equal(t, "invalid", service.Invalid.String())
}
