package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type EmbeddedFields struct {
	Industry *string  `json:"industry"`
	Price    *float64 `json:"sale_price"`
}

type updateRequest struct {
	Name     *string `json:"offering_name"`
	Ignored  *string `json:"-"`
	NotPtr   string  `json:"not_ptr"`
	internal *string
	EmbeddedFields
}

func TestChanges(t *testing.T) {
	name, industry, zero := "Migration", "Banking", 0.0

	testCases := []struct {
		name     string
		req      any
		expected map[string]any
	}{
		{name: "empty", req: updateRequest{}, expected: map[string]any{}},
		{
			name:     "set fields only",
			req:      &updateRequest{Name: &name, NotPtr: "x", internal: &name},
			expected: map[string]any{"offering_name": "Migration"},
		},
		{
			name: "embedded and zero values",
			req: updateRequest{
				Ignored:        &name,
				EmbeddedFields: EmbeddedFields{Industry: &industry, Price: &zero},
			},
			expected: map[string]any{"industry": "Banking", "sale_price": 0.0},
		},
		{name: "not a struct", req: 42, expected: map[string]any{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Changes(tc.req))
		})
	}
}
