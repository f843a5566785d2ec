package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string is raw", "dark", "dark"},
		{"null", nil, "null"},
		{"number", 1.5, "1.5"},
		{"whole number", float64(3), "3"},
		{"bool", true, "true"},
		{"list", []any{"a", 1.0}, `["a",1]`},
		{"object", map[string]any{"k": "v"}, `{"k":"v"}`},
		{"unencodable falls back", make(chan int), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatValue(tt.in)
			if tt.want == "" {
				assert.NotEmpty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
