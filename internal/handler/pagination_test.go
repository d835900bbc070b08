package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageParams(t *testing.T) {
	tests := []struct {
		name       string
		page       string
		size       string
		wantLimit  int
		wantOffset int
	}{
		{name: "defaults", page: "", size: "", wantLimit: 5, wantOffset: 0},
		{name: "second page", page: "2", size: "", wantLimit: 5, wantOffset: 5},
		{name: "custom size", page: "3", size: "10", wantLimit: 10, wantOffset: 20},
		{name: "size capped at 30", page: "1", size: "100", wantLimit: 30, wantOffset: 0},
		{name: "garbage falls back", page: "x", size: "y", wantLimit: 5, wantOffset: 0},
		{name: "zero page treated as first", page: "0", size: "0", wantLimit: 5, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := pageParams(tt.page, tt.size)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}
