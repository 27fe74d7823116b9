package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		limit int
		total int
		pages int
	}{
		{"empty result", 1, 12, 0, 0},
		{"exact multiple", 1, 12, 24, 2},
		{"partial last page", 1, 12, 25, 3},
		{"fewer than one page", 1, 12, 5, 1},
		{"single item", 3, 1, 1, 1},
		{"zero limit yields zero pages", 1, 0, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.limit, p.Limit)
			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.pages, p.Pages)
		})
	}
}
