//go:build unit
// +build unit

package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name         string
		page, limit  int
		defaultLimit int
		want         Pagination
		wantOffset   int
	}{
		{"defaults", 0, 0, 20, Pagination{Page: 1, Limit: 20}, 0},
		{"second page", 2, 10, 20, Pagination{Page: 2, Limit: 10}, 10},
		{"capped", 1, 500, 20, Pagination{Page: 1, Limit: MaxLimit}, 0},
		{"bad default", -3, 0, 0, Pagination{Page: 1, Limit: DefaultLimit}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.page, tt.limit, tt.defaultLimit)
			assert.Equal(t, tt.want, p)
			assert.Equal(t, tt.wantOffset, p.Offset())
		})
	}
}

func TestTotalPages(t *testing.T) {
	p := Pagination{Page: 1, Limit: 10}
	assert.Equal(t, 0, p.TotalPages(0))
	assert.Equal(t, 1, p.TotalPages(10))
	assert.Equal(t, 2, p.TotalPages(11))
}

func TestNewPage_NilItems(t *testing.T) {
	page := NewPage[string](nil, 0, Pagination{Page: 1, Limit: 10})
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}
