package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageOffset(t *testing.T) {
	tests := []struct {
		name   string
		page   Page
		offset int
	}{
		{"first page", Page{Number: 1, Size: 6}, 0},
		{"second page", Page{Number: 2, Size: 6}, 6},
		{"custom size", Page{Number: 3, Size: 10}, 20},
		{"zero page clamps to first", Page{Number: 0, Size: 6}, 0},
		{"negative page clamps to first", Page{Number: -4, Size: 6}, 0},
		{"zero values use both defaults", Page{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.offset, tt.page.Offset())
		})
	}
}

func TestPageLimit(t *testing.T) {
	assert.Equal(t, 6, Page{}.Limit())
	assert.Equal(t, 6, Page{Size: -1}.Limit())
	assert.Equal(t, 25, Page{Size: 25}.Limit())
}
