package bulkx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stashkit/x/bulkx"
)

func TestChunk(t *testing.T) {
	tests := []struct {
		name     string
		items    []int
		size     int
		expected [][]int
	}{
		{
			name:     "even split",
			items:    []int{1, 2, 3, 4},
			size:     2,
			expected: [][]int{{1, 2}, {3, 4}},
		},
		{
			name:     "last chunk is shorter",
			items:    []int{1, 2, 3, 4, 5},
			size:     2,
			expected: [][]int{{1, 2}, {3, 4}, {5}},
		},
		{
			name:     "size of one",
			items:    []int{1, 2, 3},
			size:     1,
			expected: [][]int{{1}, {2}, {3}},
		},
		{
			name:     "size larger than the list",
			items:    []int{1, 2},
			size:     10,
			expected: [][]int{{1, 2}},
		},
		{
			name:     "size below one is treated as one",
			items:    []int{1, 2},
			size:     0,
			expected: [][]int{{1}, {2}},
		},
		{
			name:     "empty list",
			items:    []int{},
			size:     3,
			expected: [][]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, bulkx.Chunk(tt.items, tt.size))
		})
	}
}
