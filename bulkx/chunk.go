package bulkx

import "github.com/samber/lo"

// Chunk splits items into consecutive slices of at most size elements, in
// order, without copying the elements. The last chunk may be shorter. A size
// below 1 is treated as 1.
func Chunk[T any](items []T, size int) [][]T {
	if size < 1 {
		size = 1
	}

	return lo.Chunk(items, size)
}
