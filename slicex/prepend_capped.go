package slicex

// PrependCapped returns a copy of the given slice with the given element at
// the front, dropping the oldest elements so the result never exceeds
// capacity. It always returns a new slice.
func PrependCapped[T any, U []T](v U, e T, capacity int) U {
	if capacity <= 0 {
		return U{}
	}

	n := len(v) + 1
	if n > capacity {
		n = capacity
	}

	c := make([]T, n)
	c[0] = e
	copy(c[1:], v)
	return c
}
