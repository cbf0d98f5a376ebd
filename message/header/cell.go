package header

// cell holds a value computed once and kept until invalidated.
type cell[T any] struct {
	v  T
	ok bool
}

// get returns the held value, calling compute first if there is none.
func (c *cell[T]) get(compute func() T) T {
	if !c.ok {
		c.v, c.ok = compute(), true
	}
	return c.v
}

func (c *cell[T]) set(v T) {
	c.v, c.ok = v, true
}

func (c *cell[T]) invalidate() {
	var zero T
	c.v, c.ok = zero, false
}
