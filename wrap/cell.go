package wrap

import (
	"errors"
	"fmt"
	"sync"
)

// ErrBorrowed is the panic value raised by RefCell when a borrow conflicts
// with one already outstanding.
var ErrBorrowed = errors.New("wrap: value already borrowed")

// Cell is a mutable value slot without borrow tracking. Values move in and
// out of it by copy.
type Cell[T any] struct {
	value T
}

// NewCell returns a Cell holding v.
func NewCell[T any](v T) Cell[T] {
	return Cell[T]{value: v}
}

// Get returns a copy of the value.
func (c *Cell[T]) Get() T {
	return c.value
}

// Set replaces the value.
func (c *Cell[T]) Set(v T) {
	c.value = v
}

// Replace stores v and returns the previous value.
func (c *Cell[T]) Replace(v T) T {
	old := c.value
	c.value = v
	return old
}

// Take returns the value and leaves the zero value in its place.
func (c *Cell[T]) Take() T {
	var zero T
	return c.Replace(zero)
}

// IntoInner returns the value, consuming the cell.
func (c Cell[T]) IntoInner() T {
	return c.value
}

// RefCell is a mutable value slot with runtime borrow checking: any number
// of shared borrows or exactly one exclusive borrow may be outstanding.
// Conflicting borrows panic with ErrBorrowed.
type RefCell[T any] struct {
	value     T
	readers   int
	exclusive bool
}

// NewRefCell returns a RefCell holding v. RefCell carries borrow state and
// is always used through a pointer.
func NewRefCell[T any](v T) *RefCell[T] {
	return &RefCell[T]{value: v}
}

// Borrow returns a shared view of the value and a release function.
func (c *RefCell[T]) Borrow() (*T, func()) {
	if c.exclusive {
		panic(fmt.Errorf("%w: mutably", ErrBorrowed))
	}
	c.readers++
	var once sync.Once
	return &c.value, func() {
		once.Do(func() { c.readers-- })
	}
}

// BorrowMut returns an exclusive view of the value and a release function.
func (c *RefCell[T]) BorrowMut() (*T, func()) {
	if c.exclusive || c.readers > 0 {
		panic(ErrBorrowed)
	}
	c.exclusive = true
	var once sync.Once
	return &c.value, func() {
		once.Do(func() { c.exclusive = false })
	}
}

// With calls fn with a shared view of the value.
func (c *RefCell[T]) With(fn func(v *T)) {
	v, release := c.Borrow()
	defer release()
	fn(v)
}

// IntoInner returns the value. It panics if any borrow is outstanding.
func (c *RefCell[T]) IntoInner() T {
	if c.exclusive || c.readers > 0 {
		panic(ErrBorrowed)
	}
	return c.value
}
