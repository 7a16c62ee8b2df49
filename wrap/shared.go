package wrap

import "sync/atomic"

// Rc is a reference-counted shared handle for single-goroutine use.
// Clones share the same value; Count reports how many handles are live.
type Rc[T any] struct {
	box *rcBox[T]
}

type rcBox[T any] struct {
	value T
	refs  int
}

// NewRc returns the first handle to v.
func NewRc[T any](v T) Rc[T] {
	return Rc[T]{box: &rcBox[T]{value: v, refs: 1}}
}

// Get returns a pointer to the shared value.
func (r Rc[T]) Get() *T {
	return &r.box.value
}

// Clone returns a new handle to the same value.
func (r Rc[T]) Clone() Rc[T] {
	r.box.refs++
	return r
}

// Release drops this handle and returns the remaining count.
func (r Rc[T]) Release() int {
	if r.box.refs > 0 {
		r.box.refs--
	}
	return r.box.refs
}

// Count returns the number of live handles.
func (r Rc[T]) Count() int {
	return r.box.refs
}

// Arc is the goroutine-safe counterpart of Rc: the reference count is
// maintained atomically. Access to the value itself is not synchronized;
// wrap it in a Mutex for that, as in Arc[*Mutex[T]].
type Arc[T any] struct {
	box *arcBox[T]
}

type arcBox[T any] struct {
	value T
	refs  atomic.Int64
}

// NewArc returns the first handle to v.
func NewArc[T any](v T) Arc[T] {
	b := &arcBox[T]{value: v}
	b.refs.Store(1)
	return Arc[T]{box: b}
}

// Get returns a pointer to the shared value.
func (a Arc[T]) Get() *T {
	return &a.box.value
}

// Clone returns a new handle to the same value.
func (a Arc[T]) Clone() Arc[T] {
	a.box.refs.Add(1)
	return a
}

// Release drops this handle and returns the remaining count.
func (a Arc[T]) Release() int {
	for {
		n := a.box.refs.Load()
		if n == 0 {
			return 0
		}
		if a.box.refs.CompareAndSwap(n, n-1) {
			return int(n - 1)
		}
	}
}

// Count returns the number of live handles.
func (a Arc[T]) Count() int {
	return int(a.box.refs.Load())
}
