// Package wrap provides the wrapper layers generated builders and generators
// can produce around a record: an optional value, two reference-counted
// shared handles, a heap box, two interior-mutability cells and a lock.
//
// Each layer has a single re-wrap function (Some, NewRc, NewArc, NewBox,
// NewCell, NewRefCell, NewMutex) that takes an already constructed value and
// wraps it. Chains such as Arc[*Mutex[T]] are obtained by composing those
// functions with boulder.Wrap.
package wrap

import "fmt"

// Option is a value that may be absent.
//
// The re-wrap function Some always produces a present value: a builder or
// generator for Option[T] builds a T and wraps it, it never yields None.
type Option[T any] struct {
	value T
	ok    bool
}

// Some returns a present Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None returns an absent Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.ok
}

// IsSome reports whether the value is present.
func (o Option[T]) IsSome() bool {
	return o.ok
}

// IsNone reports whether the value is absent.
func (o Option[T]) IsNone() bool {
	return !o.ok
}

// MustGet returns the value, panicking if it is absent.
func (o Option[T]) MustGet() T {
	if !o.ok {
		panic("wrap: MustGet on an empty Option")
	}
	return o.value
}

// OrElse returns the value if present, otherwise v.
func (o Option[T]) OrElse(v T) T {
	if o.ok {
		return o.value
	}
	return v
}

// String implements fmt.Stringer.
func (o Option[T]) String() string {
	if !o.ok {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}

// NewBox moves v to the heap and returns a pointer to it. The Go pointer is
// the exclusive-ownership box layer.
func NewBox[T any](v T) *T {
	return &v
}
