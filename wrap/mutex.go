package wrap

import "sync"

// Mutex guards a value with a sync.Mutex. It must not be copied after
// first use, so the layer always produces *Mutex[T].
type Mutex[T any] struct {
	mu    sync.Mutex
	value T
}

// NewMutex returns a Mutex guarding v.
func NewMutex[T any](v T) *Mutex[T] {
	return &Mutex[T]{value: v}
}

// Lock locks the mutex and returns the guarded value with its unlock
// function.
func (m *Mutex[T]) Lock() (*T, func()) {
	m.mu.Lock()
	return &m.value, m.mu.Unlock
}

// With calls fn with the guarded value while holding the lock.
func (m *Mutex[T]) With(fn func(v *T)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn(&m.value)
}

// IntoInner returns a copy of the guarded value.
func (m *Mutex[T]) IntoInner() T {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value
}
