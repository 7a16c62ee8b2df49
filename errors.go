package boulder

import (
	"errors"
	"fmt"
)

// ErrBuilderConsumed is the panic value (via ConsumedError) raised when a
// builder is built a second time.
var ErrBuilderConsumed = errors.New("boulder: builder already consumed")

// ConsumedError reports which builder was built twice.
type ConsumedError struct {
	Builder string
}

// Error returns the error string.
func (e *ConsumedError) Error() string {
	if e.Builder == "" {
		return ErrBuilderConsumed.Error()
	}
	return fmt.Sprintf("boulder: %s already consumed by Build", e.Builder)
}

// Is reports whether the target error matches ConsumedError.
// This allows errors.Is(err, ErrBuilderConsumed) to return true.
func (e *ConsumedError) Is(err error) bool {
	return err == ErrBuilderConsumed
}

// IsConsumed returns true if the error is a ConsumedError.
func IsConsumed(err error) bool {
	if err == nil {
		return false
	}
	var e *ConsumedError
	return errors.As(err, &e) || errors.Is(err, ErrBuilderConsumed)
}
