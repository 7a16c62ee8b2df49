package arena

import "errors"

var (
	// ErrEmpty is the panic value raised by RepeatFrom when the arena holds
	// no records of the requested type.
	ErrEmpty = errors.New("arena: no available objects")
	// ErrUnknownHandle is the panic value raised when a handle does not
	// designate a record in the store.
	ErrUnknownHandle = errors.New("arena: unknown handle")
)
