// Package arena provides the accessor capability context-aware builders and
// generators are constructed against, a default in-memory implementation,
// and the context-aware counterparts of the boulder runtime.
//
// A record annotated with //boulder:context names the accessor type C it is
// built against, usually a pointer to a struct that embeds Arena:
//
//	type Rug struct {
//		arena.Arena
//	}
//
//	//boulder:buildable
//	//boulder:context *Rug
//	type Rabbit struct { ... }
//
// Every construction step receives the accessor, so defaults may read
// records already in the arena and the Handle layer may insert new ones.
package arena

import (
	"fmt"
	"reflect"
)

// Store is the accessor capability: it can insert a record, look a record
// up by id, and list the ids held for a record type. Records of different
// types live in separate tables, each with its own id space.
type Store interface {
	// Insert adds v, which must be a pointer to a record, and returns its
	// id within the table of the pointed-to type.
	Insert(v any) uint64
	// Lookup returns the pointer stored under id in the table for t.
	Lookup(t reflect.Type, id uint64) (any, bool)
	// IDs returns the ids held in the table for t, in insertion order.
	IDs(t reflect.Type) []uint64
}

// Handle designates a record of type T held in a Store.
type Handle[T any] struct {
	ID uint64 `json:"id" msgpack:"id"`
}

// String implements fmt.Stringer.
func (h Handle[T]) String() string {
	return fmt.Sprintf("Handle[%s](%d)", typeOf[T](), h.ID)
}

// Get returns the record h designates.
func (h Handle[T]) Get(s Store) *T {
	return Get(s, h)
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// Add inserts v into s and returns its handle.
func Add[T any](s Store, v T) Handle[T] {
	return Handle[T]{ID: s.Insert(&v)}
}

// Get returns the record h designates. It panics if h does not belong to s.
func Get[T any](s Store, h Handle[T]) *T {
	v, ok := s.Lookup(typeOf[T](), h.ID)
	if !ok {
		panic(fmt.Errorf("%w: %s", ErrUnknownHandle, h))
	}
	return v.(*T)
}

// Handles returns the handles of every record of type T held in s, in
// insertion order. It returns nil when s holds no record of type T.
func Handles[T any](s Store) []Handle[T] {
	ids := s.IDs(typeOf[T]())
	if len(ids) == 0 {
		return nil
	}
	hs := make([]Handle[T], len(ids))
	for i, id := range ids {
		hs[i] = Handle[T]{ID: id}
	}
	return hs
}

// Len returns the number of records of type T held in s.
func Len[T any](s Store) int {
	return len(s.IDs(typeOf[T]()))
}
