package arena

import (
	"reflect"
	"slices"
	"sync"
)

// Arena is the default in-memory Store. The zero value is ready to use.
// Embed it in a struct to use that struct's pointer as the accessor of
// context-aware records.
type Arena struct {
	mu     sync.RWMutex
	tables map[reflect.Type]*table
}

type table struct {
	values []any
}

// Insert implements Store.
func (a *Arena) Insert(v any) uint64 {
	t := reflect.TypeOf(v)
	if t == nil || t.Kind() != reflect.Pointer {
		panic("arena: Insert expects a pointer to a record")
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	tbl := a.table(t.Elem())
	tbl.values = append(tbl.values, v)
	return uint64(len(tbl.values) - 1)
}

// Lookup implements Store.
func (a *Arena) Lookup(t reflect.Type, id uint64) (any, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	tbl, ok := a.tables[t]
	if !ok || id >= uint64(len(tbl.values)) {
		return nil, false
	}
	return tbl.values[id], true
}

// IDs implements Store.
func (a *Arena) IDs(t reflect.Type) []uint64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	tbl, ok := a.tables[t]
	if !ok {
		return nil
	}
	ids := make([]uint64, len(tbl.values))
	for i := range ids {
		ids[i] = uint64(i)
	}
	return ids
}

// Types returns the record types the arena holds tables for, ordered by name.
func (a *Arena) Types() []reflect.Type {
	a.mu.RLock()
	defer a.mu.RUnlock()
	types := make([]reflect.Type, 0, len(a.tables))
	for t := range a.tables {
		types = append(types, t)
	}
	slices.SortFunc(types, func(x, y reflect.Type) int {
		switch {
		case x.String() < y.String():
			return -1
		case x.String() > y.String():
			return 1
		}
		return 0
	})
	return types
}

// table returns the table for t, creating it if needed. The caller holds mu.
func (a *Arena) table(t reflect.Type) *table {
	if a.tables == nil {
		a.tables = make(map[reflect.Type]*table)
	}
	tbl, ok := a.tables[t]
	if !ok {
		tbl = &table{}
		a.tables[t] = tbl
	}
	return tbl
}

var _ Store = (*Arena)(nil)
