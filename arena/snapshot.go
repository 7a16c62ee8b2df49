package arena

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Export encodes every record of type T held in s, in insertion order, with
// msgpack. Handles inside the records are encoded as their ids.
func Export[T any](s Store) ([]byte, error) {
	hs := Handles[T](s)
	records := make([]*T, len(hs))
	for i, h := range hs {
		records[i] = Get(s, h)
	}
	data, err := msgpack.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("arena: export %s: %w", typeOf[T](), err)
	}
	return data, nil
}

// Import decodes records produced by Export and inserts them into s in
// their original order. Importing every exported table, in the same order,
// into an empty store reproduces the handles of the original store.
func Import[T any](s Store, data []byte) ([]Handle[T], error) {
	var records []T
	if err := msgpack.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("arena: import %s: %w", typeOf[T](), err)
	}
	hs := make([]Handle[T], len(records))
	for i, r := range records {
		hs[i] = Add(s, r)
	}
	return hs, nil
}
