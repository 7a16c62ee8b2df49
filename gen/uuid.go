package gen

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/syssam/boulder"
)

// UUIDs yields deterministic name-based (version 5) UUIDs in namespace,
// derived from an incrementing counter. Two generators with the same
// namespace yield the same sequence.
func UUIDs(namespace uuid.UUID) boulder.Generator[uuid.UUID] {
	var n uint64
	return boulder.GeneratorFunc[uuid.UUID](func() uuid.UUID {
		id := uuid.NewSHA1(namespace, strconv.AppendUint(nil, n, 10))
		n++
		return id
	})
}

// RandomUUID yields random (version 4) UUIDs.
func RandomUUID() boulder.Generator[uuid.UUID] {
	return boulder.GeneratorFunc[uuid.UUID](uuid.New)
}
