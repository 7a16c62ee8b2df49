package gen

import (
	"github.com/syssam/boulder"
)

// maxSubsetItems is the number of items a subset bitmask can address.
const maxSubsetItems = 64

// Subsets yields subsets of items in a fixed order: step i yields the items
// whose index bit is set in i. Only the first 64 items take part.
//
//	gen.Subsets("a", "b") // [], [a], [b], [a b], [], ...
func Subsets[T any](items ...T) boulder.Generator[[]T] {
	items = append([]T(nil), items...)
	var index uint64
	return boulder.GeneratorFunc[[]T](func() []T {
		res := subset(items, index)
		index++
		if len(items) < maxSubsetItems {
			index %= 1 << len(items)
		}
		return res
	})
}

func subset[T any](items []T, mask uint64) []T {
	res := make([]T, 0, len(items))
	for i := range min(maxSubsetItems, len(items)) {
		if mask&(1<<uint(i)) != 0 {
			res = append(res, items[i])
		}
	}
	return res
}

// Sample yields collections of up to count items, drawn round-robin from
// items so that consecutive samples continue where the previous one
// stopped. A sample never repeats an item; it holds min(len(items), count)
// items.
func Sample[T any](count boulder.Generator[int], items ...T) boulder.Generator[[]T] {
	items = append([]T(nil), items...)
	var index int
	return boulder.GeneratorFunc[[]T](func() []T {
		n := min(len(items), count.Generate())
		res := make([]T, 0, max(n, 0))
		for range n {
			res = append(res, items[index])
			index = (index + 1) % len(items)
		}
		return res
	})
}
