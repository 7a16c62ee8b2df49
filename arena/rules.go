package arena

import (
	"fmt"

	"github.com/syssam/boulder/wrap"
)

// maxSubsetHandles is the number of handles a subset bitmask can address.
const maxSubsetHandles = 64

// RepeatFrom cycles through the handles of every record of type T in the
// accessor. Records added later join the cycle in their natural place.
//
// Generating from an accessor holding no records of type T is a usage
// error: it panics with ErrEmpty. Use TryRepeatFrom when the table may
// legitimately be empty.
func RepeatFrom[C Store, T any]() Generator[C, Handle[T]] {
	var index int
	return GeneratorFunc[C, Handle[T]](func(ctx C) Handle[T] {
		hs := Handles[T](ctx)
		if len(hs) == 0 {
			panic(fmt.Errorf("%w: generating %s from %T", ErrEmpty, typeOf[T](), ctx))
		}
		h := hs[index%len(hs)]
		index = (index + 1) % len(hs)
		return h
	})
}

// TryRepeatFrom is RepeatFrom yielding an absent value instead of
// panicking when the accessor holds no records of type T.
func TryRepeatFrom[C Store, T any]() Generator[C, wrap.Option[Handle[T]]] {
	var index int
	return GeneratorFunc[C, wrap.Option[Handle[T]]](func(ctx C) wrap.Option[Handle[T]] {
		hs := Handles[T](ctx)
		if len(hs) == 0 {
			return wrap.None[Handle[T]]()
		}
		h := hs[index%len(hs)]
		index = (index + 1) % len(hs)
		return wrap.Some(h)
	})
}

// SubsetsFrom yields subsets of the handles of type T: step i yields the
// handles whose position bit is set in i. Only the first 64 records take
// part.
func SubsetsFrom[C Store, T any]() Generator[C, []Handle[T]] {
	var index uint64
	return GeneratorFunc[C, []Handle[T]](func(ctx C) []Handle[T] {
		hs := Handles[T](ctx)
		res := make([]Handle[T], 0, len(hs))
		for i := range min(maxSubsetHandles, len(hs)) {
			if index&(1<<uint(i)) != 0 {
				res = append(res, hs[i])
			}
		}
		index++
		return res
	})
}

// SampleFrom yields collections of up to count handles of type T, drawn
// round-robin so that consecutive samples continue where the previous one
// stopped. Each sample holds min(records, count) distinct handles.
func SampleFrom[C Store, T any](count Generator[C, int]) Generator[C, []Handle[T]] {
	var index int
	return GeneratorFunc[C, []Handle[T]](func(ctx C) []Handle[T] {
		n := count.Generate(ctx)
		hs := Handles[T](ctx)
		n = min(n, len(hs))
		res := make([]Handle[T], 0, max(n, 0))
		for range n {
			res = append(res, hs[index%len(hs)])
			index = (index + 1) % len(hs)
		}
		return res
	})
}
