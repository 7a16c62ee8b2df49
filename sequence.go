package boulder

import "iter"

// Collect builds a sequence of exactly n elements, calling next once per
// element in order. A negative n yields an empty sequence.
func Collect[S ~[]E, E any](n int, next func() E) S {
	if n <= 0 {
		return S{}
	}
	s := make(S, 0, n)
	for range n {
		s = append(s, next())
	}
	return s
}

// Sequence returns a generator of variable-size sequences. Each step draws
// one count from count and then that many elements from elem.
func Sequence[S ~[]E, E any](count Generator[int], elem Generator[E]) Generator[S] {
	return GeneratorFunc[S](func() S {
		return Collect[S](count.Generate(), elem.Generate)
	})
}

// Take returns the next n values of g.
func Take[T any](g Generator[T], n int) []T {
	return Collect[[]T](n, g.Generate)
}

// All returns an infinite iterator over the values of g. The iterator
// advances g; it stops only when the consumer breaks out of the loop.
//
//	for w := range boulder.All(NewWizardGenerator()) {
//		if w.B > 10 {
//			break
//		}
//	}
func All[T any](g Generator[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			if !yield(g.Generate()) {
				return
			}
		}
	}
}
