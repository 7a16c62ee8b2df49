package arena

import (
	"iter"

	"github.com/syssam/boulder"
)

// Builder constructs exactly one value of type T against the accessor C.
type Builder[C, T any] interface {
	Build(ctx C) T
}

// Generator produces a value of type T per call, against the accessor C.
type Generator[C, T any] interface {
	Generate(ctx C) T
}

// GeneratorFunc adapts an ordinary function to the Generator interface.
type GeneratorFunc[C, T any] func(ctx C) T

// Generate calls f.
func (f GeneratorFunc[C, T]) Generate(ctx C) T {
	return f(ctx)
}

// FromGenerator lifts a context-free generator into a context-aware one
// that ignores the accessor.
//
//	arena.FromGenerator[*Rug](gen.Inc(1))
func FromGenerator[C, T any](g boulder.Generator[T]) Generator[C, T] {
	return GeneratorFunc[C, T](func(C) T {
		return g.Generate()
	})
}

// Zero returns a generator that always yields the zero value of T.
func Zero[C, T any]() Generator[C, T] {
	return GeneratorFunc[C, T](func(C) T {
		var zero T
		return zero
	})
}

// Self is the identity converter of the context-aware variant.
func Self[C, T any](_ C, v T) T {
	return v
}

// Wrap applies a context-free wrapper layer (wrap.Some, wrap.NewMutex, ...)
// on top of an inner context-aware converter.
func Wrap[C, In, Mid, Out any](outer func(Mid) Out, inner func(C, In) Mid) func(C, In) Out {
	return func(ctx C, v In) Out {
		return outer(inner(ctx, v))
	}
}

// HandleOf applies the arena-handle layer on top of an inner converter: the
// converted value is inserted into the accessor and its handle returned.
// It is the only layer that mutates the accessor.
func HandleOf[C Store, In, Out any](inner func(C, In) Out) func(C, In) Handle[Out] {
	return func(ctx C, v In) Handle[Out] {
		return Add(ctx, inner(ctx, v))
	}
}

// Collect builds a sequence of exactly n elements, calling next once per
// element, strictly in order: each element may observe the records the
// previous ones added to the accessor.
func Collect[S ~[]E, C, E any](ctx C, n int, next func(C) E) S {
	if n <= 0 {
		return S{}
	}
	s := make(S, 0, n)
	for range n {
		s = append(s, next(ctx))
	}
	return s
}

// Sequence returns a generator of variable-size sequences. Each step draws
// one count from count and then that many elements from elem, in order.
func Sequence[S ~[]E, C, E any](count Generator[C, int], elem Generator[C, E]) Generator[C, S] {
	return GeneratorFunc[C, S](func(ctx C) S {
		return Collect[S](ctx, count.Generate(ctx), elem.Generate)
	})
}

// Take returns the next n values of g, generated against ctx.
func Take[C, T any](ctx C, g Generator[C, T], n int) []T {
	return Collect[[]T](ctx, n, g.Generate)
}

// All returns an infinite iterator over the values of g, generated against
// ctx. It stops only when the consumer breaks out of the loop.
func All[C, T any](ctx C, g Generator[C, T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			if !yield(g.Generate(ctx)) {
				return
			}
		}
	}
}
