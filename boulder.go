// Package boulder provides the runtime half of generated builders and
// generators.
//
// The boulder command reads Go struct types annotated with //boulder:buildable
// and //boulder:generatable and writes, next to them, a builder type that
// constructs one value with selectively overridden fields and a generator type
// that produces an unbounded stream of values whose fields evolve according to
// per-field rules. The generated code calls into this package, into
// [github.com/syssam/boulder/wrap] for wrapper layers, and into
// [github.com/syssam/boulder/arena] for the context-aware variant.
//
// # Wrapper layers
//
// Generated builders and generators take a converter from the record to the
// result type R. The converter for a wrapped result is assembled one layer at
// a time with [Wrap]:
//
//	// Arc[*Mutex[Womble]]
//	convert := boulder.Wrap(wrap.NewArc[*wrap.Mutex[Womble]],
//		boulder.Wrap(wrap.NewMutex[Womble], boulder.Self[Womble]))
//	shared := WombleBuilderFor(convert).B(3).Build()
//
// Overrides always operate on the record's own fields; the converter only
// runs when the value is finally built.
package boulder

// Builder constructs exactly one value of type T.
type Builder[T any] interface {
	Build() T
}

// Generator produces an unbounded sequence of values of type T,
// one per call to Generate.
type Generator[T any] interface {
	Generate() T
}

// GeneratorFunc adapts an ordinary function to the Generator interface.
// Any zero-argument function returning the field type is a valid rule.
type GeneratorFunc[T any] func() T

// Generate calls f.
func (f GeneratorFunc[T]) Generate() T {
	return f()
}

// Zero returns a generator that always yields the zero value of T.
func Zero[T any]() Generator[T] {
	return GeneratorFunc[T](func() T {
		var zero T
		return zero
	})
}

// Self is the identity converter. It is the innermost converter of every
// wrapper chain.
func Self[T any](v T) T {
	return v
}

// Wrap applies one wrapper layer on top of an inner converter: the value is
// first converted by inner, then wrapped by outer.
func Wrap[In, Mid, Out any](outer func(Mid) Out, inner func(In) Mid) func(In) Out {
	return func(v In) Out {
		return outer(inner(v))
	}
}

// Consume marks a builder as used. It panics with ErrBuilderConsumed if the
// builder has already been built.
func Consume(built *bool, name string) {
	if *built {
		panic(&ConsumedError{Builder: name})
	}
	*built = true
}
