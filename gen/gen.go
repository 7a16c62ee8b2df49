// Package gen provides ready-made generator rules for use in
// //boulder:generator directives and generator overrides.
//
//	//boulder:generator gen.Pattern("user-%d@example.com", gen.Inc(1))
//	Email string
//
// Every rule returns a boulder.Generator, so rules nest freely.
package gen

import (
	"fmt"
	"iter"
	"reflect"
	"time"

	"github.com/syssam/boulder"
	"github.com/syssam/boulder/wrap"
)

// Number is the set of types Inc can count with.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// Const always yields v.
func Const[T any](v T) boulder.Generator[T] {
	return boulder.GeneratorFunc[T](func() T { return v })
}

// Func adapts fn to a generator. It exists so that closures can be used
// where a type argument cannot be inferred from a bare func literal.
func Func[T any](fn func() T) boulder.Generator[T] {
	return boulder.GeneratorFunc[T](fn)
}

// Inc yields start, start+1, start+2, ...
func Inc[T Number](start T) boulder.Generator[T] {
	return IncBy(start, 1)
}

// IncBy yields start, start+step, start+2*step, ...
func IncBy[T Number](start, step T) boulder.Generator[T] {
	next := start
	return boulder.GeneratorFunc[T](func() T {
		v := next
		next += step
		return v
	})
}

// Bool alternates false, true, false, ...
func Bool() boulder.Generator[bool] {
	var v bool
	return boulder.GeneratorFunc[bool](func() bool {
		r := v
		v = !v
		return r
	})
}

// Repeat cycles through vals in order. It panics if vals is empty.
func Repeat[T any](vals ...T) boulder.Generator[T] {
	if len(vals) == 0 {
		panic("gen: Repeat requires at least one value")
	}
	vals = append([]T(nil), vals...)
	var i int
	return boulder.GeneratorFunc[T](func() T {
		v := vals[i]
		i = (i + 1) % len(vals)
		return v
	})
}

// Cycle replays seq forever, restarting it each time it is exhausted.
// It panics if seq yields nothing.
func Cycle[T any](seq iter.Seq[T]) boulder.Generator[T] {
	var (
		next func() (T, bool)
		stop func()
	)
	return boulder.GeneratorFunc[T](func() T {
		for attempt := 0; attempt < 2; attempt++ {
			if next == nil {
				next, stop = iter.Pull(seq)
			}
			if v, ok := next(); ok {
				return v
			}
			stop()
			next = nil
		}
		panic("gen: Cycle over an empty sequence")
	})
}

// Some wraps every value of g in a present wrap.Option.
func Some[T any](g boulder.Generator[T]) boulder.Generator[wrap.Option[T]] {
	return boulder.GeneratorFunc[wrap.Option[T]](func() wrap.Option[T] {
		return wrap.Some(g.Generate())
	})
}

// Time yields start, start+step, start+2*step, ...
func Time(start time.Time, step time.Duration) boulder.Generator[time.Time] {
	next := start
	return boulder.GeneratorFunc[time.Time](func() time.Time {
		v := next
		next = next.Add(step)
		return v
	})
}

// Pattern formats format with fmt.Sprintf on every step. Each argument that
// has a Generate method with no parameters and one result is advanced once
// per step and its value substituted; other arguments are used verbatim.
//
//	gen.Pattern("%d-an-example-%d", gen.Inc(1), gen.Inc(5)) // "1-an-example-5", "2-an-example-6", ...
func Pattern(format string, args ...any) boulder.Generator[string] {
	parts := make([]func() any, len(args))
	for i, arg := range args {
		parts[i] = argument(arg)
	}
	return boulder.GeneratorFunc[string](func() string {
		vals := make([]any, len(parts))
		for i, p := range parts {
			vals[i] = p()
		}
		return fmt.Sprintf(format, vals...)
	})
}

// argument returns a function producing the value of one Pattern argument.
func argument(arg any) func() any {
	if arg == nil {
		return func() any { return nil }
	}
	m := reflect.ValueOf(arg).MethodByName("Generate")
	if !m.IsValid() || m.Type().NumIn() != 0 || m.Type().NumOut() != 1 {
		return func() any { return arg }
	}
	return func() any {
		return m.Call(nil)[0].Interface()
	}
}
