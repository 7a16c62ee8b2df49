package valid

import (
	str "strings"

	"github.com/syssam/boulder/arena"
)

// Womble is annotated with both derives.
//
//boulder:buildable
//boulder:generatable
type Womble struct {
	//boulder:default "hullo"
	A string
	//boulder:default 2
	//boulder:generator gen.Inc(5)
	B    int
	C    []int `boulder:"sequence=3;default=7" json:"c"`
	D, E bool
}

// Plain is not annotated.
type Plain struct {
	A string
}

// Pair is generic.
//
//boulder:buildable
type Pair[K comparable, V any] struct {
	Key   K
	Value V
	//boulder:default str.Repeat("x", 2)
	Label string
}

//boulder:generatable
//boulder:context *arena.Arena
type Rabbit struct {
	//boulder:generator_with_context(string) func(a *arena.Arena) string { return "" }
	Name string
}

var _ arena.Store = (*arena.Arena)(nil)
