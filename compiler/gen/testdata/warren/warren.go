package warren

import (
	"github.com/syssam/boulder/arena"
	"github.com/syssam/boulder/gen"
	"github.com/syssam/boulder/wrap"
)

// Carrot lives in the arena.
//
//boulder:buildable
//boulder:generatable
//boulder:context *arena.Arena
type Carrot struct {
	//boulder:default_with_context(int) func(a *arena.Arena) int { return arena.Len[Carrot](a) }
	//boulder:generator gen.Inc(1)
	Size int
}

//boulder:buildable
//boulder:generatable
//boulder:context *arena.Arena
type Rabbit struct {
	//boulder:default "bugs"
	Name string
	//boulder:buildable
	//boulder:generatable
	Food arena.Handle[Carrot]
	//boulder:buildable
	Spare wrap.Option[arena.Handle[Carrot]]
	//boulder:sequence_with_context func(a *arena.Arena) int { return 2 }
	//boulder:generator_with_context arena.RepeatFrom[*arena.Arena, Carrot]()
	Stash []arena.Handle[Carrot]
	//boulder:generatable
	Plain Plain
}

// Plain has no accessor.
//
//boulder:generatable
type Plain struct {
	N int
}
