package zoo

import (
	"strings"

	"github.com/syssam/boulder/gen"
	"github.com/syssam/boulder/wrap"
)

// Badger is nested into the other records.
//
//boulder:buildable
//boulder:generatable
type Badger struct {
	//boulder:default 7
	//boulder:generator gen.Inc(1)
	B    int
	Name string
}

//boulder:buildable
//boulder:generatable
type Womble struct {
	//boulder:default strings.Repeat("a", 2)
	A string
	//boulder:buildable B=3
	//boulder:generatable B=gen.Const(9)
	Badger *Badger
	//boulder:buildable
	Shared wrap.Arc[*wrap.Mutex[Badger]]
	//boulder:buildable
	//boulder:sequence 2
	//boulder:sequence_generator gen.Repeat(0, 1)
	Crowd []Badger
	//boulder:default 1
	//boulder:default 2
	Twice int
	//boulder:generator func() bool { return true }
	Flag bool
	_    int
}

//boulder:buildable
type Pair[K comparable, V any] struct {
	Key   K
	Value V
	//boulder:default "x"
	Label string
}
