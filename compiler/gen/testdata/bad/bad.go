package bad

import "github.com/syssam/boulder/arena"

//boulder:buildable
type NoBuilder struct {
	//boulder:buildable
	Other Unannotated
	//boulder:sequence 2
	Count int
	//boulder:buildable X=1
	Mole Mole
}

type Unannotated struct{}

//boulder:buildable
type Mole struct {
	Y int
}

//boulder:buildable
type Clash struct {
	Name  string
	name  string
	Build string
}

//boulder:buildable
type Handles struct {
	//boulder:buildable
	H arena.Handle[Mole]
}

//boulder:buildable
//boulder:context *arena.Arena
type Ctx struct {
	//boulder:buildable
	H arena.Handle[Mole]
}

//boulder:buildable
type Nests struct {
	//boulder:buildable
	C Ctx
}

//boulder:buildable
type Generic[T any] struct {
	//boulder:buildable
	V T
}

func convert() int { return 1 }

//boulder:buildable
type Shadowed struct {
	//boulder:default convert()
	N int
}
