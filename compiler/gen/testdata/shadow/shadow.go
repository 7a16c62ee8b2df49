package shadow

// R takes the default name of the result type parameter.
type R struct{}

var arena = struct{ N int }{N: 4}

// Lamp names gen without importing it.
//
//boulder:buildable
//boulder:generatable
type Lamp struct {
	//boulder:default "on"
	State string
	//boulder:default arena.N
	//boulder:generator gen.Inc(1)
	Watts int
}
