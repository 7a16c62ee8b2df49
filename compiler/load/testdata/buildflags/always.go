package buildflags

//boulder:buildable
type Always struct {
	A int
}
