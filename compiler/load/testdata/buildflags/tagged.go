//go:build hidden

package buildflags

//boulder:buildable
type Hidden struct {
	A int
}
