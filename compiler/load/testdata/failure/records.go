package failure

//boulder:buildable
//boulder:serializable
type Broken struct {
	A int
}
