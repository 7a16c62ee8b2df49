package badtag

//boulder:buildable
type Broken struct {
	A int `boulder:"default 1"`
}
