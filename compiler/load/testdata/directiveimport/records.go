package directiveimport

import (
	"strings"

	"github.com/syssam/boulder/gen"
)

//boulder:buildable
//boulder:generatable
type Lamp struct {
	//boulder:default strings.ToUpper("on")
	//boulder:generator gen.Const("off")
	State string
}
