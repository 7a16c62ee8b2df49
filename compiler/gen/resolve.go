package gen

import (
	"fmt"
	"go/types"
	"strings"
)

// Runtime package paths referenced by generated code.
const (
	RuntimePkg = "github.com/syssam/boulder"
	WrapPkg    = RuntimePkg + "/wrap"
	ArenaPkg   = RuntimePkg + "/arena"
	GenPkg     = RuntimePkg + "/gen"
)

// LayerKind enumerates the wrapper layers the resolver peels.
type LayerKind int

const (
	_ LayerKind = iota
	LayerOption
	LayerRc
	LayerArc
	LayerBox
	LayerCell
	LayerRefCell
	LayerMutex
	LayerHandle
)

var layerNames = [...]string{
	LayerOption:  "Option",
	LayerRc:      "Rc",
	LayerArc:     "Arc",
	LayerBox:     "Box",
	LayerCell:    "Cell",
	LayerRefCell: "RefCell",
	LayerMutex:   "Mutex",
	LayerHandle:  "Handle",
}

// String returns the layer name.
func (k LayerKind) String() string {
	if k <= 0 || int(k) >= len(layerNames) {
		return "Layer(" + fmt.Sprint(int(k)) + ")"
	}
	return layerNames[k]
}

// Func returns the name of the re-wrap function of a context-free layer
// in the wrap package.
func (k LayerKind) Func() string {
	switch k {
	case LayerOption:
		return "Some"
	case LayerHandle:
		return ""
	default:
		return "New" + k.String()
	}
}

// Layer is one wrapper around a record. Inner is the type the layer wraps.
type Layer struct {
	Kind  LayerKind
	Inner types.Type
}

// WrapperChain lists the layers around a record, outermost first.
type WrapperChain []Layer

// String formats the chain the way the type is written, with a T
// standing for the record.
//
//	Arc[*Mutex[T]]
func (c WrapperChain) String() string {
	var b strings.Builder
	for _, l := range c {
		switch l.Kind {
		case LayerBox:
			b.WriteString("*")
		case LayerRefCell, LayerMutex:
			b.WriteString("*" + l.Kind.String() + "[")
		default:
			b.WriteString(l.Kind.String() + "[")
		}
	}
	b.WriteString("T")
	for i := len(c) - 1; i >= 0; i-- {
		if c[i].Kind != LayerBox {
			b.WriteString("]")
		}
	}
	return b.String()
}

// Has reports whether the chain contains a layer of the given kind.
func (c WrapperChain) Has(k LayerKind) bool {
	for _, l := range c {
		if l.Kind == k {
			return true
		}
	}
	return false
}

// ResolveChain peels the wrapper layers of t one at a time and returns
// them with the record type at the center. The arena handle layer is only
// accepted when contextual is set.
func ResolveChain(t types.Type, contextual bool) (WrapperChain, *types.Named, error) {
	var chain WrapperChain
	for {
		t = types.Unalias(t)
		switch u := t.(type) {
		case *types.Pointer:
			elem := types.Unalias(u.Elem())
			if n, ok := elem.(*types.Named); ok && pkgPath(n) == WrapPkg {
				switch n.Obj().Name() {
				case "RefCell":
					chain = append(chain, Layer{Kind: LayerRefCell, Inner: n.TypeArgs().At(0)})
					t = n.TypeArgs().At(0)
					continue
				case "Mutex":
					chain = append(chain, Layer{Kind: LayerMutex, Inner: n.TypeArgs().At(0)})
					t = n.TypeArgs().At(0)
					continue
				}
			}
			chain = append(chain, Layer{Kind: LayerBox, Inner: elem})
			t = elem
		case *types.Named:
			var kind LayerKind
			switch path, name := pkgPath(u), u.Obj().Name(); {
			case path == WrapPkg && name == "Option":
				kind = LayerOption
			case path == WrapPkg && name == "Rc":
				kind = LayerRc
			case path == WrapPkg && name == "Arc":
				kind = LayerArc
			case path == WrapPkg && name == "Cell":
				kind = LayerCell
			case path == WrapPkg && (name == "RefCell" || name == "Mutex"):
				return nil, nil, fmt.Errorf("%s must be used through a pointer, *wrap.%s", name, name)
			case path == ArenaPkg && name == "Handle":
				if !contextual {
					return nil, nil, fmt.Errorf("arena handles require a record with //boulder:context")
				}
				kind = LayerHandle
			default:
				if _, ok := u.Underlying().(*types.Struct); !ok {
					return nil, nil, fmt.Errorf("%s is not a struct type", u.Obj().Name())
				}
				return chain, u, nil
			}
			chain = append(chain, Layer{Kind: kind, Inner: u.TypeArgs().At(0)})
			t = u.TypeArgs().At(0)
		case *types.TypeParam:
			return nil, nil, fmt.Errorf("type parameter %s cannot be built or generated", u.Obj().Name())
		default:
			return nil, nil, fmt.Errorf("%s is not a named record type", t)
		}
	}
}

// Base is the record at the center of a wrapper chain, together with the
// artifacts derived for it.
type Base struct {
	Named *types.Named
	// Type is set when the record is part of the graph being generated.
	Type      *Type
	Builder   bool
	Generator bool
	// Context is the accessor type of a context-aware base.
	Context types.Type
}

// lookupBase finds the derived artifacts of a record: first among the
// records of the graph, then in the scope of the record package, where a
// previous run generated them.
func (g *Graph) lookupBase(named *types.Named) (*Base, error) {
	obj := named.Origin().Obj()
	if obj.Pkg() == nil {
		return nil, fmt.Errorf("%s has no package", obj.Name())
	}
	b := &Base{Named: named}
	if t, ok := g.nodes[obj.Pkg().Path()+"."+obj.Name()]; ok {
		b.Type = t
		b.Builder, b.Generator = t.Buildable, t.Generatable
		b.Context = t.ContextType
		return b, nil
	}
	scope := obj.Pkg().Scope()
	for _, name := range []string{builderName(obj.Name()), generatorName(obj.Name())} {
		fn, ok := scope.Lookup(name + "For").(*types.Func)
		if !ok {
			continue
		}
		sig := fn.Type().(*types.Signature)
		if sig.Params().Len() != 1 {
			continue
		}
		conv, ok := sig.Params().At(0).Type().Underlying().(*types.Signature)
		if !ok {
			continue
		}
		if strings.HasSuffix(name, "Builder") {
			b.Builder = true
		} else {
			b.Generator = true
		}
		if conv.Params().Len() == 2 {
			b.Context = conv.Params().At(0).Type()
		}
	}
	if !b.Builder && !b.Generator {
		return nil, fmt.Errorf("%s has neither a builder nor a generator; annotate it with //boulder:buildable or //boulder:generatable", obj.Name())
	}
	return b, nil
}

// storeInterface returns the arena.Store interface, found through the
// package of the arena handle mentioned by t.
func storeInterface(t types.Type) *types.Interface {
	for {
		t = types.Unalias(t)
		switch u := t.(type) {
		case *types.Pointer:
			t = u.Elem()
		case *types.Slice:
			t = u.Elem()
		case *types.Named:
			if pkgPath(u) == ArenaPkg {
				if obj, ok := u.Obj().Pkg().Scope().Lookup("Store").(*types.TypeName); ok {
					if iface, ok := obj.Type().Underlying().(*types.Interface); ok {
						return iface
					}
				}
				return nil
			}
			if u.TypeArgs().Len() == 0 {
				return nil
			}
			t = u.TypeArgs().At(0)
		default:
			return nil
		}
	}
}

func pkgPath(n *types.Named) string {
	if n.Obj().Pkg() == nil {
		return ""
	}
	return n.Obj().Pkg().Path()
}

// hasTypeParam reports whether t mentions a type parameter.
func hasTypeParam(t types.Type) bool {
	switch u := types.Unalias(t).(type) {
	case *types.TypeParam:
		return true
	case *types.Pointer:
		return hasTypeParam(u.Elem())
	case *types.Slice:
		return hasTypeParam(u.Elem())
	case *types.Array:
		return hasTypeParam(u.Elem())
	case *types.Map:
		return hasTypeParam(u.Key()) || hasTypeParam(u.Elem())
	case *types.Chan:
		return hasTypeParam(u.Elem())
	case *types.Named:
		for i := range u.TypeArgs().Len() {
			if hasTypeParam(u.TypeArgs().At(i)) {
				return true
			}
		}
	case *types.Signature:
		for _, tup := range []*types.Tuple{u.Params(), u.Results()} {
			for i := range tup.Len() {
				if hasTypeParam(tup.At(i).Type()) {
					return true
				}
			}
		}
	case *types.Struct:
		for i := range u.NumFields() {
			if hasTypeParam(u.Field(i).Type()) {
				return true
			}
		}
	}
	return false
}
