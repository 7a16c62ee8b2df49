package gen

import (
	"go/types"
	"strconv"

	"github.com/dave/jennifer/jen"
)

// typeCode renders go/types types as jennifer code. Package qualifiers are
// emitted with jen.Qual, so types of the generated package render without
// one. The names of every package seen are recorded, to be registered on
// the file before it is rendered.
type typeCode struct {
	imports map[string]string
}

func newTypeCode() *typeCode {
	return &typeCode{imports: make(map[string]string)}
}

// register sets the import names of the packages seen so far on f.
func (c *typeCode) register(f *jen.File) {
	for path, name := range c.imports {
		f.ImportName(path, name)
	}
}

func (c *typeCode) qual(obj types.Object) *jen.Statement {
	if obj.Pkg() == nil {
		return jen.Id(obj.Name())
	}
	c.imports[obj.Pkg().Path()] = obj.Pkg().Name()
	return jen.Qual(obj.Pkg().Path(), obj.Name())
}

// Type returns the code of t.
func (c *typeCode) Type(t types.Type) *jen.Statement {
	switch t := t.(type) {
	case *types.Basic:
		if t.Kind() == types.UnsafePointer {
			return jen.Qual("unsafe", "Pointer")
		}
		return jen.Id(t.Name())
	case *types.Alias:
		return c.qual(t.Obj()).Add(c.typeArgs(t.TypeArgs()))
	case *types.Named:
		return c.qual(t.Obj()).Add(c.typeArgs(t.TypeArgs()))
	case *types.TypeParam:
		return jen.Id(t.Obj().Name())
	case *types.Pointer:
		return jen.Op("*").Add(c.Type(t.Elem()))
	case *types.Slice:
		return jen.Index().Add(c.Type(t.Elem()))
	case *types.Array:
		return jen.Index(jen.Lit(int(t.Len()))).Add(c.Type(t.Elem()))
	case *types.Map:
		return jen.Map(c.Type(t.Key())).Add(c.Type(t.Elem()))
	case *types.Chan:
		switch t.Dir() {
		case types.SendOnly:
			return jen.Chan().Op("<-").Add(c.Type(t.Elem()))
		case types.RecvOnly:
			return jen.Op("<-").Chan().Add(c.Type(t.Elem()))
		default:
			return jen.Chan().Add(c.Type(t.Elem()))
		}
	case *types.Signature:
		return jen.Func().Add(c.signature(t))
	case *types.Struct:
		return jen.StructFunc(func(g *jen.Group) {
			for i := range t.NumFields() {
				f := t.Field(i)
				s := g.Null()
				if !f.Embedded() {
					s.Id(f.Name())
				}
				s.Add(c.Type(f.Type()))
				if tag := t.Tag(i); tag != "" {
					s.Id(strconv.Quote(tag))
				}
			}
		})
	case *types.Interface:
		return c.iface(t)
	case *types.Union:
		terms := make([]jen.Code, t.Len())
		for i := range t.Len() {
			term := t.Term(i)
			if term.Tilde() {
				terms[i] = jen.Op("~").Add(c.Type(term.Type()))
			} else {
				terms[i] = c.Type(term.Type())
			}
		}
		return jen.Union(terms...)
	default:
		return jen.Id(types.TypeString(t, func(p *types.Package) string { return p.Name() }))
	}
}

func (c *typeCode) typeArgs(l *types.TypeList) jen.Code {
	if l.Len() == 0 {
		return jen.Null()
	}
	args := make([]jen.Code, l.Len())
	for i := range l.Len() {
		args[i] = c.Type(l.At(i))
	}
	return jen.Types(args...)
}

func (c *typeCode) iface(t *types.Interface) *jen.Statement {
	switch {
	case t.Empty():
		return jen.Any()
	case t.IsImplicit():
		return c.Type(t.EmbeddedType(0))
	}
	return jen.InterfaceFunc(func(g *jen.Group) {
		for i := range t.NumEmbeddeds() {
			g.Add(c.Type(t.EmbeddedType(i)))
		}
		for i := range t.NumExplicitMethods() {
			m := t.ExplicitMethod(i)
			g.Id(m.Name()).Add(c.signature(m.Type().(*types.Signature)))
		}
	})
}

func (c *typeCode) signature(sig *types.Signature) *jen.Statement {
	params := make([]jen.Code, sig.Params().Len())
	for i := range sig.Params().Len() {
		pt := sig.Params().At(i).Type()
		if sig.Variadic() && i == sig.Params().Len()-1 {
			params[i] = jen.Op("...").Add(c.Type(pt.(*types.Slice).Elem()))
			continue
		}
		params[i] = c.Type(pt)
	}
	results := make([]jen.Code, sig.Results().Len())
	for i := range sig.Results().Len() {
		results[i] = c.Type(sig.Results().At(i).Type())
	}
	s := jen.Params(params...)
	switch len(results) {
	case 0:
	case 1:
		s.Add(results[0])
	default:
		s.Params(results...)
	}
	return s
}

// TypeParams returns the declaration list of type parameters,
// with constraints.
func (c *typeCode) TypeParams(tps []*types.TypeParam) []jen.Code {
	code := make([]jen.Code, len(tps))
	for i, tp := range tps {
		code[i] = jen.Id(tp.Obj().Name()).Add(c.Type(tp.Constraint()))
	}
	return code
}

// TypeArgs returns the type parameters as arguments.
func TypeArgs(tps []*types.TypeParam) []jen.Code {
	code := make([]jen.Code, len(tps))
	for i, tp := range tps {
		code[i] = jen.Id(tp.Obj().Name())
	}
	return code
}

// needsParens reports whether a conversion to t must parenthesize the type,
// as in (*T)(x).
func needsParens(t types.Type) bool {
	switch types.Unalias(t).(type) {
	case *types.Pointer, *types.Signature, *types.Chan:
		return true
	}
	return false
}
