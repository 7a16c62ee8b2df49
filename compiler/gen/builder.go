package gen

import (
	"github.com/dave/jennifer/jen"
)

// genBuilder emits the builder of a record:
//
//	type WombleBuilder[R any] struct { ... }
//	func NewWombleBuilder() *WombleBuilder[Womble]
//	func WombleBuilderFor[R any](convert func(Womble) R) *WombleBuilder[R]
//	func (b *WombleBuilder[R]) A(v string) *WombleBuilder[R]
//	func (b *WombleBuilder[R]) Build() R
//
// Context records get pointer slots that are filled at build time, in
// field order, and a Build method taking the accessor.
func genBuilder(e *emitter, f *jen.File) {
	t := e.t
	name := t.BuilderName()
	self := jen.Op("*").Id(name).Types(e.typeArgs()...)
	recv := jen.Id("b").Add(self.Clone())

	f.Commentf("%s builds a single %s and converts it to %s. Use New%s or %sFor to create one.", name, t.Name, t.Result, name, name)
	f.Type().Id(name).Types(e.typeParams()...).StructFunc(func(g *jen.Group) {
		g.Id("convert").Add(e.convertFunc())
		g.Id("built").Bool()
		for _, fd := range t.Fields {
			typ := e.tc.Type(fd.typ())
			if t.Contextual() {
				typ = jen.Op("*").Add(typ)
			}
			g.Id(fd.Slot).Add(typ)
		}
	})

	f.Commentf("New%s returns a builder of %s values.", name, t.Name)
	f.Func().Id("New" + name).Types(e.tc.TypeParams(e.t.typeParams())...).Params().
		Op("*").Id(name).Types(e.selfArgs()...).
		Block(jen.Return(jen.Id(name + "For").Call(e.self())))

	f.Commentf("%sFor returns a builder whose result is converted by convert.", name)
	f.Func().Id(name + "For").Types(e.typeParams()...).Params(jen.Id("convert").Add(e.convertFunc())).
		Add(self.Clone()).
		Block(jen.Return(jen.Op("&").Id(name).Types(e.typeArgs()...).ValuesFunc(func(g *jen.Group) {
			keyed(g, "convert", jen.Id("convert"))
			if !t.Contextual() {
				for _, fd := range t.Fields {
					if v := e.build(fd); v != nil {
						keyed(g, fd.Slot, v)
					}
				}
			}
			g.Line()
		})))

	for _, fd := range t.Fields {
		f.Commentf("%s sets the %s field.", fd.Setter, fd.Name)
		f.Func().Params(recv.Clone()).Id(fd.Setter).Params(jen.Id("v").Add(e.tc.Type(fd.typ()))).Add(self.Clone()).BlockFunc(func(g *jen.Group) {
			if t.Contextual() {
				g.Id("b").Dot(fd.Slot).Op("=").Op("&").Id("v")
			} else {
				g.Id("b").Dot(fd.Slot).Op("=").Id("v")
			}
			g.Return(jen.Id("b"))
		})
	}

	f.Commentf("Build returns the %s converted to %s. A builder can only be built once.", t.Name, t.Result)
	f.Func().Params(recv.Clone()).Id("Build").Params(e.ctxParam()).Id(t.Result).BlockFunc(func(g *jen.Group) {
		g.Qual(RuntimePkg, "Consume").Call(jen.Op("&").Id("b").Dot("built"), jen.Lit(name))
		if t.Contextual() {
			for _, fd := range t.Fields {
				slot := jen.Id("b").Dot(fd.Slot)
				v := e.build(fd)
				if v == nil {
					g.If(slot.Clone().Op("==").Nil()).Block(slot.Clone().Op("=").New(e.tc.Type(fd.typ())))
					continue
				}
				g.If(slot.Clone().Op("==").Nil()).Block(
					jen.Id("v").Op(":=").Add(v),
					slot.Clone().Op("=").Op("&").Id("v"),
				)
			}
		}
		g.Return(jen.Id("b").Dot("convert").Call(e.ctxArg(), e.record().ValuesFunc(func(g *jen.Group) {
			for _, fd := range t.Fields {
				v := jen.Id("b").Dot(fd.Slot)
				if t.Contextual() {
					v = jen.Op("*").Add(v)
				}
				keyed(g, fd.Name, v)
			}
			if len(t.Fields) > 0 {
				g.Line()
			}
		})))
	})
}
