package gen

import (
	"github.com/dave/jennifer/jen"
)

// genGenerator emits the generator of a record:
//
//	type WombleGenerator[R any] struct { ... }
//	func NewWombleGenerator() *WombleGenerator[Womble]
//	func WombleGeneratorFor[R any](convert func(Womble) R) *WombleGenerator[R]
//	func (g *WombleGenerator[R]) A(rule boulder.Generator[string]) *WombleGenerator[R]
//	func (g *WombleGenerator[R]) AFunc(fn func() string) *WombleGenerator[R]
//	func (g *WombleGenerator[R]) Generate() R
//
// Every slot holds a rule. Generate draws from each of them in field order.
func genGenerator(e *emitter, f *jen.File) {
	t := e.t
	name := t.GeneratorName()
	self := jen.Op("*").Id(name).Types(e.typeArgs()...)
	recv := jen.Id("g").Add(self.Clone())

	f.Commentf("%s generates %s converted to %s. Use New%s or %sFor to create one.", name, plural(t.Name), t.Result, name, name)
	f.Type().Id(name).Types(e.typeParams()...).StructFunc(func(g *jen.Group) {
		g.Id("convert").Add(e.convertFunc())
		for _, fd := range t.Fields {
			g.Id(fd.Slot).Add(e.generatorOf(fd.typ()))
		}
	})

	f.Commentf("New%s returns a generator of %s.", name, plural(t.Name))
	f.Func().Id("New" + name).Types(e.tc.TypeParams(e.t.typeParams())...).Params().
		Op("*").Id(name).Types(e.selfArgs()...).
		Block(jen.Return(jen.Id(name + "For").Call(e.self())))

	f.Commentf("%sFor returns a generator whose values are converted by convert.", name)
	f.Func().Id(name + "For").Types(e.typeParams()...).Params(jen.Id("convert").Add(e.convertFunc())).
		Add(self.Clone()).
		Block(jen.Return(jen.Op("&").Id(name).Types(e.typeArgs()...).ValuesFunc(func(g *jen.Group) {
			keyed(g, "convert", jen.Id("convert"))
			for _, fd := range t.Fields {
				keyed(g, fd.Slot, e.generate(fd))
			}
			g.Line()
		})))

	funcs := e.enabled(FeatureFuncSetters)
	for _, fd := range t.Fields {
		f.Commentf("%s sets the rule of the %s field.", fd.Setter, fd.Name)
		f.Func().Params(recv.Clone()).Id(fd.Setter).Params(jen.Id("rule").Add(e.generatorOf(fd.typ()))).Add(self.Clone()).Block(
			jen.Id("g").Dot(fd.Slot).Op("=").Id("rule"),
			jen.Return(jen.Id("g")),
		)
		if !funcs {
			continue
		}
		f.Commentf("%s sets the rule of the %s field to fn.", funcSetter(fd.Setter), fd.Name)
		fn := jen.Func().Params(e.ctxType()).Add(e.tc.Type(fd.typ()))
		f.Func().Params(recv.Clone()).Id(funcSetter(fd.Setter)).Params(jen.Id("fn").Add(fn)).Add(self.Clone()).Block(
			jen.Id("g").Dot(fd.Slot).Op("=").Add(e.funcRule(fd.typ(), jen.Id("fn"))),
			jen.Return(jen.Id("g")),
		)
	}

	f.Commentf("Generate returns the next %s converted to %s.", t.Name, t.Result)
	f.Func().Params(recv.Clone()).Id("Generate").Params(e.ctxParam()).Id(t.Result).Block(
		jen.Return(jen.Id("g").Dot("convert").Call(e.ctxArg(), e.record().ValuesFunc(func(g *jen.Group) {
			for _, fd := range t.Fields {
				keyed(g, fd.Name, jen.Id("g").Dot(fd.Slot).Dot("Generate").Call(e.ctxArg()))
			}
			if len(t.Fields) > 0 {
				g.Line()
			}
		}))),
	)
}

// genAssertions emits compile-time checks that the artifacts of a
// non-generic record satisfy the runtime interfaces.
func genAssertions(e *emitter, f *jen.File) {
	t := e.t
	if t.Generic() {
		return
	}
	pkg, args := RuntimePkg, []jen.Code{e.record()}
	if t.Contextual() {
		pkg, args = ArenaPkg, []jen.Code{e.context(), e.record()}
	}
	f.Var().DefsFunc(func(g *jen.Group) {
		if t.Buildable {
			g.Id("_").Qual(pkg, "Builder").Types(args...).Op("=").Parens(jen.Op("*").Id(t.BuilderName()).Types(e.record())).Call(jen.Nil())
		}
		if t.Generatable {
			g.Id("_").Qual(pkg, "Generator").Types(args...).Op("=").Parens(jen.Op("*").Id(t.GeneratorName()).Types(e.record())).Call(jen.Nil())
		}
	})
}
