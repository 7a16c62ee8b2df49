package gen

import (
	"go/ast"
	"go/parser"
	"go/types"

	"github.com/dave/jennifer/jen"
)

// emitter renders the builders and generators of one record.
type emitter struct {
	*Graph
	t  *Type
	tc *typeCode
}

func newEmitter(g *Graph, t *Type, tc *typeCode) *emitter {
	return &emitter{Graph: g, t: t, tc: tc}
}

// =============================================================================
// Types
// =============================================================================

// record returns the record type, instantiated with its own parameters.
func (e *emitter) record() *jen.Statement {
	s := jen.Qual(e.t.Package.Path, e.t.Name)
	if e.t.Generic() {
		s.Types(TypeArgs(e.t.typeParams())...)
	}
	return s
}

// context returns the accessor type.
func (e *emitter) context() *jen.Statement {
	return e.tc.Type(e.t.ContextType)
}

// typeParams returns the declaration of the record type parameters
// followed by the result parameter.
func (e *emitter) typeParams() []jen.Code {
	return append(e.tc.TypeParams(e.t.typeParams()), jen.Id(e.t.Result).Any())
}

// typeArgs returns the record type parameters and the result parameter
// as type arguments.
func (e *emitter) typeArgs() []jen.Code {
	return append(TypeArgs(e.t.typeParams()), jen.Id(e.t.Result))
}

// selfArgs instantiates an artifact for the record itself.
func (e *emitter) selfArgs() []jen.Code {
	return append(TypeArgs(e.t.typeParams()), e.record())
}

// convertFunc returns the type of the converter field.
func (e *emitter) convertFunc() *jen.Statement {
	if e.t.Contextual() {
		return jen.Func().Params(e.context(), e.record()).Id(e.t.Result)
	}
	return jen.Func().Params(e.record()).Id(e.t.Result)
}

// self returns the identity converter of the record.
func (e *emitter) self() *jen.Statement {
	if e.t.Contextual() {
		return jen.Qual(ArenaPkg, "Self").Types(e.context(), e.record())
	}
	return jen.Qual(RuntimePkg, "Self").Types(e.record())
}

// generatorOf returns the rule interface type producing t.
func (e *emitter) generatorOf(t types.Type) *jen.Statement {
	if e.t.Contextual() {
		return jen.Qual(ArenaPkg, "Generator").Types(e.context(), e.tc.Type(t))
	}
	return jen.Qual(RuntimePkg, "Generator").Types(e.tc.Type(t))
}

// ctxParam returns the accessor parameter list of the context variant,
// and an empty list otherwise.
func (e *emitter) ctxParam() jen.Code {
	if e.t.Contextual() {
		return jen.Id("ctx").Add(e.context())
	}
	return jen.Null()
}

// ctxType returns the accessor type in the context variant, and nothing
// otherwise.
func (e *emitter) ctxType() jen.Code {
	if e.t.Contextual() {
		return e.context()
	}
	return jen.Null()
}

// ctxArg is ctxParam for call sites.
func (e *emitter) ctxArg() jen.Code {
	if e.t.Contextual() {
		return jen.Id("ctx")
	}
	return jen.Null()
}

// =============================================================================
// Expressions
// =============================================================================

// convert converts x to t.
func (e *emitter) convert(t types.Type, x jen.Code) *jen.Statement {
	if needsParens(t) {
		return jen.Parens(e.tc.Type(t)).Call(x)
	}
	return e.tc.Type(t).Call(x)
}

// operand returns the expression source, parenthesized unless it is
// already a primary expression.
func operand(x *Expr) *jen.Statement {
	switch x.expr.(type) {
	case *ast.Ident, *ast.SelectorExpr, *ast.CallExpr, *ast.IndexExpr,
		*ast.IndexListExpr, *ast.ParenExpr, *ast.CompositeLit, *ast.BasicLit:
		return jen.Id(x.Src)
	}
	return jen.Parens(jen.Id(x.Src))
}

// value evaluates a value expression as t. Context expressions are called
// with the accessor.
//
//	T(expr)
//	T((expr)(ctx))
//	T((func(C) A)(expr)(ctx))
func (e *emitter) value(x *Expr, t types.Type) *jen.Statement {
	if !x.Context {
		return e.convert(t, jen.Id(x.Src))
	}
	fn := jen.Parens(jen.Id(x.Src))
	if x.Annotation != "" {
		fn = jen.Parens(jen.Func().Params(e.context()).Id(x.Annotation)).Call(jen.Id(x.Src))
	}
	return e.convert(t, fn.Call(jen.Id("ctx")))
}

// rule returns a rule expression as a generator of t. A context target
// takes arena generators and lifts plain rules.
func (e *emitter) rule(x *Expr, t types.Type, contextual bool) *jen.Statement {
	switch {
	case !contextual && x.FuncLit():
		return jen.Qual(RuntimePkg, "GeneratorFunc").Types(e.tc.Type(t)).Call(jen.Id(x.Src))
	case !contextual:
		return operand(x)
	case x.Context && (x.FuncLit() || x.Annotation != ""):
		return jen.Qual(ArenaPkg, "GeneratorFunc").Types(e.context(), e.tc.Type(t)).Call(jen.Id(x.Src))
	case x.Context:
		return operand(x)
	default:
		return jen.Qual(ArenaPkg, "FromGenerator").Types(e.context(), e.tc.Type(t)).Call(e.rule(x, t, false))
	}
}

// closure returns a function literal producing body, taking the accessor in
// the context variant.
//
//	func() T { return body }
//	func(ctx C) T { return body }
func (e *emitter) closure(t types.Type, body jen.Code) *jen.Statement {
	return jen.Func().Params(e.ctxParam()).Add(e.tc.Type(t)).Block(jen.Return(body))
}

// funcRule adapts a closure to the rule interface.
func (e *emitter) funcRule(t types.Type, fn jen.Code) *jen.Statement {
	if e.t.Contextual() {
		return jen.Qual(ArenaPkg, "GeneratorFunc").Types(e.context(), e.tc.Type(t)).Call(fn)
	}
	return jen.Qual(RuntimePkg, "GeneratorFunc").Types(e.tc.Type(t)).Call(fn)
}

// zeroRule returns the generator of the zero value of t.
func (e *emitter) zeroRule(t types.Type) *jen.Statement {
	if e.t.Contextual() {
		return jen.Qual(ArenaPkg, "Zero").Types(e.context(), e.tc.Type(t)).Call()
	}
	return jen.Qual(RuntimePkg, "Zero").Types(e.tc.Type(t)).Call()
}

// =============================================================================
// Nested records
// =============================================================================

// converter assembles the converter of a nested record, innermost layer
// first.
//
//	boulder.Wrap(wrap.NewArc[*wrap.Mutex[T]], boulder.Wrap(wrap.NewMutex[T], boulder.Self[T]))
func (e *emitter) converter(n *NestedPlan) *jen.Statement {
	base := e.tc.Type(n.Base.Named)
	contextual := n.Base.Context != nil
	pkg := RuntimePkg
	conv := jen.Qual(RuntimePkg, "Self").Types(base)
	if contextual {
		pkg = ArenaPkg
		conv = jen.Qual(ArenaPkg, "Self").Types(e.context(), base)
	}
	for i := len(n.Chain) - 1; i >= 0; i-- {
		l := n.Chain[i]
		if l.Kind == LayerHandle {
			conv = jen.Qual(ArenaPkg, "HandleOf").Call(conv)
			continue
		}
		fn := jen.Qual(WrapPkg, l.Kind.Func()).Types(e.tc.Type(l.Inner))
		conv = jen.Qual(pkg, "Wrap").Call(fn, conv)
	}
	return conv
}

// nested returns a nested builder or generator with its overrides applied.
// Builders are built on the spot.
func (e *emitter) nested(n *NestedPlan, generator bool) *jen.Statement {
	obj := n.Base.Named.Obj()
	ctor := builderName(obj.Name())
	if generator {
		ctor = generatorName(obj.Name())
	}
	e.tc.imports[obj.Pkg().Path()] = obj.Pkg().Name()
	s := jen.Qual(obj.Pkg().Path(), ctor+"For").Call(e.converter(n))
	contextual := n.Base.Context != nil
	for _, o := range n.Overrides {
		if generator {
			s.Dot(o.Setter).Call(e.rule(o.Expr, o.Type, contextual))
		} else {
			s.Dot(o.Setter).Call(e.value(o.Expr, o.Type))
		}
	}
	switch {
	case generator:
		return s
	case contextual:
		return s.Dot("Build").Call(jen.Id("ctx"))
	default:
		return s.Dot("Build").Call()
	}
}

// nestedRule returns a nested generator as a rule of the record variant,
// lifting plain generators into context records.
func (e *emitter) nestedRule(n *NestedPlan, t types.Type) *jen.Statement {
	g := e.nested(n, true)
	if e.t.Contextual() && n.Base.Context == nil {
		return jen.Qual(ArenaPkg, "FromGenerator").Types(e.context(), e.tc.Type(t)).Call(g)
	}
	return g
}

// =============================================================================
// Strategies
// =============================================================================

// generator returns the rule that produces values of a strategy.
// Builder strategies are evaluated again on every step.
func (e *emitter) generator(s *Strategy) *jen.Statement {
	switch s.Kind {
	case StrategyRule:
		return e.rule(s.Expr, s.Type, e.t.Contextual())
	case StrategyGenerator:
		return e.nestedRule(s.Nested, s.Type)
	case StrategyBuilder:
		return e.funcRule(s.Type, e.closure(s.Type, e.nested(s.Nested, false)))
	case StrategyValue:
		return e.funcRule(s.Type, e.closure(s.Type, e.value(s.Expr, s.Type)))
	default:
		return e.zeroRule(s.Type)
	}
}

// next returns a function that produces one value of a strategy, for the
// sequence elements of builders.
func (e *emitter) next(s *Strategy) *jen.Statement {
	switch s.Kind {
	case StrategyBuilder:
		return e.closure(s.Type, e.nested(s.Nested, false))
	case StrategyValue:
		return e.closure(s.Type, e.value(s.Expr, s.Type))
	default:
		return e.generator(s).Dot("Generate")
	}
}

// collect builds a sequence of count elements produced by s.
func (e *emitter) collect(t types.Type, count *Expr, s *Strategy) *jen.Statement {
	n := e.value(count, types.Typ[types.Int])
	if e.t.Contextual() {
		return jen.Qual(ArenaPkg, "Collect").Types(e.tc.Type(t)).Call(jen.Id("ctx"), n, e.next(s))
	}
	return jen.Qual(RuntimePkg, "Collect").Types(e.tc.Type(t)).Call(n, e.next(s))
}

// build returns the value of a builder slot, or nil for the zero value.
func (e *emitter) build(f *Field) jen.Code {
	p := f.Build
	if p.Sequence {
		return e.collect(f.typ(), p.Count, p.Strategy)
	}
	switch p.Kind {
	case StrategyValue:
		return e.value(p.Expr, f.typ())
	case StrategyBuilder:
		return e.nested(p.Nested, false)
	default:
		return nil
	}
}

// generate returns the rule of a generator slot.
func (e *emitter) generate(f *Field) *jen.Statement {
	p := f.Gen
	if !p.Sequence {
		return e.generator(p.Strategy)
	}
	intType := types.Typ[types.Int]
	var count *jen.Statement
	if p.CountRule != nil {
		count = e.rule(p.CountRule, intType, e.t.Contextual())
	} else {
		count = e.funcRule(intType, e.closure(intType, e.value(p.Count, intType)))
	}
	elem := e.generator(p.Strategy)
	if e.t.Contextual() {
		return jen.Qual(ArenaPkg, "Sequence").Types(e.tc.Type(f.typ()), e.context(), e.tc.Type(f.Elem)).Call(count, elem)
	}
	return jen.Qual(RuntimePkg, "Sequence").Types(e.tc.Type(f.typ()), e.tc.Type(f.Elem)).Call(count, elem)
}

// keyed adds one key: value element to a composite literal, on its own
// line. Callers end a non-empty literal with g.Line().
func keyed(g *jen.Group, key string, v jen.Code) {
	g.Line().Id(key).Op(":").Add(v)
}

// =============================================================================
// Imports
// =============================================================================

// runtimeImports are the runtime packages directive expressions may name
// without importing them in the declaring file.
var runtimeImports = map[string]string{
	"boulder": RuntimePkg,
	"gen":     GenPkg,
	"wrap":    WrapPkg,
	"arena":   ArenaPkg,
}

// exprImports returns the imports the directive expressions of t refer to,
// keyed by import name. Imports of the declaring file come first, then the
// runtime packages for names the package does not declare.
func exprImports(t *Type) map[string]string {
	used := make(map[string]string)
	visit := func(x ast.Expr) {
		ast.Inspect(x, func(n ast.Node) bool {
			sel, ok := n.(*ast.SelectorExpr)
			if !ok {
				return true
			}
			if id, ok := sel.X.(*ast.Ident); ok {
				if path, ok := t.importPath(id.Name); ok {
					used[id.Name] = path
				}
			}
			return true
		})
	}
	for _, f := range t.Fields {
		for _, x := range f.Directive.Exprs() {
			visit(x.expr)
			if x.Annotation != "" {
				if a, err := parser.ParseExpr(x.Annotation); err == nil {
					visit(a)
				}
			}
		}
	}
	return used
}

// importPath resolves the package name of a qualified identifier in a
// directive expression of t.
func (t *Type) importPath(name string) (string, bool) {
	if path, ok := t.Imports[name]; ok {
		return path, true
	}
	path, ok := runtimeImports[name]
	if !ok {
		return "", false
	}
	if pkg := t.Package.Package.Types; pkg != nil && pkg.Scope().Lookup(name) != nil {
		return "", false
	}
	return path, true
}
