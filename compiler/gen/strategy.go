package gen

import (
	"fmt"
	"go/types"
)

// StrategyKind enumerates the sources of a slot value.
type StrategyKind int

const (
	// StrategyZero yields the zero value.
	StrategyZero StrategyKind = iota
	// StrategyValue evaluates an explicit value expression.
	StrategyValue
	// StrategyBuilder builds the value with the builder of a nested record.
	StrategyBuilder
	// StrategyGenerator draws the value from the generator of a nested record.
	StrategyGenerator
	// StrategyRule draws the value from a generator rule expression.
	StrategyRule
)

var kindNames = [...]string{
	StrategyZero:      "zero",
	StrategyValue:     "value",
	StrategyBuilder:   "builder",
	StrategyGenerator: "generator",
	StrategyRule:      "rule",
}

// String returns the strategy name.
func (k StrategyKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("StrategyKind(%d)", int(k))
	}
	return kindNames[k]
}

type (
	// Strategy is the resolved source of a field value, or of one element of
	// a sequence field.
	Strategy struct {
		Kind StrategyKind
		// Expr is set for values and rules.
		Expr *Expr
		// Nested is set for nested builders and generators.
		Nested *NestedPlan
		// Type is the type the strategy produces.
		Type types.Type
	}

	// NestedPlan is a nested directive resolved against its base record.
	NestedPlan struct {
		*Nested
		Chain     WrapperChain
		Base      *Base
		Overrides []*OverridePlan
	}

	// OverridePlan is an override bound to a field of the nested record.
	OverridePlan struct {
		*Override
		// Setter of the nested builder or generator.
		Setter string
		// Type of the nested record field.
		Type types.Type
	}

	// Plan is the strategy of one slot. For sequences the strategy applies
	// to each element.
	Plan struct {
		*Strategy
		Sequence bool
		// Count is the builder sequence length. Generators fall back to it
		// when no count rule is given.
		Count *Expr
		// CountRule draws the length of every generated sequence.
		CountRule *Expr
	}
)

// String describes the strategy.
//
//	value("hullo")
//	builder(*Badger) via Arc[*Mutex[T]]
func (s *Strategy) String() string {
	switch s.Kind {
	case StrategyValue, StrategyRule:
		return fmt.Sprintf("%s(%s)", s.Kind, s.Expr.Src)
	case StrategyBuilder, StrategyGenerator:
		str := fmt.Sprintf("%s(%s)", s.Kind, s.Nested.Base.Named.Obj().Name())
		if len(s.Nested.Chain) > 0 {
			str += " via " + s.Nested.Chain.String()
		}
		return str
	default:
		return s.Kind.String()
	}
}

// String describes the plan.
func (p *Plan) String() string {
	if !p.Sequence {
		return p.Strategy.String()
	}
	count := "?"
	switch {
	case p.CountRule != nil:
		count = p.CountRule.Src
	case p.Count != nil:
		count = p.Count.Src
	}
	return fmt.Sprintf("sequence(%s) of %s", count, p.Strategy)
}

// plan resolves the builder and generator slots of f.
func (g *Graph) plan(t *Type, f *Field) error {
	d := f.Directive
	ft := f.typ()
	if d.Sequence() {
		s, ok := ft.Underlying().(*types.Slice)
		if !ok {
			return NewResolutionError(t.Name, f.Name, f.Field.Type, "sequence directives require a slice field")
		}
		f.Elem = s.Elem()
		elem, err := g.strategy(t, f, f.Elem, d.Rule, d.Generator, d.Builder, d.Value)
		if err != nil {
			return err
		}
		if t.Buildable {
			if d.Count != nil {
				f.Build = &Plan{Strategy: elem, Sequence: true, Count: d.Count}
			} else {
				// Only a count rule: the builder has no length to use.
				f.Build = &Plan{Strategy: &Strategy{Kind: StrategyZero, Type: ft}}
			}
		}
		if t.Generatable {
			f.Gen = &Plan{Strategy: elem, Sequence: true, Count: d.Count, CountRule: d.CountRule}
		}
		return nil
	}
	if t.Buildable {
		s, err := g.strategy(t, f, ft, nil, nil, d.Builder, d.Value)
		if err != nil {
			return err
		}
		f.Build = &Plan{Strategy: s}
	}
	if t.Generatable {
		s, err := g.strategy(t, f, ft, d.Rule, d.Generator, d.Builder, d.Value)
		if err != nil {
			return err
		}
		f.Gen = &Plan{Strategy: s}
	}
	return nil
}

// strategy picks the first applicable source, in precedence order.
// The parser keeps rule and generator, and value and builder, exclusive.
func (g *Graph) strategy(t *Type, f *Field, typ types.Type, rule *Expr, gen, build *Nested, value *Expr) (*Strategy, error) {
	switch {
	case rule != nil:
		return &Strategy{Kind: StrategyRule, Expr: rule, Type: typ}, nil
	case gen != nil:
		n, err := g.nested(t, f, typ, gen, true)
		if err != nil {
			return nil, err
		}
		return &Strategy{Kind: StrategyGenerator, Nested: n, Type: typ}, nil
	case build != nil:
		n, err := g.nested(t, f, typ, build, false)
		if err != nil {
			return nil, err
		}
		return &Strategy{Kind: StrategyBuilder, Nested: n, Type: typ}, nil
	case value != nil:
		return &Strategy{Kind: StrategyValue, Expr: value, Type: typ}, nil
	default:
		return &Strategy{Kind: StrategyZero, Type: typ}, nil
	}
}

// nested resolves a nested builder or generator directive on typ.
func (g *Graph) nested(t *Type, f *Field, typ types.Type, n *Nested, generator bool) (*NestedPlan, error) {
	target := types.TypeString(typ, types.RelativeTo(t.Package.Package.Types))
	fail := func(format string, args ...any) *ResolutionError {
		return NewResolutionError(t.Name, f.Name, target, fmt.Sprintf(format, args...))
	}
	if hasTypeParam(typ) {
		return nil, fail("nested records cannot depend on type parameters")
	}
	chain, named, err := ResolveChain(typ, t.Contextual())
	if err != nil {
		e := fail("cannot resolve the nested record")
		e.Cause = err
		return nil, e
	}
	base, err := g.lookupBase(named)
	if err != nil {
		e := fail("no derived artifact")
		e.Cause = err
		return nil, e
	}
	name := named.Obj().Name()
	switch {
	case generator && !base.Generator:
		return nil, fail("%s has no generator; annotate it with //boulder:generatable", name)
	case !generator && !base.Builder:
		return nil, fail("%s has no builder; annotate it with //boulder:buildable", name)
	case base.Context != nil && !t.Contextual():
		return nil, fail("%s needs the accessor %s, but %s has no //boulder:context", name, base.Context, t.Name)
	case base.Context != nil && !types.Identical(base.Context, t.ContextType):
		return nil, fail("%s needs the accessor %s, but %s threads %s", name, base.Context, t.Name, t.ContextType)
	case chain.Has(LayerHandle) && base.Context == nil:
		return nil, fail("arena handles require a context-aware record, %s has no //boulder:context", name)
	case chain.Has(LayerHandle):
		if store := storeInterface(typ); store == nil || !types.Implements(t.ContextType, store) {
			return nil, fail("accessor %s does not implement arena.Store", t.ContextType)
		}
	case generator && n.Context && base.Context == nil && len(n.Overrides) > 0:
		return nil, fail("context-aware overrides require a context-aware generator, %s has none", name)
	}
	p := &NestedPlan{Nested: n, Chain: chain, Base: base}
	st := named.Underlying().(*types.Struct)
	for _, o := range n.Overrides {
		var field *types.Var
		for i := range st.NumFields() {
			if st.Field(i).Name() == o.Field {
				field = st.Field(i)
				break
			}
		}
		if field == nil {
			return nil, fail("%s has no field %s", name, o.Field)
		}
		p.Overrides = append(p.Overrides, &OverridePlan{Override: o, Setter: pascal(o.Field), Type: field.Type()})
	}
	return p, nil
}
