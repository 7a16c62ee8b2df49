package gen

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"strings"

	"github.com/syssam/boulder/compiler/load"
)

// Field directive names. Each one has a context-aware counterpart named
// with the ContextSuffix.
const (
	DirectiveDefault           = "default"
	DirectiveBuildable         = "buildable"
	DirectiveSequence          = "sequence"
	DirectiveGenerator         = "generator"
	DirectiveGeneratable       = "generatable"
	DirectiveSequenceGenerator = "sequence_generator"

	ContextSuffix = "_with_context"
)

// Expr is a Go expression taken from a directive argument.
type Expr struct {
	// Src is the expression source, as written.
	Src string
	// Annotation is the explicit result type of a context closure.
	Annotation string
	// Context reports whether the expression is called with the accessor.
	Context bool
	// Directive the expression was read from.
	Directive *load.Directive

	expr ast.Expr
}

// FuncLit reports whether the expression is a function literal.
func (e *Expr) FuncLit() bool {
	_, ok := e.expr.(*ast.FuncLit)
	return ok
}

// Override is one Name=expr item of a nested directive.
type Override struct {
	Field string
	Expr  *Expr
}

// Nested marks a field whose type builds or generates itself, with
// optional overrides of the nested record fields.
type Nested struct {
	Overrides []*Override
	Context   bool
	Directive *load.Directive
}

// FieldDirective is the normalized form of the directives of one field.
// Each of the four slots is filled by the first directive that applies
// to it.
type FieldDirective struct {
	// Builder element: Value or Builder.
	Value   *Expr
	Builder *Nested
	// Builder sequence count.
	Count *Expr
	// Generator element: Rule or Generator.
	Rule      *Expr
	Generator *Nested
	// Generator sequence count.
	CountRule *Expr
	// Ignored lists the directives dropped because their slot was taken.
	Ignored []*load.Directive
}

// Empty reports whether no directive applies to the field.
func (d *FieldDirective) Empty() bool {
	return d.Value == nil && d.Builder == nil && d.Count == nil &&
		d.Rule == nil && d.Generator == nil && d.CountRule == nil
}

// Sequence reports whether the field was declared a sequence.
func (d *FieldDirective) Sequence() bool {
	return d.Count != nil || d.CountRule != nil
}

// Exprs returns every expression of the directive, overrides included.
func (d *FieldDirective) Exprs() []*Expr {
	var es []*Expr
	for _, e := range []*Expr{d.Value, d.Count, d.Rule, d.CountRule} {
		if e != nil {
			es = append(es, e)
		}
	}
	for _, n := range []*Nested{d.Builder, d.Generator} {
		if n == nil {
			continue
		}
		for _, o := range n.Overrides {
			es = append(es, o.Expr)
		}
	}
	return es
}

// ParseDirectives normalizes the raw directives of a field. Context-aware
// directives are only accepted when contextual is set.
func ParseDirectives(record, field string, raw []*load.Directive, contextual bool) (*FieldDirective, error) {
	fd := &FieldDirective{}
	for _, d := range raw {
		fail := func(format string, args ...any) error {
			err := NewDirectiveError(record, field, d.Name, fmt.Sprintf(format, args...), nil)
			err.Pos = d.Pos
			return err
		}
		name, ctx := strings.CutSuffix(d.Name, ContextSuffix)
		if ctx && !contextual {
			return nil, fail("context-aware directive used on a record without //boulder:context")
		}
		if d.Annotation != "" && !ctx {
			return nil, fail("type annotations are only allowed on %s directives", ContextSuffix)
		}
		switch name {
		case DirectiveDefault, DirectiveSequence, DirectiveGenerator, DirectiveSequenceGenerator:
			if d.Arg == "" {
				return nil, fail("missing expression")
			}
			e, err := parseExpr(d, d.Arg, d.Annotation, ctx, name == DirectiveGenerator)
			if err != nil {
				return nil, fail("%v", err)
			}
			slot := map[string]**Expr{
				DirectiveDefault:           &fd.Value,
				DirectiveSequence:          &fd.Count,
				DirectiveGenerator:         &fd.Rule,
				DirectiveSequenceGenerator: &fd.CountRule,
			}[name]
			switch {
			case *slot != nil,
				name == DirectiveDefault && fd.Builder != nil,
				name == DirectiveGenerator && fd.Generator != nil:
				fd.Ignored = append(fd.Ignored, d)
			default:
				*slot = e
			}
		case DirectiveBuildable, DirectiveGeneratable:
			n, err := parseNested(d, ctx, name == DirectiveGeneratable)
			if err != nil {
				return nil, fail("%v", err)
			}
			switch {
			case name == DirectiveBuildable && fd.Value == nil && fd.Builder == nil:
				fd.Builder = n
			case name == DirectiveGeneratable && fd.Rule == nil && fd.Generator == nil:
				fd.Generator = n
			default:
				fd.Ignored = append(fd.Ignored, d)
			}
		default:
			return nil, fail("unknown directive %q", d.Name)
		}
	}
	return fd, nil
}

// parseExpr parses a directive expression. Context closures must declare
// one parameter and exactly one result, and an explicit annotation has to
// agree with the declared result.
func parseExpr(d *load.Directive, src, annotation string, ctx, rule bool) (*Expr, error) {
	x, err := parser.ParseExpr(src)
	if err != nil {
		return nil, fmt.Errorf("invalid expression %q: %w", src, err)
	}
	e := &Expr{Src: src, Annotation: annotation, Context: ctx, Directive: d, expr: x}
	if annotation != "" {
		if _, err := parser.ParseExpr(annotation); err != nil {
			return nil, fmt.Errorf("invalid type annotation %q: %w", annotation, err)
		}
	}
	lit, ok := x.(*ast.FuncLit)
	if !ok {
		return e, nil
	}
	params, results := fieldCount(lit.Type.Params), fieldCount(lit.Type.Results)
	switch {
	case ctx && params != 1:
		return nil, fmt.Errorf("context closure %q must take the accessor as its only parameter", src)
	case ctx && results != 1:
		if annotation == "" {
			return nil, fmt.Errorf("context closure %q must declare exactly one result type", src)
		}
		return nil, fmt.Errorf("context closure %q must return exactly one value of type %s", src, annotation)
	case ctx && annotation != "":
		declared := types.ExprString(lit.Type.Results.List[0].Type)
		if declared != normalizeType(annotation) {
			return nil, fmt.Errorf("type annotation %s does not match closure result %s", annotation, declared)
		}
	case !ctx && rule && (params != 0 || results != 1):
		return nil, fmt.Errorf("generator closure %q must take no parameters and return one value", src)
	}
	return e, nil
}

// parseNested parses the optional Name=expr, ... override list of a
// buildable or generatable directive.
func parseNested(d *load.Directive, ctx, rule bool) (*Nested, error) {
	n := &Nested{Context: ctx, Directive: d}
	if strings.TrimSpace(d.Arg) == "" {
		return n, nil
	}
	seen := make(map[string]bool)
	for _, item := range load.Split(d.Arg, ',') {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key, src, ok := strings.Cut(item, "=")
		key, src = strings.TrimSpace(key), strings.TrimSpace(src)
		if !ok || !token.IsIdentifier(key) || src == "" {
			return nil, fmt.Errorf("override %q must have the form Name=expression", item)
		}
		if seen[key] {
			return nil, fmt.Errorf("duplicate override %q", key)
		}
		seen[key] = true
		e, err := parseExpr(d, src, "", ctx, rule)
		if err != nil {
			return nil, fmt.Errorf("override %s: %w", key, err)
		}
		n.Overrides = append(n.Overrides, &Override{Field: key, Expr: e})
	}
	return n, nil
}

// fieldCount returns the number of entries of a parameter or result list.
func fieldCount(fl *ast.FieldList) int {
	if fl == nil {
		return 0
	}
	n := 0
	for _, f := range fl.List {
		n += max(len(f.Names), 1)
	}
	return n
}

// normalizeType formats a type expression the way go/types prints
// expressions, so that spacing differences do not matter.
func normalizeType(src string) string {
	x, err := parser.ParseExpr(src)
	if err != nil {
		return src
	}
	return types.ExprString(x)
}
