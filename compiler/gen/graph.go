package gen

import (
	"errors"
	"fmt"
	"go/ast"
	"go/types"
	"strconv"

	"github.com/syssam/boulder/compiler/load"
)

type (
	// Graph holds the records of the loaded packages together with the
	// resolved strategy of every field. It is the input of the generator.
	Graph struct {
		*Config
		// Packages are the packages to generate, in load order.
		Packages []*Package

		nodes map[string]*Type
	}

	// Package is a loaded package and the records it declares.
	Package struct {
		*load.Package
		Types []*Type
	}

	// Type is a record with its resolved fields.
	Type struct {
		*load.Record
		Package *Package
		// Result is the name of the result type parameter of the builder
		// and generator. It is R unless the record already uses that name.
		Result string
		Fields []*Field
	}

	// Field is a record field with the plans of its builder and generator
	// slots. Blank fields are not part of the record fields.
	Field struct {
		*load.Field
		// Setter is the name of the fluent setter.
		Setter string
		// Slot is the name of the builder and generator struct field.
		Slot      string
		Directive *FieldDirective
		// Elem is the element type of sequence fields.
		Elem types.Type
		// Build and Gen are nil when the record derives no builder or no
		// generator respectively.
		Build *Plan
		Gen   *Plan
	}
)

// reserved identifiers of the generated methods. Directive expressions
// must not refer to package-level objects with these names.
var reserved = names("b", "g", "ctx", "convert")

// NewGraph resolves the records of the given packages. All resolution and
// validation errors are reported together.
func NewGraph(c *Config, pkgs ...*load.Package) (*Graph, error) {
	if c == nil {
		return nil, NewConfigError("Config", nil, "config must not be nil")
	}
	g := &Graph{Config: c, nodes: make(map[string]*Type)}
	for _, p := range pkgs {
		gp := &Package{Package: p}
		for _, r := range p.Records {
			t := &Type{Record: r, Package: gp}
			t.Result = t.resultParam()
			gp.Types = append(gp.Types, t)
			g.nodes[p.Path+"."+r.Name] = t
		}
		g.Packages = append(g.Packages, gp)
	}
	var errs []error
	for _, p := range g.Packages {
		for _, t := range p.Types {
			if err := g.resolve(t); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return g, nil
}

// Type returns the record with the given package path and name.
func (g *Graph) Type(path, name string) (*Type, bool) {
	t, ok := g.nodes[path+"."+name]
	return t, ok
}

// resolve parses the directives of every field of t and plans its slots.
func (g *Graph) resolve(t *Type) error {
	var errs []error
	log := g.logger().With("type", t.Name)
	log.Debug("resolving record", "pos", t.Pos, "fields", len(t.Record.Fields))
	for _, lf := range t.Record.Fields {
		if lf.Name == "_" {
			continue
		}
		d, err := ParseDirectives(t.Name, lf.Name, lf.Directives, t.Contextual())
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, ig := range d.Ignored {
			if g.Strict {
				err := NewDirectiveError(t.Name, lf.Name, ig.Name, "an earlier directive already applies to this slot", nil)
				err.Pos = ig.Pos
				errs = append(errs, err)
				continue
			}
			log.Warn("ignoring duplicate directive", "field", lf.Name, "directive", ig.String(), "pos", ig.Pos)
		}
		f := &Field{
			Field:     lf,
			Setter:    pascal(lf.Name),
			Slot:      builderField(lf.Name),
			Directive: d,
		}
		if err := g.plan(t, f); err != nil {
			errs = append(errs, err)
			continue
		}
		t.Fields = append(t.Fields, f)
	}
	errs = append(errs, t.validate(g.enabled(FeatureFuncSetters))...)
	return errors.Join(errs...)
}

// validate checks the generated names of t for clashes.
func (t *Type) validate(funcSetters bool) []error {
	var errs []error
	setters := make(map[string]string)
	slots := make(map[string]string)
	for _, f := range t.Fields {
		if prev, ok := setters[f.Setter]; ok {
			errs = append(errs, NewValidationError(t.Name, f.Name, f.Setter, "setter clashes with field "+prev))
		}
		setters[f.Setter] = f.Name
		if prev, ok := slots[f.Slot]; ok {
			errs = append(errs, NewValidationError(t.Name, f.Name, f.Slot, "slot clashes with field "+prev))
		}
		slots[f.Slot] = f.Name
		switch {
		case t.Buildable && f.Setter == "Build", t.Generatable && f.Setter == "Generate":
			errs = append(errs, NewValidationError(t.Name, f.Name, f.Setter, "setter clashes with a generated method"))
		}
		if err := t.checkReserved(f); err != nil {
			errs = append(errs, err)
		}
	}
	if funcSetters && t.Generatable {
		for _, f := range t.Fields {
			if prev, ok := setters[funcSetter(f.Setter)]; ok {
				errs = append(errs, NewValidationError(t.Name, f.Name, funcSetter(f.Setter), "function setter clashes with field "+prev))
			}
		}
	}
	return errs
}

// checkReserved reports directive expressions that refer to package-level
// objects or imports shadowed inside the generated methods.
func (t *Type) checkReserved(f *Field) error {
	for _, e := range f.Directive.Exprs() {
		var clash string
		ast.Inspect(e.expr, func(n ast.Node) bool {
			switch n := n.(type) {
			case *ast.SelectorExpr:
				ast.Inspect(n.X, func(n ast.Node) bool {
					if id, ok := n.(*ast.Ident); ok && t.shadowed(id.Name) {
						clash = id.Name
					}
					return clash == ""
				})
				return false
			case *ast.Ident:
				if t.shadowed(n.Name) {
					clash = n.Name
				}
			}
			return clash == ""
		})
		if clash != "" {
			return NewValidationError(t.Name, f.Name, e.Src, strconv.Quote(clash)+" is shadowed in generated code; rename it or use an import alias")
		}
	}
	return nil
}

func (t *Type) shadowed(name string) bool {
	if _, ok := reserved[name]; !ok {
		return false
	}
	if _, ok := t.Imports[name]; ok {
		return true
	}
	return t.Package.Package.Types != nil && t.Package.Package.Types.Scope().Lookup(name) != nil
}

// resultParam picks a name for the result type parameter that collides
// neither with the record type parameters nor with package-level names.
func (t *Type) resultParam() string {
	taken := func(name string) bool {
		for _, tp := range t.TypeParams {
			if tp.Name == name {
				return true
			}
		}
		return t.Package.Package.Types != nil && t.Package.Package.Types.Scope().Lookup(name) != nil
	}
	name := "R"
	for i := 1; taken(name); i++ {
		name = fmt.Sprintf("R%d", i)
	}
	return name
}

// Contextual reports whether the record threads an accessor.
func (t *Type) Contextual() bool {
	return t.ContextType != nil
}

// BuilderName returns the name of the generated builder type.
func (t *Type) BuilderName() string {
	return builderName(t.Name)
}

// GeneratorName returns the name of the generated generator type.
func (t *Type) GeneratorName() string {
	return generatorName(t.Name)
}

// Generic reports whether the record has type parameters.
func (t *Type) Generic() bool {
	return len(t.TypeParams) > 0
}

// typeParams returns the go/types type parameters of the record.
func (t *Type) typeParams() []*types.TypeParam {
	tps := make([]*types.TypeParam, len(t.TypeParams))
	for i, tp := range t.TypeParams {
		tps[i] = tp.Type
	}
	return tps
}

// typ returns the field type.
func (f *Field) typ() types.Type {
	return f.Var.Type()
}
