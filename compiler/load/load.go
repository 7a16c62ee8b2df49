package load

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"io"
	"log/slog"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"
)

// Config holds the configuration for loading annotated packages.
type Config struct {
	// Patterns are the go/packages patterns to load, "." by default.
	Patterns []string
	// Dir is the working directory of the load, the current one if empty.
	Dir string
	// BuildFlags are passed to the build system, e.g. "-tags=dev".
	BuildFlags []string
	// Logger receives debug output. Nil discards.
	Logger *slog.Logger
}

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedImports |
	packages.NeedTypes |
	packages.NeedSyntax |
	packages.NeedTypesInfo

// Load type-checks the packages matched by the config patterns and returns
// the ones declaring at least one record, in load order.
func (c *Config) Load(ctx context.Context) ([]*Package, error) {
	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	patterns := c.Patterns
	if len(patterns) == 0 {
		patterns = []string{"."}
	}
	pkgs, err := packages.Load(&packages.Config{
		Context:    ctx,
		Mode:       loadMode,
		Dir:        c.Dir,
		BuildFlags: c.BuildFlags,
	}, patterns...)
	if err != nil {
		return nil, fmt.Errorf("loading packages %v: %w", patterns, err)
	}
	var (
		loaded []*Package
		errs   []error
	)
	for _, pkg := range pkgs {
		// Type errors are expected while the generated file is stale or
		// missing. Anything else means the package cannot be read.
		for _, e := range pkg.Errors {
			if tolerated(e) {
				logger.Debug("ignoring type error", "package", pkg.PkgPath, "error", e.Msg)
				continue
			}
			errs = append(errs, fmt.Errorf("package %s: %s", pkg.PkgPath, e))
		}
		if pkg.Types == nil || pkg.TypesInfo == nil {
			continue
		}
		p, err := newPackage(pkg, logger)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if len(p.Records) > 0 {
			loaded = append(loaded, p)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return loaded, nil
}

// tolerated reports whether e may be ignored. Imports used only by
// directive expressions are unused until the generated file exists, and the
// build system reports them as list errors rather than type errors.
func tolerated(e packages.Error) bool {
	return e.Kind == packages.TypeError || strings.Contains(e.Msg, "imported and not used")
}

// newPackage extracts the records declared in the non-generated files of
// pkg.
func newPackage(pkg *packages.Package, logger *slog.Logger) (*Package, error) {
	p := &Package{
		Path:  pkg.PkgPath,
		Name:  pkg.Name,
		Types: pkg.Types,
		Fset:  pkg.Fset,
	}
	if len(pkg.GoFiles) > 0 {
		p.Dir = filepath.Dir(pkg.GoFiles[0])
	}
	for _, file := range pkg.Syntax {
		if ast.IsGenerated(file) {
			continue
		}
		imports := fileImports(file, pkg)
		for _, decl := range file.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)
				doc := ts.Doc
				if doc == nil && len(gd.Specs) == 1 {
					doc = gd.Doc
				}
				r, err := newRecord(pkg, ts, doc)
				if err != nil {
					return nil, err
				}
				if r == nil {
					continue
				}
				r.Imports = imports
				logger.Debug("found record", "package", p.Path, "record", r.Name, "buildable", r.Buildable, "generatable", r.Generatable, "context", r.Context)
				p.Records = append(p.Records, r)
			}
		}
	}
	return p, nil
}

// newRecord reads the record-level directives of a type declaration. It
// returns nil for types that are not annotated.
func newRecord(pkg *packages.Package, ts *ast.TypeSpec, doc *ast.CommentGroup) (*Record, error) {
	r := &Record{Name: ts.Name.Name, Pos: pkg.Fset.Position(ts.Pos()).String()}
	var annotated bool
	if doc != nil {
		for _, c := range doc.List {
			d, err := ParseComment(c.Text)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", pkg.Fset.Position(c.Pos()), err)
			}
			if d == nil {
				continue
			}
			annotated = true
			switch d.Name {
			case RecordBuildable:
				r.Buildable = true
			case RecordGeneratable:
				r.Generatable = true
			case RecordContext:
				if d.Arg == "" {
					return nil, fmt.Errorf("%s: //boulder:context requires a type", pkg.Fset.Position(c.Pos()))
				}
				r.Context = d.Arg
			default:
				return nil, fmt.Errorf("%s: unknown type directive %q", pkg.Fset.Position(c.Pos()), d.Name)
			}
		}
	}
	if !annotated {
		return nil, nil
	}
	if !r.Buildable && !r.Generatable {
		return nil, fmt.Errorf("%s: type %s has boulder directives but neither buildable nor generatable", r.Pos, r.Name)
	}
	st, ok := ts.Type.(*ast.StructType)
	if !ok {
		return nil, fmt.Errorf("%s: type %s is not a struct", r.Pos, r.Name)
	}
	obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
	if !ok {
		return nil, fmt.Errorf("%s: missing type information for %s", r.Pos, r.Name)
	}
	r.Object = obj
	named, ok := obj.Type().(*types.Named)
	if !ok {
		return nil, fmt.Errorf("%s: type %s is an alias", r.Pos, r.Name)
	}
	qual := types.RelativeTo(pkg.Types)
	for i := range named.TypeParams().Len() {
		tp := named.TypeParams().At(i)
		r.TypeParams = append(r.TypeParams, &TypeParam{
			Name:       tp.Obj().Name(),
			Constraint: types.TypeString(tp.Constraint(), qual),
			Type:       tp,
		})
	}
	if r.Context != "" {
		tv, err := types.Eval(pkg.Fset, pkg.Types, ts.Pos(), r.Context)
		if err != nil {
			return nil, fmt.Errorf("%s: context type %q: %w", r.Pos, r.Context, err)
		}
		if !tv.IsType() {
			return nil, fmt.Errorf("%s: context %q is not a type", r.Pos, r.Context)
		}
		r.ContextType = tv.Type
	}
	fields, err := newFields(pkg, named.Underlying().(*types.Struct), st)
	if err != nil {
		return nil, fmt.Errorf("type %s: %w", r.Name, err)
	}
	r.Fields = fields
	return r, nil
}

// newFields pairs the syntax of a struct type with its type-checked fields
// and collects the raw directives of each one: comment lines first, then
// the struct tag.
func newFields(pkg *packages.Package, st *types.Struct, expr *ast.StructType) ([]*Field, error) {
	var (
		fields []*Field
		idx    int
	)
	qual := types.RelativeTo(pkg.Types)
	for _, af := range expr.Fields.List {
		var ds []*Directive
		if af.Doc != nil {
			for _, c := range af.Doc.List {
				d, err := ParseComment(c.Text)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", pkg.Fset.Position(c.Pos()), err)
				}
				if d != nil {
					d.Pos = pkg.Fset.Position(c.Pos()).String()
					ds = append(ds, d)
				}
			}
		}
		var tag string
		if af.Tag != nil {
			var err error
			if tag, err = strconv.Unquote(af.Tag.Value); err != nil {
				return nil, fmt.Errorf("%s: %w", pkg.Fset.Position(af.Tag.Pos()), err)
			}
			tds, err := ParseTag(tag)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", pkg.Fset.Position(af.Tag.Pos()), err)
			}
			for _, d := range tds {
				d.Pos = pkg.Fset.Position(af.Tag.Pos()).String()
			}
			ds = append(ds, tds...)
		}
		n := max(len(af.Names), 1)
		for range n {
			if idx >= st.NumFields() {
				return nil, fmt.Errorf("%s: field count mismatch", pkg.Fset.Position(af.Pos()))
			}
			v := st.Field(idx)
			idx++
			fields = append(fields, &Field{
				Name:       v.Name(),
				Type:       types.TypeString(v.Type(), qual),
				Embedded:   v.Embedded(),
				Tag:        tag,
				Directives: ds,
				Var:        v,
			})
		}
	}
	return fields, nil
}

// fileImports maps every import name usable in file to its path.
func fileImports(file *ast.File, pkg *packages.Package) map[string]string {
	imports := make(map[string]string, len(file.Imports))
	for _, spec := range file.Imports {
		p, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		var name string
		switch {
		case spec.Name != nil:
			name = spec.Name.Name
		case pkg.Imports[p] != nil:
			name = pkg.Imports[p].Name
		default:
			name = path.Base(p)
		}
		if name == "_" || name == "." {
			continue
		}
		imports[name] = p
	}
	return imports
}
