package gen

import (
	"context"
	"maps"
	"path"
	"path/filepath"
	"runtime"

	"github.com/dave/jennifer/jen"
	"golang.org/x/sync/errgroup"
)

// runtimeAliases are used for the runtime packages when a directive
// expression imports another package under the same name.
var runtimeAliases = map[string]string{
	RuntimePkg: "boulderrt",
	WrapPkg:    "boulderwrap",
	ArenaPkg:   "boulderarena",
}

// JenniferGenerator renders the builders and generators of a graph with
// jennifer. Every package gets one file, and packages are generated in
// parallel.
type JenniferGenerator struct {
	graph   *Graph
	workers int
}

// NewJenniferGenerator creates a new Jennifer-based generator.
func NewJenniferGenerator(g *Graph) *JenniferGenerator {
	workers := runtime.GOMAXPROCS(0)
	if g.Workers > 0 {
		workers = g.Workers
	}
	return &JenniferGenerator{graph: g, workers: workers}
}

// WithWorkers sets the number of parallel workers.
func (g *JenniferGenerator) WithWorkers(n int) *JenniferGenerator {
	if n > 0 {
		g.workers = n
	}
	return g
}

// Generate writes the file of every package of the graph.
func (g *JenniferGenerator) Generate(ctx context.Context) error {
	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(g.workers)
	for _, p := range g.graph.Packages {
		errg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return g.generatePackage(p)
			}
		})
	}
	return errg.Wait()
}

// generatePackage renders and writes the file of one package, unless the
// snapshot feature finds it unchanged.
func (g *JenniferGenerator) generatePackage(p *Package) error {
	log := g.graph.logger().With("package", p.Path)
	if err := g.cleanup(p.Dir); err != nil {
		return NewGenerationError("cleanup", p.Dir, "removing disabled feature files", err)
	}
	f := g.GenPackage(p)
	var snap []byte
	if g.graph.enabled(FeatureSnapshot) {
		var err error
		if snap, err = EncodeSnapshot(g.graph.Config, p); err != nil {
			return NewGenerationError("snapshot", p.Dir, "encoding records", err)
		}
		if unchanged(p.Dir, f.Path, snap) {
			log.Debug("package unchanged", "file", f.Path)
			return nil
		}
	}
	if err := f.Write(); err != nil {
		return err
	}
	if snap != nil {
		if err := writeSnapshot(p.Dir, snap); err != nil {
			return NewGenerationError("snapshot", p.Dir, "writing snapshot", err)
		}
	}
	log.Info("generated", "file", f.Path, "records", len(p.Types))
	return nil
}

// cleanup removes the files of disabled features.
func (g *JenniferGenerator) cleanup(dir string) error {
	for _, f := range AllFeatures {
		if f.cleanup == nil || g.graph.enabled(f) {
			continue
		}
		if err := f.cleanup(dir); err != nil {
			return err
		}
	}
	return nil
}

// GenPackage renders the builders and generators of the records of p.
func (g *JenniferGenerator) GenPackage(p *Package) *File {
	f := jen.NewFilePathName(p.Path, p.Name)
	f.HeaderComment(g.graph.header())
	tc := newTypeCode()
	used := make(map[string]string)
	for _, t := range p.Types {
		e := newEmitter(g.graph, t, tc)
		if t.Buildable {
			genBuilder(e, f)
		}
		if t.Generatable {
			genGenerator(e, f)
		}
		if g.graph.enabled(FeatureAssertions) {
			genAssertions(e, f)
		}
		maps.Copy(used, exprImports(t))
	}
	importNames(f, tc, used)
	return &File{
		File:    f,
		Path:    filepath.Join(p.Dir, g.graph.output()),
		Imports: used,
	}
}

// importNames sets the import names of f. Directive expressions are kept
// as written, so the names of the imports they use take precedence.
func importNames(f *jen.File, tc *typeCode, used map[string]string) {
	names := map[string]string{
		RuntimePkg: "boulder",
		WrapPkg:    "wrap",
		ArenaPkg:   "arena",
	}
	maps.Copy(names, tc.imports)
	for p, name := range names {
		if up, ok := used[name]; ok && up != p {
			alias := runtimeAliases[p]
			if alias == "" {
				alias = "boulder" + name
			}
			f.ImportAlias(p, alias)
			continue
		}
		f.ImportName(p, name)
	}
	for name, p := range used {
		if name == path.Base(p) {
			f.ImportName(p, name)
		} else {
			f.ImportAlias(p, name)
		}
	}
}
