package gen

import (
	"context"
	"go/types"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/boulder/compiler/load"
)

func loadPackages(t *testing.T, patterns ...string) []*load.Package {
	t.Helper()
	pkgs, err := (&load.Config{Patterns: patterns}).Load(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, pkgs)
	return pkgs
}

func loadGraph(t *testing.T, c *Config, patterns ...string) *Graph {
	t.Helper()
	if c == nil {
		c = MustNewConfig()
	}
	g, err := NewGraph(c, loadPackages(t, patterns...)...)
	require.NoError(t, err)
	return g
}

// fieldType returns the type of a field of a loaded record.
func fieldType(t *testing.T, p *load.Package, record, field string) types.Type {
	t.Helper()
	for _, r := range p.Records {
		if r.Name != record {
			continue
		}
		for _, f := range r.Fields {
			if f.Name == field {
				return f.Var.Type()
			}
		}
	}
	t.Fatalf("no field %s.%s", record, field)
	return nil
}

func typeNamed(t *testing.T, g *Graph, path, name string) *Type {
	t.Helper()
	typ, ok := g.Type(path, name)
	require.True(t, ok, "no type %s", name)
	return typ
}

func field(t *testing.T, typ *Type, name string) *Field {
	t.Helper()
	for _, f := range typ.Fields {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("no field %s.%s", typ.Name, name)
	return nil
}

// funcBody returns the source of the function starting with prefix, up to
// the next top-level function.
func funcBody(t *testing.T, code, prefix string) string {
	t.Helper()
	start := strings.Index(code, prefix)
	require.GreaterOrEqual(t, start, 0, "no %s", prefix)
	body := code[start:]
	if end := strings.Index(body[len(prefix):], "\nfunc "); end >= 0 {
		body = body[:len(prefix)+end]
	}
	return body
}

const (
	zooPath    = "github.com/syssam/boulder/compiler/gen/testdata/zoo"
	warrenPath = "github.com/syssam/boulder/compiler/gen/testdata/warren"
	shadowPath = "github.com/syssam/boulder/compiler/gen/testdata/shadow"
)
