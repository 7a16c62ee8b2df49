package gen

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGraph(t *testing.T) {
	var logs bytes.Buffer
	c := MustNewConfig(WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	g := loadGraph(t, c, "./testdata/zoo")
	require.Len(t, g.Packages, 1)
	require.Len(t, g.Packages[0].Types, 3)

	womble := typeNamed(t, g, zooPath, "Womble")
	assert.Equal(t, "R", womble.Result)
	assert.Equal(t, "WombleBuilder", womble.BuilderName())
	assert.Equal(t, "WombleGenerator", womble.GeneratorName())
	assert.False(t, womble.Contextual())
	assert.False(t, womble.Generic())

	var names []string
	for _, f := range womble.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"A", "Badger", "Shared", "Crowd", "Twice", "Flag"}, names, "blank fields are skipped")

	t.Run("values", func(t *testing.T) {
		a := field(t, womble, "A")
		assert.Equal(t, "a", a.Slot)
		assert.Equal(t, "A", a.Setter)
		assert.Equal(t, StrategyValue, a.Build.Kind)
		assert.Equal(t, StrategyValue, a.Gen.Kind, "generators fall back to the builder strategy")
		assert.Equal(t, `value(strings.Repeat("a", 2))`, a.Build.String())

		flag := field(t, womble, "Flag")
		assert.Equal(t, StrategyZero, flag.Build.Kind)
		assert.Equal(t, StrategyRule, flag.Gen.Kind)
	})

	t.Run("nested", func(t *testing.T) {
		badger := field(t, womble, "Badger")
		require.Equal(t, StrategyBuilder, badger.Build.Kind)
		n := badger.Build.Nested
		assert.Equal(t, "*T", n.Chain.String())
		require.Len(t, n.Overrides, 1)
		assert.Equal(t, "B", n.Overrides[0].Setter)
		assert.Equal(t, "int", n.Overrides[0].Type.String())
		assert.Same(t, typeNamed(t, g, zooPath, "Badger"), n.Base.Type)
		assert.Equal(t, "builder(Badger) via *T", badger.Build.String())
		assert.Equal(t, "generator(Badger) via *T", badger.Gen.String())
	})

	t.Run("sequence", func(t *testing.T) {
		crowd := field(t, womble, "Crowd")
		assert.True(t, crowd.Build.Sequence)
		assert.Equal(t, "2", crowd.Build.Count.Src)
		assert.Equal(t, zooPath+".Badger", crowd.Elem.String())
		assert.Equal(t, "sequence(2) of builder(Badger)", crowd.Build.String())
		assert.Equal(t, "sequence(gen.Repeat(0, 1)) of builder(Badger)", crowd.Gen.String())
	})

	t.Run("duplicates are logged", func(t *testing.T) {
		assert.Equal(t, "1", field(t, womble, "Twice").Build.Expr.Src)
		assert.Contains(t, logs.String(), "ignoring duplicate directive")
		assert.Contains(t, logs.String(), "field=Twice")
	})

	t.Run("generic", func(t *testing.T) {
		pair := typeNamed(t, g, zooPath, "Pair")
		assert.True(t, pair.Generic())
		assert.Nil(t, field(t, pair, "Key").Gen, "Pair derives no generator")
	})
}

func TestNewGraphContext(t *testing.T) {
	g := loadGraph(t, nil, "./testdata/warren")
	rabbit := typeNamed(t, g, warrenPath, "Rabbit")
	assert.True(t, rabbit.Contextual())

	food := field(t, rabbit, "Food")
	assert.Equal(t, "Handle[T]", food.Build.Nested.Chain.String())
	assert.NotNil(t, food.Build.Nested.Base.Context)

	plain := field(t, rabbit, "Plain")
	assert.Equal(t, StrategyGenerator, plain.Gen.Kind)
	assert.Nil(t, plain.Gen.Nested.Base.Context)

	stash := field(t, rabbit, "Stash")
	assert.True(t, stash.Build.Sequence)
	assert.True(t, stash.Build.Count.Context)
	assert.Nil(t, stash.Gen.CountRule)
}

func TestNewGraphResultParam(t *testing.T) {
	g := loadGraph(t, nil, "./testdata/shadow")
	lamp := typeNamed(t, g, shadowPath, "Lamp")
	assert.Equal(t, "R1", lamp.Result, "package-level R is taken")
	assert.Equal(t, `value("on")`, field(t, lamp, "State").Build.String())
}

func TestExprImports(t *testing.T) {
	g := loadGraph(t, nil, "./testdata/shadow")
	lamp := typeNamed(t, g, shadowPath, "Lamp")
	want := map[string]string{"gen": GenPkg}
	if diff := cmp.Diff(want, exprImports(lamp)); diff != "" {
		t.Errorf("runtime packages resolve unless the package declares the name (-want +got):\n%s", diff)
	}
	code := NewJenniferGenerator(g).GenPackage(g.Packages[0]).GoString()
	assert.Contains(t, code, `"github.com/syssam/boulder/gen"`)
	assert.Contains(t, code, "gen.Inc(1)")

	zoo := typeNamed(t, loadGraph(t, nil, "./testdata/zoo"), zooPath, "Womble")
	want = map[string]string{"gen": GenPkg, "strings": "strings"}
	if diff := cmp.Diff(want, exprImports(zoo)); diff != "" {
		t.Errorf("declaring file imports mismatch (-want +got):\n%s", diff)
	}
}

func TestNewGraphStrict(t *testing.T) {
	pkgs := loadPackages(t, "./testdata/zoo")
	_, err := NewGraph(MustNewConfig(WithStrictDirectives()), pkgs...)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDirective)
	assert.Contains(t, err.Error(), "field Twice (default)")
	assert.Contains(t, err.Error(), "an earlier directive already applies")
}

func TestNewGraphErrors(t *testing.T) {
	pkgs := loadPackages(t, "./testdata/bad")
	_, err := NewGraph(MustNewConfig(), pkgs...)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnresolved)
	assert.ErrorIs(t, err, ErrValidationFailed)
	for _, msg := range []string{
		"field Other (Unannotated): no derived artifact",
		"field Count (int): sequence directives require a slice field",
		"Mole has no field X",
		"field name: setter clashes with field Name",
		"field name: slot clashes with field Name",
		"field Build: setter clashes with a generated method",
		"arena handles require a record with //boulder:context",
		"arena handles require a context-aware record",
		"Ctx needs the accessor *github.com/syssam/boulder/arena.Arena",
		"nested records cannot depend on type parameters",
		`Shadowed field N: "convert" is shadowed in generated code`,
	} {
		assert.Contains(t, err.Error(), msg)
	}

	_, err = NewGraph(nil)
	assert.True(t, IsConfigError(err))
}

func TestDescribe(t *testing.T) {
	g := loadGraph(t, nil, "./testdata/zoo")
	var buf bytes.Buffer
	require.NoError(t, g.Describe(&buf))

	var ds []Description
	require.NoError(t, json.Unmarshal(buf.Bytes(), &ds))
	require.Len(t, ds, 3)
	assert.Equal(t, "Badger", ds[0].Name)
	assert.Equal(t, "BadgerBuilder", ds[0].Builder)
	assert.Equal(t, "BadgerGenerator", ds[0].Generator)
	want := []FieldDescription{
		{Name: "B", Type: "int", Setter: "B", Slot: "b", Builder: "value(7)", Generator: "rule(gen.Inc(1))"},
		{Name: "Name", Type: "string", Setter: "Name", Slot: "name", Builder: "zero", Generator: "zero"},
	}
	if diff := cmp.Diff(want, ds[0].Fields); diff != "" {
		t.Errorf("Badger fields mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"K comparable", "V any"}, ds[2].TypeParams)
	assert.Empty(t, ds[2].Generator)
}
