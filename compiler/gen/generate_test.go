package gen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Builder Tests
// =============================================================================

func TestGenBuilder(t *testing.T) {
	g := loadGraph(t, nil, "./testdata/zoo")
	code := NewJenniferGenerator(g).GenPackage(g.Packages[0]).GoString()

	t.Run("type", func(t *testing.T) {
		assert.Contains(t, code, "// Code generated by boulder. DO NOT EDIT.")
		assert.Contains(t, code, "type WombleBuilder[R any] struct {")
		assert.Contains(t, code, "convert func(Womble) R")
		assert.Contains(t, code, "shared  wrap.Arc[*wrap.Mutex[Badger]]")
	})

	t.Run("constructors", func(t *testing.T) {
		assert.Contains(t, code, "func NewWombleBuilder() *WombleBuilder[Womble] {")
		assert.Contains(t, code, "return WombleBuilderFor(boulder.Self[Womble])")
		assert.Contains(t, code, "func WombleBuilderFor[R any](convert func(Womble) R) *WombleBuilder[R] {")
		assert.Contains(t, code, `string(strings.Repeat("a", 2)),`)
		assert.Contains(t, code, "BadgerBuilderFor(boulder.Wrap(wrap.NewBox[Badger], boulder.Self[Badger])).B(int(3)).Build(),")
		assert.Contains(t, code, "BadgerBuilderFor(boulder.Wrap(wrap.NewArc[*wrap.Mutex[Badger]], boulder.Wrap(wrap.NewMutex[Badger], boulder.Self[Badger]))).Build(),")
		assert.Contains(t, code, "boulder.Collect[[]Badger](int(2), func() Badger {")
		assert.Contains(t, code, "twice: int(1),")
		body := funcBody(t, code, "func WombleBuilderFor")
		assert.Contains(t, body, "twice: int(1),")
		assert.NotContains(t, body, "flag:", "zero slots are not initialized")
	})

	t.Run("setters", func(t *testing.T) {
		assert.Contains(t, code, "func (b *WombleBuilder[R]) A(v string) *WombleBuilder[R] {")
		assert.Contains(t, code, "b.a = v")
		assert.Contains(t, code, "func (b *WombleBuilder[R]) Badger(v *Badger) *WombleBuilder[R] {")
	})

	t.Run("build", func(t *testing.T) {
		assert.Contains(t, code, "func (b *WombleBuilder[R]) Build() R {")
		assert.Contains(t, code, `boulder.Consume(&b.built, "WombleBuilder")`)
		assert.Contains(t, code, "return b.convert(Womble{")
		assert.Contains(t, code, "Crowd:  b.crowd,")
	})

	t.Run("generic", func(t *testing.T) {
		assert.Contains(t, code, "type PairBuilder[K comparable, V any, R any] struct {")
		assert.Contains(t, code, "func NewPairBuilder[K comparable, V any]() *PairBuilder[K, V, Pair[K, V]] {")
		assert.Contains(t, code, "return PairBuilderFor(boulder.Self[Pair[K, V]])")
		assert.Contains(t, code, "func PairBuilderFor[K comparable, V any, R any](convert func(Pair[K, V]) R) *PairBuilder[K, V, R] {")
		assert.Contains(t, code, "func (b *PairBuilder[K, V, R]) Key(v K) *PairBuilder[K, V, R] {")
		assert.Contains(t, code, "return b.convert(Pair[K, V]{")
		assert.NotContains(t, code, "(*PairBuilder", "generic records get no assertions")
	})

	t.Run("assertions", func(t *testing.T) {
		assert.Contains(t, code, "(*WombleBuilder[Womble])(nil)")
		assert.Contains(t, code, "(*BadgerGenerator[Badger])(nil)")
	})
}

// =============================================================================
// Generator Tests
// =============================================================================

func TestGenGenerator(t *testing.T) {
	g := loadGraph(t, nil, "./testdata/zoo")
	code := NewJenniferGenerator(g).GenPackage(g.Packages[0]).GoString()

	assert.Contains(t, code, "type WombleGenerator[R any] struct {")
	assert.Contains(t, code, "a       boulder.Generator[string]")
	assert.Contains(t, code, "func NewWombleGenerator() *WombleGenerator[Womble] {")
	assert.Contains(t, code, "func WombleGeneratorFor[R any](convert func(Womble) R) *WombleGenerator[R] {")
	assert.Contains(t, code, "boulder.GeneratorFunc[string](func() string {")
	assert.Contains(t, code, "BadgerGeneratorFor(boulder.Wrap(wrap.NewBox[Badger], boulder.Self[Badger])).B(gen.Const(9)),")
	assert.Contains(t, code, "boulder.Sequence[[]Badger, Badger](gen.Repeat(0, 1), boulder.GeneratorFunc[Badger](func() Badger {")
	assert.Contains(t, code, "boulder.GeneratorFunc[bool](func() bool { return true }),")
	assert.Contains(t, code, "b:       gen.Inc(1),")
	assert.Contains(t, code, "name:    boulder.Zero[string](),")

	assert.Contains(t, code, "func (g *WombleGenerator[R]) Flag(rule boulder.Generator[bool]) *WombleGenerator[R] {")
	assert.Contains(t, code, "func (g *WombleGenerator[R]) FlagFunc(fn func() bool) *WombleGenerator[R] {")
	assert.Contains(t, code, "g.flag = boulder.GeneratorFunc[bool](fn)")
	assert.Contains(t, code, "func (g *WombleGenerator[R]) Generate() R {")
	assert.Contains(t, code, "A:      g.a.Generate(),")

	t.Run("without func setters", func(t *testing.T) {
		g := loadGraph(t, MustNewConfig(WithoutFeatures(FeatureFuncSetters.Name, FeatureAssertions.Name)), "./testdata/zoo")
		code := NewJenniferGenerator(g).GenPackage(g.Packages[0]).GoString()
		assert.NotContains(t, code, "FlagFunc")
		assert.NotContains(t, code, "(nil)")
	})
}

// =============================================================================
// Context Variant Tests
// =============================================================================

func TestGenContext(t *testing.T) {
	g := loadGraph(t, nil, "./testdata/warren")
	code := NewJenniferGenerator(g).GenPackage(g.Packages[0]).GoString()

	t.Run("builder", func(t *testing.T) {
		assert.Contains(t, code, "convert func(*arena.Arena, Rabbit) R")
		assert.Contains(t, code, "name    *string")
		assert.Contains(t, code, "return RabbitBuilderFor(arena.Self[*arena.Arena, Rabbit])")
		assert.Contains(t, code, "b.name = &v")
		assert.Contains(t, code, "func (b *RabbitBuilder[R]) Build(ctx *arena.Arena) R {")
		assert.Contains(t, code, "if b.name == nil {")
		assert.Contains(t, code, `v := string("bugs")`)
		assert.Contains(t, code, "v := CarrotBuilderFor(arena.HandleOf(arena.Self[*arena.Arena, Carrot])).Build(ctx)")
		assert.Contains(t, code, "v := CarrotBuilderFor(arena.Wrap(wrap.Some[arena.Handle[Carrot]], arena.HandleOf(arena.Self[*arena.Arena, Carrot]))).Build(ctx)")
		assert.Contains(t, code, "v := arena.Collect[[]arena.Handle[Carrot]](ctx, int((func(a *arena.Arena) int { return 2 })(ctx)), arena.RepeatFrom[*arena.Arena, Carrot]().Generate)")
		assert.Contains(t, code, "b.plain = new(Plain)")
		assert.Contains(t, code, "return b.convert(ctx, Rabbit{")
		assert.Contains(t, code, "Name:  *b.name,")
		assert.Contains(t, code, "v := int((func(*arena.Arena) int)(func(a *arena.Arena) int { return arena.Len[Carrot](a) })(ctx))")
	})

	t.Run("generator", func(t *testing.T) {
		assert.Contains(t, code, "name    arena.Generator[*arena.Arena, string]")
		assert.Contains(t, code, "arena.GeneratorFunc[*arena.Arena, string](func(ctx *arena.Arena) string {")
		assert.Contains(t, code, "CarrotGeneratorFor(arena.HandleOf(arena.Self[*arena.Arena, Carrot])),")
		assert.Contains(t, code, "arena.FromGenerator[*arena.Arena, Plain](PlainGeneratorFor(boulder.Self[Plain])),")
		assert.Contains(t, code, "arena.Sequence[[]arena.Handle[Carrot], *arena.Arena, arena.Handle[Carrot]](arena.GeneratorFunc[*arena.Arena, int](func(ctx *arena.Arena) int {")
		assert.Contains(t, code, "size:    arena.FromGenerator[*arena.Arena, int](gen.Inc(1)),")
		assert.Contains(t, code, "func (g *RabbitGenerator[R]) NameFunc(fn func(*arena.Arena) string) *RabbitGenerator[R] {")
		assert.Contains(t, code, "g.name = arena.GeneratorFunc[*arena.Arena, string](fn)")
		assert.Contains(t, code, "func (g *RabbitGenerator[R]) Generate(ctx *arena.Arena) R {")
		assert.Contains(t, code, "Name:  g.name.Generate(ctx),")
	})

	t.Run("assertions", func(t *testing.T) {
		assert.Contains(t, code, "_ arena.Builder[*arena.Arena, Rabbit]")
		assert.Contains(t, code, "(*RabbitBuilder[Rabbit])(nil)")
		assert.Contains(t, code, "_ boulder.Generator[Plain] = (*PlainGenerator[Plain])(nil)")
	})
}

// =============================================================================
// Writer Tests
// =============================================================================

func TestJenniferGenerator(t *testing.T) {
	g := loadGraph(t, MustNewConfig(WithWorkers(2)), "./testdata/zoo", "./testdata/warren")
	dirs := make([]string, len(g.Packages))
	for i, p := range g.Packages {
		dirs[i] = t.TempDir()
		p.Dir = dirs[i]
	}
	require.NoError(t, NewJenniferGenerator(g).Generate(context.Background()))

	src, err := os.ReadFile(filepath.Join(dirs[0], DefaultOutput))
	require.NoError(t, err)
	code := string(src)
	assert.Contains(t, code, "// Code generated by boulder. DO NOT EDIT.")
	assert.Contains(t, code, "package zoo")
	assert.Contains(t, code, `"strings"`, "imports of directive expressions are added")
	assert.Contains(t, code, `"github.com/syssam/boulder/gen"`)
	assert.Contains(t, code, `"github.com/syssam/boulder/wrap"`)
	assert.NoFileExists(t, filepath.Join(dirs[0], SnapshotFile))

	src, err = os.ReadFile(filepath.Join(dirs[1], DefaultOutput))
	require.NoError(t, err)
	assert.Contains(t, string(src), `"github.com/syssam/boulder/arena"`)
}

func TestJenniferGeneratorCanceled(t *testing.T) {
	g := loadGraph(t, nil, "./testdata/zoo")
	g.Packages[0].Dir = t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, NewJenniferGenerator(g).Generate(ctx), context.Canceled)
}

func TestSnapshotFeature(t *testing.T) {
	dir := t.TempDir()
	generate := func(opts ...Option) {
		g := loadGraph(t, MustNewConfig(opts...), "./testdata/zoo")
		g.Packages[0].Dir = dir
		require.NoError(t, NewJenniferGenerator(g).Generate(context.Background()))
	}
	out := filepath.Join(dir, DefaultOutput)

	generate(WithFeatures(FeatureSnapshot))
	require.FileExists(t, filepath.Join(dir, SnapshotFile))
	data, err := os.ReadFile(filepath.Join(dir, SnapshotFile))
	require.NoError(t, err)
	snap, err := DecodeSnapshot(data)
	require.NoError(t, err)
	assert.Equal(t, snapshotVersion, snap.Version)
	require.Len(t, snap.Records, 3)
	assert.Equal(t, "Badger", snap.Records[0].Name)

	// An unchanged package is not rendered again.
	require.NoError(t, os.WriteFile(out, []byte("package zoo\n"), 0o644))
	generate(WithFeatures(FeatureSnapshot))
	src, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "package zoo\n", string(src))

	// Disabling the feature removes the snapshot and regenerates.
	generate()
	assert.NoFileExists(t, filepath.Join(dir, SnapshotFile))
	src, err = os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(src), "WombleBuilder")
}
