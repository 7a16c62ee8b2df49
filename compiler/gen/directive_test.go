package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/boulder/compiler/load"
)

func directives(ds ...string) []*load.Directive {
	var raw []*load.Directive
	for _, d := range ds {
		parsed, err := load.ParseComment(load.Prefix + d)
		if err != nil {
			panic(err)
		}
		raw = append(raw, parsed)
	}
	return raw
}

func TestParseDirectives(t *testing.T) {
	t.Run("slots", func(t *testing.T) {
		fd, err := ParseDirectives("Womble", "B", directives(
			"default 2",
			"generator gen.Inc(5)",
			"sequence 3",
			"sequence_generator gen.Repeat(1, 2)",
		), false)
		require.NoError(t, err)
		assert.Equal(t, "2", fd.Value.Src)
		assert.Equal(t, "gen.Inc(5)", fd.Rule.Src)
		assert.Equal(t, "3", fd.Count.Src)
		assert.Equal(t, "gen.Repeat(1, 2)", fd.CountRule.Src)
		assert.True(t, fd.Sequence())
		assert.False(t, fd.Empty())
		assert.Len(t, fd.Exprs(), 4)
		assert.Empty(t, fd.Ignored)
	})

	t.Run("empty", func(t *testing.T) {
		fd, err := ParseDirectives("Womble", "D", nil, false)
		require.NoError(t, err)
		assert.True(t, fd.Empty())
		assert.False(t, fd.Sequence())
	})

	t.Run("first wins", func(t *testing.T) {
		fd, err := ParseDirectives("Womble", "B", directives(
			"default 1",
			"default 2",
			"buildable",
			"generatable",
			"generator gen.Inc(1)",
		), false)
		require.NoError(t, err)
		assert.Equal(t, "1", fd.Value.Src)
		assert.Nil(t, fd.Builder)
		require.NotNil(t, fd.Generator)
		assert.Nil(t, fd.Rule)
		require.Len(t, fd.Ignored, 3)
		assert.Equal(t, "default", fd.Ignored[0].Name)
		assert.Equal(t, "buildable", fd.Ignored[1].Name)
		assert.Equal(t, "generator", fd.Ignored[2].Name)
	})

	t.Run("overrides", func(t *testing.T) {
		fd, err := ParseDirectives("Womble", "Badger", directives(
			`buildable B=3, Name=fmt.Sprint("a", "b")`,
		), false)
		require.NoError(t, err)
		require.Len(t, fd.Builder.Overrides, 2)
		assert.Equal(t, "B", fd.Builder.Overrides[0].Field)
		assert.Equal(t, "3", fd.Builder.Overrides[0].Expr.Src)
		assert.Equal(t, "Name", fd.Builder.Overrides[1].Field)
		assert.Equal(t, `fmt.Sprint("a", "b")`, fd.Builder.Overrides[1].Expr.Src)
	})

	t.Run("context", func(t *testing.T) {
		fd, err := ParseDirectives("Rabbit", "Name", directives(
			"default_with_context(string) func(a *arena.Arena) string { return \"x\" }",
			"generator_with_context arena.RepeatFrom[*arena.Arena, Carrot]()",
		), true)
		require.NoError(t, err)
		assert.True(t, fd.Value.Context)
		assert.Equal(t, "string", fd.Value.Annotation)
		assert.True(t, fd.Value.FuncLit())
		assert.True(t, fd.Rule.Context)
		assert.False(t, fd.Rule.FuncLit())
	})

	errs := []struct {
		name       string
		directives []string
		contextual bool
		message    string
	}{
		{"unknown", []string{"serializable"}, false, `unknown directive "serializable"`},
		{"missing expression", []string{"default"}, false, "missing expression"},
		{"invalid expression", []string{"default 1 +"}, false, "invalid expression"},
		{"context without accessor", []string{"default_with_context nextName"}, false, "without //boulder:context"},
		{"annotation on plain directive", []string{"default(int) 1"}, false, "type annotations"},
		{"context closure params", []string{"default_with_context func() int { return 1 }"}, true, "only parameter"},
		{"context closure results", []string{"default_with_context func(a *arena.Arena) {}"}, true, "exactly one result"},
		{"annotation mismatch", []string{"default_with_context(string) func(a *arena.Arena) int { return 1 }"}, true, "does not match"},
		{"generator closure", []string{"generator func(x int) int { return x }"}, false, "no parameters"},
		{"malformed override", []string{"buildable B"}, false, "Name=expression"},
		{"duplicate override", []string{"buildable B=1, B=2"}, false, `duplicate override "B"`},
	}
	for _, tt := range errs {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDirectives("Womble", "A", directives(tt.directives...), tt.contextual)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidDirective)
			assert.Contains(t, err.Error(), tt.message)
			assert.Contains(t, err.Error(), "type Womble field A")
		})
	}
}
