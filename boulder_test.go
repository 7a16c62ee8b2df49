package boulder_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/boulder"
)

func counter(start int) boulder.GeneratorFunc[int] {
	next := start
	return func() int {
		v := next
		next++
		return v
	}
}

func TestGeneratorFunc(t *testing.T) {
	t.Parallel()

	g := counter(3)
	assert.Equal(t, 3, g.Generate())
	assert.Equal(t, 4, g.Generate())

	var _ boulder.Generator[int] = g
}

func TestZero(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, boulder.Zero[int]().Generate())
	assert.Equal(t, "", boulder.Zero[string]().Generate())
	assert.Nil(t, boulder.Zero[*int]().Generate())
}

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("single layer", func(t *testing.T) {
		conv := boulder.Wrap(strconv.Itoa, boulder.Self[int])
		assert.Equal(t, "42", conv(42))
	})

	t.Run("layers apply innermost first", func(t *testing.T) {
		double := func(v int) int { return v * 2 }
		box := func(v int) *int { return &v }
		conv := boulder.Wrap(box, boulder.Wrap(double, boulder.Self[int]))
		require.NotNil(t, conv(4))
		assert.Equal(t, 8, *conv(4))
	})
}

func TestConsume(t *testing.T) {
	t.Parallel()

	var built bool
	boulder.Consume(&built, "WombleBuilder")
	assert.True(t, built)

	assert.PanicsWithError(t, "boulder: WombleBuilder already consumed by Build", func() {
		boulder.Consume(&built, "WombleBuilder")
	})
}

func TestCollect(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 5} {
		t.Run(strconv.Itoa(n), func(t *testing.T) {
			s := boulder.Collect[[]int](n, counter(0))
			require.Len(t, s, n)
			for i, v := range s {
				assert.Equal(t, i, v)
			}
		})
	}

	t.Run("negative count", func(t *testing.T) {
		assert.Empty(t, boulder.Collect[[]int](-1, counter(0)))
	})

	t.Run("named slice type", func(t *testing.T) {
		type ids []int
		s := boulder.Collect[ids](2, counter(7))
		assert.Equal(t, ids{7, 8}, s)
	})
}

func TestSequence(t *testing.T) {
	t.Parallel()

	g := boulder.Sequence[[]int](counter(1), counter(10))
	assert.Equal(t, []int{10}, g.Generate())
	assert.Equal(t, []int{11, 12}, g.Generate())
	assert.Equal(t, []int{13, 14, 15}, g.Generate())
}

func TestTake(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []int{5, 6, 7}, boulder.Take[int](counter(5), 3))
}

func TestAll(t *testing.T) {
	t.Parallel()

	var got []int
	for v := range boulder.All[int](counter(0)) {
		if v == 4 {
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []int{0, 1, 2, 3}, got)
}
