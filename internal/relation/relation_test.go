package relation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pairs(ps ...[2]int) []Pair[int, int] {
	out := make([]Pair[int, int], 0, len(ps))
	for _, p := range ps {
		out = append(out, Pair[int, int]{First: p[0], Second: p[1]})
	}
	return out
}

func TestFromPairs_SortsAndDeduplicates(t *testing.T) {
	r := FromPairs(pairs([2]int{2, 1}, [2]int{1, 5}, [2]int{2, 1}, [2]int{1, 2}))

	assert.Equal(t, 3, r.Len())
	assert.Equal(t, pairs([2]int{1, 2}, [2]int{1, 5}, [2]int{2, 1}), r.Elements())
}

func TestFromPairs_DoesNotRetainInput(t *testing.T) {
	in := pairs([2]int{3, 3}, [2]int{1, 1})
	r := FromPairs(in)

	in[0] = Pair[int, int]{First: 9, Second: 9}
	assert.Equal(t, pairs([2]int{1, 1}, [2]int{3, 3}), r.Elements())
}

func TestRelation_Contains(t *testing.T) {
	r := FromPairs(pairs([2]int{1, 2}, [2]int{3, 4}))

	assert.True(t, r.Contains(Pair[int, int]{First: 1, Second: 2}))
	assert.False(t, r.Contains(Pair[int, int]{First: 1, Second: 3}))
	assert.False(t, r.Contains(Pair[int, int]{First: 2, Second: 2}))
}

func TestMerge_Unions(t *testing.T) {
	x := FromPairs(pairs([2]int{1, 1}, [2]int{2, 2}))
	y := FromPairs(pairs([2]int{2, 2}, [2]int{3, 3}))

	m := Merge(x, y)
	assert.Equal(t, pairs([2]int{1, 1}, [2]int{2, 2}, [2]int{3, 3}), m.Elements())
}

func TestMerge_EmptySides(t *testing.T) {
	x := FromPairs(pairs([2]int{1, 1}))
	empty := Relation[int, int]{}

	assert.Equal(t, x.Elements(), Merge(x, empty).Elements())
	assert.Equal(t, x.Elements(), Merge(empty, x).Elements())
	assert.Equal(t, 0, Merge(empty, empty).Len())
}

func TestIntersect_KeepsCommonTuples(t *testing.T) {
	x := FromPairs(pairs([2]int{1, 1}, [2]int{2, 2}, [2]int{5, 5}))
	y := FromPairs(pairs([2]int{2, 2}, [2]int{4, 4}, [2]int{5, 5}))

	i := Intersect(x, y)
	assert.Equal(t, pairs([2]int{2, 2}, [2]int{5, 5}), i.Elements())
}

func TestIntersect_Disjoint(t *testing.T) {
	x := FromPairs(pairs([2]int{1, 1}))
	y := FromPairs(pairs([2]int{2, 2}))

	assert.Equal(t, 0, Intersect(x, y).Len())
}

func TestKeyRange(t *testing.T) {
	r := FromPairs(pairs([2]int{1, 1}, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3}, [2]int{4, 1}))

	lo, hi := r.keyRange(2)
	require.Equal(t, 1, lo)
	require.Equal(t, 4, hi)

	lo, hi = r.keyRange(3)
	assert.Equal(t, lo, hi, "absent key yields empty range")
}

func TestGallop(t *testing.T) {
	els := []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	rest := gallop(els, func(x int) bool { return x < 7 })
	assert.Equal(t, []int{7, 8, 9, 10}, rest)

	rest = gallop(els, func(x int) bool { return x < 1 })
	assert.Equal(t, els, rest, "no element satisfies the predicate")

	rest = gallop(els, func(x int) bool { return x < 100 })
	assert.Empty(t, rest, "all elements satisfy the predicate")
}
