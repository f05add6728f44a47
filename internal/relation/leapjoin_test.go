package relation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtendWith_ProposesValuesUnderKey(t *testing.T) {
	rel := FromPairs(pairs([2]int{1, 10}, [2]int{1, 11}, [2]int{2, 20}))
	leaper := ExtendWith(rel, func(src Pair[int, int]) int { return src.First })

	src := Pair[int, int]{First: 1, Second: 99}
	assert.Equal(t, 2, leaper.Count(src))
	assert.Equal(t, []int{10, 11}, leaper.Propose(src, nil))

	src = Pair[int, int]{First: 3, Second: 99}
	assert.Equal(t, 0, leaper.Count(src))
}

func TestExtendWith_IntersectKeepsMatchingValues(t *testing.T) {
	rel := FromPairs(pairs([2]int{1, 10}, [2]int{1, 12}))
	leaper := ExtendWith(rel, func(src Pair[int, int]) int { return src.First })

	src := Pair[int, int]{First: 1, Second: 99}
	assert.Equal(t, []int{10, 12}, leaper.Intersect(src, []int{10, 11, 12, 13}))
}

func TestExtendAnti_FiltersPresentValues(t *testing.T) {
	rel := FromPairs(pairs([2]int{1, 10}, [2]int{2, 20}))
	leaper := ExtendAnti(rel, func(src Pair[int, int]) int { return src.First })

	src := Pair[int, int]{First: 1, Second: 99}
	assert.Equal(t, -1, leaper.Count(src), "anti leapers never propose")
	assert.Equal(t, []int{11, 20}, leaper.Intersect(src, []int{10, 11, 20}),
		"only (1, 10) is present under key 1")
	assert.Panics(t, func() { leaper.Propose(src, nil) })
}

func TestFromLeapjoin_ExtendOnly(t *testing.T) {
	source := FromPairs(pairs([2]int{1, 5}, [2]int{2, 6}))
	ext := FromPairs(pairs([2]int{5, 50}, [2]int{5, 51}, [2]int{6, 60}))

	// Extend each (a, b) with the values under key b.
	result := FromLeapjoin(source,
		[]Leaper[Pair[int, int], int]{
			ExtendWith(ext, func(src Pair[int, int]) int { return src.Second }),
		},
		func(src Pair[int, int], val int) Pair[int, int] {
			return Pair[int, int]{First: src.First, Second: val}
		})

	assert.Equal(t,
		pairs([2]int{1, 50}, [2]int{1, 51}, [2]int{2, 60}),
		result.Elements())
}

func TestFromLeapjoin_AntiConditionRejects(t *testing.T) {
	source := FromPairs(pairs([2]int{1, 5}, [2]int{2, 5}))
	ext := FromPairs(pairs([2]int{5, 50}, [2]int{5, 51}))
	blocked := FromPairs(pairs([2]int{1, 50}))

	result := FromLeapjoin(source,
		[]Leaper[Pair[int, int], int]{
			ExtendAnti(blocked, func(src Pair[int, int]) int { return src.First }),
			ExtendWith(ext, func(src Pair[int, int]) int { return src.Second }),
		},
		func(src Pair[int, int], val int) Pair[int, int] {
			return Pair[int, int]{First: src.First, Second: val}
		})

	// (1, 50) is blocked; everything else extends freely.
	assert.Equal(t,
		pairs([2]int{1, 51}, [2]int{2, 50}, [2]int{2, 51}),
		result.Elements())
}

func TestFromLeapjoin_ZeroCountShortCircuits(t *testing.T) {
	source := FromPairs(pairs([2]int{1, 5}))
	empty := Relation[int, int]{}

	result := FromLeapjoin(source,
		[]Leaper[Pair[int, int], int]{
			ExtendWith(empty, func(src Pair[int, int]) int { return src.Second }),
		},
		func(src Pair[int, int], val int) Pair[int, int] {
			return Pair[int, int]{First: src.First, Second: val}
		})

	assert.Equal(t, 0, result.Len())
}

func TestFromLeapjoin_AllAntiPanics(t *testing.T) {
	source := FromPairs(pairs([2]int{1, 5}))
	rel := FromPairs(pairs([2]int{1, 10}))

	assert.Panics(t, func() {
		FromLeapjoin(source,
			[]Leaper[Pair[int, int], int]{
				ExtendAnti(rel, func(src Pair[int, int]) int { return src.First }),
			},
			func(src Pair[int, int], val int) Pair[int, int] {
				return Pair[int, int]{First: src.First, Second: val}
			})
	})
}

func TestLeapjoinInto_MostSelectiveProposes(t *testing.T) {
	// Two extend conditions with different selectivity: the narrow one
	// must bound the proposals, the wide one intersect them.
	wide := FromPairs(pairs(
		[2]int{1, 10}, [2]int{1, 11}, [2]int{1, 12}, [2]int{1, 13}))
	narrow := FromPairs(pairs([2]int{5, 11}, [2]int{5, 13}, [2]int{5, 99}))

	it := NewIteration()
	source := NewVariable[int, int](it, "source")
	out := NewVariable[int, int](it, "out")
	source.Insert(FromPairs(pairs([2]int{1, 5})))
	require.True(t, it.Changed())

	LeapjoinInto(out, source,
		[]Leaper[Pair[int, int], int]{
			ExtendWith(wide, func(src Pair[int, int]) int { return src.First }),
			ExtendWith(narrow, func(src Pair[int, int]) int { return src.Second }),
		},
		func(src Pair[int, int], val int) Pair[int, int] {
			return Pair[int, int]{First: src.First, Second: val}
		})

	require.True(t, it.Changed())
	// Intersection of {10,11,12,13} and {11,13,99}.
	assert.Equal(t, pairs([2]int{1, 11}, [2]int{1, 13}), out.Recent().Elements())
}
