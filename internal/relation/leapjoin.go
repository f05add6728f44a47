package relation

import "cmp"

// A Leaper is one auxiliary condition in a leapjoin. For each source
// tuple it can bound, propose, and filter candidate extension values
// of type V. Exactly one leaper (the most selective by Count) proposes
// per tuple; the others intersect the proposals.
type Leaper[S any, V cmp.Ordered] interface {
	// Count returns how many values the leaper could propose for src,
	// or -1 if it can only filter (anti conditions cannot propose).
	Count(src S) int

	// Propose appends the candidate values for src to vals.
	Propose(src S, vals []V) []V

	// Intersect retains only the candidates consistent with src.
	Intersect(src S, vals []V) []V
}

// LeapjoinInto evaluates the leapers against every tuple of source's
// delta and stages logic's output into output. A tuple whose most
// selective condition admits zero values is rejected before any
// proposal is materialized.
func LeapjoinInto[A, B, V, C, D cmp.Ordered](
	output *Variable[C, D],
	source *Variable[A, B],
	leapers []Leaper[Pair[A, B], V],
	logic func(src Pair[A, B], val V) Pair[C, D],
) {
	output.Insert(leapjoin(source.recent.elements, leapers, logic))
}

// FromLeapjoin evaluates a leapjoin over a static relation, outside
// any iteration. Used for non-recursive rules computed once.
func FromLeapjoin[A, B, V, C, D cmp.Ordered](
	source Relation[A, B],
	leapers []Leaper[Pair[A, B], V],
	logic func(src Pair[A, B], val V) Pair[C, D],
) Relation[C, D] {
	return leapjoin(source.elements, leapers, logic)
}

func leapjoin[S any, V, C, D cmp.Ordered](
	source []S,
	leapers []Leaper[S, V],
	logic func(src S, val V) Pair[C, D],
) Relation[C, D] {
	var results []Pair[C, D]
	var vals []V
	for _, src := range source {
		proposer, minCount := -1, int(^uint(0)>>1)
		for i, l := range leapers {
			count := l.Count(src)
			if count < 0 {
				continue
			}
			if count < minCount {
				proposer, minCount = i, count
			}
		}
		// Some leaper must be able to propose; a leapjoin of only
		// anti conditions has nothing to extend with.
		if proposer < 0 {
			panic("relation: leapjoin requires at least one proposing leaper")
		}
		if minCount == 0 {
			continue
		}
		vals = leapers[proposer].Propose(src, vals[:0])
		for i, l := range leapers {
			if i == proposer {
				continue
			}
			vals = l.Intersect(src, vals)
			if len(vals) == 0 {
				break
			}
		}
		for _, val := range vals {
			results = append(results, logic(src, val))
		}
	}
	return FromPairs(results)
}

// ExtendWith extends each source tuple with the values a static
// relation holds under key(src). Selectivity is the size of that key's
// value run.
func ExtendWith[S any, K, V cmp.Ordered](rel Relation[K, V], key func(S) K) Leaper[S, V] {
	return &extendWith[S, K, V]{rel: rel, key: key}
}

type extendWith[S any, K, V cmp.Ordered] struct {
	rel Relation[K, V]
	key func(S) K
}

func (e *extendWith[S, K, V]) Count(src S) int {
	lo, hi := e.rel.keyRange(e.key(src))
	return hi - lo
}

func (e *extendWith[S, K, V]) Propose(src S, vals []V) []V {
	lo, hi := e.rel.keyRange(e.key(src))
	for _, p := range e.rel.elements[lo:hi] {
		vals = append(vals, p.Second)
	}
	return vals
}

func (e *extendWith[S, K, V]) Intersect(src S, vals []V) []V {
	k := e.key(src)
	kept := vals[:0]
	for _, val := range vals {
		if e.rel.Contains(Pair[K, V]{First: k, Second: val}) {
			kept = append(kept, val)
		}
	}
	return kept
}

// ExtendAnti discards candidate values present in a static relation
// under key(src): negation as absence. It never proposes.
func ExtendAnti[S any, K, V cmp.Ordered](rel Relation[K, V], key func(S) K) Leaper[S, V] {
	return &extendAnti[S, K, V]{rel: rel, key: key}
}

type extendAnti[S any, K, V cmp.Ordered] struct {
	rel Relation[K, V]
	key func(S) K
}

func (e *extendAnti[S, K, V]) Count(src S) int { return -1 }

func (e *extendAnti[S, K, V]) Propose(src S, vals []V) []V {
	panic("relation: anti leaper cannot propose")
}

func (e *extendAnti[S, K, V]) Intersect(src S, vals []V) []V {
	k := e.key(src)
	kept := vals[:0]
	for _, val := range vals {
		if !e.rel.Contains(Pair[K, V]{First: k, Second: val}) {
			kept = append(kept, val)
		}
	}
	return kept
}
