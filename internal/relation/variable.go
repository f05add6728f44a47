package relation

import (
	"cmp"
	"fmt"
	"slices"
)

// Iteration drives a monotone fixpoint computation over a set of
// variables. The canonical loop is:
//
//	it := NewIteration()
//	v := NewVariable[K, V](it, "name")
//	v.Insert(seed)
//	for it.Changed() {
//		// evaluate rules against each variable's delta
//	}
//
// Changed flushes every variable's staged tuples into its delta and
// reports whether any variable still has new tuples. Once it returns
// false no rule can derive anything further and the fixpoint is
// reached.
type Iteration struct {
	variables []settler
	rounds    int
}

type settler interface {
	settle() bool
}

// NewIteration creates an empty iteration.
func NewIteration() *Iteration {
	return &Iteration{}
}

// Changed advances every tracked variable by one round. It returns
// true while at least one variable gained tuples.
func (it *Iteration) Changed() bool {
	changed := false
	for _, v := range it.variables {
		if v.settle() {
			changed = true
		}
	}
	if changed {
		it.rounds++
	}
	return changed
}

// Rounds returns the number of rounds that produced new tuples.
func (it *Iteration) Rounds() int { return it.rounds }

// Variable is a monotonically growing relation taking part in a
// fixpoint iteration. Tuples move through three tiers: toAdd holds
// batches staged by rules during the current round, recent is the
// delta added last round (the only tuples rules need to join against),
// and stable holds everything older.
//
// The tier discipline is what makes evaluation semi-naive: a tuple is
// part of exactly one delta, so no rule ever rediscovers a conclusion
// from the same premises twice.
type Variable[A, B cmp.Ordered] struct {
	name   string
	stable []Relation[A, B]
	recent Relation[A, B]
	toAdd  []Relation[A, B]
}

// NewVariable creates a variable registered with the iteration.
func NewVariable[A, B cmp.Ordered](it *Iteration, name string) *Variable[A, B] {
	v := &Variable[A, B]{name: name}
	it.variables = append(it.variables, v)
	return v
}

// Name returns the variable's diagnostic name.
func (v *Variable[A, B]) Name() string { return v.name }

// Insert stages a batch of tuples. They become visible as the delta
// after the next Changed call; already-known tuples are discarded then.
func (v *Variable[A, B]) Insert(r Relation[A, B]) {
	if r.Len() > 0 {
		v.toAdd = append(v.toAdd, r)
	}
}

// Recent returns the delta added by the last Changed call.
func (v *Variable[A, B]) Recent() Relation[A, B] { return v.recent }

// settle retires the previous delta into the stable tiers, promotes
// the staged batches (minus known tuples) to the new delta, and
// reports whether the delta is non-empty.
func (v *Variable[A, B]) settle() bool {
	if v.recent.Len() > 0 {
		recent := v.recent
		v.recent = Relation[A, B]{}
		// Collapse stable tiers of comparable size so lookups stay
		// logarithmic in the number of tiers.
		for len(v.stable) > 0 && v.stable[len(v.stable)-1].Len() <= 2*recent.Len() {
			last := v.stable[len(v.stable)-1]
			v.stable = v.stable[:len(v.stable)-1]
			recent = Merge(last, recent)
		}
		v.stable = append(v.stable, recent)
	}

	if len(v.toAdd) > 0 {
		add := v.toAdd[0]
		for _, r := range v.toAdd[1:] {
			add = Merge(add, r)
		}
		v.toAdd = v.toAdd[:0]
		els := slices.Clone(add.Elements())
		els = slices.DeleteFunc(els, v.known)
		v.recent = Relation[A, B]{elements: els}
	}

	return v.recent.Len() > 0
}

func (v *Variable[A, B]) known(p Pair[A, B]) bool {
	for _, tier := range v.stable {
		if tier.Contains(p) {
			return true
		}
	}
	return false
}

// Complete extracts the final relation. It must only be called after
// the iteration has finished; calling it while tuples are still in
// flight is a programming error and panics.
func (v *Variable[A, B]) Complete() Relation[A, B] {
	if v.recent.Len() > 0 || len(v.toAdd) > 0 {
		panic(fmt.Sprintf("relation: Complete(%s) called mid-iteration", v.name))
	}
	var out Relation[A, B]
	for _, tier := range v.stable {
		out = Merge(out, tier)
	}
	return out
}
