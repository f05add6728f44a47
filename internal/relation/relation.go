package relation

import (
	"cmp"
	"slices"
	"sort"
)

// Pair is a two-column tuple. All relations in this package are sets
// of pairs ordered by (First, Second).
type Pair[A, B cmp.Ordered] struct {
	First  A
	Second B
}

// ComparePairs orders pairs lexicographically by column.
func ComparePairs[A, B cmp.Ordered](x, y Pair[A, B]) int {
	if c := cmp.Compare(x.First, y.First); c != 0 {
		return c
	}
	return cmp.Compare(x.Second, y.Second)
}

// Relation is an immutable, sorted, deduplicated tuple set. The zero
// value is the empty relation.
type Relation[A, B cmp.Ordered] struct {
	elements []Pair[A, B]
}

// FromPairs builds a relation from an arbitrary tuple list. Duplicates
// collapse and input order is irrelevant; the input slice is not
// retained.
func FromPairs[A, B cmp.Ordered](pairs []Pair[A, B]) Relation[A, B] {
	els := slices.Clone(pairs)
	slices.SortFunc(els, ComparePairs[A, B])
	els = slices.Compact(els)
	return Relation[A, B]{elements: els}
}

// Len returns the number of tuples.
func (r Relation[A, B]) Len() int { return len(r.elements) }

// Elements returns the tuples in sorted order. Callers must not
// mutate the returned slice.
func (r Relation[A, B]) Elements() []Pair[A, B] { return r.elements }

// Contains reports whether the tuple is present.
func (r Relation[A, B]) Contains(p Pair[A, B]) bool {
	_, ok := slices.BinarySearchFunc(r.elements, p, ComparePairs[A, B])
	return ok
}

// keyRange returns the half-open index range of tuples whose first
// column equals key.
func (r Relation[A, B]) keyRange(key A) (int, int) {
	lo := sort.Search(len(r.elements), func(i int) bool {
		return r.elements[i].First >= key
	})
	hi := lo
	for hi < len(r.elements) && r.elements[hi].First == key {
		hi++
	}
	return lo, hi
}

// Merge unions two relations.
func Merge[A, B cmp.Ordered](x, y Relation[A, B]) Relation[A, B] {
	if x.Len() == 0 {
		return y
	}
	if y.Len() == 0 {
		return x
	}
	merged := make([]Pair[A, B], 0, x.Len()+y.Len())
	a, b := x.elements, y.elements
	for len(a) > 0 && len(b) > 0 {
		switch c := ComparePairs(a[0], b[0]); {
		case c < 0:
			merged = append(merged, a[0])
			a = a[1:]
		case c > 0:
			merged = append(merged, b[0])
			b = b[1:]
		default:
			merged = append(merged, a[0])
			a, b = a[1:], b[1:]
		}
	}
	merged = append(merged, a...)
	merged = append(merged, b...)
	return Relation[A, B]{elements: merged}
}

// Intersect keeps the tuples present in both relations. Used where two
// static relations share their full (key, value) shape, e.g. seeding
// drop-liveness from drop-use gated by initialization.
func Intersect[A, B cmp.Ordered](x, y Relation[A, B]) Relation[A, B] {
	a, b := x.elements, y.elements
	var out []Pair[A, B]
	for len(a) > 0 && len(b) > 0 {
		switch c := ComparePairs(a[0], b[0]); {
		case c < 0:
			a = gallop(a, func(p Pair[A, B]) bool { return ComparePairs(p, b[0]) < 0 })
		case c > 0:
			b = gallop(b, func(p Pair[A, B]) bool { return ComparePairs(p, a[0]) < 0 })
		default:
			out = append(out, a[0])
			a, b = a[1:], b[1:]
		}
	}
	return Relation[A, B]{elements: out}
}

// gallop advances through a sorted slice to the first element for
// which pred fails, doubling the step while pred holds and then
// descending by halving. O(log n) when the target is far away, O(1)
// when it is near, which is the common case in merge joins.
func gallop[T any](els []T, pred func(T) bool) []T {
	if len(els) > 0 && pred(els[0]) {
		step := 1
		for step < len(els) && pred(els[step]) {
			els = els[step:]
			step <<= 1
		}
		step >>= 1
		for step > 0 {
			if step < len(els) && pred(els[step]) {
				els = els[step:]
			}
			step >>= 1
		}
		els = els[1:]
	}
	return els
}
