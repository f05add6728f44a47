package relation

import "cmp"

// JoinInto joins the delta of input against a static relation on the
// first column and stages logic's output into output. Only the delta
// is scanned; tuples promoted in earlier rounds have already produced
// their conclusions.
func JoinInto[K, V1, V2, A, B cmp.Ordered](
	output *Variable[A, B],
	input *Variable[K, V1],
	rel Relation[K, V2],
	logic func(key K, val1 V1, val2 V2) Pair[A, B],
) {
	var results []Pair[A, B]
	joinHelper(input.recent.elements, rel.elements, func(k K, v1 V1, v2 V2) {
		results = append(results, logic(k, v1, v2))
	})
	output.Insert(FromPairs(results))
}

// joinHelper merge-joins two key-sorted pair slices, invoking result
// for every matching (key, val1, val2) combination. Galloping skips
// runs of unmatched keys cheaply.
func joinHelper[K, V1, V2 cmp.Ordered](
	slice1 []Pair[K, V1],
	slice2 []Pair[K, V2],
	result func(K, V1, V2),
) {
	for len(slice1) > 0 && len(slice2) > 0 {
		switch key1, key2 := slice1[0].First, slice2[0].First; {
		case key1 < key2:
			slice1 = gallop(slice1, func(p Pair[K, V1]) bool { return p.First < key2 })
		case key1 > key2:
			slice2 = gallop(slice2, func(p Pair[K, V2]) bool { return p.First < key1 })
		default:
			count1 := keyRunLen(slice1, key1)
			count2 := keyRunLen(slice2, key1)
			for i := 0; i < count1; i++ {
				for j := 0; j < count2; j++ {
					result(key1, slice1[i].Second, slice2[j].Second)
				}
			}
			slice1 = slice1[count1:]
			slice2 = slice2[count2:]
		}
	}
}

func keyRunLen[K, V cmp.Ordered](els []Pair[K, V], key K) int {
	n := 0
	for n < len(els) && els[n].First == key {
		n++
	}
	return n
}
