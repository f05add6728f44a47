// Package relation implements the relation store underneath the
// liveness solver: immutable sorted-set relations over pairs of opaque
// identifiers, plus the monotone fixpoint machinery that derives new
// relations from them.
//
// The design follows the classic semi-naive evaluation scheme. A
// Relation is a sorted, deduplicated, immutable tuple set. A Variable
// is a relation under construction inside an Iteration: tuples staged
// by rules this round (toAdd) become the delta joined against next
// round (recent) and finally settle into the stable tiers. Because
// every rule only adds tuples and the tuple universe is finite, the
// iteration always reaches a fixpoint.
//
// Three query shapes are provided:
//
//   - JoinInto: merge-join a variable's delta against a static relation
//     by first column.
//   - ExtendAnti inside a leapjoin: negation as absence against a
//     static relation.
//   - LeapjoinInto: extend each delta tuple through an ordered list of
//     Leapers (match or anti-match), letting the most selective leaper
//     propose candidates and the rest intersect them.
//
// Nothing in this package is safe for concurrent mutation; an
// Iteration and its Variables belong to a single analysis run.
package relation
