// Package liveness computes which lifetime regions are live at which
// control-flow points, given the usage facts for one analyzed body.
//
// The solver derives three relations by monotone fixpoint iteration:
//
//	var_live(V, P)      — V's current value may still be read after P
//	var_drop_live(V, P) — V may still be read by an implicit drop
//	region_live_at(R, P) — final answer: region R must be considered
//	                       live at point P
//
// Liveness propagates backward along control-flow edges and is killed
// by redefinition; drop-liveness is additionally gated on the variable
// possibly holding a value. Universal regions (bound outside the body)
// are unioned in afterward as live at every point in the graph.
//
// The solver is total: for any well-formed fact set it terminates and
// returns a result. One computation is single-threaded and owns all of
// its state; independent bodies may be solved concurrently by the
// caller, one fact set each.
package liveness
