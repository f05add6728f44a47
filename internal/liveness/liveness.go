package liveness

import (
	"cmp"
	"log/slog"
	"time"

	"github.com/roach88/origins/internal/relation"
)

// Facts is the fully materialized input fact set for one analyzed
// body. All identifiers must come from the same interning run; the
// solver performs no bounds validation (precondition, not a check).
//
// The solver is generic over the three identifier domains so the fact
// loader can choose its concrete representations; internal/ir supplies
// the ones used by the CLI.
type Facts[V, P, O cmp.Ordered] struct {
	// VarUsed holds (V, P): variable V is read at point P.
	VarUsed []relation.Pair[V, P]

	// VarDropUsed holds (V, P): V is potentially read by an implicit
	// drop at P.
	VarDropUsed []relation.Pair[V, P]

	// VarDefined holds (V, P): V is (re)assigned at P, killing prior
	// liveness.
	VarDefined []relation.Pair[V, P]

	// VarUsesRegion holds (V, R): V's type mentions region R.
	VarUsesRegion []relation.Pair[V, O]

	// VarDropsRegion holds (V, R): V's drop implementation mentions R.
	VarDropsRegion []relation.Pair[V, O]

	// CFGEdge holds (P, Q): control may flow from P to Q.
	CFGEdge []relation.Pair[P, P]

	// VarMaybeInitializedOnExit holds (V, P): V may hold a value when
	// control leaves P.
	VarMaybeInitializedOnExit []relation.Pair[V, P]

	// UniversalRegion lists the regions bound outside the body,
	// conservatively live everywhere.
	UniversalRegion []O
}

// ComputeLiveRegions runs the liveness rules to fixpoint and returns
// the rule-derived region_live_at relation, sorted and deduplicated.
// Universal regions are not included; see MakeUniversalRegionsLive.
//
// When dump is non-nil and enabled, the per-point live and drop-live
// variable lists are exported into it after the fixpoint is reached.
// The dump never influences the result.
func ComputeLiveRegions[V, P, O cmp.Ordered](facts Facts[V, P, O], dump *Dump[V, P]) []relation.Pair[O, P] {
	slog.Debug("computing live regions")
	start := time.Now()

	iteration := relation.NewIteration()

	// Static relations, indexed once.
	varDefinedRel := relation.FromPairs(facts.VarDefined)
	varUsesRegionRel := relation.FromPairs(facts.VarUsesRegion)
	varDropsRegionRel := relation.FromPairs(facts.VarDropsRegion)
	varMaybeInitOnExitRel := relation.FromPairs(facts.VarMaybeInitializedOnExit)
	varDropUsedRel := relation.FromPairs(facts.VarDropUsed)
	cfgEdgeRel := relation.FromPairs(facts.CFGEdge)

	// cfg_edge keyed by successor, for backward propagation.
	reversed := make([]relation.Pair[P, P], 0, len(facts.CFGEdge))
	for _, e := range facts.CFGEdge {
		reversed = append(reversed, relation.Pair[P, P]{First: e.Second, Second: e.First})
	}
	cfgEdgeReverseRel := relation.FromPairs(reversed)

	// var_live: variable V is live on entry to point P.
	varLive := relation.NewVariable[V, P](iteration, "var_live_at")
	// var_drop_live: V will be used by a drop on entry to P.
	varDropLive := relation.NewVariable[V, P](iteration, "var_drop_live_at")
	// region_live_at: what we are actually calculating. Write-only;
	// no rule reads it back.
	regionLiveAt := relation.NewVariable[O, P](iteration, "region_live_at")

	// var_live(V, P) :- var_used(V, P).
	varLive.Insert(relation.FromPairs(facts.VarUsed))

	// var_maybe_initialized_on_entry(V, Q) :-
	//     var_maybe_initialized_on_exit(V, P),
	//     cfg_edge(P, Q).
	varMaybeInitOnEntry := relation.FromLeapjoin(
		varMaybeInitOnExitRel,
		[]relation.Leaper[relation.Pair[V, P], P]{
			relation.ExtendWith(cfgEdgeRel, func(t relation.Pair[V, P]) P { return t.Second }),
		},
		func(t relation.Pair[V, P], q P) relation.Pair[V, P] {
			return relation.Pair[V, P]{First: t.First, Second: q}
		},
	)

	// var_drop_live(V, P) :-
	//     var_drop_used(V, P),
	//     var_maybe_initialized_on_entry(V, P).
	varDropLive.Insert(relation.Intersect(varDropUsedRel, varMaybeInitOnEntry))

	for iteration.Changed() {
		// region_live_at(R, P) :-
		//     var_drop_live(V, P),
		//     var_drops_region(V, R).
		relation.JoinInto(regionLiveAt, varDropLive, varDropsRegionRel,
			func(_ V, p P, r O) relation.Pair[O, P] {
				return relation.Pair[O, P]{First: r, Second: p}
			})

		// region_live_at(R, P) :-
		//     var_live(V, P),
		//     var_uses_region(V, R).
		relation.JoinInto(regionLiveAt, varLive, varUsesRegionRel,
			func(_ V, p P, r O) relation.Pair[O, P] {
				return relation.Pair[O, P]{First: r, Second: p}
			})

		// var_live(V, P) :-
		//     var_live(V, Q),
		//     cfg_edge(P, Q),
		//     !var_defined(V, P).
		relation.LeapjoinInto(varLive, varLive,
			[]relation.Leaper[relation.Pair[V, P], P]{
				relation.ExtendAnti(varDefinedRel, func(t relation.Pair[V, P]) V { return t.First }),
				relation.ExtendWith(cfgEdgeReverseRel, func(t relation.Pair[V, P]) P { return t.Second }),
			},
			func(t relation.Pair[V, P], p P) relation.Pair[V, P] {
				return relation.Pair[V, P]{First: t.First, Second: p}
			})

		// var_drop_live(V, P) :-
		//     var_drop_live(V, Q),
		//     cfg_edge(P, Q),
		//     !var_defined(V, P),
		//     var_maybe_initialized_on_exit(V, P).
		relation.LeapjoinInto(varDropLive, varDropLive,
			[]relation.Leaper[relation.Pair[V, P], P]{
				relation.ExtendAnti(varDefinedRel, func(t relation.Pair[V, P]) V { return t.First }),
				relation.ExtendWith(cfgEdgeReverseRel, func(t relation.Pair[V, P]) P { return t.Second }),
				relation.ExtendWith(varMaybeInitOnExitRel, func(t relation.Pair[V, P]) V { return t.First }),
			},
			func(t relation.Pair[V, P], p P) relation.Pair[V, P] {
				return relation.Pair[V, P]{First: t.First, Second: p}
			})
	}

	regionLiveAtRel := regionLiveAt.Complete()

	slog.Info("live regions computed",
		"tuples", regionLiveAtRel.Len(),
		"rounds", iteration.Rounds(),
		"elapsed", time.Since(start),
	)

	if dump != nil && dump.Enabled {
		for _, t := range varLive.Complete().Elements() {
			dump.VarLiveAt[t.Second] = append(dump.VarLiveAt[t.Second], t.First)
		}
		for _, t := range varDropLive.Complete().Elements() {
			dump.VarDropLiveAt[t.Second] = append(dump.VarDropLiveAt[t.Second], t.First)
		}
	}

	return regionLiveAtRel.Elements()
}
