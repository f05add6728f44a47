package liveness

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/roach88/origins/internal/relation"
)

// MakeUniversalRegionsLive appends every universal region as live at
// every point mentioned by the control-flow graph, regardless of the
// rule-derived result. A universal region is bound outside the body
// and may be required anywhere in it, so unioning it in afterward is
// cheaper than seeding one fact per point.
//
// The returned slice may contain pairs already derived by the rules;
// LiveRegions deduplicates.
func MakeUniversalRegionsLive[P, O cmp.Ordered](
	regionLiveAt []relation.Pair[O, P],
	cfgEdge []relation.Pair[P, P],
	universalRegion []O,
) []relation.Pair[O, P] {
	slog.Debug("making universal regions live")

	allPoints := make([]P, 0, 2*len(cfgEdge))
	for _, e := range cfgEdge {
		allPoints = append(allPoints, e.First, e.Second)
	}
	slices.Sort(allPoints)
	allPoints = slices.Compact(allPoints)

	regionLiveAt = slices.Grow(regionLiveAt, len(universalRegion)*len(allPoints))
	for _, r := range universalRegion {
		for _, p := range allPoints {
			regionLiveAt = append(regionLiveAt, relation.Pair[O, P]{First: r, Second: p})
		}
	}
	return regionLiveAt
}

// LiveRegions is the single entry point for one analyzed body: it runs
// the fixpoint solver, expands universal regions over the same edge
// set, and returns the final (Origin, Point) relation as a sorted set
// with no duplicates.
func LiveRegions[V, P, O cmp.Ordered](facts Facts[V, P, O], dump *Dump[V, P]) []relation.Pair[O, P] {
	regionLiveAt := ComputeLiveRegions(facts, dump)
	regionLiveAt = MakeUniversalRegionsLive(regionLiveAt, facts.CFGEdge, facts.UniversalRegion)
	return relation.FromPairs(regionLiveAt).Elements()
}
