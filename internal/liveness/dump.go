package liveness

import "cmp"

// Dump collects per-point liveness for diagnostic tooling. It is a
// capability passed in by the caller, not ambient state: when nil or
// disabled the solver skips the export entirely. Contents are
// observational and never feed back into the computation.
type Dump[V, P cmp.Ordered] struct {
	// Enabled gates the export. Kept explicit so callers can pass a
	// pre-allocated sink with collection switched off.
	Enabled bool

	// VarLiveAt maps each point to the variables live on entry,
	// in ascending order.
	VarLiveAt map[P][]V

	// VarDropLiveAt maps each point to the drop-live variables on
	// entry, in ascending order.
	VarDropLiveAt map[P][]V
}

// NewDump creates an empty dump sink.
func NewDump[V, P cmp.Ordered](enabled bool) *Dump[V, P] {
	return &Dump[V, P]{
		Enabled:       enabled,
		VarLiveAt:     make(map[P][]V),
		VarDropLiveAt: make(map[P][]V),
	}
}
