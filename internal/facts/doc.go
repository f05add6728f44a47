// Package facts loads the typed fact set for one analyzed body from a
// facts directory.
//
// A facts directory holds one tab-delimited file per input relation
// (var_used.facts, cfg_edge.facts, ...). Rows are tab-separated atom
// names, optionally double-quoted. Atoms are opaque: the loader does
// not interpret them, it only interns each name into the dense
// identifier domain for its column (points, variables, or origins).
//
// Loading is the validation boundary of the system: the solver assumes
// well-formed, in-domain identifiers (its behavior is unspecified
// otherwise), so every malformed row, wrong arity, or missing file is
// rejected here with a file/line position. ValidateDir additionally
// checks the directory's shape against an embedded CUE schema without
// interning anything.
package facts
