// Package testutil provides deterministic helpers for building
// liveness fact sets and facts directories in tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/roach88/origins/internal/ir"
	"github.com/roach88/origins/internal/liveness"
	"github.com/roach88/origins/internal/relation"
)

// FactSetBuilder assembles a typed fact set with compact notation.
// Methods return the builder so facts chain:
//
//	set := testutil.NewFactSet().
//		Edge(0, 1).
//		Used(0, 1).
//		UsesRegion(0, 0).
//		Build()
type FactSetBuilder struct {
	set liveness.Facts[ir.Variable, ir.Point, ir.Origin]
}

// NewFactSet creates an empty builder.
func NewFactSet() *FactSetBuilder {
	return &FactSetBuilder{}
}

// Used records var_used(v, p).
func (b *FactSetBuilder) Used(v ir.Variable, p ir.Point) *FactSetBuilder {
	b.set.VarUsed = append(b.set.VarUsed, vp(v, p))
	return b
}

// DropUsed records var_drop_used(v, p).
func (b *FactSetBuilder) DropUsed(v ir.Variable, p ir.Point) *FactSetBuilder {
	b.set.VarDropUsed = append(b.set.VarDropUsed, vp(v, p))
	return b
}

// Defined records var_defined(v, p).
func (b *FactSetBuilder) Defined(v ir.Variable, p ir.Point) *FactSetBuilder {
	b.set.VarDefined = append(b.set.VarDefined, vp(v, p))
	return b
}

// UsesRegion records var_uses_region(v, r).
func (b *FactSetBuilder) UsesRegion(v ir.Variable, r ir.Origin) *FactSetBuilder {
	b.set.VarUsesRegion = append(b.set.VarUsesRegion, vo(v, r))
	return b
}

// DropsRegion records var_drops_region(v, r).
func (b *FactSetBuilder) DropsRegion(v ir.Variable, r ir.Origin) *FactSetBuilder {
	b.set.VarDropsRegion = append(b.set.VarDropsRegion, vo(v, r))
	return b
}

// Edge records cfg_edge(p, q).
func (b *FactSetBuilder) Edge(p, q ir.Point) *FactSetBuilder {
	b.set.CFGEdge = append(b.set.CFGEdge, relation.Pair[ir.Point, ir.Point]{First: p, Second: q})
	return b
}

// MaybeInit records var_maybe_initialized_on_exit(v, p).
func (b *FactSetBuilder) MaybeInit(v ir.Variable, p ir.Point) *FactSetBuilder {
	b.set.VarMaybeInitializedOnExit = append(b.set.VarMaybeInitializedOnExit, vp(v, p))
	return b
}

// Universal records a universal region.
func (b *FactSetBuilder) Universal(r ir.Origin) *FactSetBuilder {
	b.set.UniversalRegion = append(b.set.UniversalRegion, r)
	return b
}

// Build returns the assembled fact set.
func (b *FactSetBuilder) Build() liveness.Facts[ir.Variable, ir.Point, ir.Origin] {
	return b.set
}

func vp(v ir.Variable, p ir.Point) relation.Pair[ir.Variable, ir.Point] {
	return relation.Pair[ir.Variable, ir.Point]{First: v, Second: p}
}

func vo(v ir.Variable, r ir.Origin) relation.Pair[ir.Variable, ir.Origin] {
	return relation.Pair[ir.Variable, ir.Origin]{First: v, Second: r}
}

// OP builds an (origin, point) pair, the shape of solver results.
func OP(r ir.Origin, p ir.Point) relation.Pair[ir.Origin, ir.Point] {
	return relation.Pair[ir.Origin, ir.Point]{First: r, Second: p}
}

// WriteFactsDir writes a facts directory under t.TempDir(). Each map
// entry is one relation file: key is the file name, value the rows
// (already tab-separated). Files absent from rows are created empty so
// the directory always passes shape validation unless a test removes
// one on purpose.
func WriteFactsDir(t *testing.T, rows map[string][]string) string {
	t.Helper()

	allFiles := []string{
		"var_used.facts",
		"var_drop_used.facts",
		"var_defined.facts",
		"var_uses_region.facts",
		"var_drops_region.facts",
		"cfg_edge.facts",
		"var_maybe_initialized_on_exit.facts",
		"universal_region.facts",
	}

	dir := t.TempDir()
	for _, file := range allFiles {
		content := ""
		if lines, ok := rows[file]; ok {
			content = strings.Join(lines, "\n") + "\n"
		}
		if err := os.WriteFile(filepath.Join(dir, file), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", file, err)
		}
	}
	return dir
}
