package facts

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/origins/internal/ir"
	"github.com/roach88/origins/internal/liveness"
	"github.com/roach88/origins/internal/relation"
)

// Set is the typed fact set the loader produces, specialized to the
// identifier domains in internal/ir.
type Set = liveness.Facts[ir.Variable, ir.Point, ir.Origin]

// Tables holds one interner per identifier domain. The same Tables
// must be used to untern names when reporting a result.
type Tables struct {
	Points    *Interner[ir.Point]
	Variables *Interner[ir.Variable]
	Origins   *Interner[ir.Origin]
}

// NewTables creates empty interner tables.
func NewTables() *Tables {
	return &Tables{
		Points:    NewInterner[ir.Point](),
		Variables: NewInterner[ir.Variable](),
		Origins:   NewInterner[ir.Origin](),
	}
}

// Relation file names expected in a facts directory, in loading order.
// The order is fixed so that identifier allocation — and therefore any
// ID-ordered output — is deterministic for a given directory.
const (
	FileVarUsed                   = "var_used.facts"
	FileVarDropUsed               = "var_drop_used.facts"
	FileVarDefined                = "var_defined.facts"
	FileVarUsesRegion             = "var_uses_region.facts"
	FileVarDropsRegion            = "var_drops_region.facts"
	FileCFGEdge                   = "cfg_edge.facts"
	FileVarMaybeInitializedOnExit = "var_maybe_initialized_on_exit.facts"
	FileUniversalRegion           = "universal_region.facts"
)

// FactFiles lists every relation file a facts directory must contain.
var FactFiles = []string{
	FileVarUsed,
	FileVarDropUsed,
	FileVarDefined,
	FileVarUsesRegion,
	FileVarDropsRegion,
	FileCFGEdge,
	FileVarMaybeInitializedOnExit,
	FileUniversalRegion,
}

// Load reads all fact files from dir, interning atoms into tables, and
// returns the fully materialized fact set for one analyzed body.
func Load(tables *Tables, dir string) (Set, error) {
	var set Set
	var err error

	set.VarUsed, err = loadVarPoint(tables, dir, FileVarUsed)
	if err != nil {
		return Set{}, err
	}
	set.VarDropUsed, err = loadVarPoint(tables, dir, FileVarDropUsed)
	if err != nil {
		return Set{}, err
	}
	set.VarDefined, err = loadVarPoint(tables, dir, FileVarDefined)
	if err != nil {
		return Set{}, err
	}
	set.VarUsesRegion, err = loadVarOrigin(tables, dir, FileVarUsesRegion)
	if err != nil {
		return Set{}, err
	}
	set.VarDropsRegion, err = loadVarOrigin(tables, dir, FileVarDropsRegion)
	if err != nil {
		return Set{}, err
	}
	set.CFGEdge, err = loadPointPoint(tables, dir, FileCFGEdge)
	if err != nil {
		return Set{}, err
	}
	set.VarMaybeInitializedOnExit, err = loadVarPoint(tables, dir, FileVarMaybeInitializedOnExit)
	if err != nil {
		return Set{}, err
	}
	set.UniversalRegion, err = loadOrigins(tables, dir, FileUniversalRegion)
	if err != nil {
		return Set{}, err
	}

	return set, nil
}

func loadVarPoint(tables *Tables, dir, file string) ([]relation.Pair[ir.Variable, ir.Point], error) {
	var out []relation.Pair[ir.Variable, ir.Point]
	err := loadRows(dir, file, 2, func(fields []string) {
		out = append(out, relation.Pair[ir.Variable, ir.Point]{
			First:  tables.Variables.Intern(fields[0]),
			Second: tables.Points.Intern(fields[1]),
		})
	})
	return out, err
}

func loadVarOrigin(tables *Tables, dir, file string) ([]relation.Pair[ir.Variable, ir.Origin], error) {
	var out []relation.Pair[ir.Variable, ir.Origin]
	err := loadRows(dir, file, 2, func(fields []string) {
		out = append(out, relation.Pair[ir.Variable, ir.Origin]{
			First:  tables.Variables.Intern(fields[0]),
			Second: tables.Origins.Intern(fields[1]),
		})
	})
	return out, err
}

func loadPointPoint(tables *Tables, dir, file string) ([]relation.Pair[ir.Point, ir.Point], error) {
	var out []relation.Pair[ir.Point, ir.Point]
	err := loadRows(dir, file, 2, func(fields []string) {
		out = append(out, relation.Pair[ir.Point, ir.Point]{
			First:  tables.Points.Intern(fields[0]),
			Second: tables.Points.Intern(fields[1]),
		})
	})
	return out, err
}

func loadOrigins(tables *Tables, dir, file string) ([]ir.Origin, error) {
	var out []ir.Origin
	err := loadRows(dir, file, 1, func(fields []string) {
		out = append(out, tables.Origins.Intern(fields[0]))
	})
	return out, err
}

// loadRows streams the rows of one fact file, checking arity. Blank
// lines are skipped; everything else must be exactly arity
// tab-separated atoms.
func loadRows(dir, file string, arity int, row func(fields []string)) error {
	path := filepath.Join(dir, file)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open fact file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != arity {
			return fmt.Errorf("%s:%d: expected %d fields, got %d", path, lineno, arity, len(fields))
		}
		for i, field := range fields {
			fields[i] = unquoteAtom(field)
			if fields[i] == "" {
				return fmt.Errorf("%s:%d: empty atom in field %d", path, lineno, i+1)
			}
		}
		row(fields)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

// unquoteAtom strips the optional surrounding double quotes fact
// generators emit around atom names.
func unquoteAtom(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return s
}
