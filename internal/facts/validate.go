package facts

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaCUE string

// Manifest describes the shape of a facts directory without
// interpreting any atoms: which relation files are present, the arity
// observed in their rows, and how many rows they hold.
type Manifest struct {
	Relations map[string]RelationInfo `json:"relations"`
}

// RelationInfo is the shape of one relation file. Arity is 0 for an
// empty file.
type RelationInfo struct {
	Arity int `json:"arity"`
	Rows  int `json:"rows"`
}

// ReadManifest scans the .facts files in dir and summarizes their
// shape. Rows within one file must agree on arity.
func ReadManifest(dir string) (*Manifest, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read facts directory: %w", err)
	}

	m := &Manifest{Relations: make(map[string]RelationInfo)}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".facts") {
			continue
		}
		info, err := scanShape(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		m.Relations[strings.TrimSuffix(name, ".facts")] = info
	}
	return m, nil
}

func scanShape(path string) (RelationInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RelationInfo{}, fmt.Errorf("read fact file: %w", err)
	}

	info := RelationInfo{}
	for lineno, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		arity := strings.Count(line, "\t") + 1
		if info.Arity == 0 {
			info.Arity = arity
		} else if arity != info.Arity {
			return RelationInfo{}, fmt.Errorf("%s:%d: row has %d fields, earlier rows have %d", path, lineno+1, arity, info.Arity)
		}
		info.Rows++
	}
	return info, nil
}

// ValidateDir checks a facts directory against the embedded CUE schema
// before any interning happens: all eight relation files present, no
// stray relation files, and arities as declared. Returns nil when the
// directory is loadable.
func ValidateDir(dir string) error {
	m, err := ReadManifest(dir)
	if err != nil {
		return err
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile facts schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Manifest"))
	if err := def.Err(); err != nil {
		return fmt.Errorf("lookup facts schema: %w", err)
	}

	data := ctx.Encode(m)
	if err := data.Err(); err != nil {
		return fmt.Errorf("encode facts manifest: %w", err)
	}

	unified := def.Unify(data)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("facts directory %s does not match schema: %w", dir, err)
	}
	return nil
}
