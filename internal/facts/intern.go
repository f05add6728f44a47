package facts

import (
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// Interner maps externally supplied atom names onto one dense
// identifier domain. Names are NFC-normalized before lookup so that
// byte-different spellings of the same symbol intern to the same
// identifier. IDs are assigned in first-seen order starting at 0.
//
// Not safe for concurrent use; one Tables belongs to one analysis run.
type Interner[T ~uint32] struct {
	ids   map[string]T
	names []string
}

// NewInterner creates an empty interner.
func NewInterner[T ~uint32]() *Interner[T] {
	return &Interner[T]{ids: make(map[string]T)}
}

// Intern returns the identifier for name, allocating the next dense ID
// on first sight.
func (in *Interner[T]) Intern(name string) T {
	name = norm.NFC.String(name)
	if id, ok := in.ids[name]; ok {
		return id
	}
	id := T(len(in.names))
	in.ids[name] = id
	in.names = append(in.names, name)
	return id
}

// Untern returns the name interned as id, or an error if id was never
// allocated by this interner.
func (in *Interner[T]) Untern(id T) (string, error) {
	if int(id) >= len(in.names) {
		return "", fmt.Errorf("unknown identifier %d (only %d interned)", uint32(id), len(in.names))
	}
	return in.names[int(id)], nil
}

// Len returns the number of distinct names interned.
func (in *Interner[T]) Len() int { return len(in.names) }
