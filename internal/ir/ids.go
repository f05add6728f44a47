// Package ir defines the opaque identifier domains shared by the fact
// loader, the liveness solver, and the diagnostic store.
//
// The three domains are distinct integer spaces: a Point is never a
// Variable, and the type system enforces that. Identifiers carry no
// meaning beyond equality and ordering; they are allocated densely by
// the interner in internal/facts and are only valid within the analysis
// run that produced them.
package ir

import "fmt"

// Point identifies a location in the control-flow graph.
type Point uint32

// Variable identifies a local value slot tracked by the analysis.
type Variable uint32

// Origin identifies an abstract lifetime region attached to types.
type Origin uint32

func (p Point) String() string    { return fmt.Sprintf("p%d", uint32(p)) }
func (v Variable) String() string { return fmt.Sprintf("v%d", uint32(v)) }
func (o Origin) String() string   { return fmt.Sprintf("'%d", uint32(o)) }
