// Package atoms implements the minimal idempotent operations described in
// spec.md section 3/4.4: each Atom exposes a stable id, a dependency list,
// and a check/execute pair where check()==true means the desired state is
// already in place and execute() may be safely skipped.
package atoms

import "context"

// Atom is the minimal idempotent unit the DAG executor runs.
type Atom interface {
	// ID is a stable identifier, "{module}::{describe}" per spec.md.
	ID() string
	// Module is the id of the module that produced this atom.
	Module() string
	// Describe returns a short human-readable description.
	Describe() string
	// Dependencies lists the ids of atoms that must reach a terminal
	// state before this atom may start.
	Dependencies() []string
	// Check reports whether the desired state already holds. true means
	// Execute is unnecessary and will be skipped.
	Check(ctx context.Context) (bool, error)
	// Execute performs the mutation. It must be safe to have been skipped
	// when Check returned true (the idempotency contract).
	Execute(ctx context.Context) error
}

// Resource identifies a shared mutable resource an atom's Execute touches,
// used by the DAG executor to serialize atoms that would otherwise race
// (spec.md section 5: "atoms targeting the same manager value or the same
// systemd scope must be serialized"). Atoms that do not share any
// mutable system resource beyond their own dependency edges either do not
// implement this interface or return "".
type ResourceAware interface {
	Resource() string
}

// base is embedded by concrete atoms to provide the id/module/description/
// dependency bookkeeping common to all of them.
type base struct {
	id           string
	module       string
	describe     string
	dependencies []string
}

func newBase(module, describe string, dependencies []string) base {
	return base{id: module + "::" + describe, module: module, describe: describe, dependencies: dependencies}
}

func (b base) ID() string             { return b.id }
func (b base) Describe() string       { return b.describe }
func (b base) Module() string         { return b.module }
func (b base) Dependencies() []string { return b.dependencies }
