// Package dag implements the atom DAG executor of spec.md section 4.10:
// bounded-parallel execution respecting inter-atom dependencies, per-atom
// idempotency, and transitive skip-on-failure.
package dag

import (
	"strings"

	"github.com/korora-tech/dhd/atoms"
	"github.com/korora-tech/dhd/errs"
)

// ExecutionPlan is the node/edge graph the executor runs, per spec.md
// section 3: edge (a,b) means a must complete before b starts.
type ExecutionPlan struct {
	Nodes []atoms.Atom
	Edges []Edge
}

// Edge is a directed dependency: From must reach a terminal state before
// To starts.
type Edge struct {
	From string
	To   string
}

// BuildPlan constructs an ExecutionPlan from a flat atom list, deriving
// edges from each atom's Dependencies(). Atom ids must be globally unique
// within the plan (spec.md's stated invariant); a duplicate id is a
// dependency-resolution error since it makes the graph ambiguous.
func BuildPlan(atomList []atoms.Atom) (ExecutionPlan, error) {
	seen := make(map[string]bool, len(atomList))
	for _, a := range atomList {
		if seen[a.ID()] {
			return ExecutionPlan{}, errs.Wrap(errs.ErrDependencyResolution, "duplicate atom id: "+a.ID(), nil)
		}
		seen[a.ID()] = true
	}
	var edges []Edge
	for _, a := range atomList {
		for _, dep := range a.Dependencies() {
			if !seen[dep] {
				return ExecutionPlan{}, errs.Wrap(errs.ErrDependencyResolution, "atom "+a.ID()+" depends on unknown atom "+dep, nil)
			}
			edges = append(edges, Edge{From: dep, To: a.ID()})
		}
	}
	if err := checkAcyclic(atomList, edges); err != nil {
		return ExecutionPlan{}, err
	}
	return ExecutionPlan{Nodes: atomList, Edges: edges}, nil
}

// checkAcyclic runs Kahn's algorithm over the plan graph: repeatedly
// remove zero-indegree nodes, and if any remain once no more can be
// removed, those nodes sit on a cycle. Spec.md states the plan DAG is
// acyclic and cycles are a load-time error; this turns a planner bug that
// would otherwise hang the executor's result loop forever into an
// immediate, reported failure.
func checkAcyclic(atomList []atoms.Atom, edges []Edge) error {
	indegree := make(map[string]int, len(atomList))
	successors := make(map[string][]string, len(atomList))
	for _, a := range atomList {
		indegree[a.ID()] = 0
	}
	for _, e := range edges {
		indegree[e.To]++
		successors[e.From] = append(successors[e.From], e.To)
	}

	var queue []string
	for _, a := range atomList {
		if indegree[a.ID()] == 0 {
			queue = append(queue, a.ID())
		}
	}
	removed := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		removed++
		for _, next := range successors[id] {
			indegree[next]--
			if indegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}
	if removed != len(atomList) {
		var cyclic []string
		for _, a := range atomList {
			if indegree[a.ID()] > 0 {
				cyclic = append(cyclic, a.ID())
			}
		}
		return errs.Wrap(errs.ErrDependencyResolution, "cycle detected among atoms: "+strings.Join(cyclic, ", "), nil)
	}
	return nil
}
