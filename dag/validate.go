// Package dag offers a best-effort, non-blocking sanity check over a
// taskpool dependency graph: it looks for cycles among a snapshot of
// tasks before they're submitted, the same role aristath-orchestrator's
// internal/scheduler.DAG.Validate plays for its own task graph, adapted
// here from a named-task map to a plain list of named parent/child edges.
package dag

import (
	"fmt"

	"github.com/gammazero/toposort"
)

// Edge describes one planned dependency: Parent must complete before
// Child may run. Validate takes a plain slice of edges rather than
// reaching into *taskpool.Task internals, since parentsRemaining/children
// are only ever safe to read under the owning Pool's mutex — callers
// build the edge list from whatever planning structure they used to
// decide the submission order in the first place, before any
// taskpool.SubmitDep calls happen.
type Edge struct {
	Parent string
	Child  string
}

// Validate reports the first cycle found among edges, or nil if the
// graph is acyclic. It never touches a live Pool or Task; it exists so
// callers constructing a large dependency graph by hand can sanity-check
// it before submitting any of it, since taskpool itself does not detect
// cycles — a cyclic submission simply deadlocks with Wait callers
// blocked forever.
func Validate(edges []Edge) error {
	toposortEdges := make([]toposort.Edge, 0, len(edges))
	for _, e := range edges {
		toposortEdges = append(toposortEdges, toposort.Edge{e.Parent, e.Child})
	}
	if _, err := toposort.Toposort(toposortEdges); err != nil {
		return fmt.Errorf("dag: %w", err)
	}
	return nil
}
