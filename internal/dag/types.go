package dag

import "sync"

// Graph holds declarations keyed by name and the "must exist before" edges
// between them. It is safe for concurrent use.
type Graph struct {
	mutex sync.RWMutex
	nodes map[string]*node
	// order is the insertion order; TopologicalOrder uses it to stay
	// deterministic when several nodes are ready at once.
	order []string
}

type node struct {
	id    string
	index int
	// deps must be ordered before this node.
	deps map[string]*node
	// dependents are ordered after it.
	dependents map[string]*node
}
