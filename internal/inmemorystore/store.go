package inmemorystore

import (
	"context"
	"slices"
	"sync"

	"github.com/specialistvlad/addressspace/internal/modelerr"
	"github.com/specialistvlad/addressspace/internal/node"
	"github.com/specialistvlad/addressspace/internal/nodeid"
	"github.com/specialistvlad/addressspace/internal/nodestore"
)

// Store implements the nodestore.Store interface using maps and a mutex
// for thread-safe concurrent access.
type Store struct {
	mu     sync.RWMutex
	nodes  map[nodeid.NodeID]*node.Node
	order  []nodeid.NodeID
	byName map[nodeid.QualifiedName][]nodeid.NodeID
}

// New creates a new, empty in-memory node store.
func New() nodestore.Store {
	return &Store{
		nodes:  make(map[nodeid.NodeID]*node.Node),
		byName: make(map[nodeid.QualifiedName][]nodeid.NodeID),
	}
}

// Add registers a node under its id.
func (s *Store) Add(ctx context.Context, n *node.Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := n.ID()
	if _, exists := s.nodes[id]; exists {
		return modelerr.New("nodestore.Add", modelerr.ErrDuplicateDefinition, "node id %s is already in use", id)
	}
	s.nodes[id] = n
	s.order = append(s.order, id)
	s.byName[n.BrowseName()] = append(s.byName[n.BrowseName()], id)
	return nil
}

// Get retrieves a single node by its id.
func (s *Store) Get(ctx context.Context, id nodeid.NodeID) (*node.Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.nodes[id]
	return n, ok
}

// Delete removes a node from every index.
func (s *Store) Delete(ctx context.Context, id nodeid.NodeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.nodes[id]
	if !ok {
		return modelerr.New("nodestore.Delete", modelerr.ErrNotFound, "node %s", id)
	}
	delete(s.nodes, id)
	s.order = slices.DeleteFunc(s.order, func(x nodeid.NodeID) bool { return x == id })

	bn := n.BrowseName()
	s.byName[bn] = slices.DeleteFunc(s.byName[bn], func(x nodeid.NodeID) bool { return x == id })
	if len(s.byName[bn]) == 0 {
		delete(s.byName, bn)
	}
	return nil
}

// FindByBrowseName returns the nodes carrying name.
func (s *Store) FindByBrowseName(ctx context.Context, name nodeid.QualifiedName) []*node.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byName[name]
	out := make([]*node.Node, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.nodes[id])
	}
	return out
}

// All returns a slice of all nodes in insertion order.
func (s *Store) All(ctx context.Context) []*node.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*node.Node, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.nodes[id])
	}
	return out
}

// Len returns the number of stored nodes.
func (s *Store) Len(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}

// Clear drops every node.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nodes = make(map[nodeid.NodeID]*node.Node)
	s.order = nil
	s.byName = make(map[nodeid.QualifiedName][]nodeid.NodeID)
}
