// Package inmemoryrefs provides a simple, thread-safe, in-memory
// implementation of the refstore.Store interface.
package inmemoryrefs

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/specialistvlad/addressspace/internal/modelerr"
	"github.com/specialistvlad/addressspace/internal/nodeid"
	"github.com/specialistvlad/addressspace/internal/refstore"
)

// Store implements the refstore.Store interface using maps and a mutex
// for thread-safe concurrent access.
type Store struct {
	mu   sync.RWMutex
	refs map[nodeid.NodeID][]refstore.Reference // Key: node ID, Value: entries in insertion order
	// seq maps each edge to its insertion sequence number.
	seq  map[refstore.Edge]uint64
	next uint64
}

// New creates a new, empty in-memory reference store.
func New() refstore.Store {
	return &Store{
		refs: make(map[nodeid.NodeID][]refstore.Reference),
		seq:  make(map[refstore.Edge]uint64),
	}
}

// Add inserts the matched forward and inverse entries of e.
func (s *Store) Add(ctx context.Context, e refstore.Edge) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.seq[e]; exists {
		// Adding the same edge twice is not an error, it's idempotent.
		return false, nil
	}
	s.seq[e] = s.next
	s.next++
	s.refs[e.SourceID] = append(s.refs[e.SourceID], refstore.Reference{ReferenceTypeID: e.ReferenceTypeID, IsForward: true, TargetID: e.TargetID})
	s.refs[e.TargetID] = append(s.refs[e.TargetID], refstore.Reference{ReferenceTypeID: e.ReferenceTypeID, IsForward: false, TargetID: e.SourceID})
	return true, nil
}

// Remove deletes both entries of e.
func (s *Store) Remove(ctx context.Context, e refstore.Edge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.seq[e]; !exists {
		return modelerr.New("refstore.Remove", modelerr.ErrNotFound, "reference %s -[%s]-> %s", e.SourceID, e.ReferenceTypeID, e.TargetID)
	}
	s.removeLocked(e)
	return nil
}

// Has reports whether e is present.
func (s *Store) Has(ctx context.Context, e refstore.Edge) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.seq[e]
	return ok
}

// References returns a copy of the node's entries.
func (s *Store) References(ctx context.Context, id nodeid.NodeID) []refstore.Reference {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.refs[id])
}

// RemoveNode deletes every edge touching id. Only the entry lists of id
// and its neighbours are visited.
func (s *Store) RemoveNode(ctx context.Context, id nodeid.NodeID) []refstore.Edge {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []refstore.Edge
	for _, r := range s.refs[id] {
		e := refstore.Edge{SourceID: id, ReferenceTypeID: r.ReferenceTypeID, TargetID: r.TargetID}
		if !r.IsForward {
			e = refstore.Edge{SourceID: r.TargetID, ReferenceTypeID: r.ReferenceTypeID, TargetID: id}
		}
		// A self reference shows up twice.
		if _, ok := s.seq[e]; !ok {
			continue
		}
		delete(s.seq, e)
		removed = append(removed, e)
		if r.TargetID != id {
			s.refs[r.TargetID] = removeFirst(s.refs[r.TargetID], mirror(id, r))
		}
	}
	delete(s.refs, id)
	return removed
}

// Edges returns every edge in insertion order.
func (s *Store) Edges(ctx context.Context) []refstore.Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]refstore.Edge, 0, len(s.seq))
	for e := range s.seq {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b refstore.Edge) int {
		return cmp.Compare(s.seq[a], s.seq[b])
	})
	return out
}

// Len returns the number of edges.
func (s *Store) Len(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.seq)
}

// Clear drops every edge.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refs = make(map[nodeid.NodeID][]refstore.Reference)
	s.seq = make(map[refstore.Edge]uint64)
	s.next = 0
}

func (s *Store) removeLocked(e refstore.Edge) {
	delete(s.seq, e)

	fwd := refstore.Reference{ReferenceTypeID: e.ReferenceTypeID, IsForward: true, TargetID: e.TargetID}
	inv := refstore.Reference{ReferenceTypeID: e.ReferenceTypeID, IsForward: false, TargetID: e.SourceID}
	s.refs[e.SourceID] = removeFirst(s.refs[e.SourceID], fwd)
	s.refs[e.TargetID] = removeFirst(s.refs[e.TargetID], inv)
}

// mirror returns the entry that the other endpoint of r holds for the same
// edge, seen from id.
func mirror(id nodeid.NodeID, r refstore.Reference) refstore.Reference {
	return refstore.Reference{ReferenceTypeID: r.ReferenceTypeID, IsForward: !r.IsForward, TargetID: id}
}

func removeFirst(refs []refstore.Reference, r refstore.Reference) []refstore.Reference {
	if i := slices.Index(refs, r); i >= 0 {
		return slices.Delete(refs, i, i+1)
	}
	return refs
}
