package graph

import (
	"context"
	"fmt"
	"sync"

	"github.com/specialistvlad/addressspace/internal/ctxlog"
	"github.com/specialistvlad/addressspace/internal/ids"
	"github.com/specialistvlad/addressspace/internal/modelerr"
	"github.com/specialistvlad/addressspace/internal/node"
	"github.com/specialistvlad/addressspace/internal/nodeid"
	"github.com/specialistvlad/addressspace/internal/nodestore"
	"github.com/specialistvlad/addressspace/internal/refstore"
)

// Manager provides a high-level, thread-safe interface to the address space
// graph by composing and orchestrating lower-level storage backends.
type Manager struct {
	mu    sync.RWMutex
	nodes nodestore.Store
	refs  refstore.Store
}

var _ Graph = (*Manager)(nil)

// New creates a new graph manager.
func New(ns nodestore.Store, rs refstore.Store) *Manager {
	return &Manager{nodes: ns, refs: rs}
}

// Node retrieves a node by id.
func (m *Manager) Node(ctx context.Context, id nodeid.NodeID) (*node.Node, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.nodes.Get(ctx, id)
}

// AddNode registers a node with no references.
func (m *Manager) AddNode(ctx context.Context, n *node.Node) error {
	return m.AddNodeWithReferences(ctx, n)
}

// AddNodeWithReferences registers n and its initial edges atomically.
func (m *Manager) AddNodeWithReferences(ctx context.Context, n *node.Node, edges ...refstore.Edge) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.nodes.Add(ctx, n); err != nil {
		return err
	}
	for _, e := range edges {
		if e.SourceID != n.ID() && e.TargetID != n.ID() {
			m.rollbackLocked(ctx, n.ID())
			panic(fmt.Sprintf("graph: initial reference %s -> %s does not touch new node %s", e.SourceID, e.TargetID, n.ID()))
		}
		if err := m.checkEdgeLocked(ctx, e); err != nil {
			m.rollbackLocked(ctx, n.ID())
			return err
		}
		if _, err := m.refs.Add(ctx, e); err != nil {
			m.rollbackLocked(ctx, n.ID())
			return err
		}
	}

	ctxlog.FromContext(ctx).Debug("Node added.", "node_id", n.ID().String(), "browse_name", n.BrowseName().String(), "class", n.Class().String(), "references", len(edges))
	return nil
}

// AddReference inserts a reference pair after integrity checks.
func (m *Manager) AddReference(ctx context.Context, source, refType, target nodeid.NodeID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := refstore.Edge{SourceID: source, ReferenceTypeID: refType, TargetID: target}
	if err := m.checkEdgeLocked(ctx, e); err != nil {
		return err
	}
	added, err := m.refs.Add(ctx, e)
	if err != nil {
		return err
	}
	if added {
		ctxlog.FromContext(ctx).Debug("Reference added.", "source", source.String(), "reference_type", refType.String(), "target", target.String())
	}
	return nil
}

// RemoveReference deletes a reference pair.
func (m *Manager) RemoveReference(ctx context.Context, source, refType, target nodeid.NodeID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.refs.Remove(ctx, refstore.Edge{SourceID: source, ReferenceTypeID: refType, TargetID: target}); err != nil {
		return err
	}
	ctxlog.FromContext(ctx).Debug("Reference removed.", "source", source.String(), "reference_type", refType.String(), "target", target.String())
	return nil
}

// HasReference reports whether the forward reference exists.
func (m *Manager) HasReference(ctx context.Context, source, refType, target nodeid.NodeID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refs.Has(ctx, refstore.Edge{SourceID: source, ReferenceTypeID: refType, TargetID: target})
}

// DeleteNode removes a node and all references touching it.
func (m *Manager) DeleteNode(ctx context.Context, id nodeid.NodeID) ([]refstore.Edge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.nodes.Get(ctx, id); !ok {
		return nil, modelerr.New("DeleteNode", modelerr.ErrNotFound, "node %s", id)
	}
	removed := m.refs.RemoveNode(ctx, id)
	if err := m.nodes.Delete(ctx, id); err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Node deleted.", "node_id", id.String(), "references_removed", len(removed))
	return removed, nil
}

// References returns a node's raw entries.
func (m *Manager) References(ctx context.Context, id nodeid.NodeID) []refstore.Reference {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refs.References(ctx, id)
}

// SuperTypes returns the direct supertypes of id.
func (m *Manager) SuperTypes(ctx context.Context, id nodeid.NodeID) []nodeid.NodeID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.relatedLocked(ctx, id, ids.HasSubtype, false)
}

// SubTypes returns the direct subtypes of id.
func (m *Manager) SubTypes(ctx context.Context, id nodeid.NodeID) []nodeid.NodeID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.relatedLocked(ctx, id, ids.HasSubtype, true)
}

// IsSubtypeOf reports whether id is ancestor or one of its subtypes.
func (m *Manager) IsSubtypeOf(ctx context.Context, id, ancestor nodeid.NodeID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.isSubtypeOfLocked(ctx, id, ancestor)
}

// Nodes returns every node in insertion order.
func (m *Manager) Nodes(ctx context.Context) []*node.Node {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.nodes.All(ctx)
}

// FindByBrowseName returns every node named name.
func (m *Manager) FindByBrowseName(ctx context.Context, name nodeid.QualifiedName) []*node.Node {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.nodes.FindByBrowseName(ctx, name)
}

// Counts returns the number of nodes and of references.
func (m *Manager) Counts(ctx context.Context) (int, int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.nodes.Len(ctx), m.refs.Len(ctx)
}

// Edges returns every reference in insertion order.
func (m *Manager) Edges(ctx context.Context) []refstore.Edge {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refs.Edges(ctx)
}

// Clear drops every node and reference.
func (m *Manager) Clear(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refs.Clear(ctx)
	m.nodes.Clear(ctx)
}

// checkEdgeLocked validates e against the current graph.
func (m *Manager) checkEdgeLocked(ctx context.Context, e refstore.Edge) error {
	const op = "AddReference"
	lookup := func(id nodeid.NodeID) (*node.Node, bool) {
		return m.nodes.Get(ctx, id)
	}

	source, ok := lookup(e.SourceID)
	if !ok {
		return modelerr.New(op, modelerr.ErrReferenceIntegrity, "source node %s does not exist", e.SourceID)
	}
	target, ok := lookup(e.TargetID)
	if !ok {
		return modelerr.New(op, modelerr.ErrReferenceIntegrity, "target node %s does not exist", e.TargetID)
	}
	refType, ok := lookup(e.ReferenceTypeID)
	if !ok || refType.Class() != node.ClassReferenceType {
		return modelerr.New(op, modelerr.ErrReferenceIntegrity, "reference type %s does not exist", e.ReferenceTypeID)
	}

	if e.ReferenceTypeID == ids.HasSubtype {
		if source.Class() != target.Class() {
			return modelerr.New(op, modelerr.ErrReferenceIntegrity, "HasSubtype links %s to %s of a different class", source, target)
		}
		// target becomes a subtype of source; that closes a cycle when
		// source already descends from target.
		if e.SourceID == e.TargetID || m.isSubtypeOfLocked(ctx, e.SourceID, e.TargetID) {
			return modelerr.New(op, modelerr.ErrReferenceIntegrity, "HasSubtype %s -> %s would create a cycle", e.SourceID, e.TargetID)
		}
	}
	return nil
}

// rollbackLocked undoes a partially applied AddNodeWithReferences.
func (m *Manager) rollbackLocked(ctx context.Context, id nodeid.NodeID) {
	m.refs.RemoveNode(ctx, id)
	_ = m.nodes.Delete(ctx, id)
}

func (m *Manager) relatedLocked(ctx context.Context, id, refType nodeid.NodeID, forward bool) []nodeid.NodeID {
	var out []nodeid.NodeID
	for _, r := range m.refs.References(ctx, id) {
		if r.ReferenceTypeID == refType && r.IsForward == forward {
			out = append(out, r.TargetID)
		}
	}
	return out
}

func (m *Manager) isSubtypeOfLocked(ctx context.Context, id, ancestor nodeid.NodeID) bool {
	seen := map[nodeid.NodeID]bool{}
	queue := []nodeid.NodeID{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == ancestor {
			return true
		}
		if seen[cur] {
			continue
		}
		seen[cur] = true
		queue = append(queue, m.relatedLocked(ctx, cur, ids.HasSubtype, false)...)
	}
	return false
}
