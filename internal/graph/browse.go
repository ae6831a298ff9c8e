package graph

import (
	"context"
	"fmt"

	"github.com/specialistvlad/addressspace/internal/ids"
	"github.com/specialistvlad/addressspace/internal/modelerr"
	"github.com/specialistvlad/addressspace/internal/node"
	"github.com/specialistvlad/addressspace/internal/nodeid"
	"github.com/specialistvlad/addressspace/internal/refstore"
)

// Browse returns the references of id matching desc in insertion order.
func (m *Manager) Browse(ctx context.Context, id nodeid.NodeID, desc BrowseDescription) ([]ReferenceDescription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	const op = "Browse"
	if _, ok := m.nodes.Get(ctx, id); !ok {
		return nil, modelerr.New(op, modelerr.ErrNotFound, "node %s", id)
	}
	if desc.ReferenceTypeID != nil {
		rt, ok := m.nodes.Get(ctx, *desc.ReferenceTypeID)
		if !ok || rt.Class() != node.ClassReferenceType {
			return nil, modelerr.New(op, modelerr.ErrNotFound, "reference type %s", *desc.ReferenceTypeID)
		}
	}
	if desc.Direction < BrowseForward || desc.Direction > BrowseBoth {
		return nil, modelerr.New(op, modelerr.ErrInvalidArgumentType, "unknown browse direction %d", desc.Direction)
	}

	out := []ReferenceDescription{}
	for _, r := range m.refs.References(ctx, id) {
		if !m.matchesLocked(ctx, r, desc) {
			continue
		}
		target, ok := m.nodes.Get(ctx, r.TargetID)
		if !ok {
			panic(fmt.Sprintf("graph: reference from %s points at missing node %s", id, r.TargetID))
		}
		if desc.NodeClassMask != 0 && target.Class()&desc.NodeClassMask == 0 {
			continue
		}
		out = append(out, m.describeLocked(ctx, r, target, desc.ResultMask))
	}
	return out, nil
}

func (m *Manager) matchesLocked(ctx context.Context, r refstore.Reference, desc BrowseDescription) bool {
	switch desc.Direction {
	case BrowseForward:
		if !r.IsForward {
			return false
		}
	case BrowseInverse:
		if r.IsForward {
			return false
		}
	}
	if desc.ReferenceTypeID == nil || r.ReferenceTypeID == *desc.ReferenceTypeID {
		return true
	}
	return desc.IncludeSubtypes && m.isSubtypeOfLocked(ctx, r.ReferenceTypeID, *desc.ReferenceTypeID)
}

func (m *Manager) describeLocked(ctx context.Context, r refstore.Reference, target *node.Node, mask ResultMask) ReferenceDescription {
	rd := ReferenceDescription{NodeID: target.ID()}
	if mask.Has(ResultMaskReferenceType) {
		rd.ReferenceTypeID = r.ReferenceTypeID
	}
	if mask.Has(ResultMaskIsForward) {
		rd.IsForward = r.IsForward
	}
	if mask.Has(ResultMaskNodeClass) {
		rd.NodeClass = target.Class()
	}
	if mask.Has(ResultMaskBrowseName) {
		rd.BrowseName = target.BrowseName()
	}
	if mask.Has(ResultMaskDisplayName) {
		rd.DisplayName = target.DisplayName
	}
	if mask.Has(ResultMaskTypeDefinition) {
		switch target.Class() {
		case node.ClassObject, node.ClassVariable:
			if defs := m.relatedLocked(ctx, target.ID(), ids.HasTypeDefinition, true); len(defs) > 0 {
				rd.TypeDefinition = defs[0]
			}
		}
	}
	return rd
}
