// Package refstore defines the interface for storing the typed, directed
// references between nodes.
//
// # Why Reference Store Exists
//
// References are kept apart from nodes (nodestore) so that each node can
// carry both its forward and its inverse entries. Every edge is stored
// twice: as a forward entry on its source and as an inverse entry on its
// target. Inverse navigation is then a lookup on the target, never a scan
// of the whole graph.
//
// # Ordering
//
// Each node's entries are kept in insertion order, mixing both directions.
// Browse results depend on this order.
package refstore

import (
	"context"

	"github.com/specialistvlad/addressspace/internal/nodeid"
)

// Reference is one entry in a node's reference list, seen from that node.
// TargetID is the other endpoint; for an inverse entry it is the source of
// the underlying edge.
type Reference struct {
	ReferenceTypeID nodeid.NodeID
	IsForward       bool
	TargetID        nodeid.NodeID
}

// Edge is a directed edge of the graph.
type Edge struct {
	SourceID        nodeid.NodeID
	ReferenceTypeID nodeid.NodeID
	TargetID        nodeid.NodeID
}

// Store is the interface for managing references.
//
// Store does not know about nodes. Endpoint and reference type validation
// belongs to the caller (see internal/graph).
//
// # Thread-Safety Requirements
//
// Implementations MUST be safe for one writer and many concurrent readers.
type Store interface {
	// Add inserts the forward/inverse pair for e. Inserting an edge that is
	// already present is a no-op and reports false.
	Add(ctx context.Context, e Edge) (bool, error)

	// Remove deletes both entries of e. Unknown edges fail with
	// modelerr.ErrNotFound.
	Remove(ctx context.Context, e Edge) error

	// Has reports whether e is present.
	Has(ctx context.Context, e Edge) bool

	// References returns the entries of a node, both directions, in
	// insertion order.
	References(ctx context.Context, id nodeid.NodeID) []Reference

	// RemoveNode deletes every edge touching id and returns them.
	RemoveNode(ctx context.Context, id nodeid.NodeID) []Edge

	// Edges returns every edge in insertion order.
	Edges(ctx context.Context) []Edge

	// Len returns the number of edges.
	Len(ctx context.Context) int

	// Clear drops every edge.
	Clear(ctx context.Context)
}
