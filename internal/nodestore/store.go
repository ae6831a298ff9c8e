// Package nodestore defines the interface for owning the nodes of an
// address space.
//
// # Why Node Store Exists
//
// The node store isolates **node ownership** (identity, attributes) from the
// **edges** between nodes, which are managed by refstore. Components hold
// node ids, never pointers into each other, and resolve them through the
// store. That keeps deletion and disposal a matter of dropping entries from
// two tables.
//
// # Lifecycle and Usage
//
// The node store is:
//  1. **Created** once per address space
//  2. **Populated** exclusively by namespace factory operations
//  3. **Queried** by the browse engine and the type system
//  4. **Cleared** when the address space is disposed
package nodestore

import (
	"context"

	"github.com/specialistvlad/addressspace/internal/node"
	"github.com/specialistvlad/addressspace/internal/nodeid"
)

// Store is the interface for managing the nodes of an address space.
//
// # Thread-Safety Requirements
//
// Implementations MUST be safe for one writer and many concurrent readers.
//
// # Typical Implementation
//
// See internal/inmemorystore for the reference in-memory implementation.
type Store interface {
	// Add registers a node. The node id must not be in use; a taken id fails
	// with modelerr.ErrDuplicateDefinition and leaves the store unchanged.
	Add(ctx context.Context, n *node.Node) error

	// Get retrieves a node by id.
	Get(ctx context.Context, id nodeid.NodeID) (*node.Node, bool)

	// Delete removes a node. Unknown ids fail with modelerr.ErrNotFound.
	// The caller is responsible for removing the node's references first.
	Delete(ctx context.Context, id nodeid.NodeID) error

	// FindByBrowseName returns every node with the given browse name, in
	// insertion order.
	FindByBrowseName(ctx context.Context, name nodeid.QualifiedName) []*node.Node

	// All returns every node in insertion order.
	All(ctx context.Context) []*node.Node

	// Len returns the number of nodes.
	Len(ctx context.Context) int

	// Clear drops every node.
	Clear(ctx context.Context)
}
