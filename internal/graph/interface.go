package graph

import (
	"context"

	"github.com/specialistvlad/addressspace/internal/node"
	"github.com/specialistvlad/addressspace/internal/nodeid"
	"github.com/specialistvlad/addressspace/internal/refstore"
	"github.com/specialistvlad/addressspace/internal/variant"
)

// BrowseDirection selects which entries of a node's reference list match.
type BrowseDirection int

const (
	BrowseForward BrowseDirection = iota
	BrowseInverse
	BrowseBoth
)

func (d BrowseDirection) String() string {
	switch d {
	case BrowseForward:
		return "Forward"
	case BrowseInverse:
		return "Inverse"
	case BrowseBoth:
		return "Both"
	}
	return "Invalid"
}

// ResultMask selects the populated fields of a ReferenceDescription.
type ResultMask uint32

const (
	ResultMaskNone           ResultMask = 0
	ResultMaskReferenceType  ResultMask = 0x01
	ResultMaskIsForward      ResultMask = 0x02
	ResultMaskNodeClass      ResultMask = 0x04
	ResultMaskBrowseName     ResultMask = 0x08
	ResultMaskDisplayName    ResultMask = 0x10
	ResultMaskTypeDefinition ResultMask = 0x20
	ResultMaskAll            ResultMask = 0x3F
)

// Has reports whether every bit of f is set in m.
func (m ResultMask) Has(f ResultMask) bool {
	return m&f == f
}

// BrowseDescription describes which references of a node to return.
type BrowseDescription struct {
	// ReferenceTypeID restricts matches to one reference type. Nil matches
	// every type.
	ReferenceTypeID *nodeid.NodeID
	// IncludeSubtypes also matches subtypes of ReferenceTypeID.
	IncludeSubtypes bool
	Direction       BrowseDirection
	// NodeClassMask restricts matches to targets of the given classes. Zero
	// matches every class.
	NodeClassMask node.Class
	ResultMask    ResultMask
}

// ReferenceDescription is one browse result. NodeID is always populated;
// the other fields only when requested by the result mask.
type ReferenceDescription struct {
	ReferenceTypeID nodeid.NodeID
	IsForward       bool
	NodeID          nodeid.NodeID
	BrowseName      nodeid.QualifiedName
	DisplayName     variant.LocalizedText
	NodeClass       node.Class
	TypeDefinition  nodeid.NodeID
}

// Graph is the unified interface for structural access to the address space.
//
// # Thread-Safety
//
// Implementations MUST be thread-safe. Mutations are serialized; readers
// never observe a reference whose endpoints are missing.
//
// # Typical Implementation
//
// See Manager for the reference implementation that composes
// nodestore.Store and refstore.Store.
type Graph interface {
	// Node retrieves a node by id.
	Node(ctx context.Context, id nodeid.NodeID) (*node.Node, bool)

	// AddNode registers a node with no references. A taken id fails with
	// modelerr.ErrDuplicateDefinition.
	AddNode(ctx context.Context, n *node.Node) error

	// AddNodeWithReferences registers a node together with its initial
	// references as one atomic step. Either everything is added or nothing
	// is. Each edge must have the new node as source or target.
	AddNodeWithReferences(ctx context.Context, n *node.Node, edges ...refstore.Edge) error

	// AddReference inserts the forward/inverse pair source -[refType]-> target.
	// Missing endpoints or reference type, and subtype edges that would close
	// a cycle, fail with modelerr.ErrReferenceIntegrity. Repeating an
	// existing reference is a no-op.
	AddReference(ctx context.Context, source, refType, target nodeid.NodeID) error

	// RemoveReference deletes a reference pair. Unknown references fail with
	// modelerr.ErrNotFound.
	RemoveReference(ctx context.Context, source, refType, target nodeid.NodeID) error

	// HasReference reports whether source -[refType]-> target exists.
	HasReference(ctx context.Context, source, refType, target nodeid.NodeID) bool

	// DeleteNode removes a node and every reference touching it, returning
	// the removed edges.
	DeleteNode(ctx context.Context, id nodeid.NodeID) ([]refstore.Edge, error)

	// References returns a node's raw entries in insertion order.
	References(ctx context.Context, id nodeid.NodeID) []refstore.Reference

	// Browse returns the references of id that match desc. Unknown nodes fail
	// with modelerr.ErrNotFound.
	Browse(ctx context.Context, id nodeid.NodeID, desc BrowseDescription) ([]ReferenceDescription, error)

	// SuperTypes returns the direct supertypes of a type node.
	SuperTypes(ctx context.Context, id nodeid.NodeID) []nodeid.NodeID

	// SubTypes returns the direct subtypes of a type node, in insertion order.
	SubTypes(ctx context.Context, id nodeid.NodeID) []nodeid.NodeID

	// IsSubtypeOf reports whether id equals ancestor or reaches it through
	// HasSubtype edges.
	IsSubtypeOf(ctx context.Context, id, ancestor nodeid.NodeID) bool

	// Nodes returns every node in insertion order.
	Nodes(ctx context.Context) []*node.Node

	// FindByBrowseName returns every node with the given browse name, in
	// insertion order.
	FindByBrowseName(ctx context.Context, name nodeid.QualifiedName) []*node.Node

	// Counts returns the number of nodes and of references.
	Counts(ctx context.Context) (nodes, references int)

	// Edges returns every reference in insertion order.
	Edges(ctx context.Context) []refstore.Edge

	// Clear drops every node and reference.
	Clear(ctx context.Context)
}
