package addressspace

import (
	"github.com/specialistvlad/addressspace/internal/enumeration"
	"github.com/specialistvlad/addressspace/internal/nodeid"
	"github.com/specialistvlad/addressspace/internal/variant"
)

// In every spec below a zero NodeID asks the namespace to allocate one.
// Explicit ids must belong to the namespace and must not be taken.

// DataTypeSpec describes a data type node.
type DataTypeSpec struct {
	NodeID      nodeid.NodeID
	BrowseName  string
	DisplayName string
	Description string
	// SubtypeOf is the supertype. Zero declares a root type.
	SubtypeOf  nodeid.NodeID
	IsAbstract bool
}

// EnumerationTypeSpec describes an enumerated data type. It always derives
// from the standard Enumeration type.
type EnumerationTypeSpec struct {
	NodeID      nodeid.NodeID
	BrowseName  string
	Description string
	// Enumeration is either enumeration.Names or enumeration.Values.
	Enumeration enumeration.Spec
}

// ReferenceTypeSpec describes a reference type node.
type ReferenceTypeSpec struct {
	NodeID      nodeid.NodeID
	BrowseName  string
	Description string
	SubtypeOf   nodeid.NodeID
	IsAbstract  bool
	Symmetric   bool
	InverseName string
}

// ObjectTypeSpec describes an object type node.
type ObjectTypeSpec struct {
	NodeID      nodeid.NodeID
	BrowseName  string
	Description string
	SubtypeOf   nodeid.NodeID
	IsAbstract  bool
}

// VariableTypeSpec describes a variable type node.
type VariableTypeSpec struct {
	NodeID      nodeid.NodeID
	BrowseName  string
	Description string
	SubtypeOf   nodeid.NodeID
	IsAbstract  bool
	DataType    nodeid.NodeID
	ValueRank   *int32
}

// ObjectSpec describes an object or folder instance. At most one parent
// relation may be set.
type ObjectSpec struct {
	NodeID      nodeid.NodeID
	BrowseName  string
	DisplayName string
	Description string

	ComponentOf nodeid.NodeID
	OrganizedBy nodeid.NodeID

	// TypeDefinition defaults to BaseObjectType, or FolderType for folders.
	TypeDefinition nodeid.NodeID
	EventNotifier  byte
}

// VariableSpec describes a variable instance. At most one parent relation
// may be set; a variable without one is an orphan.
type VariableSpec struct {
	NodeID      nodeid.NodeID
	BrowseName  string
	DisplayName string
	Description string

	PropertyOf  nodeid.NodeID
	ComponentOf nodeid.NodeID
	OrganizedBy nodeid.NodeID

	DataType nodeid.NodeID
	// ValueRank defaults to node.ValueRankScalar.
	ValueRank *int32
	// AccessLevel defaults to current read and write.
	AccessLevel byte
	// TypeDefinition defaults to PropertyType for properties and to
	// BaseDataVariableType otherwise.
	TypeDefinition nodeid.NodeID
	// Value is stored through SetValueFromSource when not null.
	Value variant.Variant
}

// Rank returns a pointer to r for the ValueRank fields.
func Rank(r int32) *int32 {
	return &r
}
