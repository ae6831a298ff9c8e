// Package node defines the vertices of the address space: a common base
// record plus a class specific attribute payload.
package node

import (
	"fmt"

	"github.com/specialistvlad/addressspace/internal/enumeration"
	"github.com/specialistvlad/addressspace/internal/nodeid"
	"github.com/specialistvlad/addressspace/internal/variant"
)

// Class is the node class. Values are bit flags so that browse filters can
// combine them into a mask.
type Class uint32

const (
	ClassUnspecified   Class = 0
	ClassObject        Class = 1
	ClassVariable      Class = 2
	ClassMethod        Class = 4
	ClassObjectType    Class = 8
	ClassVariableType  Class = 16
	ClassReferenceType Class = 32
	ClassDataType      Class = 64
	ClassView          Class = 128
)

func (c Class) String() string {
	switch c {
	case ClassUnspecified:
		return "Unspecified"
	case ClassObject:
		return "Object"
	case ClassVariable:
		return "Variable"
	case ClassMethod:
		return "Method"
	case ClassObjectType:
		return "ObjectType"
	case ClassVariableType:
		return "VariableType"
	case ClassReferenceType:
		return "ReferenceType"
	case ClassDataType:
		return "DataType"
	case ClassView:
		return "View"
	}
	return fmt.Sprintf("Class(%d)", uint32(c))
}

// Attributes is the class specific payload of a node.
type Attributes interface {
	Class() Class
}

// ObjectAttributes is the payload of an Object node.
type ObjectAttributes struct {
	EventNotifier byte
}

// Class implements Attributes.
func (*ObjectAttributes) Class() Class { return ClassObject }

// ObjectTypeAttributes is the payload of an ObjectType node.
type ObjectTypeAttributes struct {
	IsAbstract bool
}

// Class implements Attributes.
func (*ObjectTypeAttributes) Class() Class { return ClassObjectType }

// VariableAttributes is the payload of a Variable node. DataType is fixed
// at creation; the current value lives in the variable's binding.
type VariableAttributes struct {
	DataType    nodeid.NodeID
	ValueRank   int32
	AccessLevel byte
}

// Class implements Attributes.
func (*VariableAttributes) Class() Class { return ClassVariable }

// VariableTypeAttributes is the payload of a VariableType node.
type VariableTypeAttributes struct {
	IsAbstract bool
	DataType   nodeid.NodeID
	ValueRank  int32
}

// Class implements Attributes.
func (*VariableTypeAttributes) Class() Class { return ClassVariableType }

// DataTypeAttributes is the payload of a DataType node. Enumeration is set
// only for enumerated data types.
type DataTypeAttributes struct {
	IsAbstract  bool
	Enumeration *enumeration.Definition
}

// Class implements Attributes.
func (*DataTypeAttributes) Class() Class { return ClassDataType }

// ReferenceTypeAttributes is the payload of a ReferenceType node.
type ReferenceTypeAttributes struct {
	IsAbstract  bool
	Symmetric   bool
	InverseName string
}

// Class implements Attributes.
func (*ReferenceTypeAttributes) Class() Class { return ClassReferenceType }

// Value ranks.
const (
	ValueRankScalarOrOneDimension int32 = -3
	ValueRankAny                  int32 = -2
	ValueRankScalar               int32 = -1
	ValueRankOneOrMoreDimensions  int32 = 0
	ValueRankOneDimension         int32 = 1
)

// Access level bits.
const (
	AccessLevelCurrentRead  byte = 0x01
	AccessLevelCurrentWrite byte = 0x02
)

// Node is a single vertex of the address space. Its identity, browse name
// and class never change after construction.
type Node struct {
	id         nodeid.NodeID
	browseName nodeid.QualifiedName
	attrs      Attributes

	DisplayName variant.LocalizedText
	Description variant.LocalizedText
}

// New builds a node. The class is taken from attrs, which must be non-nil.
// The display name defaults to the browse name.
func New(id nodeid.NodeID, browseName nodeid.QualifiedName, attrs Attributes) *Node {
	if attrs == nil {
		panic("node: attributes must not be nil")
	}
	return &Node{
		id:          id,
		browseName:  browseName,
		attrs:       attrs,
		DisplayName: variant.LocalizedText{Text: browseName.Name},
	}
}

// ID returns the node id.
func (n *Node) ID() nodeid.NodeID { return n.id }

// BrowseName returns the browse name.
func (n *Node) BrowseName() nodeid.QualifiedName { return n.browseName }

// Class returns the node class.
func (n *Node) Class() Class { return n.attrs.Class() }

// Attributes returns the class specific payload.
func (n *Node) Attributes() Attributes { return n.attrs }

// DataType returns the payload of a DataType node.
func (n *Node) DataType() (*DataTypeAttributes, bool) {
	a, ok := n.attrs.(*DataTypeAttributes)
	return a, ok
}

// Variable returns the payload of a Variable node.
func (n *Node) Variable() (*VariableAttributes, bool) {
	a, ok := n.attrs.(*VariableAttributes)
	return a, ok
}

// ReferenceType returns the payload of a ReferenceType node.
func (n *Node) ReferenceType() (*ReferenceTypeAttributes, bool) {
	a, ok := n.attrs.(*ReferenceTypeAttributes)
	return a, ok
}

// Object returns the payload of an Object node.
func (n *Node) Object() (*ObjectAttributes, bool) {
	a, ok := n.attrs.(*ObjectAttributes)
	return a, ok
}

// IsAbstract reports the IsAbstract attribute of type nodes, false otherwise.
func (n *Node) IsAbstract() bool {
	switch a := n.attrs.(type) {
	case *DataTypeAttributes:
		return a.IsAbstract
	case *ReferenceTypeAttributes:
		return a.IsAbstract
	case *ObjectTypeAttributes:
		return a.IsAbstract
	case *VariableTypeAttributes:
		return a.IsAbstract
	}
	return false
}

func (n *Node) String() string {
	return fmt.Sprintf("%s %s (%s)", n.Class(), n.browseName, n.id)
}
