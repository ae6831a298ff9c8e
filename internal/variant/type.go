package variant

import (
	"fmt"

	"github.com/specialistvlad/addressspace/internal/nodeid"
)

// Type is the built-in type tag carried by every Variant. The numeric
// values match the namespace 0 identifiers of the corresponding data types.
type Type uint8

const (
	Null Type = iota
	Boolean
	SByte
	Byte
	Int16
	UInt16
	Int32
	UInt32
	Int64
	UInt64
	Float
	Double
	String
	DateTime
	Guid
	ByteString
	XmlElement
	NodeId
	ExpandedNodeId
	StatusCodeType
	QualifiedName
	LocalizedTextType
	ExtensionObject
	DataValueType
	VariantType
	DiagnosticInfo
)

var typeNames = [...]string{
	Null:              "Null",
	Boolean:           "Boolean",
	SByte:             "SByte",
	Byte:              "Byte",
	Int16:             "Int16",
	UInt16:            "UInt16",
	Int32:             "Int32",
	UInt32:            "UInt32",
	Int64:             "Int64",
	UInt64:            "UInt64",
	Float:             "Float",
	Double:            "Double",
	String:            "String",
	DateTime:          "DateTime",
	Guid:              "Guid",
	ByteString:        "ByteString",
	XmlElement:        "XmlElement",
	NodeId:            "NodeId",
	ExpandedNodeId:    "ExpandedNodeId",
	StatusCodeType:    "StatusCode",
	QualifiedName:     "QualifiedName",
	LocalizedTextType: "LocalizedText",
	ExtensionObject:   "ExtensionObject",
	DataValueType:     "DataValue",
	VariantType:       "Variant",
	DiagnosticInfo:    "DiagnosticInfo",
}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("Type(%d)", uint8(t))
}

// Valid reports whether t is a known tag.
func (t Type) Valid() bool {
	return t <= DiagnosticInfo
}

// DataType returns the namespace 0 data type node id that t encodes.
// ExtensionObject maps to Structure and Variant to BaseDataType, which
// share their numeric identifiers with the tags.
func (t Type) DataType() nodeid.NodeID {
	return nodeid.NewNumeric(0, uint32(t))
}

// TypeOf returns the tag whose data type node is id. It reports false for
// ids outside namespace 0 and for abstract or structured data types that
// have no tag of their own.
func TypeOf(id nodeid.NodeID) (Type, bool) {
	if id.Namespace() != 0 || id.Type() != nodeid.Numeric {
		return Null, false
	}
	n := id.Numeric()
	if n == 0 || n > uint32(DiagnosticInfo) {
		return Null, false
	}
	return Type(n), true
}

// ParseType resolves a tag by its name, as used in nodeset files.
func ParseType(name string) (Type, error) {
	for i, n := range typeNames {
		if n == name {
			return Type(i), nil
		}
	}
	return Null, fmt.Errorf("unknown built-in type %q", name)
}

// IsInteger reports whether t is one of the eight integer tags.
func (t Type) IsInteger() bool {
	return t >= SByte && t <= UInt64
}

// IsNumber reports whether t is an integer or floating point tag.
func (t Type) IsNumber() bool {
	return t.IsInteger() || t == Float || t == Double
}
