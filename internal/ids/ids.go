// Package ids lists the well-known identifiers of namespace 0 that the
// address space relies on: the built-in data types, the standard reference
// types and the fixed folders of the base model.
package ids

import "github.com/specialistvlad/addressspace/internal/nodeid"

// StandardNamespaceURI is the URI of namespace 0.
const StandardNamespaceURI = "http://opcfoundation.org/UA/"

// Data types.
var (
	Boolean        = nodeid.NewNumeric(0, 1)
	SByte          = nodeid.NewNumeric(0, 2)
	Byte           = nodeid.NewNumeric(0, 3)
	Int16          = nodeid.NewNumeric(0, 4)
	UInt16         = nodeid.NewNumeric(0, 5)
	Int32          = nodeid.NewNumeric(0, 6)
	UInt32         = nodeid.NewNumeric(0, 7)
	Int64          = nodeid.NewNumeric(0, 8)
	UInt64         = nodeid.NewNumeric(0, 9)
	Float          = nodeid.NewNumeric(0, 10)
	Double         = nodeid.NewNumeric(0, 11)
	String         = nodeid.NewNumeric(0, 12)
	DateTime       = nodeid.NewNumeric(0, 13)
	Guid           = nodeid.NewNumeric(0, 14)
	ByteString     = nodeid.NewNumeric(0, 15)
	XmlElement     = nodeid.NewNumeric(0, 16)
	NodeId         = nodeid.NewNumeric(0, 17)
	ExpandedNodeId = nodeid.NewNumeric(0, 18)
	StatusCode     = nodeid.NewNumeric(0, 19)
	QualifiedName  = nodeid.NewNumeric(0, 20)
	LocalizedText  = nodeid.NewNumeric(0, 21)
	Structure      = nodeid.NewNumeric(0, 22)
	DataValue      = nodeid.NewNumeric(0, 23)
	BaseDataType   = nodeid.NewNumeric(0, 24)
	DiagnosticInfo = nodeid.NewNumeric(0, 25)
	Number         = nodeid.NewNumeric(0, 26)
	Integer        = nodeid.NewNumeric(0, 27)
	UInteger       = nodeid.NewNumeric(0, 28)
	Enumeration    = nodeid.NewNumeric(0, 29)
	EnumValueType  = nodeid.NewNumeric(0, 7594)
)

// Reference types.
var (
	References                = nodeid.NewNumeric(0, 31)
	NonHierarchicalReferences = nodeid.NewNumeric(0, 32)
	HierarchicalReferences    = nodeid.NewNumeric(0, 33)
	HasChild                  = nodeid.NewNumeric(0, 34)
	Organizes                 = nodeid.NewNumeric(0, 35)
	HasEventSource            = nodeid.NewNumeric(0, 36)
	HasModellingRule          = nodeid.NewNumeric(0, 37)
	HasEncoding               = nodeid.NewNumeric(0, 38)
	HasDescription            = nodeid.NewNumeric(0, 39)
	HasTypeDefinition         = nodeid.NewNumeric(0, 40)
	GeneratesEvent            = nodeid.NewNumeric(0, 41)
	Aggregates                = nodeid.NewNumeric(0, 44)
	HasSubtype                = nodeid.NewNumeric(0, 45)
	HasProperty               = nodeid.NewNumeric(0, 46)
	HasComponent              = nodeid.NewNumeric(0, 47)
)

// Object and variable types.
var (
	BaseObjectType       = nodeid.NewNumeric(0, 58)
	FolderType           = nodeid.NewNumeric(0, 61)
	BaseVariableType     = nodeid.NewNumeric(0, 62)
	BaseDataVariableType = nodeid.NewNumeric(0, 63)
	PropertyType         = nodeid.NewNumeric(0, 68)
	ServerType           = nodeid.NewNumeric(0, 2004)
	VendorServerInfoType = nodeid.NewNumeric(0, 2033)
)

// Folders and objects of the base model.
var (
	RootFolder             = nodeid.NewNumeric(0, 84)
	ObjectsFolder          = nodeid.NewNumeric(0, 85)
	TypesFolder            = nodeid.NewNumeric(0, 86)
	ViewsFolder            = nodeid.NewNumeric(0, 87)
	ObjectTypesFolder      = nodeid.NewNumeric(0, 88)
	VariableTypesFolder    = nodeid.NewNumeric(0, 89)
	DataTypesFolder        = nodeid.NewNumeric(0, 90)
	ReferenceTypesFolder   = nodeid.NewNumeric(0, 91)
	Server                 = nodeid.NewNumeric(0, 2253)
	ServerNamespaceArray   = nodeid.NewNumeric(0, 2255)
	ServerVendorServerInfo = nodeid.NewNumeric(0, 2295)
)
