package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	DefaultNamespace string            `hcl:"default_namespace,optional"`
	Namespaces       []*namespaceBlock `hcl:"namespace,block"`
	DataTypes        []*typeBlock      `hcl:"data_type,block"`
	ReferenceTypes   []*typeBlock      `hcl:"reference_type,block"`
	ObjectTypes      []*typeBlock      `hcl:"object_type,block"`
	VariableTypes    []*typeBlock      `hcl:"variable_type,block"`
	Enumerations     []*enumBlock      `hcl:"enumeration,block"`
	Objects          []*instanceBlock  `hcl:"object,block"`
	Folders          []*instanceBlock  `hcl:"folder,block"`
	Variables        []*instanceBlock  `hcl:"variable,block"`
	References       []*referenceBlock `hcl:"reference,block"`
}

type namespaceBlock struct {
	URI     string `hcl:"uri,label"`
	GUIDIDs bool   `hcl:"guid_ids,optional"`
}

// typeBlock is shared by data_type, reference_type, object_type and
// variable_type; attributes that do not apply to a kind are rejected during
// translation.
type typeBlock struct {
	Name        string `hcl:"name,label"`
	Namespace   string `hcl:"namespace,optional"`
	NodeID      string `hcl:"node_id,optional"`
	BrowseName  string `hcl:"browse_name,optional"`
	DisplayName string `hcl:"display_name,optional"`
	Description string `hcl:"description,optional"`

	SubtypeOf   string `hcl:"subtype_of,optional"`
	IsAbstract  bool   `hcl:"abstract,optional"`
	Symmetric   bool   `hcl:"symmetric,optional"`
	InverseName string `hcl:"inverse_name,optional"`
	DataType    string `hcl:"data_type,optional"`
	ValueRank   *int32 `hcl:"value_rank,optional"`

	Body hcl.Body `hcl:",remain"`
}

type enumBlock struct {
	Name        string `hcl:"name,label"`
	Namespace   string `hcl:"namespace,optional"`
	NodeID      string `hcl:"node_id,optional"`
	BrowseName  string `hcl:"browse_name,optional"`
	DisplayName string `hcl:"display_name,optional"`
	Description string `hcl:"description,optional"`

	Fields []*fieldBlock `hcl:"field,block"`

	Body hcl.Body `hcl:",remain"`
}

type fieldBlock struct {
	Name        string `hcl:"name,label"`
	Value       *int64 `hcl:"value,optional"`
	Description string `hcl:"description,optional"`
}

// instanceBlock is shared by object, folder and variable.
type instanceBlock struct {
	Name        string `hcl:"name,label"`
	Namespace   string `hcl:"namespace,optional"`
	NodeID      string `hcl:"node_id,optional"`
	BrowseName  string `hcl:"browse_name,optional"`
	DisplayName string `hcl:"display_name,optional"`
	Description string `hcl:"description,optional"`

	ComponentOf    string         `hcl:"component_of,optional"`
	OrganizedBy    string         `hcl:"organized_by,optional"`
	PropertyOf     string         `hcl:"property_of,optional"`
	TypeDefinition string         `hcl:"type_definition,optional"`
	DataType       string         `hcl:"data_type,optional"`
	ValueRank      *int32         `hcl:"value_rank,optional"`
	ValueType      string         `hcl:"value_type,optional"`
	Value          hcl.Expression `hcl:"value,optional"`

	Body hcl.Body `hcl:",remain"`
}

type referenceBlock struct {
	Source string `hcl:"source"`
	Type   string `hcl:"type"`
	Target string `hcl:"target"`

	Body hcl.Body `hcl:",remain"`
}
