package yaml

import "gopkg.in/yaml.v3"

// fileYAML represents the YAML file structure.
type fileYAML struct {
	DefaultNamespace string           `yaml:"default_namespace,omitempty"`
	Namespaces       []*namespaceYAML `yaml:"namespaces,omitempty"`
	Nodes            []*nodeYAML      `yaml:"nodes,omitempty"`
	References       []*referenceYAML `yaml:"references,omitempty"`
}

// namespaceYAML represents a namespace declaration.
type namespaceYAML struct {
	URI     string `yaml:"uri"`
	GUIDIDs bool   `yaml:"guid_ids,omitempty"`
}

// nodeYAML represents one node declaration of any kind.
type nodeYAML struct {
	Kind        string `yaml:"kind"`
	Name        string `yaml:"name"`
	Namespace   string `yaml:"namespace,omitempty"`
	NodeID      string `yaml:"node_id,omitempty"`
	BrowseName  string `yaml:"browse_name,omitempty"`
	DisplayName string `yaml:"display_name,omitempty"`
	Description string `yaml:"description,omitempty"`

	SubtypeOf   string `yaml:"subtype_of,omitempty"`
	IsAbstract  bool   `yaml:"abstract,omitempty"`
	Symmetric   bool   `yaml:"symmetric,omitempty"`
	InverseName string `yaml:"inverse_name,omitempty"`

	ComponentOf    string `yaml:"component_of,omitempty"`
	OrganizedBy    string `yaml:"organized_by,omitempty"`
	PropertyOf     string `yaml:"property_of,omitempty"`
	TypeDefinition string `yaml:"type_definition,omitempty"`

	DataType  string     `yaml:"data_type,omitempty"`
	ValueRank *int32     `yaml:"value_rank,omitempty"`
	ValueType string     `yaml:"value_type,omitempty"`
	Value     *yaml.Node `yaml:"value,omitempty"`

	Fields []*fieldYAML `yaml:"fields,omitempty"`
}

// fieldYAML represents one enumeration field.
type fieldYAML struct {
	Name        string `yaml:"name"`
	Value       *int64 `yaml:"value,omitempty"`
	Description string `yaml:"description,omitempty"`
}

// referenceYAML represents an extra reference.
type referenceYAML struct {
	Source string `yaml:"source"`
	Type   string `yaml:"type"`
	Target string `yaml:"target"`
}
