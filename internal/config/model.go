package config

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Model is the unified, format-agnostic representation of one or more
// nodeset files.
type Model struct {
	Namespaces []*Namespace
	Nodes      []*Node
	References []*Reference
}

// Kind is the kind of a node declaration.
type Kind string

const (
	KindDataType      Kind = "data_type"
	KindEnumeration   Kind = "enumeration"
	KindReferenceType Kind = "reference_type"
	KindObjectType    Kind = "object_type"
	KindVariableType  Kind = "variable_type"
	KindObject        Kind = "object"
	KindFolder        Kind = "folder"
	KindVariable      Kind = "variable"
)

// Kinds lists every declaration kind in the order they are documented.
var Kinds = []Kind{
	KindDataType, KindEnumeration, KindReferenceType, KindObjectType,
	KindVariableType, KindObject, KindFolder, KindVariable,
}

// Namespace is a `namespace` declaration.
type Namespace struct {
	URI     string
	GUIDIDs bool
}

// Node is one node declaration. Name is the symbol other declarations use
// to refer to it; it also serves as the browse name unless BrowseName is
// set.
//
// Every field naming another node (SubtypeOf, ComponentOf, DataType, ...)
// holds either the symbol of a declaration or an absolute node id such as
// "i=29" or "ns=1;s=Pump". NodeID is relative to the declaration's own
// namespace and must not carry a namespace index.
type Node struct {
	Kind      Kind
	Name      string
	Namespace string
	NodeID    string

	BrowseName  string
	DisplayName string
	Description string

	SubtypeOf   string
	IsAbstract  bool
	Symmetric   bool
	InverseName string

	ComponentOf    string
	OrganizedBy    string
	PropertyOf     string
	TypeDefinition string

	DataType  string
	ValueRank *int32
	// ValueType overrides the built-in type the value is encoded with.
	ValueType string
	// Value is cty.NilVal, or a null value, when no initial value is
	// declared.
	Value cty.Value

	Fields []*EnumField

	// Source is the file and line of the declaration, for error messages.
	Source string
}

// EffectiveBrowseName returns BrowseName, or Name when it is empty.
func (n *Node) EffectiveBrowseName() string {
	if n.BrowseName != "" {
		return n.BrowseName
	}
	return n.Name
}

// HasValue reports whether an initial value is declared.
func (n *Node) HasValue() bool {
	return !n.Value.IsNull()
}

// String identifies the declaration in logs and errors.
func (n *Node) String() string {
	if n.Source == "" {
		return fmt.Sprintf("%s %q", n.Kind, n.Name)
	}
	return fmt.Sprintf("%s %q (%s)", n.Kind, n.Name, n.Source)
}

// EnumField is one `field` of an enumeration declaration. A nil Value
// makes the field sequential: its value is its position.
type EnumField struct {
	Name        string
	Value       *int64
	Description string
}

// Reference is an extra reference between two declared or existing nodes,
// applied after every node exists.
type Reference struct {
	Source string
	Type   string
	Target string
	// Origin is the file and line of the declaration.
	Origin string
}

// Merge appends other to m.
func (m *Model) Merge(other *Model) {
	if other == nil {
		return
	}
	m.Namespaces = append(m.Namespaces, other.Namespaces...)
	m.Nodes = append(m.Nodes, other.Nodes...)
	m.References = append(m.References, other.References...)
}

// Validate checks the parts of the model that need no address space:
// known kinds, non-empty and unique names, and enumeration fields.
func (m *Model) Validate() error {
	seen := make(map[string]*Node, len(m.Nodes))
	for _, n := range m.Nodes {
		if !n.Kind.Valid() {
			return fmt.Errorf("%s: unknown kind", n)
		}
		if n.Name == "" {
			return fmt.Errorf("%s: name is empty", n)
		}
		if prev, dup := seen[n.Name]; dup {
			return fmt.Errorf("%s: name already declared by %s", n, prev)
		}
		seen[n.Name] = n
		if n.Kind == KindEnumeration && len(n.Fields) == 0 {
			return fmt.Errorf("%s: enumeration has no fields", n)
		}
		if n.Kind == KindVariable && n.DataType == "" {
			return fmt.Errorf("%s: variable has no data_type", n)
		}
	}
	for _, ns := range m.Namespaces {
		if ns.URI == "" {
			return fmt.Errorf("namespace with empty uri")
		}
	}
	return nil
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}
