// internal/nodeid/types.go
package nodeid

import (
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
)

// IdentifierType selects which identifier field of a NodeID is meaningful.
type IdentifierType uint8

const (
	Numeric IdentifierType = iota
	String
	GUID
	Opaque
)

// String returns the single letter used in the text form.
func (t IdentifierType) String() string {
	switch t {
	case Numeric:
		return "i"
	case String:
		return "s"
	case GUID:
		return "g"
	case Opaque:
		return "b"
	}
	return fmt.Sprintf("IdentifierType(%d)", uint8(t))
}

// NodeID is the stable identifier of a node. The zero value is the null id
// `i=0`. NodeID is comparable and may be used as a map key.
type NodeID struct {
	namespace uint16
	kind      IdentifierType
	numeric   uint32
	text      string // string identifier, or raw bytes of an opaque one
	guid      uuid.UUID
}

// NewNumeric returns a numeric NodeID.
func NewNumeric(ns uint16, id uint32) NodeID {
	return NodeID{namespace: ns, kind: Numeric, numeric: id}
}

// NewString returns a string NodeID.
func NewString(ns uint16, id string) NodeID {
	return NodeID{namespace: ns, kind: String, text: id}
}

// NewGUID returns a GUID NodeID.
func NewGUID(ns uint16, id uuid.UUID) NodeID {
	return NodeID{namespace: ns, kind: GUID, guid: id}
}

// NewOpaque returns an opaque NodeID holding a copy of id.
func NewOpaque(ns uint16, id []byte) NodeID {
	return NodeID{namespace: ns, kind: Opaque, text: string(id)}
}

// Namespace returns the namespace index.
func (n NodeID) Namespace() uint16 { return n.namespace }

// Type returns the identifier kind.
func (n NodeID) Type() IdentifierType { return n.kind }

// Numeric returns the numeric identifier, or 0 for other kinds.
func (n NodeID) Numeric() uint32 { return n.numeric }

// StringID returns the string identifier, or "" for other kinds.
func (n NodeID) StringID() string {
	if n.kind != String {
		return ""
	}
	return n.text
}

// GUID returns the GUID identifier, or uuid.Nil for other kinds.
func (n NodeID) GUID() uuid.UUID { return n.guid }

// Opaque returns a copy of the opaque identifier, or nil for other kinds.
func (n NodeID) Opaque() []byte {
	if n.kind != Opaque {
		return nil
	}
	return []byte(n.text)
}

// WithNamespace returns a copy of n moved to namespace ns.
func (n NodeID) WithNamespace(ns uint16) NodeID {
	n.namespace = ns
	return n
}

// IsNull reports whether n is the null id (`i=0` in namespace 0).
func (n NodeID) IsNull() bool {
	return n == NodeID{}
}

// String serializes the NodeID into its canonical text form.
func (n NodeID) String() string {
	var id string
	switch n.kind {
	case Numeric:
		id = fmt.Sprintf("i=%d", n.numeric)
	case String:
		id = "s=" + n.text
	case GUID:
		id = "g=" + n.guid.String()
	case Opaque:
		id = "b=" + base64.StdEncoding.EncodeToString([]byte(n.text))
	}
	if n.namespace == 0 {
		return id
	}
	return fmt.Sprintf("ns=%d;%s", n.namespace, id)
}

// MarshalText implements encoding.TextMarshaler.
func (n NodeID) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (n *NodeID) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

// QualifiedName is a browse name: a name qualified by the namespace that
// defines it.
type QualifiedName struct {
	NamespaceIndex uint16
	Name           string
}

// NewQualifiedName is a shorthand constructor.
func NewQualifiedName(ns uint16, name string) QualifiedName {
	return QualifiedName{NamespaceIndex: ns, Name: name}
}

// String renders the name as `{ns}:{name}`. Namespace 0 names render bare.
func (q QualifiedName) String() string {
	if q.NamespaceIndex == 0 {
		return q.Name
	}
	return fmt.Sprintf("%d:%s", q.NamespaceIndex, q.Name)
}

// IsEmpty reports whether the name is empty.
func (q QualifiedName) IsEmpty() bool {
	return q.Name == ""
}
