// internal/nodeid/parser.go
package nodeid

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strconv"

	"github.com/google/uuid"
)

// nodeIDRegex splits `ns=<n>;<kind>=<value>` with the namespace part optional.
var nodeIDRegex = regexp.MustCompile(`^(?:ns=(\d+);)?([isgb])=(.*)$`)

// qualifiedNameRegex matches an optional numeric namespace prefix.
var qualifiedNameRegex = regexp.MustCompile(`^(\d+):(.*)$`)

// Parse creates a NodeID by parsing its canonical string representation.
func Parse(raw string) (NodeID, error) {
	if raw == "" {
		return NodeID{}, fmt.Errorf("node id cannot be empty")
	}

	matches := nodeIDRegex.FindStringSubmatch(raw)
	if matches == nil {
		return NodeID{}, fmt.Errorf("invalid node id format: %q", raw)
	}

	var ns uint16
	if matches[1] != "" {
		v, err := strconv.ParseUint(matches[1], 10, 16)
		if err != nil {
			return NodeID{}, fmt.Errorf("invalid namespace index in %q: %w", raw, err)
		}
		ns = uint16(v)
	}

	value := matches[3]
	switch matches[2] {
	case "i":
		v, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return NodeID{}, fmt.Errorf("invalid numeric identifier in %q: %w", raw, err)
		}
		return NewNumeric(ns, uint32(v)), nil
	case "s":
		if value == "" {
			return NodeID{}, fmt.Errorf("string identifier cannot be empty: %q", raw)
		}
		return NewString(ns, value), nil
	case "g":
		g, err := uuid.Parse(value)
		if err != nil {
			return NodeID{}, fmt.Errorf("invalid guid identifier in %q: %w", raw, err)
		}
		return NewGUID(ns, g), nil
	case "b":
		b, err := base64.StdEncoding.DecodeString(value)
		if err != nil {
			return NodeID{}, fmt.Errorf("invalid opaque identifier in %q: %w", raw, err)
		}
		return NewOpaque(ns, b), nil
	}
	// Unreachable due to regex `[isgb]`
	return NodeID{}, fmt.Errorf("unknown identifier type in %q", raw)
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(raw string) NodeID {
	id, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return id
}

// ParseQualifiedName parses `{ns}:{name}` or a bare `{name}` (namespace 0).
func ParseQualifiedName(raw string) (QualifiedName, error) {
	if raw == "" {
		return QualifiedName{}, fmt.Errorf("qualified name cannot be empty")
	}

	matches := qualifiedNameRegex.FindStringSubmatch(raw)
	if matches == nil {
		return QualifiedName{Name: raw}, nil
	}

	ns, err := strconv.ParseUint(matches[1], 10, 16)
	if err != nil {
		return QualifiedName{}, fmt.Errorf("invalid namespace index in %q: %w", raw, err)
	}
	if matches[2] == "" {
		return QualifiedName{}, fmt.Errorf("qualified name has empty name part: %q", raw)
	}
	return QualifiedName{NamespaceIndex: uint16(ns), Name: matches[2]}, nil
}
