// Package typesystem answers questions about the data type hierarchy of an
// address space: supertypes and subtypes, the built-in encoding of a data
// type, and the enumeration definition that governs an enumerated type.
//
// TypeSystem holds no state of its own. Every answer is derived from the
// HasSubtype references of the underlying graph, so it always reflects the
// current model.
package typesystem

import (
	"context"
	"fmt"

	"github.com/specialistvlad/addressspace/internal/dag"
	"github.com/specialistvlad/addressspace/internal/enumeration"
	"github.com/specialistvlad/addressspace/internal/graph"
	"github.com/specialistvlad/addressspace/internal/ids"
	"github.com/specialistvlad/addressspace/internal/modelerr"
	"github.com/specialistvlad/addressspace/internal/node"
	"github.com/specialistvlad/addressspace/internal/nodeid"
	"github.com/specialistvlad/addressspace/internal/variant"
)

// TypeSystem provides type hierarchy queries over a graph.
type TypeSystem struct {
	g graph.Graph
}

// New creates a TypeSystem reading from g.
func New(g graph.Graph) *TypeSystem {
	return &TypeSystem{g: g}
}

// DataType returns the data type node and its attributes.
func (ts *TypeSystem) DataType(ctx context.Context, id nodeid.NodeID) (*node.Node, *node.DataTypeAttributes, error) {
	n, ok := ts.g.Node(ctx, id)
	if !ok {
		return nil, nil, modelerr.New("DataType", modelerr.ErrNotFound, "data type %s", id)
	}
	attrs, ok := n.DataType()
	if !ok {
		return nil, nil, modelerr.New("DataType", modelerr.ErrNotFound, "%s is a %s, not a data type", id, n.Class())
	}
	return n, attrs, nil
}

// SuperType returns the first direct supertype of id.
func (ts *TypeSystem) SuperType(ctx context.Context, id nodeid.NodeID) (nodeid.NodeID, bool) {
	supers := ts.g.SuperTypes(ctx, id)
	if len(supers) == 0 {
		return nodeid.NodeID{}, false
	}
	return supers[0], true
}

// Subtypes returns the direct subtypes of id in insertion order.
func (ts *TypeSystem) Subtypes(ctx context.Context, id nodeid.NodeID) []nodeid.NodeID {
	return ts.g.SubTypes(ctx, id)
}

// IsSubtypeOf reports whether id equals ancestor or derives from it.
func (ts *TypeSystem) IsSubtypeOf(ctx context.Context, id, ancestor nodeid.NodeID) bool {
	return ts.g.IsSubtypeOf(ctx, id, ancestor)
}

// IsEnumeration reports whether id is an enumerated data type.
func (ts *TypeSystem) IsEnumeration(ctx context.Context, id nodeid.NodeID) bool {
	return ts.g.IsSubtypeOf(ctx, id, ids.Enumeration)
}

// BuiltInType resolves the tag values of dataType are encoded with.
// Enumerations encode as Int32. Abstract types without a tag of their own,
// such as Number or BaseDataType, resolve to variant.VariantType.
func (ts *TypeSystem) BuiltInType(ctx context.Context, dataType nodeid.NodeID) (variant.Type, error) {
	if _, _, err := ts.DataType(ctx, dataType); err != nil {
		return variant.Null, err
	}
	if ts.IsEnumeration(ctx, dataType) {
		return variant.Int32, nil
	}

	seen := map[nodeid.NodeID]bool{}
	queue := []nodeid.NodeID{dataType}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if seen[cur] {
			continue
		}
		seen[cur] = true
		if t, ok := variant.TypeOf(cur); ok {
			return t, nil
		}
		queue = append(queue, ts.g.SuperTypes(ctx, cur)...)
	}
	return variant.Null, modelerr.New("BuiltInType", modelerr.ErrNotFound, "data type %s does not derive from a built-in type", dataType)
}

// Accepts reports whether values tagged t may be stored in a variable whose
// declared data type is dataType. A null tag is always accepted.
func (ts *TypeSystem) Accepts(ctx context.Context, dataType nodeid.NodeID, t variant.Type) (bool, error) {
	bt, err := ts.BuiltInType(ctx, dataType)
	if err != nil {
		return false, err
	}
	switch {
	case t == variant.Null:
		return true, nil
	case dataType == ids.BaseDataType:
		return true, nil
	case bt != variant.VariantType && bt == t:
		return true, nil
	}
	// Abstract declared types accept any tag whose own data type derives
	// from them, e.g. Int32 for Number.
	tagType := t.DataType()
	if _, ok := ts.g.Node(ctx, tagType); !ok {
		return false, nil
	}
	return ts.g.IsSubtypeOf(ctx, tagType, dataType), nil
}

// EnumDefinition returns the enumeration definition governing dataType. The
// definition may be inherited from a supertype. Types that are not
// enumerations, or enumerations without a definition such as the abstract
// Enumeration type itself, fail with modelerr.ErrNotFound.
func (ts *TypeSystem) EnumDefinition(ctx context.Context, dataType nodeid.NodeID) (*enumeration.Definition, error) {
	const op = "EnumDefinition"
	if _, _, err := ts.DataType(ctx, dataType); err != nil {
		return nil, err
	}
	if !ts.IsEnumeration(ctx, dataType) {
		return nil, modelerr.New(op, modelerr.ErrNotFound, "data type %s is not an enumeration", dataType)
	}

	seen := map[nodeid.NodeID]bool{}
	queue := []nodeid.NodeID{dataType}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if seen[cur] || cur == ids.Enumeration {
			continue
		}
		seen[cur] = true
		if n, ok := ts.g.Node(ctx, cur); ok {
			if attrs, ok := n.DataType(); ok && attrs.Enumeration != nil {
				return attrs.Enumeration, nil
			}
		}
		queue = append(queue, ts.g.SuperTypes(ctx, cur)...)
	}
	return nil, modelerr.New(op, modelerr.ErrNotFound, "enumeration %s has no definition", dataType)
}

// Validate resolves candidate against the enumeration definition of
// dataType. See enumeration.Definition.Validate for the accepted shapes.
func (ts *TypeSystem) Validate(ctx context.Context, dataType nodeid.NodeID, candidate any) (enumeration.Member, error) {
	def, err := ts.EnumDefinition(ctx, dataType)
	if err != nil {
		return enumeration.Member{}, err
	}
	return def.Validate(candidate)
}

// CheckHierarchy verifies that the HasSubtype references of the whole graph
// form a DAG. The graph already refuses cycle closing edges one at a time;
// this is a whole model check run after bulk loads.
func (ts *TypeSystem) CheckHierarchy(ctx context.Context) error {
	d := dag.New()
	for _, e := range ts.g.Edges(ctx) {
		if e.ReferenceTypeID != ids.HasSubtype {
			continue
		}
		d.AddNode(e.SourceID.String())
		d.AddNode(e.TargetID.String())
		if e.SourceID == e.TargetID {
			return modelerr.New("CheckHierarchy", modelerr.ErrReferenceIntegrity, "type %s is its own subtype", e.SourceID)
		}
		if err := d.AddEdge(e.SourceID.String(), e.TargetID.String()); err != nil {
			return fmt.Errorf("building subtype hierarchy: %w", err)
		}
	}
	if err := d.DetectCycles(); err != nil {
		return modelerr.New("CheckHierarchy", modelerr.ErrReferenceIntegrity, "%v", err)
	}
	return nil
}
