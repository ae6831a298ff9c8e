package testutil

import (
	"context"
	"testing"

	"github.com/specialistvlad/addressspace/internal/graph"
	"github.com/specialistvlad/addressspace/internal/ids"
	"github.com/specialistvlad/addressspace/internal/inmemoryrefs"
	"github.com/specialistvlad/addressspace/internal/inmemorystore"
	"github.com/specialistvlad/addressspace/internal/node"
	"github.com/specialistvlad/addressspace/internal/nodeid"
	"github.com/stretchr/testify/require"
)

type typeDecl struct {
	id       nodeid.NodeID
	name     string
	parent   nodeid.NodeID
	abstract bool
}

var baseReferenceTypes = []typeDecl{
	{id: ids.References, name: "References", abstract: true},
	{id: ids.HasSubtype, name: "HasSubtype"},
	{id: ids.HierarchicalReferences, name: "HierarchicalReferences", parent: ids.References, abstract: true},
	{id: ids.NonHierarchicalReferences, name: "NonHierarchicalReferences", parent: ids.References, abstract: true},
	{id: ids.HasChild, name: "HasChild", parent: ids.HierarchicalReferences, abstract: true},
	{id: ids.Organizes, name: "Organizes", parent: ids.HierarchicalReferences},
	{id: ids.Aggregates, name: "Aggregates", parent: ids.HasChild, abstract: true},
	{id: ids.HasProperty, name: "HasProperty", parent: ids.Aggregates},
	{id: ids.HasComponent, name: "HasComponent", parent: ids.Aggregates},
	{id: ids.HasTypeDefinition, name: "HasTypeDefinition", parent: ids.NonHierarchicalReferences},
}

var baseDataTypes = []typeDecl{
	{id: ids.BaseDataType, name: "BaseDataType", abstract: true},
	{id: ids.Boolean, name: "Boolean", parent: ids.BaseDataType},
	{id: ids.Number, name: "Number", parent: ids.BaseDataType, abstract: true},
	{id: ids.Integer, name: "Integer", parent: ids.Number, abstract: true},
	{id: ids.UInteger, name: "UInteger", parent: ids.Number, abstract: true},
	{id: ids.SByte, name: "SByte", parent: ids.Integer},
	{id: ids.Int16, name: "Int16", parent: ids.Integer},
	{id: ids.Int32, name: "Int32", parent: ids.Integer},
	{id: ids.Int64, name: "Int64", parent: ids.Integer},
	{id: ids.Byte, name: "Byte", parent: ids.UInteger},
	{id: ids.UInt16, name: "UInt16", parent: ids.UInteger},
	{id: ids.UInt32, name: "UInt32", parent: ids.UInteger},
	{id: ids.UInt64, name: "UInt64", parent: ids.UInteger},
	{id: ids.Float, name: "Float", parent: ids.Number},
	{id: ids.Double, name: "Double", parent: ids.Number},
	{id: ids.String, name: "String", parent: ids.BaseDataType},
	{id: ids.DateTime, name: "DateTime", parent: ids.BaseDataType},
	{id: ids.LocalizedText, name: "LocalizedText", parent: ids.BaseDataType},
	{id: ids.Structure, name: "Structure", parent: ids.BaseDataType, abstract: true},
	{id: ids.Enumeration, name: "Enumeration", parent: ids.BaseDataType, abstract: true},
	{id: ids.EnumValueType, name: "EnumValueType", parent: ids.Structure},
}

// BaseGraph returns a graph seeded with the standard reference type
// hierarchy and the built-in data type hierarchy of namespace 0.
func BaseGraph(t testing.TB) *graph.Manager {
	t.Helper()
	ctx := context.Background()
	g := graph.New(inmemorystore.New(), inmemoryrefs.New())

	for _, d := range baseReferenceTypes {
		n := node.New(d.id, nodeid.NewQualifiedName(0, d.name), &node.ReferenceTypeAttributes{IsAbstract: d.abstract})
		require.NoError(t, g.AddNode(ctx, n))
	}
	for _, d := range baseReferenceTypes {
		if !d.parent.IsNull() {
			require.NoError(t, g.AddReference(ctx, d.parent, ids.HasSubtype, d.id))
		}
	}
	require.NoError(t, g.AddReference(ctx, ids.HierarchicalReferences, ids.HasSubtype, ids.HasSubtype))

	for _, d := range baseDataTypes {
		n := node.New(d.id, nodeid.NewQualifiedName(0, d.name), &node.DataTypeAttributes{IsAbstract: d.abstract})
		require.NoError(t, g.AddNode(ctx, n))
		if !d.parent.IsNull() {
			require.NoError(t, g.AddReference(ctx, d.parent, ids.HasSubtype, d.id))
		}
	}
	return g
}

// AddDataType adds a data type node under parent and returns it.
func AddDataType(t testing.TB, g graph.Graph, id nodeid.NodeID, name string, parent nodeid.NodeID, attrs *node.DataTypeAttributes) *node.Node {
	t.Helper()
	ctx := context.Background()
	n := node.New(id, nodeid.NewQualifiedName(id.Namespace(), name), attrs)
	require.NoError(t, g.AddNode(ctx, n))
	require.NoError(t, g.AddReference(ctx, parent, ids.HasSubtype, id))
	return n
}
