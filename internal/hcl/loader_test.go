package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/specialistvlad/addressspace/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

const machinesHCL = `
namespace "urn:example:machines" {}

data_type "Duration" {
  node_id    = "s=Duration"
  subtype_of = "i=11"
}

enumeration "MachineState" {
  description = "State of a machine"
  field "RUNNING" {}
  field "BLOCKED" {}
}

enumeration "Colour" {
  field "Red" {
    value = 1
  }
  field "Blue" {
    value       = 4
    description = "the blue one"
  }
}

folder "Machines" {
  organized_by = "i=85"
}

object "Press" {
  organized_by = "Machines"
}

variable "RunningState" {
  component_of = "Press"
  data_type    = "MachineState"
  value        = "BLOCKED"
}

variable "Tags" {
  namespace  = "http://opcfoundation.org/UA/"
  data_type  = "i=12"
  value_rank = 1
  value      = ["a", "b"]
}

reference {
  source = "Press"
  type   = "i=35"
  target = "Tags"
}
`

func TestParse(t *testing.T) {
	// --- Arrange ---
	l := NewLoader()

	// --- Act ---
	m, err := l.Parse(context.Background(), []byte(machinesHCL), "machines.hcl")

	// --- Assert ---
	require.NoError(t, err)

	assert.Equal(t, []*config.Namespace{{URI: "urn:example:machines"}}, m.Namespaces)
	require.Len(t, m.References, 1)
	assert.Equal(t, []*config.Reference{{Source: "Press", Type: "i=35", Target: "Tags", Origin: m.References[0].Origin}}, m.References)

	one := int64(1)
	four := int64(4)
	rank := int32(1)
	const ns = "urn:example:machines"
	expected := []*config.Node{
		{Kind: config.KindDataType, Name: "Duration", Namespace: ns, NodeID: "s=Duration", SubtypeOf: "i=11"},
		{Kind: config.KindEnumeration, Name: "MachineState", Namespace: ns, Description: "State of a machine", Fields: []*config.EnumField{
			{Name: "RUNNING"}, {Name: "BLOCKED"},
		}},
		{Kind: config.KindEnumeration, Name: "Colour", Namespace: ns, Fields: []*config.EnumField{
			{Name: "Red", Value: &one}, {Name: "Blue", Value: &four, Description: "the blue one"},
		}},
		{Kind: config.KindFolder, Name: "Machines", Namespace: ns, OrganizedBy: "i=85"},
		{Kind: config.KindObject, Name: "Press", Namespace: ns, OrganizedBy: "Machines"},
		{Kind: config.KindVariable, Name: "RunningState", Namespace: ns, ComponentOf: "Press", DataType: "MachineState"},
		{Kind: config.KindVariable, Name: "Tags", Namespace: "http://opcfoundation.org/UA/", DataType: "i=12", ValueRank: &rank},
	}
	opts := cmp.Options{
		cmpopts.IgnoreFields(config.Node{}, "Value", "Source"),
	}
	if diff := cmp.Diff(expected, m.Nodes, opts); diff != "" {
		t.Errorf("nodes mismatch (-want +got):\n%s", diff)
	}

	running := m.Nodes[5]
	require.True(t, running.HasValue())
	assert.True(t, running.Value.RawEquals(cty.StringVal("BLOCKED")))
	assert.Contains(t, running.Source, "machines.hcl:")

	tags := m.Nodes[6]
	require.True(t, tags.HasValue())
	assert.True(t, tags.Value.Type().IsTupleType())
	assert.False(t, m.Nodes[4].HasValue())
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		src         string
		errContains string
	}{
		{
			name:        "syntax error",
			src:         `data_type "X" {`,
			errContains: "failed to parse HCL file",
		},
		{
			name:        "unknown block",
			src:         `widget "X" {}`,
			errContains: "failed to decode HCL file",
		},
		{
			name:        "unknown attribute",
			src:         `data_type "X" { colour = "red" }`,
			errContains: "unsupported attribute \"colour\"",
		},
		{
			name:        "symmetric on data type",
			src:         `data_type "X" { symmetric = true }`,
			errContains: "only apply to reference types",
		},
		{
			name:        "value on object",
			src:         `object "X" { value = 1 }`,
			errContains: "only variables take a value",
		},
		{
			name:        "value referencing a variable",
			src:         "variable \"X\" {\n  data_type = \"i=6\"\n  value = foo.bar\n}",
			errContains: "evaluating value",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLoader().Parse(context.Background(), []byte(tc.src), "bad.hcl")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errContains)
		})
	}
}

func TestLoad_DirectoryAndValidation(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.hcl"), []byte(`data_type "A" { subtype_of = "i=24" }`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.hcl"), []byte(`data_type "B" { subtype_of = "A" }`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.md"), []byte(`ignored`), 0o644))

	m, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, m.Nodes, 2)
	assert.Equal(t, "A", m.Nodes[0].Name)
	assert.Equal(t, "B", m.Nodes[1].Name)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.hcl"), []byte(`object "A" {}`), 0o644))
	_, err = NewLoader().Load(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already declared")

	_, err = NewLoader().Load(context.Background(), filepath.Join(dir, "missing.hcl"))
	require.Error(t, err)
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"nodesets/base.hcl": {Data: []byte("reference_type \"References\" {\n  node_id  = \"i=31\"\n  abstract = true\n}\n")},
	}

	m, err := NewLoader().LoadFS(context.Background(), fsys, "nodesets")
	require.NoError(t, err)
	require.Len(t, m.Nodes, 1)
	assert.Equal(t, config.KindReferenceType, m.Nodes[0].Kind)
	assert.True(t, m.Nodes[0].IsAbstract)
	assert.Equal(t, "", m.Nodes[0].Namespace)
}
