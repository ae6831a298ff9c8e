package yaml

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/specialistvlad/addressspace/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

const machinesYAML = `
namespaces:
  - uri: urn:example:machines
nodes:
  - kind: enumeration
    name: MachineState
    fields:
      - name: RUNNING
      - name: BLOCKED
        value: 4
        description: waiting for material
  - kind: variable
    name: RunningState
    property_of: i=2295
    data_type: MachineState
    value: BLOCKED
  - kind: variable
    name: Setpoints
    namespace: urn:other
    data_type: i=11
    value_rank: 1
    value: [1.5, 2, -3]
references:
  - source: RunningState
    type: i=40
    target: i=68
`

func TestParse(t *testing.T) {
	m, err := NewLoader().Parse(context.Background(), []byte(machinesYAML), "machines.yaml")
	require.NoError(t, err)

	require.Len(t, m.Namespaces, 1)
	assert.Equal(t, "urn:example:machines", m.Namespaces[0].URI)

	require.Len(t, m.Nodes, 3)
	enum := m.Nodes[0]
	assert.Equal(t, config.KindEnumeration, enum.Kind)
	assert.Equal(t, "urn:example:machines", enum.Namespace)
	require.Len(t, enum.Fields, 2)
	assert.Nil(t, enum.Fields[0].Value)
	require.NotNil(t, enum.Fields[1].Value)
	assert.Equal(t, int64(4), *enum.Fields[1].Value)
	assert.Equal(t, "waiting for material", enum.Fields[1].Description)

	running := m.Nodes[1]
	assert.Equal(t, "i=2295", running.PropertyOf)
	assert.True(t, running.Value.RawEquals(cty.StringVal("BLOCKED")))
	assert.Equal(t, "machines.yaml:nodes[1]", running.Source)

	setpoints := m.Nodes[2]
	assert.Equal(t, "urn:other", setpoints.Namespace)
	require.NotNil(t, setpoints.ValueRank)
	assert.Equal(t, int32(1), *setpoints.ValueRank)
	expected := cty.TupleVal([]cty.Value{cty.NumberFloatVal(1.5), cty.NumberIntVal(2), cty.NumberIntVal(-3)})
	assert.True(t, setpoints.Value.Equals(expected).True())

	require.Len(t, m.References, 1)
	assert.Equal(t, &config.Reference{Source: "RunningState", Type: "i=40", Target: "i=68", Origin: "machines.yaml:references[0]"}, m.References[0])
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name        string
		src         string
		errContains string
	}{
		{name: "unknown field", src: "nodes:\n  - kind: object\n    name: X\n    colour: red\n", errContains: "colour"},
		{name: "unknown kind", src: "nodes:\n  - kind: widget\n    name: X\n", errContains: "unknown kind"},
		{name: "fields on data type", src: "nodes:\n  - kind: data_type\n    name: X\n    fields:\n      - name: A\n", errContains: "only enumerations take fields"},
		{name: "value on object", src: "nodes:\n  - kind: object\n    name: X\n    value: 1\n", errContains: "only variables take a value"},
		{name: "malformed", src: "nodes: [", errContains: "failed to parse YAML file"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLoader().Parse(context.Background(), []byte(tc.src), "bad.yaml")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errContains)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	m, err := NewLoader().Parse(context.Background(), nil, "empty.yaml")
	require.NoError(t, err)
	assert.Empty(t, m.Nodes)
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"sets/a.yaml": {Data: []byte("nodes:\n  - kind: object\n    name: A\n")},
		"sets/b.yml":  {Data: []byte("nodes:\n  - kind: object\n    name: A\n")},
	}

	_, err := NewLoader().LoadFS(context.Background(), fsys, "sets")
	require.Error(t, err, "duplicate names across files are rejected")

	m, err := NewLoader().LoadFS(context.Background(), fsys, "sets/a.yaml")
	require.NoError(t, err)
	assert.Len(t, m.Nodes, 1)
}
