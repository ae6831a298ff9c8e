// internal/nodeid/types_test.go
package nodeid

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeID_String(t *testing.T) {
	testCases := []struct {
		name     string
		id       NodeID
		expected string
	}{
		{name: "null id", id: NodeID{}, expected: "i=0"},
		{name: "namespace 0 numeric", id: NewNumeric(0, 29), expected: "i=29"},
		{name: "namespace 1 numeric", id: NewNumeric(1, 1000), expected: "ns=1;i=1000"},
		{name: "string", id: NewString(2, "Tank"), expected: "ns=2;s=Tank"},
		{name: "guid", id: NewGUID(1, uuid.MustParse("72962b91-fa75-4ae6-8d28-b404dc7daf63")), expected: "ns=1;g=72962b91-fa75-4ae6-8d28-b404dc7daf63"},
		{name: "opaque", id: NewOpaque(1, []byte{1, 2, 3}), expected: "ns=1;b=AQID"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.id.String())

			parsed, err := Parse(tc.expected)
			require.NoError(t, err)
			assert.Equal(t, tc.id, parsed, "text form must parse back to the same id")
		})
	}
}

func TestNodeID_Comparable(t *testing.T) {
	seen := map[NodeID]string{
		NewNumeric(1, 1000):  "a",
		NewString(1, "1000"): "b",
	}
	assert.Len(t, seen, 2)
	assert.Equal(t, "a", seen[MustParse("ns=1;i=1000")])
	assert.True(t, NodeID{}.IsNull())
	assert.False(t, NewNumeric(1, 0).IsNull())
}

func TestNodeID_Accessors(t *testing.T) {
	id := NewString(4, "Boiler")
	assert.Equal(t, uint16(4), id.Namespace())
	assert.Equal(t, String, id.Type())
	assert.Equal(t, "Boiler", id.StringID())
	assert.Nil(t, id.Opaque())
	assert.Equal(t, "", NewNumeric(0, 1).StringID())
	assert.Equal(t, []byte{9}, NewOpaque(0, []byte{9}).Opaque())
}

func TestNodeID_TextMarshaling(t *testing.T) {
	var id NodeID
	require.NoError(t, id.UnmarshalText([]byte("ns=1;i=7")))
	assert.Equal(t, NewNumeric(1, 7), id)

	b, err := id.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "ns=1;i=7", string(b))

	assert.Error(t, id.UnmarshalText([]byte("nope")))
}

func TestQualifiedName_String(t *testing.T) {
	assert.Equal(t, "1:MyEnumType2", NewQualifiedName(1, "MyEnumType2").String())
	assert.Equal(t, "Enumeration", NewQualifiedName(0, "Enumeration").String())
	assert.True(t, QualifiedName{}.IsEmpty())
}

func TestNodeID_WithNamespace(t *testing.T) {
	id := MustParse("s=Pump")
	moved := id.WithNamespace(3)

	assert.Equal(t, "ns=3;s=Pump", moved.String())
	assert.Equal(t, uint16(0), id.Namespace(), "original is unchanged")
}
