package nodeset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/addressspace/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStandard(t *testing.T) {
	m, err := LoadStandard(context.Background())
	require.NoError(t, err)

	byName := make(map[string]*config.Node, len(m.Nodes))
	for _, n := range m.Nodes {
		byName[n.Name] = n
	}

	t.Run("reference types", func(t *testing.T) {
		hasSubtype := byName["HasSubtype"]
		require.NotNil(t, hasSubtype)
		assert.Equal(t, config.KindReferenceType, hasSubtype.Kind)
		assert.Equal(t, "i=45", hasSubtype.NodeID)
		assert.Empty(t, hasSubtype.SubtypeOf, "HasSubtype is linked by an extra reference")
	})

	t.Run("namespace array", func(t *testing.T) {
		arr := byName["NamespaceArray"]
		require.NotNil(t, arr)
		assert.Equal(t, "Server", arr.PropertyOf)
		require.NotNil(t, arr.ValueRank)
		assert.Equal(t, int32(1), *arr.ValueRank)
		assert.False(t, arr.HasValue())
	})

	t.Run("every node lives in namespace 0", func(t *testing.T) {
		for _, n := range m.Nodes {
			assert.Empty(t, n.Namespace, n.String())
			assert.NotEmpty(t, n.NodeID, n.String())
		}
		assert.Empty(t, m.Namespaces)
	})

	require.NotEmpty(t, m.References)
	first := m.References[0]
	assert.Equal(t, []string{"HasChild", "HasSubtype", "HasSubtype"}, []string{first.Source, first.Type, first.Target})
}

func TestLoaderFor(t *testing.T) {
	testCases := []struct {
		path string
		ok   bool
	}{
		{path: "a.hcl", ok: true},
		{path: "dir/b.yaml", ok: true},
		{path: "C.YML", ok: true},
		{path: "d.json", ok: false},
		{path: "noext", ok: false},
	}
	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			_, ok := LoaderFor(tc.path)
			assert.Equal(t, tc.ok, ok)
		})
	}
}

func TestFilesAndLoadFile(t *testing.T) {
	// --- Arrange ---
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
		return p
	}
	hclPath := write("b.hcl", `
namespace "urn:test" {}

folder "Plant" {
  organized_by = "i=85"
}
`)
	yamlPath := write("nested/a.yaml", `
namespaces:
  - uri: urn:other
nodes:
  - kind: object
    name: Press
    organized_by: i=85
`)
	write("notes.txt", "ignored")

	// --- Act ---
	files, err := Files(dir)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{hclPath, yamlPath}, files)

	m, err := LoadFile(context.Background(), yamlPath)
	require.NoError(t, err)
	require.Len(t, m.Nodes, 1)
	assert.Equal(t, "urn:other", m.Nodes[0].Namespace)

	_, err = Files(filepath.Join(dir, "notes.txt"))
	assert.Error(t, err)
	_, err = Files(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
