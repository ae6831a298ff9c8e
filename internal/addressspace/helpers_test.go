package addressspace_test

import (
	"context"
	"testing"

	"github.com/specialistvlad/addressspace/internal/addressspace"
	"github.com/specialistvlad/addressspace/internal/builder"
	"github.com/specialistvlad/addressspace/internal/nodeset"
	"github.com/stretchr/testify/require"
)

const testNamespaceURI = "urn:test:machines"

// newSpace returns an address space seeded with the base model and a
// namespace at index 1.
func newSpace(t *testing.T, opts ...addressspace.Option) (*addressspace.AddressSpace, *addressspace.Namespace) {
	t.Helper()
	ctx := context.Background()

	m, err := nodeset.LoadStandard(ctx)
	require.NoError(t, err)

	space := addressspace.New(ctx, opts...)
	t.Cleanup(func() { space.Dispose(ctx) })
	_, err = builder.Build(ctx, space, m)
	require.NoError(t, err)

	ns, err := space.RegisterNamespace(ctx, testNamespaceURI)
	require.NoError(t, err)
	require.Equal(t, uint16(1), ns.Index())
	return space, ns
}
