package inmemoryrefs

import (
	"context"
	"sync"
	"testing"

	"github.com/specialistvlad/addressspace/internal/modelerr"
	"github.com/specialistvlad/addressspace/internal/nodeid"
	"github.com/specialistvlad/addressspace/internal/refstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	organizes   = nodeid.NewNumeric(0, 35)
	hasProperty = nodeid.NewNumeric(0, 46)
	folder      = nodeid.NewNumeric(1, 1)
	pump        = nodeid.NewNumeric(1, 2)
	speed       = nodeid.NewNumeric(1, 3)
)

func TestAdd_InsertsPair(t *testing.T) {
	s := New()
	ctx := context.Background()

	added, err := s.Add(ctx, refstore.Edge{SourceID: folder, ReferenceTypeID: organizes, TargetID: pump})
	require.NoError(t, err)
	assert.True(t, added)

	assert.Equal(t, []refstore.Reference{{ReferenceTypeID: organizes, IsForward: true, TargetID: pump}}, s.References(ctx, folder))
	assert.Equal(t, []refstore.Reference{{ReferenceTypeID: organizes, IsForward: false, TargetID: folder}}, s.References(ctx, pump))
	assert.Equal(t, 1, s.Len(ctx))
}

func TestAdd_Idempotent(t *testing.T) {
	s := New()
	ctx := context.Background()
	e := refstore.Edge{SourceID: folder, ReferenceTypeID: organizes, TargetID: pump}

	_, err := s.Add(ctx, e)
	require.NoError(t, err)
	added, err := s.Add(ctx, e)
	require.NoError(t, err)
	assert.False(t, added)

	assert.Len(t, s.References(ctx, folder), 1)
	assert.Len(t, s.References(ctx, pump), 1)
	assert.Equal(t, 1, s.Len(ctx))
}

func TestReferences_InsertionOrderMixesDirections(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, _ = s.Add(ctx, refstore.Edge{SourceID: pump, ReferenceTypeID: hasProperty, TargetID: speed})
	_, _ = s.Add(ctx, refstore.Edge{SourceID: folder, ReferenceTypeID: organizes, TargetID: pump})

	refs := s.References(ctx, pump)
	require.Len(t, refs, 2)
	assert.True(t, refs[0].IsForward)
	assert.Equal(t, speed, refs[0].TargetID)
	assert.False(t, refs[1].IsForward)
	assert.Equal(t, folder, refs[1].TargetID)
}

func TestRemove(t *testing.T) {
	s := New()
	ctx := context.Background()
	e := refstore.Edge{SourceID: folder, ReferenceTypeID: organizes, TargetID: pump}
	_, _ = s.Add(ctx, e)

	require.NoError(t, s.Remove(ctx, e))
	assert.False(t, s.Has(ctx, e))
	assert.Empty(t, s.References(ctx, folder))
	assert.Empty(t, s.References(ctx, pump))

	assert.ErrorIs(t, s.Remove(ctx, e), modelerr.ErrNotFound)
}

func TestRemoveNode(t *testing.T) {
	s := New()
	ctx := context.Background()
	e1 := refstore.Edge{SourceID: folder, ReferenceTypeID: organizes, TargetID: pump}
	e2 := refstore.Edge{SourceID: pump, ReferenceTypeID: hasProperty, TargetID: speed}
	e3 := refstore.Edge{SourceID: folder, ReferenceTypeID: organizes, TargetID: speed}
	for _, e := range []refstore.Edge{e1, e2, e3} {
		_, _ = s.Add(ctx, e)
	}

	removed := s.RemoveNode(ctx, pump)

	assert.ElementsMatch(t, []refstore.Edge{e1, e2}, removed)
	assert.Equal(t, []refstore.Edge{e3}, s.Edges(ctx))
	assert.Empty(t, s.References(ctx, pump))
	assert.Equal(t, []refstore.Reference{{ReferenceTypeID: organizes, IsForward: true, TargetID: speed}}, s.References(ctx, folder))
	assert.Equal(t, []refstore.Reference{{ReferenceTypeID: organizes, IsForward: false, TargetID: folder}}, s.References(ctx, speed))
}

func TestRemoveNode_KeepsOtherEdgesInOrder(t *testing.T) {
	s := New()
	ctx := context.Background()
	self := refstore.Edge{SourceID: pump, ReferenceTypeID: organizes, TargetID: pump}
	e1 := refstore.Edge{SourceID: folder, ReferenceTypeID: organizes, TargetID: speed}
	e2 := refstore.Edge{SourceID: speed, ReferenceTypeID: hasProperty, TargetID: pump}
	e3 := refstore.Edge{SourceID: speed, ReferenceTypeID: hasProperty, TargetID: folder}
	for _, e := range []refstore.Edge{e1, self, e2, e3} {
		_, _ = s.Add(ctx, e)
	}

	removed := s.RemoveNode(ctx, pump)

	assert.Equal(t, []refstore.Edge{self, e2}, removed, "each edge is reported once, in the node's entry order")
	assert.Equal(t, []refstore.Edge{e1, e3}, s.Edges(ctx))
	assert.Equal(t, 2, s.Len(ctx))
	assert.False(t, s.Has(ctx, self))
	assert.Equal(t, []refstore.Reference{
		{ReferenceTypeID: organizes, IsForward: false, TargetID: folder},
		{ReferenceTypeID: hasProperty, IsForward: true, TargetID: folder},
	}, s.References(ctx, speed))
	assert.Empty(t, s.RemoveNode(ctx, pump))
}

func TestSelfReference(t *testing.T) {
	s := New()
	ctx := context.Background()
	e := refstore.Edge{SourceID: pump, ReferenceTypeID: organizes, TargetID: pump}
	_, _ = s.Add(ctx, e)

	assert.Len(t, s.References(ctx, pump), 2)
	require.NoError(t, s.Remove(ctx, e))
	assert.Empty(t, s.References(ctx, pump))
}

func TestReferences_ReturnsCopy(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, _ = s.Add(ctx, refstore.Edge{SourceID: folder, ReferenceTypeID: organizes, TargetID: pump})

	refs := s.References(ctx, folder)
	refs[0].TargetID = speed

	assert.Equal(t, pump, s.References(ctx, folder)[0].TargetID)
}

func TestClear(t *testing.T) {
	s := New()
	ctx := context.Background()
	_, _ = s.Add(ctx, refstore.Edge{SourceID: folder, ReferenceTypeID: organizes, TargetID: pump})

	s.Clear(ctx)
	assert.Equal(t, 0, s.Len(ctx))
	assert.Empty(t, s.References(ctx, folder))
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := New()
	ctx := context.Background()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, _ = s.Add(ctx, refstore.Edge{SourceID: folder, ReferenceTypeID: organizes, TargetID: nodeid.NewNumeric(2, uint32(i))})
		}(i)
		go func() {
			defer wg.Done()
			s.References(ctx, folder)
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len(ctx))
	assert.Len(t, s.References(ctx, folder), 50)
}
