package binding

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/specialistvlad/addressspace/internal/enumeration"
	"github.com/specialistvlad/addressspace/internal/ids"
	"github.com/specialistvlad/addressspace/internal/modelerr"
	"github.com/specialistvlad/addressspace/internal/node"
	"github.com/specialistvlad/addressspace/internal/nodeid"
	"github.com/specialistvlad/addressspace/internal/testutil"
	"github.com/specialistvlad/addressspace/internal/typesystem"
	"github.com/specialistvlad/addressspace/internal/variant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	stateTypeID  = nodeid.NewNumeric(1, 1000)
	sparseTypeID = nodeid.NewNumeric(1, 1001)
	fixedTime    = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
)

type recordingObserver struct {
	mu       sync.Mutex
	written  []string
	rejected []string
}

func (o *recordingObserver) ValueWritten(op string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.written = append(o.written, op)
}

func (o *recordingObserver) WriteRejected(op string, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rejected = append(o.rejected, op+":"+modelerr.Reason(err))
}

func newTypes(t *testing.T) *typesystem.TypeSystem {
	t.Helper()
	g := testutil.BaseGraph(t)

	names, err := enumeration.New(enumeration.Names{"RUNNING", "BLOCKED", "IDLE", "UNDER MAINTENANCE"})
	require.NoError(t, err)
	testutil.AddDataType(t, g, stateTypeID, "MachineState", ids.Enumeration, &node.DataTypeAttributes{Enumeration: names})

	sparse, err := enumeration.New(enumeration.Values{
		{DisplayName: "Red", Value: 1},
		{DisplayName: "Green", Value: 2},
		{DisplayName: "Blue", Value: 4},
		{DisplayName: "Alpha", Value: 8},
	})
	require.NoError(t, err)
	testutil.AddDataType(t, g, sparseTypeID, "Colour", ids.Enumeration, &node.DataTypeAttributes{Enumeration: sparse})
	return typesystem.New(g)
}

func newVariable(dataType nodeid.NodeID, rank int32) *node.Node {
	return node.New(nodeid.NewNumeric(1, 2000), nodeid.NewQualifiedName(1, "Var"), &node.VariableAttributes{
		DataType:  dataType,
		ValueRank: rank,
	})
}

func int32Array(values ...int32) variant.Variant {
	raw := make([]any, len(values))
	for i, v := range values {
		raw[i] = v
	}
	arr, err := variant.NewArray(variant.Int32, raw)
	if err != nil {
		panic(err)
	}
	return arr
}

func newBinding(t *testing.T, dataType nodeid.NodeID, rank int32, opts ...Option) *Binding {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time { return fixedTime })}, opts...)
	return New(newVariable(dataType, rank), newTypes(t), opts...)
}

func TestNewPanicsOnNonVariable(t *testing.T) {
	obj := node.New(nodeid.NewNumeric(1, 1), nodeid.NewQualifiedName(1, "Obj"), &node.ObjectAttributes{})
	assert.Panics(t, func() { New(obj, newTypes(t)) })
}

func TestReadValue_Initial(t *testing.T) {
	b := newBinding(t, stateTypeID, node.ValueRankScalar)

	dv := b.ReadValue()
	assert.True(t, dv.Value.IsNull())
	assert.Equal(t, variant.BadNoValue, dv.StatusCode)
	assert.Equal(t, stateTypeID, b.DataType())
	assert.Equal(t, "1:Var", b.Node().BrowseName().String())
}

func TestSetValueFromSource(t *testing.T) {
	testCases := []struct {
		name      string
		dataType  nodeid.NodeID
		rank      int32
		value     variant.Variant
		expectErr error
	}{
		{name: "enum member", dataType: stateTypeID, rank: node.ValueRankScalar, value: variant.NewInt32(1)},
		{name: "enum non-member is stored raw", dataType: stateTypeID, rank: node.ValueRankScalar, value: variant.NewInt32(42)},
		{name: "enum rejects string", dataType: stateTypeID, rank: node.ValueRankScalar, value: variant.NewString("IDLE"), expectErr: modelerr.ErrTypeMismatch},
		{name: "double", dataType: ids.Double, rank: node.ValueRankScalar, value: variant.NewDouble(1.5)},
		{name: "double rejects int32", dataType: ids.Double, rank: node.ValueRankScalar, value: variant.NewInt32(1), expectErr: modelerr.ErrTypeMismatch},
		{name: "number takes int64", dataType: ids.Number, rank: node.ValueRankScalar, value: variant.NewInt64(7)},
		{name: "scalar rank rejects array", dataType: ids.Int32, rank: node.ValueRankScalar, value: int32Array(1), expectErr: modelerr.ErrTypeMismatch},
		{name: "null clears", dataType: ids.Int32, rank: node.ValueRankScalar, value: variant.Variant{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := newBinding(t, tc.dataType, tc.rank)

			err := b.SetValueFromSource(tc.value)

			if tc.expectErr != nil {
				require.ErrorIs(t, err, tc.expectErr)
				assert.Equal(t, variant.BadNoValue, b.ReadValue().StatusCode, "rejected write must not change the value")
				return
			}
			require.NoError(t, err)
			dv := b.ReadValue()
			assert.True(t, tc.value.Equal(dv.Value))
			assert.Equal(t, variant.Good, dv.StatusCode)
			assert.Equal(t, fixedTime, dv.SourceTimestamp)
			assert.Equal(t, fixedTime, dv.ServerTimestamp)
		})
	}
}

func TestArrayValueRank(t *testing.T) {
	arr := int32Array(0, 2)

	b := newBinding(t, stateTypeID, node.ValueRankOneDimension)
	require.NoError(t, b.WriteValue(arr))
	assert.Equal(t, 2, b.ReadValue().Value.Len())

	assert.ErrorIs(t, b.SetValueFromSource(variant.NewInt32(1)), modelerr.ErrTypeMismatch)
	_, err := b.WriteEnumValue("IDLE")
	assert.ErrorIs(t, err, modelerr.ErrTypeMismatch)

	assert.ErrorIs(t, b.WriteValue(int32Array(0, 9)), modelerr.ErrInvalidEnumValue)
	assert.True(t, arr.Equal(b.ReadValue().Value))
}

func TestReadValue_DoesNotShareArrays(t *testing.T) {
	// --- Arrange ---
	b := newBinding(t, ids.LocalizedText, node.ValueRankOneDimension)
	arr, err := variant.NewArray(variant.LocalizedTextType, []any{"OFF", "ON"})
	require.NoError(t, err)
	require.NoError(t, b.SetValueFromSource(arr))

	// --- Act ---
	read := b.ReadValue().Value.Value().([]any)
	read[0] = variant.LocalizedText{Text: "CHANGED"}

	// --- Assert ---
	got := b.ReadValue().Value.Value().([]any)
	assert.Equal(t, variant.LocalizedText{Text: "OFF"}, got[0])
	assert.True(t, arr.Equal(b.ReadValue().Value))
}

func TestWriteValue_ChecksMembership(t *testing.T) {
	b := newBinding(t, sparseTypeID, node.ValueRankScalar)

	require.NoError(t, b.WriteValue(variant.NewInt32(4)))
	assert.ErrorIs(t, b.WriteValue(variant.NewInt32(3)), modelerr.ErrInvalidEnumValue)
	assert.ErrorIs(t, b.WriteValue(variant.NewString("Blue")), modelerr.ErrTypeMismatch)

	m, err := b.ReadEnumValue()
	require.NoError(t, err)
	assert.Equal(t, "Blue", m.Name)
}

func TestWriteEnumValue(t *testing.T) {
	testCases := []struct {
		name      string
		candidate any
		expected  enumeration.Member
		expectErr error
	}{
		{name: "by name", candidate: "IDLE", expected: enumeration.Member{Name: "IDLE", Value: 2}},
		{name: "by name with space", candidate: "UNDER MAINTENANCE", expected: enumeration.Member{Name: "UNDER MAINTENANCE", Value: 3}},
		{name: "by value", candidate: 1, expected: enumeration.Member{Name: "BLOCKED", Value: 1}},
		{name: "by int32 variant", candidate: variant.NewInt32(0), expected: enumeration.Member{Name: "RUNNING", Value: 0}},
		{name: "negative", candidate: -2, expectErr: modelerr.ErrInvalidEnumValue},
		{name: "beyond range", candidate: 10, expectErr: modelerr.ErrInvalidEnumValue},
		{name: "unknown name", candidate: "BLOCKED--BAD", expectErr: modelerr.ErrInvalidEnumValue},
		{name: "lowercase name", candidate: "idle", expectErr: modelerr.ErrInvalidEnumValue},
		{name: "map", candidate: map[string]any{"value": "invalid type"}, expectErr: modelerr.ErrInvalidArgumentType},
		{name: "bool", candidate: true, expectErr: modelerr.ErrInvalidArgumentType},
		{name: "nil", candidate: nil, expectErr: modelerr.ErrInvalidArgumentType},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange ---
			b := newBinding(t, stateTypeID, node.ValueRankScalar)
			require.NoError(t, b.SetValueFromSource(variant.NewInt32(1)))

			// --- Act ---
			m, err := b.WriteEnumValue(tc.candidate)

			// --- Assert ---
			if tc.expectErr != nil {
				require.ErrorIs(t, err, tc.expectErr)
				assert.True(t, variant.NewInt32(1).Equal(b.ReadValue().Value), "failed write must leave the value unchanged")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, m)
			assert.True(t, variant.NewInt32(int32(tc.expected.Value)).Equal(b.ReadValue().Value))

			read, err := b.ReadEnumValue()
			require.NoError(t, err)
			assert.Equal(t, tc.expected, read)
		})
	}
}

func TestWriteEnumValue_NonEnumeration(t *testing.T) {
	b := newBinding(t, ids.Int32, node.ValueRankScalar)

	_, err := b.WriteEnumValue("IDLE")
	assert.ErrorIs(t, err, modelerr.ErrNotFound)
}

func TestReadEnumValue(t *testing.T) {
	t.Run("null value", func(t *testing.T) {
		b := newBinding(t, stateTypeID, node.ValueRankScalar)
		_, err := b.ReadEnumValue()
		assert.ErrorIs(t, err, modelerr.ErrNotFound)
	})

	t.Run("raw non-member", func(t *testing.T) {
		b := newBinding(t, stateTypeID, node.ValueRankScalar)
		require.NoError(t, b.SetValueFromSource(variant.NewInt32(42)))

		_, err := b.ReadEnumValue()
		assert.ErrorIs(t, err, modelerr.ErrNotFound)
		assert.True(t, variant.NewInt32(42).Equal(b.ReadValue().Value), "raw value is kept")
	})

	t.Run("sparse member", func(t *testing.T) {
		b := newBinding(t, sparseTypeID, node.ValueRankScalar)
		require.NoError(t, b.SetValueFromSource(variant.NewInt32(8)))

		m, err := b.ReadEnumValue()
		require.NoError(t, err)
		assert.Equal(t, enumeration.Member{Name: "Alpha", Value: 8}, m)
	})

	t.Run("not an enumeration", func(t *testing.T) {
		b := newBinding(t, ids.Int32, node.ValueRankScalar)
		require.NoError(t, b.SetValueFromSource(variant.NewInt32(1)))

		_, err := b.ReadEnumValue()
		assert.ErrorIs(t, err, modelerr.ErrNotFound)
	})
}

func TestDisposed(t *testing.T) {
	flag := new(atomic.Bool)
	b := newBinding(t, stateTypeID, node.ValueRankScalar, WithDisposedFlag(flag))
	require.NoError(t, b.SetValueFromSource(variant.NewInt32(1)))

	flag.Store(true)

	assert.ErrorIs(t, b.SetValueFromSource(variant.NewInt32(2)), modelerr.ErrDisposed)
	assert.ErrorIs(t, b.WriteValue(variant.NewInt32(2)), modelerr.ErrDisposed)
	_, err := b.WriteEnumValue("IDLE")
	assert.ErrorIs(t, err, modelerr.ErrDisposed)
	_, err = b.ReadEnumValue()
	assert.ErrorIs(t, err, modelerr.ErrDisposed)
	assert.True(t, b.ReadValue().Value.IsNull())
}

func TestObserver(t *testing.T) {
	obs := &recordingObserver{}
	b := newBinding(t, stateTypeID, node.ValueRankScalar, WithObserver(obs))

	require.NoError(t, b.SetValueFromSource(variant.NewInt32(1)))
	_, err := b.WriteEnumValue("IDLE")
	require.NoError(t, err)
	_, err = b.WriteEnumValue(true)
	require.Error(t, err)
	require.Error(t, b.SetValueFromSource(variant.NewString("x")))

	assert.Equal(t, []string{OpSetValueFromSource, OpWriteEnumValue}, obs.written)
	assert.Equal(t, []string{
		OpWriteEnumValue + ":invalid_argument_type",
		OpSetValueFromSource + ":type_mismatch",
	}, obs.rejected)
}

func TestConcurrentWriters(t *testing.T) {
	b := newBinding(t, stateTypeID, node.ValueRankScalar)
	names := []string{"RUNNING", "BLOCKED", "IDLE", "UNDER MAINTENANCE"}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_, _ = b.WriteEnumValue(names[i%len(names)])
		}(i)
		go func() {
			defer wg.Done()
			_ = b.ReadValue()
		}()
	}
	wg.Wait()

	m, err := b.ReadEnumValue()
	require.NoError(t, err)
	assert.Contains(t, names, m.Name)
}
