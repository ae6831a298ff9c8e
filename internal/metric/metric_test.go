package metric

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/specialistvlad/addressspace/internal/modelerr"
	"github.com/specialistvlad/addressspace/internal/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsSafe(t *testing.T) {
	m := New(nil)
	require.Nil(t, m)

	assert.NotPanics(t, func() {
		m.NodeAdded(node.ClassObject)
		m.NodeRemoved(node.ClassObject)
		m.SetReferences(3)
		m.SetNamespaces(2)
		m.ValueWritten("WriteValue")
		m.WriteRejected("WriteValue", modelerr.ErrTypeMismatch)
		m.Browsed(time.Millisecond)
		m.Reset()
	})
}

func TestCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.NodeAdded(node.ClassDataType)
	m.NodeAdded(node.ClassDataType)
	m.NodeAdded(node.ClassVariable)
	m.NodeRemoved(node.ClassDataType)
	m.SetReferences(7)
	m.SetNamespaces(2)
	m.ValueWritten("WriteEnumValue")
	m.WriteRejected("WriteEnumValue", modelerr.New("WriteEnumValue", modelerr.ErrInvalidEnumValue, "x"))
	m.WriteRejected("WriteEnumValue", errors.New("boom"))
	m.Browsed(time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.nodes.WithLabelValues("DataType")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.nodes.WithLabelValues("Variable")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.references))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.namespaces))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.valueWrites.WithLabelValues("WriteEnumValue")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.writeRejected.WithLabelValues("WriteEnumValue", "invalid_enum_value")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.writeRejected.WithLabelValues("WriteEnumValue", "unknown")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.browseTotal))

	m.Reset()
	assert.Equal(t, 0, testutil.CollectAndCount(m.nodes))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.references))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.valueWrites.WithLabelValues("WriteEnumValue")), "counters survive reset")
}

func TestDoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
