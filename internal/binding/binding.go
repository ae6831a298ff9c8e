package binding

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/specialistvlad/addressspace/internal/ctxlog"
	"github.com/specialistvlad/addressspace/internal/enumeration"
	"github.com/specialistvlad/addressspace/internal/modelerr"
	"github.com/specialistvlad/addressspace/internal/node"
	"github.com/specialistvlad/addressspace/internal/nodeid"
	"github.com/specialistvlad/addressspace/internal/typesystem"
	"github.com/specialistvlad/addressspace/internal/variant"
)

// Operation names reported to observers and embedded in errors.
const (
	OpSetValueFromSource = "SetValueFromSource"
	OpWriteValue         = "WriteValue"
	OpWriteEnumValue     = "WriteEnumValue"
	OpReadEnumValue      = "ReadEnumValue"
)

// Binding is the value cell of one variable node.
type Binding struct {
	n         *node.Node
	dataType  nodeid.NodeID
	valueRank int32
	types     *typesystem.TypeSystem

	disposed *atomic.Bool
	observer Observer
	logger   *slog.Logger
	now      func() time.Time

	mu    sync.RWMutex
	value variant.DataValue
}

// New creates the binding for variable node n. It panics if n is not a
// variable, since only the namespace factories create bindings.
func New(n *node.Node, types *typesystem.TypeSystem, opts ...Option) *Binding {
	attrs, ok := n.Variable()
	if !ok {
		panic(fmt.Sprintf("binding: %s is not a variable", n))
	}
	if types == nil {
		panic("binding: nil type system")
	}
	b := &Binding{
		n:         n,
		dataType:  attrs.DataType,
		valueRank: attrs.ValueRank,
		types:     types,
		disposed:  new(atomic.Bool),
		observer:  nopObserver{},
		logger:    ctxlog.Discard(),
		now:       time.Now,
		value:     variant.DataValue{StatusCode: variant.BadNoValue},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Node returns the variable node the binding belongs to.
func (b *Binding) Node() *node.Node { return b.n }

// DataType returns the declared data type. It never changes.
func (b *Binding) DataType() nodeid.NodeID { return b.dataType }

// ReadValue returns the current value exactly as stored. A variable that
// was never written, or whose address space was disposed, reads as a null
// value with status BadNoValue.
func (b *Binding) ReadValue() variant.DataValue {
	if b.disposed.Load() {
		return variant.DataValue{StatusCode: variant.BadNoValue}
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.value
}

// SetValueFromSource stores v after checking its type tag and shape
// against the declared data type and value rank. Enumeration membership is
// not checked.
func (b *Binding) SetValueFromSource(v variant.Variant) error {
	if err := b.checkVariant(OpSetValueFromSource, v); err != nil {
		return b.reject(OpSetValueFromSource, err)
	}
	b.store(OpSetValueFromSource, v)
	return nil
}

// WriteValue stores v after the checks of SetValueFromSource and, for
// enumerated data types, a membership check of every element.
func (b *Binding) WriteValue(v variant.Variant) error {
	if err := b.checkVariant(OpWriteValue, v); err != nil {
		return b.reject(OpWriteValue, err)
	}
	if !v.IsNull() && b.types.IsEnumeration(b.ctx(), b.dataType) {
		def, err := b.types.EnumDefinition(b.ctx(), b.dataType)
		if err != nil {
			return b.reject(OpWriteValue, err)
		}
		for _, elem := range elements(v) {
			if _, err := def.Validate(elem); err != nil {
				return b.reject(OpWriteValue, err)
			}
		}
	}
	b.store(OpWriteValue, v)
	return nil
}

// WriteEnumValue resolves candidate against the enumeration of the declared
// data type and stores the member's value as Int32. Integers are matched by
// value and strings by name. On failure the current value is unchanged.
func (b *Binding) WriteEnumValue(candidate any) (enumeration.Member, error) {
	if err := b.checkDisposed(OpWriteEnumValue); err != nil {
		return enumeration.Member{}, b.reject(OpWriteEnumValue, err)
	}
	if !b.rankAllows(false) {
		err := modelerr.New(OpWriteEnumValue, modelerr.ErrTypeMismatch, "%s expects an array value", b.n.ID())
		return enumeration.Member{}, b.reject(OpWriteEnumValue, err)
	}
	m, err := b.types.Validate(b.ctx(), b.dataType, candidate)
	if err != nil {
		return enumeration.Member{}, b.reject(OpWriteEnumValue, err)
	}
	b.store(OpWriteEnumValue, variant.NewInt32(int32(m.Value)))
	return m, nil
}

// ReadEnumValue resolves the current raw value against the enumeration of
// the declared data type. A null value, or one that is not a member, fails
// with modelerr.ErrNotFound.
func (b *Binding) ReadEnumValue() (enumeration.Member, error) {
	if err := b.checkDisposed(OpReadEnumValue); err != nil {
		return enumeration.Member{}, err
	}
	def, err := b.types.EnumDefinition(b.ctx(), b.dataType)
	if err != nil {
		return enumeration.Member{}, err
	}
	current := b.ReadValue().Value
	raw, ok := current.AsInt64()
	if !ok {
		return enumeration.Member{}, modelerr.New(OpReadEnumValue, modelerr.ErrNotFound, "%s holds %s", b.n.ID(), current)
	}
	m, ok := def.Member(raw)
	if !ok {
		return enumeration.Member{}, modelerr.New(OpReadEnumValue, modelerr.ErrNotFound, "%s holds %d which is not a member", b.n.ID(), raw)
	}
	return m, nil
}

func (b *Binding) checkVariant(op string, v variant.Variant) error {
	if err := b.checkDisposed(op); err != nil {
		return err
	}
	if v.IsNull() {
		return nil
	}
	ok, err := b.types.Accepts(b.ctx(), b.dataType, v.Type())
	if err != nil {
		return err
	}
	if !ok {
		return modelerr.New(op, modelerr.ErrTypeMismatch, "%s does not accept %s for data type %s", b.n.ID(), v.Type(), b.dataType)
	}
	if !b.rankAllows(v.IsArray()) {
		shape := "scalar"
		if v.IsArray() {
			shape = "array"
		}
		return modelerr.New(op, modelerr.ErrTypeMismatch, "%s with value rank %d does not accept an %s value", b.n.ID(), b.valueRank, shape)
	}
	return nil
}

func (b *Binding) rankAllows(array bool) bool {
	switch b.valueRank {
	case node.ValueRankAny, node.ValueRankScalarOrOneDimension:
		return true
	case node.ValueRankScalar:
		return !array
	}
	return array
}

func (b *Binding) checkDisposed(op string) error {
	if b.disposed.Load() {
		return modelerr.New(op, modelerr.ErrDisposed, "%s", b.n.ID())
	}
	return nil
}

func (b *Binding) store(op string, v variant.Variant) {
	ts := b.now()
	b.mu.Lock()
	b.value = variant.NewDataValue(v, ts)
	b.mu.Unlock()

	b.observer.ValueWritten(op)
	b.logger.Debug("Value stored.", "node_id", b.n.ID().String(), "op", op, "value", v.String())
}

func (b *Binding) reject(op string, err error) error {
	b.observer.WriteRejected(op, err)
	b.logger.Debug("Write rejected.", "node_id", b.n.ID().String(), "op", op, "reason", modelerr.Reason(err))
	return err
}

func (b *Binding) ctx() context.Context {
	return ctxlog.WithLogger(context.Background(), b.logger)
}

func elements(v variant.Variant) []variant.Variant {
	if !v.IsArray() {
		return []variant.Variant{v}
	}
	raw := v.Value().([]any)
	out := make([]variant.Variant, 0, len(raw))
	for _, r := range raw {
		out = append(out, variant.MustNew(v.Type(), r))
	}
	return out
}
