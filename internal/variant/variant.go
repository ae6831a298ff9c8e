package variant

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/specialistvlad/addressspace/internal/nodeid"
)

// LocalizedText is a text with an optional locale.
type LocalizedText struct {
	Locale string
	Text   string
}

// StatusCode is the quality attached to a DataValue.
type StatusCode uint32

const (
	Good            StatusCode = 0
	BadNoValue      StatusCode = 0x80700000 // BadNoData
	BadTypeMismatch StatusCode = 0x80740000
	BadOutOfRange   StatusCode = 0x803C0000
)

// IsGood reports whether the severity bits are Good.
func (s StatusCode) IsGood() bool {
	return s&0xC0000000 == 0
}

func (s StatusCode) String() string {
	switch s {
	case Good:
		return "Good"
	case BadNoValue:
		return "BadNoData"
	case BadTypeMismatch:
		return "BadTypeMismatch"
	case BadOutOfRange:
		return "BadOutOfRange"
	}
	return fmt.Sprintf("StatusCode(0x%08X)", uint32(s))
}

// EnumValueType is the structured payload of one entry of an EnumValues
// property.
type EnumValueType struct {
	Value       int64
	DisplayName LocalizedText
	Description LocalizedText
}

// Variant is a tagged value: a built-in type tag plus the raw payload. The
// zero value is the null variant. Arrays hold a []any of payloads that all
// match the tag.
type Variant struct {
	typ   Type
	value any
	array bool
}

// New builds a scalar Variant after checking that v is a valid payload for
// t. Integer payloads of any Go width are accepted when they fit the range
// of t and are normalized to the canonical Go type of the tag.
func New(t Type, v any) (Variant, error) {
	if t == Null {
		if v != nil {
			return Variant{}, fmt.Errorf("null variant cannot carry a payload of type %T", v)
		}
		return Variant{}, nil
	}
	norm, err := normalize(t, v)
	if err != nil {
		return Variant{}, err
	}
	return Variant{typ: t, value: norm}, nil
}

// MustNew is like New but panics on error.
func MustNew(t Type, v any) Variant {
	out, err := New(t, v)
	if err != nil {
		panic(err)
	}
	return out
}

// NewArray builds a one dimensional array Variant. Every element is
// normalized the same way New does.
func NewArray(t Type, values []any) (Variant, error) {
	if t == Null {
		return Variant{}, fmt.Errorf("array variant needs a type")
	}
	out := make([]any, len(values))
	for i, v := range values {
		norm, err := normalize(t, v)
		if err != nil {
			return Variant{}, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = norm
	}
	return Variant{typ: t, value: out, array: true}, nil
}

func NewBoolean(v bool) Variant         { return Variant{typ: Boolean, value: v} }
func NewInt32(v int32) Variant          { return Variant{typ: Int32, value: v} }
func NewUInt32(v uint32) Variant        { return Variant{typ: UInt32, value: v} }
func NewInt64(v int64) Variant          { return Variant{typ: Int64, value: v} }
func NewDouble(v float64) Variant       { return Variant{typ: Double, value: v} }
func NewString(v string) Variant        { return Variant{typ: String, value: v} }
func NewDateTime(v time.Time) Variant   { return Variant{typ: DateTime, value: v} }
func NewNodeID(v nodeid.NodeID) Variant { return Variant{typ: NodeId, value: v} }
func NewLocalizedText(locale, text string) Variant {
	return Variant{typ: LocalizedTextType, value: LocalizedText{Locale: locale, Text: text}}
}

// Type returns the built-in type tag.
func (v Variant) Type() Type { return v.typ }

// Value returns the raw payload. Arrays return []any. Slices are copies, so
// callers cannot change a stored variant through them.
func (v Variant) Value() any {
	switch p := v.value.(type) {
	case []any:
		out := slices.Clone(p)
		for i, elem := range out {
			if b, ok := elem.([]byte); ok {
				out[i] = bytes.Clone(b)
			}
		}
		return out
	case []byte:
		return bytes.Clone(p)
	}
	return v.value
}

// IsNull reports whether v carries no value.
func (v Variant) IsNull() bool { return v.typ == Null }

// IsArray reports whether v is an array.
func (v Variant) IsArray() bool { return v.array }

// Len returns the number of elements of an array, 1 for a scalar and 0 for null.
func (v Variant) Len() int {
	switch {
	case v.typ == Null:
		return 0
	case v.array:
		return len(v.value.([]any))
	}
	return 1
}

// Equal compares tag, shape and payload.
func (v Variant) Equal(other Variant) bool {
	if v.typ != other.typ || v.array != other.array {
		return false
	}
	if b, ok := v.value.([]byte); ok {
		ob, ok := other.value.([]byte)
		return ok && bytes.Equal(b, ob)
	}
	return reflect.DeepEqual(v.value, other.value)
}

func (v Variant) String() string {
	if v.typ == Null {
		return "Variant(Null)"
	}
	if v.array {
		return fmt.Sprintf("Variant(%s[%d])", v.typ, v.Len())
	}
	return fmt.Sprintf("Variant(%s: %v)", v.typ, v.value)
}

// AsInt64 returns the payload of a scalar integer variant widened to int64.
// It reports false for non-integer tags, arrays and UInt64 payloads above
// math.MaxInt64.
func (v Variant) AsInt64() (int64, bool) {
	if v.array || !v.typ.IsInteger() {
		return 0, false
	}
	return toInt64(v.value)
}

func normalize(t Type, v any) (any, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("unknown built-in type %d", uint8(t))
	}
	mismatch := func() error {
		return fmt.Errorf("payload of type %T is not valid for %s", v, t)
	}

	switch t {
	case Boolean:
		b, ok := v.(bool)
		if !ok {
			return nil, mismatch()
		}
		return b, nil
	case SByte, Byte, Int16, UInt16, Int32, UInt32, Int64, UInt64:
		return normalizeInteger(t, v)
	case Float:
		switch f := v.(type) {
		case float32:
			return f, nil
		case float64:
			if math.Abs(f) > math.MaxFloat32 && !math.IsInf(f, 0) {
				return nil, fmt.Errorf("value %v overflows %s", f, t)
			}
			return float32(f), nil
		}
		if i, ok := toInt64(v); ok {
			return float32(i), nil
		}
		return nil, mismatch()
	case Double:
		switch f := v.(type) {
		case float64:
			return f, nil
		case float32:
			return float64(f), nil
		}
		if i, ok := toInt64(v); ok {
			return float64(i), nil
		}
		return nil, mismatch()
	case String, XmlElement:
		s, ok := v.(string)
		if !ok {
			return nil, mismatch()
		}
		return s, nil
	case DateTime:
		ts, ok := v.(time.Time)
		if !ok {
			return nil, mismatch()
		}
		return ts, nil
	case Guid:
		g, ok := v.(uuid.UUID)
		if !ok {
			return nil, mismatch()
		}
		return g, nil
	case ByteString:
		b, ok := v.([]byte)
		if !ok {
			return nil, mismatch()
		}
		return append([]byte(nil), b...), nil
	case NodeId, ExpandedNodeId:
		id, ok := v.(nodeid.NodeID)
		if !ok {
			return nil, mismatch()
		}
		return id, nil
	case StatusCodeType:
		switch s := v.(type) {
		case StatusCode:
			return s, nil
		case uint32:
			return StatusCode(s), nil
		}
		return nil, mismatch()
	case QualifiedName:
		q, ok := v.(nodeid.QualifiedName)
		if !ok {
			return nil, mismatch()
		}
		return q, nil
	case LocalizedTextType:
		switch lt := v.(type) {
		case LocalizedText:
			return lt, nil
		case string:
			return LocalizedText{Text: lt}, nil
		}
		return nil, mismatch()
	case DataValueType:
		dv, ok := v.(DataValue)
		if !ok {
			return nil, mismatch()
		}
		return dv, nil
	case VariantType:
		inner, ok := v.(Variant)
		if !ok {
			return nil, mismatch()
		}
		return inner, nil
	}
	// ExtensionObject and DiagnosticInfo carry arbitrary structured payloads.
	if v == nil {
		return nil, fmt.Errorf("%s payload cannot be nil", t)
	}
	return v, nil
}

func normalizeInteger(t Type, v any) (any, error) {
	var (
		i   int64
		u   uint64
		neg bool
	)
	switch n := v.(type) {
	case uint:
		u = uint64(n)
	case uint8:
		u = uint64(n)
	case uint16:
		u = uint64(n)
	case uint32:
		u = uint64(n)
	case uint64:
		u = n
	default:
		x, ok := toInt64(v)
		if !ok {
			return nil, fmt.Errorf("payload of type %T is not valid for %s", v, t)
		}
		i = x
		neg = x < 0
		if !neg {
			u = uint64(x)
		}
	}

	outOfRange := func() error {
		if neg {
			return fmt.Errorf("value %d out of range for %s", i, t)
		}
		return fmt.Errorf("value %d out of range for %s", u, t)
	}

	switch t {
	case SByte:
		if (neg && i < math.MinInt8) || (!neg && u > math.MaxInt8) {
			return nil, outOfRange()
		}
		if neg {
			return int8(i), nil
		}
		return int8(u), nil
	case Byte:
		if neg || u > math.MaxUint8 {
			return nil, outOfRange()
		}
		return uint8(u), nil
	case Int16:
		if (neg && i < math.MinInt16) || (!neg && u > math.MaxInt16) {
			return nil, outOfRange()
		}
		if neg {
			return int16(i), nil
		}
		return int16(u), nil
	case UInt16:
		if neg || u > math.MaxUint16 {
			return nil, outOfRange()
		}
		return uint16(u), nil
	case Int32:
		if (neg && i < math.MinInt32) || (!neg && u > math.MaxInt32) {
			return nil, outOfRange()
		}
		if neg {
			return int32(i), nil
		}
		return int32(u), nil
	case UInt32:
		if neg || u > math.MaxUint32 {
			return nil, outOfRange()
		}
		return uint32(u), nil
	case Int64:
		if !neg && u > math.MaxInt64 {
			return nil, outOfRange()
		}
		if neg {
			return i, nil
		}
		return int64(u), nil
	case UInt64:
		if neg {
			return nil, outOfRange()
		}
		return u, nil
	}
	return nil, fmt.Errorf("%s is not an integer type", t)
}

// toInt64 widens any signed Go integer, and unsigned ones that fit.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	}
	return 0, false
}
