package variant

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/specialistvlad/addressspace/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// FromCty converts a configuration value into a Variant of type t. Lists,
// sets and tuples become arrays. A null value yields the null variant.
func FromCty(t Type, val cty.Value) (Variant, error) {
	if val.IsNull() {
		return Variant{}, nil
	}
	if !val.IsKnown() {
		return Variant{}, fmt.Errorf("value for %s is not known", t)
	}

	ty := val.Type()
	if ty.IsListType() || ty.IsSetType() || ty.IsTupleType() {
		elems := make([]any, 0, val.LengthInt())
		for it := val.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			raw, err := scalarFromCty(t, ev)
			if err != nil {
				return Variant{}, fmt.Errorf("element %d: %w", len(elems), err)
			}
			elems = append(elems, raw)
		}
		return NewArray(t, elems)
	}

	raw, err := scalarFromCty(t, val)
	if err != nil {
		return Variant{}, err
	}
	return New(t, raw)
}

func scalarFromCty(t Type, val cty.Value) (any, error) {
	switch {
	case t == Boolean:
		var b bool
		if err := decodeAs(val, cty.Bool, &b); err != nil {
			return nil, err
		}
		return b, nil
	case t == Float || t == Double:
		var f float64
		if err := decodeAs(val, cty.Number, &f); err != nil {
			return nil, err
		}
		return f, nil
	case t == UInt64:
		var u uint64
		if err := decodeAs(val, cty.Number, &u); err != nil {
			return nil, err
		}
		return u, nil
	case t.IsInteger():
		var i int64
		if err := decodeAs(val, cty.Number, &i); err != nil {
			return nil, err
		}
		return i, nil
	case t == LocalizedTextType && val.Type().IsObjectType():
		var lt struct {
			Locale string `cty:"locale"`
			Text   string `cty:"text"`
		}
		obj, err := convert.Convert(val, cty.Object(map[string]cty.Type{"locale": cty.String, "text": cty.String}))
		if err != nil {
			return nil, err
		}
		if err := gocty.FromCtyValue(obj, &lt); err != nil {
			return nil, err
		}
		return LocalizedText{Locale: lt.Locale, Text: lt.Text}, nil
	}

	var s string
	if err := decodeAs(val, cty.String, &s); err != nil {
		return nil, err
	}
	switch t {
	case String, XmlElement, LocalizedTextType:
		return s, nil
	case ByteString:
		return []byte(s), nil
	case DateTime:
		return time.Parse(time.RFC3339Nano, s)
	case Guid:
		return uuid.Parse(s)
	case NodeId, ExpandedNodeId:
		return nodeid.Parse(s)
	case QualifiedName:
		return nodeid.ParseQualifiedName(s)
	}
	return nil, fmt.Errorf("%s values cannot be expressed in configuration", t)
}

// decodeAs converts val to want, then decodes it into target.
func decodeAs(val cty.Value, want cty.Type, target any) error {
	converted, err := convert.Convert(val, want)
	if err != nil {
		return err
	}
	return gocty.FromCtyValue(converted, target)
}
