package enumeration

import (
	"math"
	"math/big"
	"reflect"
	"strconv"

	"github.com/specialistvlad/addressspace/internal/modelerr"
	"github.com/specialistvlad/addressspace/internal/variant"
	"github.com/zclconf/go-cty/cty"
)

// Validate resolves candidate to a member.
//
// Integers of any Go width (and named types over them), whole floats,
// integer variants and cty numbers are looked up by value. Strings, string
// variants and cty strings are matched against member names exactly. A
// number or name that matches no member fails with
// modelerr.ErrInvalidEnumValue. Any other shape fails with
// modelerr.ErrInvalidArgumentType.
func (d *Definition) Validate(candidate any) (Member, error) {
	const op = "Validate"

	c, err := classify(candidate)
	if err != nil {
		return Member{}, err
	}

	switch c.kind {
	case candidateName:
		i, ok := d.byName[c.name]
		if !ok {
			return Member{}, modelerr.New(op, modelerr.ErrInvalidEnumValue, "%q is not a member name", c.name)
		}
		return d.members[i], nil
	case candidateInt:
		i, ok := d.byValue[c.value]
		if !ok {
			return Member{}, modelerr.New(op, modelerr.ErrInvalidEnumValue, "%d is not a member value", c.value)
		}
		return d.members[i], nil
	}
	return Member{}, modelerr.New(op, modelerr.ErrInvalidEnumValue, "%s is not a member value", c.name)
}

type candidateKind int

const (
	candidateInt candidateKind = iota
	candidateName
	// candidateNonMember is a number that cannot be a member: a fraction,
	// NaN, or an integer beyond int64.
	candidateNonMember
)

type resolved struct {
	kind  candidateKind
	value int64
	name  string
}

func classify(candidate any) (resolved, error) {
	switch c := candidate.(type) {
	case nil:
		return resolved{}, modelerr.New("Validate", modelerr.ErrInvalidArgumentType, "candidate is nil")
	case string:
		return resolved{kind: candidateName, name: c}, nil
	case float32:
		return classifyFloat(float64(c)), nil
	case float64:
		return classifyFloat(c), nil
	case variant.Variant:
		return classifyVariant(c)
	case cty.Value:
		return classifyCty(c)
	}

	rv := reflect.ValueOf(candidate)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return resolved{kind: candidateInt, value: rv.Int()}, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return resolved{kind: candidateNonMember, name: strconv.FormatUint(u, 10)}, nil
		}
		return resolved{kind: candidateInt, value: int64(u)}, nil
	case reflect.String:
		return resolved{kind: candidateName, name: rv.String()}, nil
	case reflect.Float32, reflect.Float64:
		return classifyFloat(rv.Float()), nil
	}
	return resolved{}, modelerr.New("Validate", modelerr.ErrInvalidArgumentType, "candidate of type %T is neither an integer nor a string", candidate)
}

func classifyFloat(f float64) resolved {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return resolved{kind: candidateNonMember, name: strconv.FormatFloat(f, 'g', -1, 64)}
	}
	return resolved{kind: candidateInt, value: int64(f)}
}

func classifyVariant(v variant.Variant) (resolved, error) {
	if !v.IsArray() {
		switch {
		case v.Type().IsInteger():
			if i, ok := v.AsInt64(); ok {
				return resolved{kind: candidateInt, value: i}, nil
			}
			return resolved{kind: candidateNonMember, name: v.String()}, nil
		case v.Type() == variant.Float:
			return classifyFloat(float64(v.Value().(float32))), nil
		case v.Type() == variant.Double:
			return classifyFloat(v.Value().(float64)), nil
		case v.Type() == variant.String:
			return resolved{kind: candidateName, name: v.Value().(string)}, nil
		}
	}
	return resolved{}, modelerr.New("Validate", modelerr.ErrInvalidArgumentType, "variant %s is neither an integer nor a string", v)
}

func classifyCty(v cty.Value) (resolved, error) {
	if v.IsNull() || !v.IsKnown() {
		return resolved{}, modelerr.New("Validate", modelerr.ErrInvalidArgumentType, "candidate is a null or unknown value")
	}
	switch v.Type() {
	case cty.String:
		return resolved{kind: candidateName, name: v.AsString()}, nil
	case cty.Number:
		bf := v.AsBigFloat()
		if !bf.IsInt() {
			return resolved{kind: candidateNonMember, name: bf.String()}, nil
		}
		i, acc := bf.Int64()
		if acc != big.Exact {
			return resolved{kind: candidateNonMember, name: bf.String()}, nil
		}
		return resolved{kind: candidateInt, value: i}, nil
	}
	return resolved{}, modelerr.New("Validate", modelerr.ErrInvalidArgumentType, "candidate of type %s is neither a number nor a string", v.Type().FriendlyName())
}
