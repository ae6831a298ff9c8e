package enumeration

import (
	"math"
	"testing"

	"github.com/specialistvlad/addressspace/internal/modelerr"
	"github.com/specialistvlad/addressspace/internal/variant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

type machineState int16

func TestValidate(t *testing.T) {
	d, err := New(Names{"RUNNING", "BLOCKED", "IDLE", "UNDER MAINTENANCE"})
	require.NoError(t, err)

	testCases := []struct {
		name      string
		candidate any
		expected  Member
		sentinel  error
	}{
		{name: "int", candidate: 1, expected: Member{Name: "BLOCKED", Value: 1}},
		{name: "int32", candidate: int32(3), expected: Member{Name: "UNDER MAINTENANCE", Value: 3}},
		{name: "uint8", candidate: uint8(2), expected: Member{Name: "IDLE", Value: 2}},
		{name: "named integer type", candidate: machineState(0), expected: Member{Name: "RUNNING", Value: 0}},
		{name: "whole float", candidate: 2.0, expected: Member{Name: "IDLE", Value: 2}},
		{name: "name", candidate: "BLOCKED", expected: Member{Name: "BLOCKED", Value: 1}},
		{name: "name with space", candidate: "UNDER MAINTENANCE", expected: Member{Name: "UNDER MAINTENANCE", Value: 3}},
		{name: "int32 variant", candidate: variant.NewInt32(0), expected: Member{Name: "RUNNING", Value: 0}},
		{name: "string variant", candidate: variant.NewString("IDLE"), expected: Member{Name: "IDLE", Value: 2}},
		{name: "cty number", candidate: cty.NumberIntVal(1), expected: Member{Name: "BLOCKED", Value: 1}},
		{name: "cty string", candidate: cty.StringVal("RUNNING"), expected: Member{Name: "RUNNING", Value: 0}},

		{name: "negative int", candidate: -2, sentinel: modelerr.ErrInvalidEnumValue},
		{name: "int beyond members", candidate: 10, sentinel: modelerr.ErrInvalidEnumValue},
		{name: "unknown name", candidate: "BLOCKED--BAD", sentinel: modelerr.ErrInvalidEnumValue},
		{name: "empty name", candidate: "", sentinel: modelerr.ErrInvalidEnumValue},
		{name: "fractional float", candidate: 1.5, sentinel: modelerr.ErrInvalidEnumValue},
		{name: "NaN", candidate: math.NaN(), sentinel: modelerr.ErrInvalidEnumValue},
		{name: "huge uint64", candidate: uint64(math.MaxUint64), sentinel: modelerr.ErrInvalidEnumValue},
		{name: "cty fraction", candidate: cty.NumberFloatVal(0.5), sentinel: modelerr.ErrInvalidEnumValue},

		{name: "map", candidate: map[string]any{"value": "invalid type"}, sentinel: modelerr.ErrInvalidArgumentType},
		{name: "struct", candidate: struct{ Value string }{"invalid type"}, sentinel: modelerr.ErrInvalidArgumentType},
		{name: "bool", candidate: true, sentinel: modelerr.ErrInvalidArgumentType},
		{name: "nil", candidate: nil, sentinel: modelerr.ErrInvalidArgumentType},
		{name: "slice", candidate: []int{1}, sentinel: modelerr.ErrInvalidArgumentType},
		{name: "boolean variant", candidate: variant.NewBoolean(true), sentinel: modelerr.ErrInvalidArgumentType},
		{name: "null variant", candidate: variant.Variant{}, sentinel: modelerr.ErrInvalidArgumentType},
		{name: "cty bool", candidate: cty.True, sentinel: modelerr.ErrInvalidArgumentType},
		{name: "cty null", candidate: cty.NullVal(cty.String), sentinel: modelerr.ErrInvalidArgumentType},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m, err := d.Validate(tc.candidate)
			if tc.sentinel != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tc.sentinel)
				assert.Equal(t, Member{}, m)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, m)
		})
	}
}

// Sparse enumerations reject every integer between their members.
func TestValidate_SparseValues(t *testing.T) {
	d, err := New(Values{
		{DisplayName: "VALUE01", Value: 1},
		{DisplayName: "VALUE02", Value: 2},
		{DisplayName: "VALUE04", Value: 4},
		{DisplayName: "VALUE08", Value: 8},
	})
	require.NoError(t, err)

	members := map[int64]bool{1: true, 2: true, 4: true, 8: true}
	for v := int64(-1); v <= 9; v++ {
		_, err := d.Validate(v)
		if members[v] {
			assert.NoError(t, err, "value %d", v)
		} else {
			assert.ErrorIs(t, err, modelerr.ErrInvalidEnumValue, "value %d", v)
		}
	}
}
