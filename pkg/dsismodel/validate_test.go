// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

package dsismodel

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// coerceOne runs coercion for a single field and returns the issues.
func coerceOne(t *testing.T, f Field, value any) (any, []Issue) {
	t.Helper()
	if f.Wire == "" {
		f.Wire = f.Name
	}
	return coerce(&f, value)
}

func TestCoerceText(t *testing.T) {
	v, issues := coerceOne(t, Field{Name: "s", Kind: KindText, MaxLength: 5}, "abc")
	require.Empty(t, issues)
	assert.Equal(t, "abc", v)

	_, issues = coerceOne(t, Field{Name: "s", Kind: KindText, MaxLength: 5}, "abcdef")
	require.Len(t, issues, 1)
	assert.Equal(t, CodeConstraint, issues[0].Code)

	// Length counts runes, matching character-based column lengths.
	_, issues = coerceOne(t, Field{Name: "s", Kind: KindText, MaxLength: 5}, "æøåæø")
	assert.Empty(t, issues)

	_, issues = coerceOne(t, Field{Name: "s", Kind: KindText}, 42)
	require.Len(t, issues, 1)
	assert.Equal(t, CodeWrongType, issues[0].Code)
}

func TestCoerceText_Pattern(t *testing.T) {
	f := Field{Name: "code", Kind: KindText, Pattern: `^[A-Z]{2}-\d+$`}

	_, issues := coerceOne(t, f, "NO-15")
	assert.Empty(t, issues)

	_, issues = coerceOne(t, f, "no-15")
	require.Len(t, issues, 1)
	assert.Equal(t, CodeConstraint, issues[0].Code)
}

func TestCoerceText_Enum(t *testing.T) {
	f := Field{Name: "kind", Kind: KindText, Enum: []any{"DST", "RFT"}}

	_, issues := coerceOne(t, f, "DST")
	assert.Empty(t, issues)

	_, issues = coerceOne(t, f, "XXX")
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "allowed values")
}

func TestCoerceDate(t *testing.T) {
	v, issues := coerceOne(t, Field{Name: "d", Kind: KindDate}, "2024-03-15")
	require.Empty(t, issues)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), v)

	_, issues = coerceOne(t, Field{Name: "d", Kind: KindDate}, "15/03/2024")
	require.Len(t, issues, 1)
	assert.Equal(t, CodeWrongType, issues[0].Code)

	// Already-typed values pass through.
	now := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	v, issues = coerceOne(t, Field{Name: "d", Kind: KindDate}, now)
	require.Empty(t, issues)
	assert.Equal(t, now, v)
}

func TestCoerceDateTime(t *testing.T) {
	v, issues := coerceOne(t, Field{Name: "ts", Kind: KindDateTime}, "2024-03-15T10:30:00Z")
	require.Empty(t, issues)
	assert.Equal(t, time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC), v)

	// Timestamps without a zone are accepted.
	_, issues = coerceOne(t, Field{Name: "ts", Kind: KindDateTime}, "2024-03-15T10:30:00")
	assert.Empty(t, issues)

	_, issues = coerceOne(t, Field{Name: "ts", Kind: KindDateTime}, "10:30")
	require.Len(t, issues, 1)
	assert.Equal(t, CodeWrongType, issues[0].Code)
}

func TestCoerceBinary(t *testing.T) {
	v, issues := coerceOne(t, Field{Name: "b", Kind: KindBinary, MaxLength: 4}, "data")
	require.Empty(t, issues)
	assert.Equal(t, []byte("data"), v)

	_, issues = coerceOne(t, Field{Name: "b", Kind: KindBinary, MaxLength: 4}, "toolong")
	require.Len(t, issues, 1)
	assert.Equal(t, CodeConstraint, issues[0].Code)

	v, issues = coerceOne(t, Field{Name: "b", Kind: KindBinary}, []byte{0x1, 0x2})
	require.Empty(t, issues)
	assert.Equal(t, []byte{0x1, 0x2}, v)
}

func TestCoerceInt(t *testing.T) {
	for _, value := range []any{7, int64(7), float64(7), json.Number("7")} {
		v, issues := coerceOne(t, Field{Name: "n", Kind: KindInt}, value)
		require.Empty(t, issues, "value %T", value)
		assert.Equal(t, int64(7), v)
	}

	_, issues := coerceOne(t, Field{Name: "n", Kind: KindInt}, 7.5)
	require.Len(t, issues, 1)
	assert.Equal(t, CodeWrongType, issues[0].Code)

	_, issues = coerceOne(t, Field{Name: "n", Kind: KindInt}, "7")
	require.Len(t, issues, 1)
	assert.Equal(t, CodeWrongType, issues[0].Code)
}

func TestCoerceInt_Constraints(t *testing.T) {
	minimum, maximum := 0.0, 100.0
	f := Field{Name: "n", Kind: KindInt, Minimum: &minimum, Maximum: &maximum, MultipleOf: 5}

	_, issues := coerceOne(t, f, 25)
	assert.Empty(t, issues)

	_, issues = coerceOne(t, f, 23)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "multiple")

	// Below the minimum and not a multiple: both reported.
	_, issues = coerceOne(t, f, -3)
	require.Len(t, issues, 2)
	assert.Contains(t, issues[0].Message, "minimum")
	assert.Contains(t, issues[1].Message, "multiple")
}

func TestCoerceFloat(t *testing.T) {
	v, issues := coerceOne(t, Field{Name: "x", Kind: KindFloat}, json.Number("2.5"))
	require.Empty(t, issues)
	assert.Equal(t, 2.5, v)

	_, issues = coerceOne(t, Field{Name: "x", Kind: KindFloat}, "2.5")
	require.Len(t, issues, 1)
	assert.Equal(t, CodeWrongType, issues[0].Code)
}

func TestCoerceDecimal_ExactScale(t *testing.T) {
	f := Field{Name: "kb", Kind: KindDecimal, MultipleOf: 0.01}

	_, issues := coerceOne(t, f, json.Number("23.45"))
	assert.Empty(t, issues)

	_, issues = coerceOne(t, f, json.Number("23.4"))
	assert.Empty(t, issues)

	_, issues = coerceOne(t, f, json.Number("23.456"))
	require.Len(t, issues, 1)
	assert.Equal(t, CodeConstraint, issues[0].Code)

	// Values that float64 cannot hold exactly still validate, because the
	// check runs on the decimal text.
	_, issues = coerceOne(t, f, json.Number("9999999999999999999999.99"))
	assert.Empty(t, issues)
}

func TestCoerceDecimal_Inputs(t *testing.T) {
	for _, value := range []any{"12.5", json.Number("12.5"), 12.5, int64(12)} {
		_, issues := coerceOne(t, Field{Name: "d", Kind: KindDecimal}, value)
		assert.Empty(t, issues, "value %T", value)
	}

	_, issues := coerceOne(t, Field{Name: "d", Kind: KindDecimal}, "not-a-number")
	require.Len(t, issues, 1)
	assert.Equal(t, CodeWrongType, issues[0].Code)

	_, issues = coerceOne(t, Field{Name: "d", Kind: KindDecimal}, true)
	require.Len(t, issues, 1)
	assert.Equal(t, CodeWrongType, issues[0].Code)
}

func TestCoerceBool(t *testing.T) {
	v, issues := coerceOne(t, Field{Name: "flag", Kind: KindBool}, true)
	require.Empty(t, issues)
	assert.Equal(t, true, v)

	_, issues = coerceOne(t, Field{Name: "flag", Kind: KindBool}, "true")
	require.Len(t, issues, 1)
	assert.Equal(t, CodeWrongType, issues[0].Code)
}

func TestCoerceList(t *testing.T) {
	f := Field{Name: "tags", Kind: KindList, Elem: KindText, MaxItems: 3}

	v, issues := coerceOne(t, f, []any{"a", "b"})
	require.Empty(t, issues)
	assert.Equal(t, []any{"a", "b"}, v)

	// Typed slices from Go callers are accepted.
	v, issues = coerceOne(t, f, []string{"a", "b"})
	require.Empty(t, issues)
	assert.Equal(t, []any{"a", "b"}, v)

	_, issues = coerceOne(t, f, []any{"a", "b", "c", "d"})
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "maximum")

	_, issues = coerceOne(t, f, "not-a-list")
	require.Len(t, issues, 1)
	assert.Equal(t, CodeWrongType, issues[0].Code)
}

func TestCoerceList_ElementIssuesAreIndexed(t *testing.T) {
	f := Field{Name: "depths", Kind: KindList, Elem: KindInt}

	_, issues := coerceOne(t, f, []any{1, "two", 3, "four"})
	require.Len(t, issues, 2)
	assert.Equal(t, "depths[1]", issues[0].Field)
	assert.Equal(t, "depths[3]", issues[1].Field)
}

func TestBoundIssues_Exclusive(t *testing.T) {
	lo, hi := 0.0, 10.0
	f := Field{Name: "x", Kind: KindFloat, ExclusiveMinimum: &lo, ExclusiveMaximum: &hi}

	_, issues := coerceOne(t, f, 5.0)
	assert.Empty(t, issues)

	_, issues = coerceOne(t, f, 0.0)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "greater than")

	_, issues = coerceOne(t, f, 10.0)
	require.Len(t, issues, 1)
	assert.Contains(t, issues[0].Message, "less than")
}

func TestDecimalScale(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"0", 0},
		{"42", 0},
		{"0.01", 2},
		{"23.45", 2},
		{"23.450", 2},
		{"1e-05", 5},
		{"1E-05", 5},
		{"1.5e-2", 3},
		{"1.5e+3", 0},
		{"1500e-3", 1},
		{"-0.001", 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, decimalScale(tt.in), "decimalScale(%q)", tt.in)
	}
}

func TestPow10Scale(t *testing.T) {
	scale, ok := pow10Scale(0.01)
	require.True(t, ok)
	assert.Equal(t, 2, scale)

	scale, ok = pow10Scale(1e-05)
	require.True(t, ok)
	assert.Equal(t, 5, scale)

	scale, ok = pow10Scale(1)
	require.True(t, ok)
	assert.Equal(t, 0, scale)

	_, ok = pow10Scale(0.05)
	assert.False(t, ok)

	_, ok = pow10Scale(0)
	assert.False(t, ok)
}

func TestFloatMultiple(t *testing.T) {
	assert.True(t, floatMultiple(10, 2.5))
	assert.True(t, floatMultiple(0.3, 0.1))
	assert.False(t, floatMultiple(0.35, 0.1))
}

func TestToInt64(t *testing.T) {
	n, ok := toInt64(json.Number("9007199254740993"))
	require.True(t, ok)
	assert.Equal(t, int64(9007199254740993), n)

	_, ok = toInt64(7.5)
	assert.False(t, ok)

	_, ok = toInt64("7")
	assert.False(t, ok)
}
