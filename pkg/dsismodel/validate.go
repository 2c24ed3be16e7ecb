// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

package dsismodel

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	json "github.com/goccy/go-json"
	"github.com/woodsbury/decimal128"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05"
)

func newIssue(f *Field, code IssueCode, format string, args ...any) Issue {
	return Issue{Field: f.Name, Wire: f.Wire, Code: code, Message: fmt.Sprintf(format, args...)}
}

// coerce validates value against the field and returns its typed in-memory
// form. An empty issue list means the value is valid.
func coerce(f *Field, value any) (any, []Issue) {
	switch f.Kind {
	case KindText:
		return coerceText(f, value)
	case KindDate:
		return coerceDate(f, value)
	case KindDateTime:
		return coerceDateTime(f, value)
	case KindBinary:
		return coerceBinary(f, value)
	case KindInt:
		return coerceInt(f, value)
	case KindFloat:
		return coerceFloat(f, value)
	case KindDecimal:
		return coerceDecimal(f, value)
	case KindBool:
		return coerceBool(f, value)
	case KindList:
		return coerceList(f, value)
	case KindRef:
		return coerceRef(f, value)
	default:
		return nil, []Issue{newIssue(f, CodeWrongType, "field has no usable kind")}
	}
}

func coerceText(f *Field, value any) (any, []Issue) {
	s, ok := value.(string)
	if !ok {
		return nil, []Issue{newIssue(f, CodeWrongType, "expected string, got %T", value)}
	}

	var issues []Issue
	if n := utf8.RuneCountInString(s); f.MaxLength > 0 && n > f.MaxLength {
		issues = append(issues, newIssue(f, CodeConstraint, "length %d exceeds maximum %d", n, f.MaxLength))
	} else if f.MinLength > 0 && n < f.MinLength {
		issues = append(issues, newIssue(f, CodeConstraint, "length %d is below minimum %d", n, f.MinLength))
	}
	if f.Pattern != "" {
		matched, err := regexp.MatchString(f.Pattern, s)
		if err != nil {
			issues = append(issues, newIssue(f, CodeConstraint, "pattern %q is invalid: %v", f.Pattern, err))
		} else if !matched {
			issues = append(issues, newIssue(f, CodeConstraint, "value does not match pattern %q", f.Pattern))
		}
	}
	issues = append(issues, enumIssues(f, s)...)
	if len(issues) > 0 {
		return nil, issues
	}
	return s, nil
}

func coerceDate(f *Field, value any) (any, []Issue) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return nil, []Issue{newIssue(f, CodeWrongType, "invalid date %q", v)}
		}
		return t, nil
	default:
		return nil, []Issue{newIssue(f, CodeWrongType, "expected date string, got %T", value)}
	}
}

func coerceDateTime(f *Field, value any) (any, []Issue) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t, nil
		}
		if t, err := time.Parse(dateTimeLayout, v); err == nil {
			return t, nil
		}
		return nil, []Issue{newIssue(f, CodeWrongType, "invalid datetime %q", v)}
	default:
		return nil, []Issue{newIssue(f, CodeWrongType, "expected datetime string, got %T", value)}
	}
}

func coerceBinary(f *Field, value any) (any, []Issue) {
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return nil, []Issue{newIssue(f, CodeWrongType, "expected binary string, got %T", value)}
	}

	if f.MaxLength > 0 && len(b) > f.MaxLength {
		return nil, []Issue{newIssue(f, CodeConstraint, "length %d exceeds maximum %d", len(b), f.MaxLength)}
	}
	if f.MinLength > 0 && len(b) < f.MinLength {
		return nil, []Issue{newIssue(f, CodeConstraint, "length %d is below minimum %d", len(b), f.MinLength)}
	}
	return b, nil
}

func coerceInt(f *Field, value any) (any, []Issue) {
	n, ok := toInt64(value)
	if !ok {
		return nil, []Issue{newIssue(f, CodeWrongType, "expected integer, got %T", value)}
	}

	issues := boundIssues(f, float64(n))
	if f.MultipleOf != 0 && !intMultiple(n, f.MultipleOf) {
		issues = append(issues, newIssue(f, CodeConstraint, "value %d is not a multiple of %v", n, f.MultipleOf))
	}
	issues = append(issues, enumIssues(f, n)...)
	if len(issues) > 0 {
		return nil, issues
	}
	return n, nil
}

func coerceFloat(f *Field, value any) (any, []Issue) {
	x, ok := toFloat64(value)
	if !ok {
		return nil, []Issue{newIssue(f, CodeWrongType, "expected number, got %T", value)}
	}

	issues := boundIssues(f, x)
	if f.MultipleOf != 0 && !floatMultiple(x, f.MultipleOf) {
		issues = append(issues, newIssue(f, CodeConstraint, "value %v is not a multiple of %v", x, f.MultipleOf))
	}
	issues = append(issues, enumIssues(f, x)...)
	if len(issues) > 0 {
		return nil, issues
	}
	return x, nil
}

func coerceDecimal(f *Field, value any) (any, []Issue) {
	var (
		d      decimal128.Decimal
		text   string
		parsed bool
	)
	switch v := value.(type) {
	case decimal128.Decimal:
		d, text, parsed = v, v.String(), true
	case json.Number:
		text = string(v)
	case string:
		text = v
	case float64:
		text = strconv.FormatFloat(v, 'g', -1, 64)
	case float32:
		text = strconv.FormatFloat(float64(v), 'g', -1, 32)
	case int:
		text = strconv.FormatInt(int64(v), 10)
	case int32:
		text = strconv.FormatInt(int64(v), 10)
	case int64:
		text = strconv.FormatInt(v, 10)
	default:
		return nil, []Issue{newIssue(f, CodeWrongType, "expected decimal, got %T", value)}
	}

	if !parsed {
		var err error
		if d, err = decimal128.Parse(text); err != nil {
			return nil, []Issue{newIssue(f, CodeWrongType, "invalid decimal %q", text)}
		}
	}

	var issues []Issue
	if approx, perr := strconv.ParseFloat(text, 64); perr == nil {
		issues = boundIssues(f, approx)
	}
	if f.MultipleOf != 0 && !decimalMultiple(text, f.MultipleOf) {
		issues = append(issues, newIssue(f, CodeConstraint, "value %s is not a multiple of %v", text, f.MultipleOf))
	}
	issues = append(issues, enumIssues(f, d)...)
	if len(issues) > 0 {
		return nil, issues
	}
	return d, nil
}

func coerceBool(f *Field, value any) (any, []Issue) {
	b, ok := value.(bool)
	if !ok {
		return nil, []Issue{newIssue(f, CodeWrongType, "expected boolean, got %T", value)}
	}
	return b, nil
}

func coerceList(f *Field, value any) (any, []Issue) {
	elems, ok := anySlice(value)
	if !ok {
		return nil, []Issue{newIssue(f, CodeWrongType, "expected array, got %T", value)}
	}

	var issues []Issue
	if f.MaxItems > 0 && len(elems) > f.MaxItems {
		issues = append(issues, newIssue(f, CodeConstraint, "%d items exceed maximum %d", len(elems), f.MaxItems))
	}
	if f.MinItems > 0 && len(elems) < f.MinItems {
		issues = append(issues, newIssue(f, CodeConstraint, "%d items are below minimum %d", len(elems), f.MinItems))
	}

	out := make([]any, len(elems))
	for i, elem := range elems {
		elemField := Field{
			Name: fmt.Sprintf("%s[%d]", f.Name, i),
			Wire: f.Wire,
			Kind: f.Elem,
			Ref:  f.Ref,
		}
		typed, elemIssues := coerce(&elemField, elem)
		if len(elemIssues) > 0 {
			issues = append(issues, elemIssues...)
			continue
		}
		out[i] = typed
	}
	if len(issues) > 0 {
		return nil, issues
	}
	return out, nil
}

func coerceRef(f *Field, value any) (any, []Issue) {
	switch v := value.(type) {
	case *Record:
		if v.desc.Title == f.Ref {
			return v, nil
		}
		return nil, []Issue{newIssue(f, CodeWrongType, "expected %s, got %s", f.Ref, v.desc.Title)}
	case map[string]any:
		desc, ok := Lookup(f.Ref)
		if !ok {
			// Target model not linked into this binary; keep the raw
			// mapping rather than failing a value we cannot check.
			return v, nil
		}
		rec, err := New(desc, v)
		if err != nil {
			var verr *ValidationError
			if !errors.As(err, &verr) {
				return nil, []Issue{newIssue(f, CodeWrongType, "invalid %s: %v", f.Ref, err)}
			}
			issues := make([]Issue, len(verr.Issues))
			for i, sub := range verr.Issues {
				issues[i] = Issue{
					Field:   f.Name + "." + sub.Field,
					Wire:    f.Wire,
					Code:    sub.Code,
					Message: sub.Message,
				}
			}
			return nil, issues
		}
		return rec, nil
	default:
		return nil, []Issue{newIssue(f, CodeWrongType, "expected %s object, got %T", f.Ref, value)}
	}
}

func boundIssues(f *Field, v float64) []Issue {
	var issues []Issue
	if f.Minimum != nil && v < *f.Minimum {
		issues = append(issues, newIssue(f, CodeConstraint, "value %v is below minimum %v", v, *f.Minimum))
	}
	if f.Maximum != nil && v > *f.Maximum {
		issues = append(issues, newIssue(f, CodeConstraint, "value %v exceeds maximum %v", v, *f.Maximum))
	}
	if f.ExclusiveMinimum != nil && v <= *f.ExclusiveMinimum {
		issues = append(issues, newIssue(f, CodeConstraint, "value %v must be greater than %v", v, *f.ExclusiveMinimum))
	}
	if f.ExclusiveMaximum != nil && v >= *f.ExclusiveMaximum {
		issues = append(issues, newIssue(f, CodeConstraint, "value %v must be less than %v", v, *f.ExclusiveMaximum))
	}
	return issues
}

func enumIssues(f *Field, v any) []Issue {
	if len(f.Enum) == 0 {
		return nil
	}
	for _, e := range f.Enum {
		if enumEqual(e, v) {
			return nil
		}
	}
	return []Issue{newIssue(f, CodeConstraint, "value %v is not one of the allowed values", v)}
}

func enumEqual(a, b any) bool {
	af, aok := looseFloat(a)
	bf, bok := looseFloat(b)
	if aok && bok {
		return af == bf
	}
	if aok != bok {
		return false
	}
	return a == b
}

func looseFloat(v any) (float64, bool) {
	if d, ok := v.(decimal128.Decimal); ok {
		f, err := strconv.ParseFloat(d.String(), 64)
		return f, err == nil
	}
	return toFloat64(v)
}

func toInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		return int64(v), v <= math.MaxInt64
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		return int64(v), v <= math.MaxInt64
	case float64:
		if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case float32:
		return toInt64(float64(v))
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
		if x, err := v.Float64(); err == nil {
			return toInt64(x)
		}
		return 0, false
	default:
		return 0, false
	}
}

func toFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func anySlice(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = e
		}
		return out, true
	case []int:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = e
		}
		return out, true
	case []int64:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = e
		}
		return out, true
	case []float64:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = e
		}
		return out, true
	case []map[string]any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = e
		}
		return out, true
	default:
		return nil, false
	}
}

func intMultiple(n int64, m float64) bool {
	if m == math.Trunc(m) && m != 0 {
		return n%int64(m) == 0
	}
	return floatMultiple(float64(n), m)
}

func floatMultiple(v, m float64) bool {
	if m == 0 {
		return true
	}
	r := math.Mod(v, m)
	tol := math.Abs(m) * 1e-9
	return math.Abs(r) <= tol || math.Abs(math.Abs(r)-math.Abs(m)) <= tol
}

// decimalMultiple checks a decimal value against multipleOf exactly when
// the multiple is a power of ten, which is how column scale reaches the
// schemas (multipleOf 0.01 for NUMBER(p,2)). Other multiples fall back to
// floating-point remainder.
func decimalMultiple(text string, m float64) bool {
	if scale, ok := pow10Scale(m); ok {
		return decimalScale(text) <= scale
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return false
	}
	return floatMultiple(v, m)
}

// pow10Scale reports whether m equals 10^-scale for some scale >= 0.
func pow10Scale(m float64) (int, bool) {
	if m <= 0 {
		return 0, false
	}
	scale := decimalScale(strconv.FormatFloat(m, 'g', -1, 64))
	scaled := m * math.Pow10(scale)
	if math.Abs(scaled-1) < 1e-9 {
		return scale, true
	}
	return 0, false
}

// decimalScale returns the count of significant fractional digits in a
// decimal string, accepting plain and exponent notation.
func decimalScale(s string) int {
	mant := s
	exp := 0
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mant = s[:i]
		if e, err := strconv.Atoi(s[i+1:]); err == nil {
			exp = e
		}
	}

	frac := ""
	if i := strings.IndexByte(mant, '.'); i >= 0 {
		frac = mant[i+1:]
		mant = mant[:i]
	}
	for len(frac) > 0 && frac[len(frac)-1] == '0' {
		frac = frac[:len(frac)-1]
	}

	scale := len(frac) - exp
	if len(frac) == 0 && exp < 0 {
		// 1500e-3 carries one fractional digit: trailing zeros of the
		// integer part offset the exponent.
		digits := strings.TrimLeft(mant, "+-")
		trailing := 0
		for trailing < len(digits) && digits[len(digits)-1-trailing] == '0' {
			trailing++
		}
		scale = -exp - trailing
	}
	if scale < 0 {
		return 0
	}
	return scale
}
