// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Equinor ASA

package dsismodel

import (
	"bytes"
	"fmt"
	"time"

	json "github.com/goccy/go-json"
	"github.com/woodsbury/decimal128"
)

// Record is a validated instance of a generated model. Absent optional
// fields stay absent: Has distinguishes "not supplied" from any supplied
// value, including empty strings and zeros.
type Record struct {
	desc   *Descriptor
	values map[string]any
	extras map[string]any
}

// New builds a record from a mapping of property name to value. Keys match
// on the wire name first, then on the sanitized identifier. Every problem
// in the input is collected before returning: the error is always a
// *ValidationError enumerating all missing, mistyped, and out-of-constraint
// fields in declaration order. Properties the descriptor does not know are
// kept as extras.
func New(desc *Descriptor, values map[string]any) (*Record, error) {
	rec := &Record{
		desc:   desc,
		values: make(map[string]any, len(values)),
	}
	verr := &ValidationError{Model: desc.Title}
	consumed := make(map[string]struct{}, len(values))

	for i := range desc.Fields {
		f := &desc.Fields[i]

		raw, ok := values[f.Wire]
		if ok {
			consumed[f.Wire] = struct{}{}
		} else if f.Name != f.Wire {
			if raw, ok = values[f.Name]; ok {
				consumed[f.Name] = struct{}{}
			}
		}

		if !ok {
			if f.Required {
				verr.Issues = append(verr.Issues, newIssue(f, CodeMissing, "missing required field"))
			}
			continue
		}
		if raw == nil {
			if f.Required {
				verr.Issues = append(verr.Issues, newIssue(f, CodeMissing, "required field is null"))
			}
			continue
		}

		typed, issues := coerce(f, raw)
		if len(issues) > 0 {
			verr.Issues = append(verr.Issues, issues...)
			continue
		}
		rec.values[f.Name] = typed
	}

	for k, v := range values {
		if _, ok := consumed[k]; ok {
			continue
		}
		if rec.extras == nil {
			rec.extras = make(map[string]any)
		}
		rec.extras[k] = v
	}

	if len(verr.Issues) > 0 {
		return nil, verr
	}
	return rec, nil
}

// FromJSON decodes JSON text and builds a record from it. Numbers decode
// exactly, so decimal fields keep their full precision.
func FromJSON(desc *Descriptor, data []byte) (*Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var values map[string]any
	if err := dec.Decode(&values); err != nil {
		return nil, fmt.Errorf("decode %s: %w", desc.Title, err)
	}
	return New(desc, values)
}

// Descriptor returns the model descriptor this record was built from.
func (r *Record) Descriptor() *Descriptor {
	return r.desc
}

// Has reports whether the field was supplied, by identifier or wire name.
func (r *Record) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Get returns the typed value of a field, by identifier or wire name. The
// second return is false when the field was not supplied.
func (r *Record) Get(name string) (any, bool) {
	if v, ok := r.values[name]; ok {
		return v, true
	}
	if f, ok := r.desc.FieldByWire(name); ok {
		v, present := r.values[f.Name]
		return v, present
	}
	return nil, false
}

// Extras returns properties that were supplied but are not declared by the
// descriptor.
func (r *Record) Extras() map[string]any {
	if len(r.extras) == 0 {
		return nil
	}
	out := make(map[string]any, len(r.extras))
	for k, v := range r.extras {
		out[k] = v
	}
	return out
}

// ToMap converts the record back to a plain mapping keyed by wire names,
// so sanitized identifiers round-trip to their original property names.
// Absent fields are omitted. The result feeds back into New unchanged.
func (r *Record) ToMap() map[string]any {
	out := make(map[string]any, len(r.values)+len(r.extras))
	for i := range r.desc.Fields {
		f := &r.desc.Fields[i]
		v, ok := r.values[f.Name]
		if !ok {
			continue
		}
		out[f.Wire] = mapValue(v)
	}
	for k, v := range r.extras {
		out[k] = v
	}
	return out
}

func mapValue(v any) any {
	switch tv := v.(type) {
	case *Record:
		return tv.ToMap()
	case []any:
		out := make([]any, len(tv))
		for i, e := range tv {
			out[i] = mapValue(e)
		}
		return out
	default:
		return v
	}
}

// MarshalJSON serializes the record using wire names. Dates format as
// 2006-01-02, timestamps as RFC 3339, decimals as plain JSON numbers, and
// binary fields as strings. Keys serialize in sorted order, so equal
// records marshal to identical bytes.
func (r *Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.values)+len(r.extras))
	for i := range r.desc.Fields {
		f := &r.desc.Fields[i]
		v, ok := r.values[f.Name]
		if !ok {
			continue
		}
		out[f.Wire] = jsonValue(f, v)
	}
	for k, v := range r.extras {
		out[k] = v
	}
	return json.Marshal(out)
}

func jsonValue(f *Field, v any) any {
	switch tv := v.(type) {
	case time.Time:
		if f.Kind == KindDate || (f.Kind == KindList && f.Elem == KindDate) {
			return tv.Format(dateLayout)
		}
		return tv.Format(time.RFC3339)
	case []byte:
		return string(tv)
	case decimal128.Decimal:
		return json.RawMessage(tv.String())
	case []any:
		out := make([]any, len(tv))
		for i, e := range tv {
			out[i] = jsonValue(f, e)
		}
		return out
	default:
		return v
	}
}
