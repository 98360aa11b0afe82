package records

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field is one key/value pair of a record. Value holds the raw JSON bytes.
type Field struct {
	Key   string
	Value json.RawMessage
}

// Record is a JSON object that remembers its key order and keeps every value
// as raw JSON, so fields a stage does not own round-trip unchanged.
type Record struct {
	fields []Field
}

// NewRecord builds a record from fields in order. Later duplicates replace
// earlier values in place.
func NewRecord(fields ...Field) Record {
	var r Record
	for _, f := range fields {
		r.Set(f.Key, f.Value)
	}
	return r
}

// Len returns the number of fields.
func (r Record) Len() int { return len(r.fields) }

// Keys returns the field names in document order.
func (r Record) Keys() []string {
	keys := make([]string, len(r.fields))
	for i, f := range r.fields {
		keys[i] = f.Key
	}
	return keys
}

// Has reports whether the record carries key.
func (r Record) Has(key string) bool {
	_, ok := r.Raw(key)
	return ok
}

// Raw returns the raw JSON value stored under key.
func (r Record) Raw(key string) (json.RawMessage, bool) {
	for _, f := range r.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Require returns the raw value under key or a missing field error.
func (r Record) Require(key string) (json.RawMessage, error) {
	raw, ok := r.Raw(key)
	if !ok {
		return nil, missingField(key)
	}
	return raw, nil
}

// String returns the string stored under key.
func (r Record) String(key string) (string, error) {
	raw, err := r.Require(key)
	if err != nil {
		return "", err
	}
	return coerceString(key, raw)
}

// Int returns the value under key coerced to an int.
func (r Record) Int(key string) (int, error) {
	raw, err := r.Require(key)
	if err != nil {
		return 0, err
	}
	return coerceInt(key, raw)
}

// Set stores value under key, keeping the original position when the key
// already exists. An empty value is stored as null.
func (r *Record) Set(key string, value json.RawMessage) {
	if len(bytes.TrimSpace(value)) == 0 {
		value = json.RawMessage("null")
	}
	for i := range r.fields {
		if r.fields[i].Key == key {
			r.fields[i].Value = value
			return
		}
	}
	r.fields = append(r.fields, Field{Key: key, Value: value})
}

// SetString stores s under key as a JSON string without HTML escaping.
func (r *Record) SetString(key, s string) error {
	raw, err := marshalNoEscape(s)
	if err != nil {
		return fmt.Errorf("encode field %q: %w", key, err)
	}
	r.Set(key, raw)
	return nil
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	if r.fields == nil {
		return Record{}
	}
	fields := make([]Field, len(r.fields))
	for i, f := range r.fields {
		fields[i] = Field{Key: f.Key, Value: append(json.RawMessage(nil), f.Value...)}
	}
	return Record{fields: fields}
}

// UnmarshalJSON decodes a JSON object, preserving key order. Duplicate keys
// keep their first position and their last value.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return coercionError("", "object", data)
	}
	r.fields = nil
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected object key %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("decode field %q: %w", key, err)
		}
		r.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	if r.fields == nil {
		r.fields = []Field{}
	}
	return nil
}

// MarshalJSON encodes the record with its fields in stored order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalNoEscape(f.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if len(f.Value) == 0 {
			buf.WriteString("null")
			continue
		}
		buf.Write(f.Value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalNoEscape encodes v as compact JSON, leaving <, > and & as-is so
// markup stays readable in the output files.
func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
