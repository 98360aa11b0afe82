package records

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// DataKey is the envelope key holding the record array.
const DataKey = "data"

// EncodeOptions controls how collections are written.
type EncodeOptions struct {
	Indent bool
}

// Collection is a decoded {"data": [...]} envelope. Top-level keys other than
// data are kept so they can be written back unchanged.
type Collection struct {
	envelope Record
	Data     []Record
}

// NewCollection wraps records in a bare {"data": [...]} envelope.
func NewCollection(data []Record) *Collection {
	return &Collection{Data: data}
}

// WithData returns a collection that shares c's envelope but carries data.
func (c *Collection) WithData(data []Record) *Collection {
	return &Collection{envelope: c.envelope.Clone(), Data: data}
}

// Decode reads a collection from r.
func Decode(r io.Reader) (*Collection, error) {
	var envelope Record
	if err := json.NewDecoder(r).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode collection: %w", err)
	}
	raw, err := envelope.Require(DataKey)
	if err != nil {
		return nil, err
	}
	data, err := decodeArray(raw)
	if err != nil {
		return nil, err
	}
	return &Collection{envelope: envelope, Data: data}, nil
}

// ReadFile opens path, decodes the whole collection and closes the file
// before returning.
func ReadFile(path string) (*Collection, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	coll, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return coll, nil
}

func decodeArray(raw json.RawMessage) ([]Record, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, coercionError(DataKey, "array", raw)
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	data := []Record{}
	for i := 0; dec.More(); i++ {
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			return nil, AtIndex(err, i)
		}
		data = append(data, rec)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return data, nil
}

// Marshal encodes the collection, replacing the envelope's data with c.Data.
func (c *Collection) Marshal(opts EncodeOptions) ([]byte, error) {
	data := c.Data
	if data == nil {
		data = []Record{}
	}
	raw, err := marshalNoEscape(data)
	if err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}
	envelope := c.envelope.Clone()
	envelope.Set(DataKey, raw)
	return Marshal(envelope, opts)
}

// MarshalData wraps data in a {"data": ...} envelope and encodes it.
func MarshalData(data any, opts EncodeOptions) ([]byte, error) {
	return Marshal(struct {
		Data any `json:"data"`
	}{Data: data}, opts)
}

// Marshal encodes v without HTML escaping, optionally indented, followed by a
// trailing newline.
func Marshal(v any, opts EncodeOptions) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if opts.Indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalData decodes the data array of an envelope read from r into v.
func UnmarshalData(r io.Reader, v any) error {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(r).Decode(&envelope); err != nil {
		return fmt.Errorf("decode collection: %w", err)
	}
	if len(envelope.Data) == 0 {
		return missingField(DataKey)
	}
	if err := json.Unmarshal(envelope.Data, v); err != nil {
		return fmt.Errorf("decode %s: %w", DataKey, err)
	}
	return nil
}
