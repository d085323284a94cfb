package plan

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotObject is returned when a payload expected to be a JSON object isn't one.
var ErrNotObject = errors.New("payload is not a JSON object")

// Record is a JSON object that preserves the order its keys appeared in.
// The AI backend emits plans as objects whose key order is meaningful
// (workout days are listed in sequence) and whose key spelling is not
// stable between calls, so records are kept loosely typed and queried
// through Lookup rather than unmarshalled into structs.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]any)}
}

// DecodeRecord parses data into a Record.
// Returns ErrNotObject if the top-level value is not a JSON object.
func DecodeRecord(data []byte) (*Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decoding record: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrNotObject
	}

	return decodeObject(dec)
}

// Len returns the number of keys in the record.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Keys returns the record's keys in source order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	return r.keys
}

// Get returns the value for an exact key.
func (r *Record) Get(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.values[key]
	return v, ok
}

// Set appends or replaces a key.
func (r *Record) Set(key string, value any) {
	if _, exists := r.values[key]; !exists {
		r.keys = append(r.keys, key)
	}
	r.values[key] = value
}

// UnmarshalJSON implements json.Unmarshaler, preserving key order.
func (r *Record) UnmarshalJSON(data []byte) error {
	rec, err := DecodeRecord(data)
	if err != nil {
		return err
	}
	*r = *rec
	return nil
}

// MarshalJSON implements json.Marshaler, emitting keys in source order.
func (r *Record) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.values[k])
		if err != nil {
			return nil, fmt.Errorf("encoding record key %q: %w", k, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// decodeObject consumes an object body after its opening brace.
func decodeObject(dec *json.Decoder) (*Record, error) {
	rec := NewRecord()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decoding record: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("decoding record: unexpected key token %v", tok)
		}
		val, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		rec.Set(key, val)
	}
	// Closing brace
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("decoding record: %w", err)
	}
	return rec, nil
}

// decodeValue consumes a single JSON value, returning nested objects as *Record.
func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("decoding record: %w", err)
	}

	if delim, ok := tok.(json.Delim); ok {
		switch delim {
		case '{':
			return decodeObject(dec)
		case '[':
			var arr []any
			for dec.More() {
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, fmt.Errorf("decoding record: %w", err)
			}
			return arr, nil
		}
		return nil, fmt.Errorf("decoding record: unexpected delimiter %v", delim)
	}

	if num, ok := tok.(json.Number); ok {
		f, err := num.Float64()
		if err != nil {
			return num.String(), nil
		}
		return f, nil
	}

	return tok, nil
}
