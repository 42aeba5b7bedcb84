package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Entry is one key/value pair of an Ordered mapping.
type Entry[V any] struct {
	Key   string
	Value V
}

// Ordered is a string-keyed mapping that keeps insertion order.
// It marshals to a JSON object and unmarshals preserving document order.
type Ordered[V any] []Entry[V]

// Get returns the value stored under key.
func (o Ordered[V]) Get(key string) (V, bool) {
	for _, e := range o {
		if e.Key == key {
			return e.Value, true
		}
	}
	var zero V
	return zero, false
}

// Keys returns the keys in insertion order.
func (o Ordered[V]) Keys() []string {
	keys := make([]string, 0, len(o))
	for _, e := range o {
		keys = append(keys, e.Key)
	}
	return keys
}

// Set replaces the value under key, or appends it when absent.
func (o *Ordered[V]) Set(key string, value V) {
	for i := range *o {
		if (*o)[i].Key == key {
			(*o)[i].Value = value
			return
		}
	}
	*o = append(*o, Entry[V]{Key: key, Value: value})
}

// MarshalJSON writes the entries as a JSON object in order.
func (o Ordered[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object keeping the key order of the document.
func (o *Ordered[V]) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*o = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	result := Ordered[V]{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		var value V
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("failed to decode value for %q: %w", key, err)
		}
		result = append(result, Entry[V]{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*o = result
	return nil
}
