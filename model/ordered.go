// ABOUTME: OrderedMap keeps keys in document (insertion) order for maturity model mappings.
// ABOUTME: Decodes from JSON and YAML without losing the key order the author wrote.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// OrderedMap is a string-keyed map that remembers insertion order. Level and
// capability-category order in the model file drives the diagram layout, so
// a plain Go map is not enough.
type OrderedMap[V any] struct {
	data map[string]V
	keys []string
}

// NewOrderedMap creates an empty OrderedMap.
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{data: make(map[string]V)}
}

// Set inserts or updates a key. New keys are appended; updates keep their position.
func (m *OrderedMap[V]) Set(key string, val V) {
	if m.data == nil {
		m.data = make(map[string]V)
	}
	if _, exists := m.data[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.data[key] = val
}

// Get retrieves a value by key.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}
	v, ok := m.data[key]
	return v, ok
}

// Len returns the number of entries. A nil map has length zero.
func (m *OrderedMap[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns a copy of the keys in insertion order.
func (m *OrderedMap[V]) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Range iterates over entries in insertion order. Return false to stop.
func (m *OrderedMap[V]) Range(fn func(string, V) bool) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		if !fn(k, m.data[k]) {
			break
		}
	}
}

// MarshalJSON serializes the map as a JSON object in insertion order.
func (m *OrderedMap[V]) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		valJSON, err := json.Marshal(m.data[k])
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		buf.Write(valJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object token by token so that key order survives.
func (m *OrderedMap[V]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	m.data = make(map[string]V)
	m.keys = nil
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		var val V
		if err := dec.Decode(&val); err != nil {
			return fmt.Errorf("decode %q: %w", key, err)
		}
		m.Set(key, val)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// UnmarshalYAML walks the mapping node pairs in document order.
func (m *OrderedMap[V]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected mapping", node.Line)
	}

	m.data = make(map[string]V)
	m.keys = nil
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		var val V
		if err := valNode.Decode(&val); err != nil {
			return fmt.Errorf("decode %q: %w", keyNode.Value, err)
		}
		m.Set(keyNode.Value, val)
	}
	return nil
}
