// ABOUTME: Tests for OrderedMap insertion order, updates, and JSON/YAML decoding.
package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestOrderedMapSetKeepsPosition(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("b", 3)

	assert.Equal(t, []string{"b", "a"}, m.Keys())
	v, ok := m.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
	assert.Equal(t, 2, m.Len())
}

func TestOrderedMapNilIsEmpty(t *testing.T) {
	var m *OrderedMap[string]
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Keys())
	_, ok := m.Get("x")
	assert.False(t, ok)
	m.Range(func(string, string) bool {
		t.Fatal("range over nil map should not call fn")
		return true
	})
}

func TestOrderedMapRangeStops(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("x", 1)
	m.Set("y", 2)
	m.Set("z", 3)

	var seen []string
	m.Range(func(k string, _ int) bool {
		seen = append(seen, k)
		return k != "y"
	})
	assert.Equal(t, []string{"x", "y"}, seen)
}

func TestOrderedMapJSONRoundTripOrder(t *testing.T) {
	var m OrderedMap[[]string]
	require.NoError(t, json.Unmarshal([]byte(`{"zeta":["1"],"alpha":["2","3"]}`), &m))
	assert.Equal(t, []string{"zeta", "alpha"}, m.Keys())

	out, err := json.Marshal(&m)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":["1"],"alpha":["2","3"]}`, string(out))
}

func TestOrderedMapJSONRejectsArray(t *testing.T) {
	var m OrderedMap[int]
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &m))
}

func TestOrderedMapYAMLOrder(t *testing.T) {
	var m OrderedMap[int]
	require.NoError(t, yaml.Unmarshal([]byte("zeta: 1\nalpha: 2\nmid: 3\n"), &m))
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, m.Keys())
}

func TestOrderedMapYAMLRejectsSequence(t *testing.T) {
	var m OrderedMap[int]
	assert.Error(t, yaml.Unmarshal([]byte("- 1\n- 2\n"), &m))
}
