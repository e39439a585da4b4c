// ABOUTME: Maturity model types and loaders for JSON and YAML model files.
// ABOUTME: Levels and capability categories keep the order they were written in.
package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNoLevels is returned when a model file defines no maturity levels.
var ErrNoLevels = errors.New("model defines no levels")

// Format identifies the encoding of a model file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks a Format from the file extension. Anything that is not
// .yaml or .yml is treated as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Model is a maturity model: an ordered set of levels keyed by level identifier
// (for example "L1").
type Model struct {
	Levels *OrderedMap[Level] `json:"levels" yaml:"levels"`
}

// Level describes one maturity level.
type Level struct {
	Title        string                `json:"title" yaml:"title"`
	Description  string                `json:"description" yaml:"description"`
	Features     Text                  `json:"features" yaml:"features"`
	Capabilities *OrderedMap[[]string] `json:"capabilities,omitempty" yaml:"capabilities,omitempty"`
}

// Text is a display string that may be written either as a plain string or as
// a list of strings in the model file. Lists are joined with "; ".
type Text string

// UnmarshalJSON accepts a string or an array of strings.
func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Text(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("expected string or list of strings: %w", err)
	}
	*t = Text(strings.Join(list, "; "))
	return nil
}

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (t *Text) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*t = Text(node.Value)
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := node.Decode(&list); err != nil {
			return err
		}
		*t = Text(strings.Join(list, "; "))
		return nil
	default:
		return fmt.Errorf("line %d: expected string or list of strings", node.Line)
	}
}

func (t Text) String() string { return string(t) }

// Load reads, validates, and parses the model file at path.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	m, err := Parse(data, FormatForPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse validates data against the model schema and decodes it.
func Parse(data []byte, format Format) (*Model, error) {
	if err := Validate(data, format); err != nil {
		return nil, err
	}

	var m Model
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&m); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	}

	if m.Levels.Len() == 0 {
		return nil, ErrNoLevels
	}
	return &m, nil
}

// LevelIDs returns the level identifiers in model order.
func (m *Model) LevelIDs() []string {
	return m.Levels.Keys()
}

// Level returns the level with the given identifier.
func (m *Model) Level(id string) (Level, bool) {
	return m.Levels.Get(id)
}

// Categories returns every capability category in first-seen order across levels.
func (m *Model) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	m.Levels.Range(func(_ string, lvl Level) bool {
		lvl.Capabilities.Range(func(cat string, _ []string) bool {
			if !seen[cat] {
				seen[cat] = true
				out = append(out, cat)
			}
			return true
		})
		return true
	})
	return out
}

// Capabilities returns the capability list for a category at a level, and
// whether the level defines that category at all.
func (m *Model) Capabilities(levelID, category string) ([]string, bool) {
	lvl, ok := m.Levels.Get(levelID)
	if !ok {
		return nil, false
	}
	return lvl.Capabilities.Get(category)
}

// CapabilityCount returns the total number of capability items in the model.
func (m *Model) CapabilityCount() int {
	n := 0
	m.Levels.Range(func(_ string, lvl Level) bool {
		lvl.Capabilities.Range(func(_ string, caps []string) bool {
			n += len(caps)
			return true
		})
		return true
	})
	return n
}
