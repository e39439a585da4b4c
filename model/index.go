// ABOUTME: CapabilityIndex pivots the model to category -> level -> capabilities.
// ABOUTME: This is the shape the interactive tracking page embeds as JSON.
package model

import "fmt"

// CapabilityIndex maps each capability category to the levels that define it,
// and each of those levels to its ordered capability list.
type CapabilityIndex struct {
	*OrderedMap[*OrderedMap[[]string]]
}

// CapabilityIndex builds the category-first view of the model. Categories are
// in first-seen order and levels keep model order within each category.
// Levels without capabilities contribute nothing.
func (m *Model) CapabilityIndex() *CapabilityIndex {
	idx := NewOrderedMap[*OrderedMap[[]string]]()
	m.Levels.Range(func(levelID string, lvl Level) bool {
		lvl.Capabilities.Range(func(cat string, caps []string) bool {
			byLevel, ok := idx.Get(cat)
			if !ok {
				byLevel = NewOrderedMap[[]string]()
				idx.Set(cat, byLevel)
			}
			byLevel.Set(levelID, caps)
			return true
		})
		return true
	})
	return &CapabilityIndex{OrderedMap: idx}
}

// CheckboxIDs returns the tracking identifiers for every capability, in the
// form "<category>-<level>-<index>", matching the interactive page.
func (c *CapabilityIndex) CheckboxIDs() []string {
	var ids []string
	c.Range(func(cat string, byLevel *OrderedMap[[]string]) bool {
		byLevel.Range(func(levelID string, caps []string) bool {
			for i := range caps {
				ids = append(ids, CheckboxID(cat, levelID, i))
			}
			return true
		})
		return true
	})
	return ids
}

// CheckboxID formats the tracking identifier of one capability item.
func CheckboxID(category, levelID string, index int) string {
	return fmt.Sprintf("%s-%s-%d", category, levelID, index)
}
