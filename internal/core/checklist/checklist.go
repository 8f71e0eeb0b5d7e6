// Package checklist holds the scope and daily log data model shared by the core
package checklist

import (
	"encoding/json"
	"strings"

	perr "scopetrack/internal/platform/errors"
)

// ScopeItem is one contracted task; Order is its zero-based position in the checklist
type ScopeItem struct {
	Text  string `json:"text"`
	Order int    `json:"order"`
}

// Checklist is an ordered, immutable list of scope items for one project
// The zero value is an empty checklist
type Checklist struct {
	items []ScopeItem
}

// New builds a checklist from item texts in order
func New(texts ...string) Checklist {
	if len(texts) == 0 {
		return Checklist{}
	}
	items := make([]ScopeItem, len(texts))
	for i, t := range texts {
		items[i] = ScopeItem{Text: t, Order: i}
	}
	return Checklist{items: items}
}

// FromItems copies items into a checklist as given; call Validate before trusting it
func FromItems(items []ScopeItem) Checklist {
	if len(items) == 0 {
		return Checklist{}
	}
	return Checklist{items: append([]ScopeItem(nil), items...)}
}

// Len returns the number of items
func (c Checklist) Len() int { return len(c.items) }

// Empty reports whether the checklist has no items
func (c Checklist) Empty() bool { return len(c.items) == 0 }

// At returns the i-th item
func (c Checklist) At(i int) ScopeItem { return c.items[i] }

// Items returns a copy of the items
func (c Checklist) Items() []ScopeItem {
	if len(c.items) == 0 {
		return []ScopeItem{}
	}
	return append([]ScopeItem(nil), c.items...)
}

// Texts returns the item texts in order
func (c Checklist) Texts() []string {
	out := make([]string, len(c.items))
	for i, it := range c.items {
		out[i] = it.Text
	}
	return out
}

// Equal reports whether both checklists hold the same items in the same order
func (c Checklist) Equal(o Checklist) bool {
	if len(c.items) != len(o.items) {
		return false
	}
	for i := range c.items {
		if c.items[i] != o.items[i] {
			return false
		}
	}
	return true
}

// Validate rejects blank items and orders that do not match their position
func (c Checklist) Validate() error {
	for i, it := range c.items {
		if strings.TrimSpace(it.Text) == "" {
			return perr.WithField(perr.Validationf("checklist item %d is blank", i), "items")
		}
		if it.Order != i {
			return perr.WithField(perr.Validationf("checklist item %d has order %d", i, it.Order), "items")
		}
	}
	return nil
}

// MarshalJSON writes the persisted form: a JSON array of item texts
func (c Checklist) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Texts())
}

// UnmarshalJSON reads a JSON array of item texts; null yields an empty checklist
func (c *Checklist) UnmarshalJSON(b []byte) error {
	var texts []string
	if err := json.Unmarshal(b, &texts); err != nil {
		return err
	}
	*c = New(texts...)
	return nil
}
