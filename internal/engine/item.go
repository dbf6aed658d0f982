package engine

import (
	"github.com/roach88/forgepatch/internal/ir"
	"github.com/roach88/forgepatch/internal/recordstore"
	"github.com/roach88/forgepatch/internal/report"
)

// ItemContext is the transient state of one item. It is created when the
// item is picked up and dropped after its report is flushed; nothing in it
// outlives the item.
type ItemContext struct {
	Profile *Profile

	// Winning is the record as the load order left it. It is never
	// mutated; changes go through EnsureOverride.
	Winning *ir.Item

	Category ir.Category

	NonPlayable bool
	// Modified is set once an override exists for the item.
	Modified bool
	// Overridden is set when a masquerade rule forced the item.
	Overridden bool
	// Unique items never get breakdown recipes.
	Unique bool

	// Materials are the identified materials, most significant first.
	Materials      []ir.Descriptor
	MaterialTagged bool

	TypeID     string
	TypeTagged bool

	Report *report.Report

	store    recordstore.Store
	override *ir.Item
}

func newItemContext(p *Profile, winning *ir.Item, store recordstore.Store) *ItemContext {
	return &ItemContext{
		Profile:     p,
		Winning:     winning,
		Category:    winning.Category,
		NonPlayable: !winning.Playable,
		Report:      report.New(winning.Name, winning.EditorID, winning.Playable),
		store:       store,
	}
}

// EnsureOverride returns the item's override, creating it on first use.
// Every later call returns the same record.
func (c *ItemContext) EnsureOverride() (*ir.Item, error) {
	if c.override != nil {
		return c.override, nil
	}
	ov, err := c.store.OverrideItem(c.Winning.Ref)
	if err != nil {
		return nil, err
	}
	c.override = ov
	c.Modified = true
	return ov, nil
}

// Current returns the override when one exists, else the winning record.
func (c *ItemContext) Current() *ir.Item {
	if c.override != nil {
		return c.override
	}
	return c.Winning
}

// Name is the item's current display name.
func (c *ItemContext) Name() string {
	return c.Current().Name
}

// MaterialID is the id of the most significant material, or "".
func (c *ItemContext) MaterialID() string {
	if len(c.Materials) == 0 {
		return ""
	}
	return c.Materials[0].ID
}

// Facts is the environment of rule predicates.
func (c *ItemContext) Facts() map[string]any {
	it := c.Current()
	facts := map[string]any{
		"name":     it.Name,
		"editorID": it.EditorID,
		"category": c.Category.String(),
		"domain":   string(c.Profile.Domain),
		"slot":     string(it.Slot),
		"playable": it.Playable,
		"material": c.MaterialID(),
		"type":     c.TypeID,
		"unique":   c.Unique,
	}
	for m, v := range it.Stats {
		facts[string(m)] = v
	}
	return facts
}
