// Package playlist provides the playlist cursor entity.
package playlist

import "github.com/osa030/showreel/internal/domain/asset"

// Cursor is a position in an ordered list of assets. The zero value is an
// empty cursor at index 0.
type Cursor struct {
	items []asset.Asset
	index int
}

// Prime replaces the items and rewinds to index 0.
func (c *Cursor) Prime(items []asset.Asset) {
	c.items = make([]asset.Asset, len(items))
	copy(c.items, items)
	c.index = 0
}

// Reset empties the cursor.
func (c *Cursor) Reset() {
	c.items = nil
	c.index = 0
}

// Current returns the asset at the cursor. ok is false once exhausted.
func (c *Cursor) Current() (asset.Asset, bool) {
	if c.index >= len(c.items) {
		return asset.Asset{}, false
	}
	return c.items[c.index], true
}

// Advance moves one item forward and reports whether an item remains.
// Advancing an exhausted cursor leaves it where it is.
func (c *Cursor) Advance() bool {
	if c.index < len(c.items) {
		c.index++
	}
	return c.index < len(c.items)
}

// Exhausted reports whether the cursor is past the last item.
func (c *Cursor) Exhausted() bool {
	return c.index >= len(c.items)
}

// Index returns the current position.
func (c *Cursor) Index() int {
	return c.index
}

// Len returns the number of items.
func (c *Cursor) Len() int {
	return len(c.items)
}

// Items returns a copy of the items.
func (c *Cursor) Items() []asset.Asset {
	out := make([]asset.Asset, len(c.items))
	copy(out, c.items)
	return out
}
