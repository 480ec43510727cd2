package highlight

import (
	"maps"
	"slices"

	"github.com/yaklabco/gomdhl/pkg/mdast"
)

// Change is one document update as seen by the cache.
type Change interface {
	Mapper

	// Doc returns the document after the change.
	Doc() *mdast.Node

	// DocChanged reports whether the content changed at all.
	DocChanged() bool
}

// Entry is a cached block and its ranges.
type Entry struct {
	Node        *mdast.Node
	Decorations []Range
}

// Cache holds the ranges of highlighted blocks keyed by block position.
//
// A Cache is mutated only while its owner builds it. Invalidate never
// changes the receiver, so a published cache can be read while the next one
// is derived from it.
type Cache struct {
	entries map[BlockPos]Entry
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[BlockPos]Entry)}
}

// Get returns the entry at pos.
func (c *Cache) Get(pos BlockPos) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	e, ok := c.entries[pos]
	return e, ok
}

// Set stores an entry at pos, replacing any previous one.
func (c *Cache) Set(pos BlockPos, node *mdast.Node, decorations []Range) {
	c.entries[pos] = Entry{Node: node, Decorations: decorations}
}

// Replace removes the entry at oldPos, if any, and stores one at newPos.
func (c *Cache) Replace(oldPos, newPos BlockPos, node *mdast.Node, decorations []Range) {
	c.Remove(oldPos)
	c.Set(newPos, node, decorations)
}

// Remove deletes the entry at pos. Missing entries are ignored.
func (c *Cache) Remove(pos BlockPos) {
	delete(c.entries, pos)
}

// Len returns the number of entries.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Positions returns the keys in document order, WholeDocument first.
func (c *Cache) Positions() []BlockPos {
	if c == nil {
		return nil
	}
	return slices.SortedFunc(maps.Keys(c.entries), compareBlockPos)
}

// Invalidate returns a new cache reconciled with change.
//
// Each entry's position is mapped through the change. The entry is dropped
// when its position was deleted or the node now at the mapped position is
// not equal to the cached one. An entry whose block moved is re-keyed and
// its ranges are mapped too; an unmoved entry is kept as is. The
// WholeDocument entry survives only if the document is unchanged.
func (c *Cache) Invalidate(change Change) *Cache {
	next := NewCache()
	if c == nil {
		return next
	}
	doc := change.Doc()

	for pos, entry := range c.entries {
		offset, ok := pos.Offset()
		if !ok {
			if doc.Equal(entry.Node) {
				next.entries[pos] = entry
			}
			continue
		}

		result := change.MapResult(offset, 1)
		if result.Deleted {
			continue
		}
		mapped := doc.NodeAt(result.Pos)
		if mapped == nil || !mapped.Equal(entry.Node) {
			continue
		}
		if result.Pos == offset {
			next.entries[pos] = entry
			continue
		}
		// Mapping is monotonic, so surviving keys stay distinct: two offsets
		// only meet when the span between them was deleted, and with assoc 1
		// that reports the earlier one as Deleted.
		next.entries[At(result.Pos)] = Entry{
			Node:        mapped,
			Decorations: mapRanges(entry.Decorations, change),
		}
	}
	return next
}

// Lookup returns the cached ranges of b. It lets a Cache serve as the
// lookup side of Hooks.
func (c *Cache) Lookup(b Block) ([]Range, bool) {
	e, ok := c.Get(b.Pos)
	if !ok {
		return nil, false
	}
	return e.Decorations, true
}

// Store caches the ranges of b.
func (c *Cache) Store(b Block, ranges []Range) {
	c.Set(b.Pos, b.Node, ranges)
}
