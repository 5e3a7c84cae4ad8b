// Package table is a virtualized list engine: an ordered collection of
// rows keyed by stable identity, and a transaction engine that applies
// inserts, deletes and updates while keeping the on-screen rows visually
// continuous.
package table

import (
	"errors"
	"fmt"
	"image"
	"sort"
)

var (
	// ErrDuplicateID reports an insertion whose stable id is already
	// attached.
	ErrDuplicateID = errors.New("table: duplicate stable id")
	// ErrIndexOutOfRange reports an index outside the collection.
	ErrIndexOutOfRange = errors.New("table: index out of range")
)

// Row carries an item's attachment state. Every Item embeds a Row.
type Row struct {
	index    int
	attached bool
}

// Index returns the item's position, or -1 when it is detached.
func (r *Row) Index() int {
	if !r.attached {
		return -1
	}
	return r.index
}

// Attached reports whether the item is in a collection.
func (r *Row) Attached() bool { return r.attached }

func (r *Row) base() *Row { return r }

// Item is a row model. Implementations embed Row and must return a
// StableID that is comparable and unique among attached items.
type Item interface {
	StableID() any
	Height(width int) int
	base() *Row
}

// WidthDependent is implemented by items whose height depends on the
// table width.
type WidthDependent interface {
	WidthDependent() bool
}

// Anchorable is implemented by items that may opt out of serving as a
// scroll anchor.
type Anchorable interface {
	CanBeAnchor() bool
}

func widthDependent(it Item) bool {
	w, ok := it.(WidthDependent)
	return ok && w.WidthDependent()
}

func canBeAnchor(it Item) bool {
	a, ok := it.(Anchorable)
	return !ok || a.CanBeAnchor()
}

// Collection is the ordered row set with memoized heights and offsets.
type Collection struct {
	items   []Item
	ids     map[any]int
	heights []int
	known   []bool
	offsets []int
	dirty   bool
	width   int
}

// NewCollection returns an empty collection laid out at width.
func NewCollection(width int) *Collection {
	return &Collection{
		ids:     make(map[any]int),
		offsets: []int{0},
		width:   width,
	}
}

// Len returns the number of items.
func (c *Collection) Len() int { return len(c.items) }

// At returns the item at i.
func (c *Collection) At(i int) Item { return c.items[i] }

// Items returns the items in order. The slice must not be modified.
func (c *Collection) Items() []Item { return c.items }

// IndexOf returns the index of the item with stable id id.
func (c *Collection) IndexOf(id any) (int, bool) {
	i, ok := c.ids[id]
	return i, ok
}

// Find returns the item with stable id id.
func (c *Collection) Find(id any) (Item, bool) {
	i, ok := c.ids[id]
	if !ok {
		return nil, false
	}
	return c.items[i], true
}

// reindex renumbers items from i on.
func (c *Collection) reindex(from int) {
	for i := from; i < len(c.items); i++ {
		it := c.items[i]
		b := it.base()
		b.index, b.attached = i, true
		c.ids[it.StableID()] = i
	}
	c.dirty = true
}

func (c *Collection) checkIndex(i, n int, op string) {
	if i < 0 || i >= n {
		panic(fmt.Errorf("%w: %s at %d, length %d", ErrIndexOutOfRange, op, i, len(c.items)))
	}
}

// Insert attaches it at index i. It panics with ErrDuplicateID or
// ErrIndexOutOfRange before changing anything.
func (c *Collection) Insert(i int, it Item) {
	c.checkIndex(i, len(c.items)+1, "insert")
	if _, dup := c.ids[it.StableID()]; dup {
		panic(fmt.Errorf("%w: %v", ErrDuplicateID, it.StableID()))
	}
	c.items = append(c.items, nil)
	copy(c.items[i+1:], c.items[i:])
	c.items[i] = it
	c.heights = append(c.heights, 0)
	copy(c.heights[i+1:], c.heights[i:])
	c.known = append(c.known, false)
	copy(c.known[i+1:], c.known[i:])
	c.known[i] = false
	c.reindex(i)
}

// Remove detaches and returns the item at i.
func (c *Collection) Remove(i int) Item {
	c.checkIndex(i, len(c.items), "remove")
	it := c.items[i]
	c.items = append(c.items[:i], c.items[i+1:]...)
	c.heights = append(c.heights[:i], c.heights[i+1:]...)
	c.known = append(c.known[:i], c.known[i+1:]...)
	delete(c.ids, it.StableID())
	b := it.base()
	b.index, b.attached = 0, false
	c.reindex(i)
	return it
}

// Move relocates the item at from so that it ends up at index to.
func (c *Collection) Move(from, to int) {
	c.checkIndex(from, len(c.items), "move")
	c.checkIndex(to, len(c.items), "move")
	if from == to {
		return
	}
	it, h, k := c.items[from], c.heights[from], c.known[from]
	c.items = append(c.items[:from], c.items[from+1:]...)
	c.heights = append(c.heights[:from], c.heights[from+1:]...)
	c.known = append(c.known[:from], c.known[from+1:]...)

	c.items = append(c.items, nil)
	copy(c.items[to+1:], c.items[to:])
	c.items[to] = it
	c.heights = append(c.heights, 0)
	copy(c.heights[to+1:], c.heights[to:])
	c.heights[to] = h
	c.known = append(c.known, false)
	copy(c.known[to+1:], c.known[to:])
	c.known[to] = k
	c.reindex(min(from, to))
}

// Replace swaps the item at i for it, which may carry a new stable id.
func (c *Collection) Replace(i int, it Item) {
	c.checkIndex(i, len(c.items), "replace")
	old := c.items[i]
	if j, dup := c.ids[it.StableID()]; dup && j != i {
		panic(fmt.Errorf("%w: %v", ErrDuplicateID, it.StableID()))
	}
	if old != it {
		ob := old.base()
		ob.index, ob.attached = 0, false
	}
	delete(c.ids, old.StableID())
	c.items[i] = it
	c.known[i] = false
	c.reindex(i)
}

// Width returns the layout width.
func (c *Collection) Width() int { return c.width }

// SetWidth changes the layout width, forgetting the heights of
// width-dependent items. It returns whether any height was invalidated.
func (c *Collection) SetWidth(w int) bool {
	if w == c.width {
		return false
	}
	c.width = w
	changed := false
	for i, it := range c.items {
		if widthDependent(it) {
			c.known[i] = false
			changed = true
		}
	}
	if changed {
		c.dirty = true
	}
	return changed
}

// Invalidate forgets the memoized height of item i.
func (c *Collection) Invalidate(i int) {
	c.checkIndex(i, len(c.items), "invalidate")
	c.known[i] = false
	c.dirty = true
}

func (c *Collection) layout() {
	if !c.dirty && len(c.offsets) == len(c.items)+1 {
		return
	}
	c.offsets = c.offsets[:0]
	y := 0
	c.offsets = append(c.offsets, 0)
	for i, it := range c.items {
		if !c.known[i] {
			c.heights[i] = max(it.Height(c.width), 0)
			c.known[i] = true
		}
		y += c.heights[i]
		c.offsets = append(c.offsets, y)
	}
	c.dirty = false
}

// Height returns the height of item i.
func (c *Collection) Height(i int) int {
	c.layout()
	return c.heights[i]
}

// Top returns the content y of item i's top edge; Top(Len()) is the
// content height.
func (c *Collection) Top(i int) int {
	c.layout()
	return c.offsets[i]
}

// ContentHeight returns the summed height of all items.
func (c *Collection) ContentHeight() int {
	c.layout()
	return c.offsets[len(c.items)]
}

// Frame returns item i's rectangle in content coordinates.
func (c *Collection) Frame(i int) image.Rectangle {
	c.layout()
	return image.Rect(0, c.offsets[i], c.width, c.offsets[i+1])
}

// RowAt returns the index of the item covering content y, clamped to the
// collection. It returns -1 when the collection is empty.
func (c *Collection) RowAt(y int) int {
	n := len(c.items)
	if n == 0 {
		return -1
	}
	c.layout()
	i := sort.Search(n, func(i int) bool { return c.offsets[i+1] > y })
	return min(i, n-1)
}
