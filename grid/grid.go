// Package grid lays items out in rows of cells, either at a fixed cell
// size or in justified rows sized by aspect ratio, and keeps their views
// reconciled through transactions like the table engine.
package grid

import (
	"errors"
	"fmt"
	"image"
	"log"
	"sort"

	"github.com/rjkroege/uikit/view"
)

// ErrIndexOutOfRange reports a transaction index outside the items.
var ErrIndexOutOfRange = errors.New("grid: index out of range")

// Insert places Item at Index after the deletions and earlier inserts.
type Insert struct {
	Index int
	Item  Item
}

// Update replaces the item at Index of the final item list.
type Update struct {
	Index int
	Item  Item
}

// Stationary selects which item keeps its screen position across a
// transaction.
type Stationary int

const (
	StationaryNone Stationary = iota
	// StationaryAll keeps the first item that had a view.
	StationaryAll
	// StationaryIndices keeps the first listed item that had a view.
	StationaryIndices
)

// Position is where ScrollToItem puts its item.
type Position int

const (
	Top Position = iota
	Bottom
	Center
)

// Direction hints which way the old items slide out when no item stays
// on screen.
type Direction int

const (
	Up Direction = iota
	Down
)

// ScrollToItem scrolls to the item at Index.
type ScrollToItem struct {
	Index     int
	Position  Position
	Direction Direction
	// AdjustForSection keeps the item's section header in view when the
	// item starts its section.
	AdjustForSection  bool
	AdjustForTopInset bool
	Animated          bool
}

// Transaction is one batch of changes applied by Grid.Apply.
type Transaction struct {
	Deleted  []int
	Inserted []Insert
	Updated  []Update
	ScrollTo *ScrollToItem
	// Layout replaces the grid's layout.
	Layout            *Layout
	Stationary        Stationary
	StationaryIndices []int
	// SectionOffset replaces the number of cells the first item is
	// shifted by in a Fixed layout.
	SectionOffset *int
	Animated      bool
}

func (tx Transaction) empty(g *Grid) bool {
	return len(tx.Deleted) == 0 && len(tx.Inserted) == 0 && len(tx.Updated) == 0 && tx.ScrollTo == nil &&
		(tx.Layout == nil || *tx.Layout == g.layout) &&
		(tx.SectionOffset == nil || *tx.SectionOffset == g.firstOffset)
}

// Span is a half-open range of item indices.
type Span struct {
	First, Last int
}

type sectionKey struct{ id any }

// Grid places items in a scrolling viewport. Only items within the
// viewport plus the preload margin have views. All methods must be
// called from one goroutine.
type Grid struct {
	items       []Item
	layout      Layout
	firstOffset int
	frames      Frames
	offset      int
	shown       Span

	arena    *view.Arena
	animator view.Animator
	logger   *log.Logger
	lastRow  LastRowPolicy

	floating  *view.Handle
	floatOK   bool
	floatID   any
	floatRect SectionFrame

	applying    bool
	scrollDirty bool
	queue       []Transaction
}

// New returns an empty grid with views from f.
func New(f view.Factory, l Layout, opts ...Option) *Grid {
	g := &Grid{
		layout:   l,
		arena:    view.NewArena(view.NewPool(f)),
		animator: view.Immediate{},
		logger:   discardLogger(),
		lastRow:  ThirdsLastRow,
	}
	for _, o := range opts {
		o(g)
	}
	g.offset = g.minOffset()
	return g
}

// Len returns the number of items.
func (g *Grid) Len() int { return len(g.items) }

// At returns item i.
func (g *Grid) At(i int) Item { return g.items[i] }

// Layout returns the current layout.
func (g *Grid) Layout() Layout { return g.layout }

// Frames returns the computed frames of every item.
func (g *Grid) Frames() Frames { return g.frames }

// Offset returns the content y at the top of the viewport.
func (g *Grid) Offset() int { return g.offset }

// View returns the view of the item with id.
func (g *Grid) View(id any) (*view.Handle, bool) { return g.arena.Get(id) }

// SectionView returns the in-flow view of the section with id.
func (g *Grid) SectionView(id any) (*view.Handle, bool) { return g.arena.Get(sectionKey{id}) }

// Displayed returns the range of items that have views.
func (g *Grid) Displayed() Span { return g.shown }

func (g *Grid) minOffset() int { return -g.layout.Insets.Top }

func (g *Grid) clamp(y int) int {
	hi := max(g.minOffset(), g.frames.Height+g.layout.Insets.Bottom-g.layout.Size.Y)
	return min(max(y, g.minOffset()), hi)
}

// Apply runs tx and returns the range of items that have views. A call
// made during another Apply is queued behind it. Apply panics with
// ErrIndexOutOfRange, changing nothing, when an index is invalid.
func (g *Grid) Apply(tx Transaction) Span {
	if g.applying {
		g.logger.Printf("grid: deferring transaction during apply")
		g.queue = append(g.queue, tx)
		return g.shown
	}
	g.applying = true
	defer func() {
		g.applying = false
		g.queue = nil
	}()
	g.apply(tx)
	for len(g.queue) > 0 {
		next := g.queue[0]
		g.queue = g.queue[1:]
		g.apply(next)
	}
	if g.scrollDirty {
		g.scrolled()
	}
	return g.shown
}

func (g *Grid) validate(tx Transaction, inserts []Insert) {
	n := len(g.items)
	seen := make(map[int]bool, len(tx.Deleted))
	for _, i := range tx.Deleted {
		if i < 0 || i >= n || seen[i] {
			panic(fmt.Errorf("%w: delete %d of %d", ErrIndexOutOfRange, i, n))
		}
		seen[i] = true
	}
	n -= len(tx.Deleted)
	for _, in := range inserts {
		if in.Index < 0 || in.Index > n {
			panic(fmt.Errorf("%w: insert at %d, length %d", ErrIndexOutOfRange, in.Index, n))
		}
		n++
	}
	for _, u := range tx.Updated {
		if u.Index < 0 || u.Index >= n {
			panic(fmt.Errorf("%w: update %d, length %d", ErrIndexOutOfRange, u.Index, n))
		}
	}
}

func (g *Grid) apply(tx Transaction) {
	if tx.empty(g) {
		return
	}
	inserts := append([]Insert(nil), tx.Inserted...)
	sort.SliceStable(inserts, func(i, j int) bool { return inserts[i].Index < inserts[j].Index })
	g.validate(tx, inserts)

	if tx.SectionOffset != nil {
		g.firstOffset = *tx.SectionOffset
	}
	shiftTop := 0
	if tx.Layout != nil {
		shiftTop = tx.Layout.Insets.Top - g.layout.Insets.Top
		g.layout = *tx.Layout
	}
	oldOffset := g.offset
	old := make(map[any]image.Rectangle, g.arena.Len())
	g.arena.Each(func(id any, h *view.Handle) { old[id] = h.Frame })

	del := append([]int(nil), tx.Deleted...)
	sort.Sort(sort.Reverse(sort.IntSlice(del)))
	for _, i := range del {
		g.items = append(g.items[:i], g.items[i+1:]...)
	}
	for _, in := range inserts {
		g.items = append(g.items, nil)
		copy(g.items[in.Index+1:], g.items[in.Index:])
		g.items[in.Index] = in.Item
	}
	rebind := make(map[any]bool, len(tx.Updated))
	for _, u := range tx.Updated {
		g.items[u.Index] = u.Item
		rebind[u.Item.StableID()] = true
	}

	wasEmpty := len(g.frames.Items) == 0
	g.frames = Compute(g.items, g.layout, g.firstOffset, g.lastRow)

	st := tx.ScrollTo
	if st == nil && wasEmpty {
		st = &ScrollToItem{Index: 0, Position: Top, AdjustForSection: true}
	}
	dir := Up
	switch {
	case st != nil:
		g.offset = g.scrollOffset(*st)
		dir = st.Direction
	case tx.Stationary == StationaryAll:
		g.offset = g.stationary(old, oldOffset, nil)
	case tx.Stationary == StationaryIndices:
		g.offset = g.stationary(old, oldOffset, tx.StationaryIndices)
	default:
		g.offset = g.clamp(g.offset - shiftTop)
	}

	d := g.reconcile(rebind)
	g.animate(tx.Animated || (st != nil && st.Animated), d, old, oldOffset, dir)
	g.updateFloating()
}

func (g *Grid) scrollOffset(st ScrollToItem) int {
	if st.Index < 0 || st.Index >= len(g.frames.Items) {
		if len(g.frames.Items) > 0 {
			g.logger.Printf("grid: scroll to missing item %d", st.Index)
		}
		return g.clamp(g.offset)
	}
	f := g.frames.Items[st.Index]
	add := 0
	if st.AdjustForSection {
		sec := g.items[st.Index].Section()
		if sec != nil && (st.Index == 0 || !sameSection(g.items[st.Index-1].Section(), sec)) {
			add = -sec.Height()
		}
	}
	if st.AdjustForTopInset {
		add -= g.layout.Insets.Top
	}
	in := g.layout.Insets
	display := max(0, g.layout.Size.Y-in.Top-in.Bottom)
	var y int
	switch st.Position {
	case Center:
		// >> 1 floors negative values too.
		y = f.Min.Y + (f.Dy()-display)>>1 - in.Top + add
	case Bottom:
		y = f.Max.Y - display + add
	default:
		y = f.Min.Y + add
	}
	return g.clamp(y)
}

// stationary returns the offset that keeps the first eligible item with
// a view at its old screen position.
func (g *Grid) stationary(old map[any]image.Rectangle, oldOffset int, indices []int) int {
	try := func(i int) (int, bool) {
		if i < 0 || i >= len(g.frames.Items) {
			return 0, false
		}
		f, ok := old[g.items[i].StableID()]
		if !ok {
			return 0, false
		}
		return g.frames.Items[i].Min.Y - f.Min.Y + oldOffset, true
	}
	if indices == nil {
		for i := range g.frames.Items {
			if y, ok := try(i); ok {
				return g.clamp(y)
			}
		}
	} else {
		idx := append([]int(nil), indices...)
		sort.Ints(idx)
		for _, i := range idx {
			if y, ok := try(i); ok {
				return g.clamp(y)
			}
		}
	}
	return g.clamp(g.offset)
}

func (g *Grid) reconcile(rebind map[any]bool) view.Diff {
	lower := g.offset - g.layout.Preload
	upper := g.offset + g.layout.Size.Y + g.layout.Preload
	in := func(f image.Rectangle) bool { return f.Max.Y > lower && f.Min.Y < upper }

	var places []view.Placement
	g.shown = Span{}
	first := true
	for i, f := range g.frames.Items {
		if !in(f) {
			continue
		}
		it := g.items[i]
		id := it.StableID()
		places = append(places, view.Placement{ID: id, Item: it, Frame: f, Rebind: rebind[id]})
		if first {
			g.shown.First, first = i, false
		}
		g.shown.Last = i + 1
	}
	for _, s := range g.frames.Sections {
		if in(s.Frame) {
			places = append(places, view.Placement{ID: sectionKey{s.Section.SectionID()}, Item: s.Section, Frame: s.Frame})
		}
	}
	return g.arena.Reconcile(places)
}

// animate slides every view by one shared delta: the move of the first
// item on screen before and after, or a delta derived from the bounds of
// the old and new views when no item stayed.
func (g *Grid) animate(on bool, d view.Diff, old map[any]image.Rectangle, oldOffset int, dir Direction) {
	retire := func(e view.Entry) { g.arena.Retire(e.ID, e.Handle, e.Handle.Generation()) }
	if !on {
		for _, e := range d.Removed {
			retire(e)
		}
		return
	}
	delta, found := 0, false
	for _, e := range d.Kept {
		if o, ok := old[e.ID]; ok {
			delta = (o.Min.Y - oldOffset) - (e.Handle.Frame.Min.Y - g.offset)
			found = true
			break
		}
	}
	if !found {
		prevUp, prevLow := 0, g.layout.Size.Y
		if len(old) > 0 {
			prevUp, prevLow = bounds(old, oldOffset)
		}
		placed := make(map[any]image.Rectangle, len(d.Added)+len(d.Kept))
		for _, e := range append(append([]view.Entry(nil), d.Added...), d.Kept...) {
			placed[e.ID] = e.Handle.Frame
		}
		if len(placed) > 0 {
			up, low := bounds(placed, g.offset)
			if dir == Down {
				delta = -(up - prevLow)
			} else {
				delta = -(low - prevUp)
			}
		}
	}
	if delta == 0 {
		for _, e := range d.Removed {
			retire(e)
		}
		return
	}
	shift := image.Pt(0, delta)
	for _, e := range append(append([]view.Entry(nil), d.Added...), d.Kept...) {
		to := e.Handle.Frame
		g.animator.Animate(view.NewAnimation(e.Handle, to.Add(shift), to, 1, 1, nil))
	}
	for _, e := range d.Removed {
		h, id := e.Handle, e.ID
		from := e.Old.Add(image.Pt(0, g.offset-oldOffset))
		h.Frame = from.Sub(shift)
		gen := h.Generation()
		g.animator.Animate(view.NewAnimation(h, from, h.Frame, 1, 1, func() {
			g.arena.Retire(id, h, gen)
		}))
	}
}

// bounds returns the top and bottom screen y of frames.
func bounds(frames map[any]image.Rectangle, offset int) (int, int) {
	first := true
	var up, low int
	for _, f := range frames {
		if first || f.Min.Y-offset < up {
			up = f.Min.Y - offset
		}
		if first || f.Max.Y-offset > low {
			low = f.Max.Y - offset
		}
		first = false
	}
	return up, low
}

// ScrollTo moves the viewport top to content y, clamped.
func (g *Grid) ScrollTo(y int) {
	g.offset = g.clamp(y)
	if g.applying {
		g.scrollDirty = true
		return
	}
	g.scrolled()
}

func (g *Grid) scrolled() {
	g.scrollDirty = false
	for _, e := range g.reconcile(nil).Removed {
		g.arena.Retire(e.ID, e.Handle, e.Handle.Generation())
	}
	g.updateFloating()
}

// Floating returns the section header pinned at the top of the viewport.
func (g *Grid) Floating() (SectionFrame, *view.Handle, bool) {
	if !g.floatOK {
		return SectionFrame{}, nil, false
	}
	return g.floatRect, g.floating, true
}

func (g *Grid) findFloating() (SectionFrame, bool) {
	secs := g.frames.Sections
	for i := len(secs) - 1; i >= 0; i-- {
		s := secs[i]
		if s.Frame.Min.Y > g.offset {
			continue
		}
		h := s.Frame.Dy()
		y := g.offset
		if i+1 < len(secs) {
			if diff := secs[i+1].Frame.Min.Y - g.offset; diff > 0 && diff < h {
				y -= h - diff
			}
		}
		return SectionFrame{Section: s.Section, Frame: image.Rect(0, y, s.Frame.Dx(), y+h)}, true
	}
	return SectionFrame{}, false
}

func (g *Grid) updateFloating() {
	s, ok := g.findFloating()
	if !ok {
		if g.floating != nil {
			g.arena.Pool().Release(g.floating)
			g.floating = nil
		}
		g.floatOK = false
		return
	}
	id := s.Section.SectionID()
	pool := g.arena.Pool()
	kind := pool.Factory().ViewKind(s.Section)
	if g.floating != nil && g.floating.Kind != kind {
		pool.Release(g.floating)
		g.floating = nil
	}
	switch {
	case g.floating == nil:
		g.floating = pool.Acquire(kind)
		g.floating.Frame = image.Rectangle{}
		g.floating.View.Bind(s.Section)
	case g.floatID != id:
		g.floating.View.Bind(s.Section)
	}
	if g.floating.Frame.Size() != s.Frame.Size() {
		g.floating.View.Layout(s.Frame.Size())
	}
	g.floating.Frame = s.Frame
	g.floatRect, g.floatID, g.floatOK = s, id, true
}
