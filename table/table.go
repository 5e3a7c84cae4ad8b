package table

import (
	"fmt"
	"image"
	"log"
	"sort"

	"github.com/rjkroege/uikit/view"
)

// Insets reserve space above the first row and below the last.
type Insets struct {
	Top, Bottom int
}

// Insert places Item at Index of the collection as it stands after the
// transaction's deletions and the inserts before it.
type Insert struct {
	Index int
	Item  Item
}

// Update replaces the item at Index of the final collection.
type Update struct {
	Index int
	Item  Item
}

// Transaction is one batch of mutations applied by Table.Apply.
// Deleted indices refer to the collection before the transaction.
type Transaction struct {
	Deleted  []int
	Inserted []Insert
	Updated  []Update
	Anchor   Anchor
	Animated bool
	// AnimateVisibleOnly restricts animation to rows inside the viewport.
	AnimateVisibleOnly bool
}

// Table places the rows of a Collection in a vertically scrolling
// viewport. Only rows within the viewport plus the preload margin have
// views. All methods must be called from one goroutine.
type Table struct {
	rows     *Collection
	arena    *view.Arena
	animator view.Animator
	logger   *log.Logger

	size    image.Point
	insets  Insets
	preload int
	offset  int

	stickyKind view.Kind
	sticky     Sticky
	stuck      bool
	stickyView *view.Handle

	applying    bool
	scrollDirty bool
	queue       []Transaction
	pending     *pendingFocus

	drag        *resort
	resortFirst int
	resortLast  int
	resortDone  func(from, to int)

	visible  Span
	geometry Geometry
	onRange  subscribers[Span]
	onGeom   subscribers[Geometry]
}

// New returns an empty table with views from f and a viewport of size.
func New(f view.Factory, size image.Point, opts ...Option) *Table {
	t := &Table{
		arena:    view.NewArena(view.NewPool(f)),
		animator: view.Immediate{},
		logger:   discardLogger(),
		size:     size,
		preload:  defaultPreload,
	}
	for _, o := range opts {
		o(t)
	}
	t.rows = NewCollection(size.X)
	t.offset = t.minOffset()
	return t
}

// Rows returns the table's collection. Mutate it only through Apply.
func (t *Table) Rows() *Collection { return t.rows }

// Offset returns the content y shown at the top of the viewport.
func (t *Table) Offset() int { return t.offset }

// Size returns the viewport size.
func (t *Table) Size() image.Point { return t.size }

// View returns the materialized view of the item with id.
func (t *Table) View(id any) (*view.Handle, bool) { return t.arena.Get(id) }

// Views returns the number of materialized row views.
func (t *Table) Views() int { return t.arena.Len() }

func (t *Table) minOffset() int { return -t.insets.Top }

func (t *Table) maxOffset() int {
	return max(t.minOffset(), t.rows.ContentHeight()+t.insets.Bottom-t.size.Y)
}

func (t *Table) clamp(y int) int {
	return min(max(y, t.minOffset()), t.maxOffset())
}

// span returns the rows intersecting content [top, bottom).
func (t *Table) span(top, bottom int) (int, int) {
	n := t.rows.Len()
	if n == 0 || bottom <= top {
		return 0, 0
	}
	first := t.rows.RowAt(max(top, 0))
	if t.rows.Top(first+1) <= top {
		return n, n
	}
	last := first
	for last < n && t.rows.Top(last) < bottom {
		last++
	}
	return first, last
}

// Apply runs tx: deletions, insertions, updates, anchor resolution, view
// reconciliation, animation and notification, in that order. A call made
// while another transaction is being applied is queued and runs after it.
// Apply panics with ErrDuplicateID or ErrIndexOutOfRange, leaving the
// collection unchanged, when tx is malformed.
func (t *Table) Apply(tx Transaction) {
	if t.applying {
		t.logger.Printf("table: deferring transaction during apply")
		t.queue = append(t.queue, tx)
		return
	}
	t.applying = true
	defer func() {
		t.applying = false
		t.queue = nil
	}()
	if t.drag != nil {
		t.logger.Printf("table: transaction cancels resort of %v", t.drag.id)
		t.cancelResort()
	}
	t.apply(tx)
	for len(t.queue) > 0 {
		next := t.queue[0]
		t.queue = t.queue[1:]
		t.apply(next)
	}
	if t.scrollDirty {
		t.applying = false
		t.scrolled()
	}
}

func (t *Table) apply(tx Transaction) {
	inserts := sortedInserts(tx.Inserted)
	t.validate(tx, inserts)
	t.pending = nil

	// 1. Snapshot against the old geometry.
	snap := t.snapshot()

	// 2, 3. Deletions, descending; the collection renumbers survivors.
	del := append([]int(nil), tx.Deleted...)
	sort.Sort(sort.Reverse(sort.IntSlice(del)))
	removed := make(map[any]*Row, len(del))
	for _, i := range del {
		it := t.rows.Remove(i)
		removed[it.StableID()] = it.base()
	}

	// 4. Insertions, ascending.
	rebind := make(map[any]bool)
	inserted := make(map[any]bool, len(inserts))
	for _, in := range inserts {
		id := in.Item.StableID()
		t.rows.Insert(in.Index, in.Item)
		if r, moved := removed[id]; moved {
			rebind[id] = r != in.Item.base()
			continue
		}
		inserted[id] = true
	}
	for _, u := range tx.Updated {
		t.rows.Replace(u.Index, u.Item)
		rebind[u.Item.StableID()] = true
	}

	// 5. Heights are recomputed lazily by the collection.
	// 6. Anchor.
	t.offset = t.clamp(t.resolve(tx.Anchor, snap))

	// 7. Views.
	d := t.reconcile(rebind)

	// 8. Animation.
	t.animate(tx, snap, d, inserted)

	// 9. Notification.
	t.updateSticky()
	t.resolveFocus()
	t.notify()
}

func sortedInserts(in []Insert) []Insert {
	s := append([]Insert(nil), in...)
	sort.SliceStable(s, func(i, j int) bool { return s[i].Index < s[j].Index })
	return s
}

// validate panics if tx cannot be applied in full.
func (t *Table) validate(tx Transaction, inserts []Insert) {
	n := t.rows.Len()
	gone := make(map[any]bool, len(tx.Deleted))
	seen := make(map[int]bool, len(tx.Deleted))
	for _, i := range tx.Deleted {
		if i < 0 || i >= n || seen[i] {
			panic(fmt.Errorf("%w: delete %d of %d", ErrIndexOutOfRange, i, n))
		}
		seen[i] = true
		gone[t.rows.At(i).StableID()] = true
	}
	n -= len(tx.Deleted)
	added := make(map[any]bool, len(inserts))
	for _, in := range inserts {
		if in.Index < 0 || in.Index > n {
			panic(fmt.Errorf("%w: insert at %d, length %d", ErrIndexOutOfRange, in.Index, n))
		}
		id := in.Item.StableID()
		if _, ok := t.rows.IndexOf(id); (ok && !gone[id]) || added[id] {
			panic(fmt.Errorf("%w: %v", ErrDuplicateID, id))
		}
		added[id] = true
		n++
	}
	for _, u := range tx.Updated {
		if u.Index < 0 || u.Index >= n {
			panic(fmt.Errorf("%w: update %d, length %d", ErrIndexOutOfRange, u.Index, n))
		}
	}
}

// reconcile materializes views for the rows within the preload window.
func (t *Table) reconcile(rebind map[any]bool) view.Diff {
	var places []view.Placement
	if t.size.Y > 0 {
		first, last := t.span(t.offset-t.preload, t.offset+t.size.Y+t.preload)
		for i := first; i < last; i++ {
			it := t.rows.At(i)
			id := it.StableID()
			if t.drag != nil && id == t.drag.id {
				continue
			}
			places = append(places, view.Placement{
				ID:     id,
				Item:   it,
				Frame:  t.slotFrame(i),
				Rebind: rebind[id],
			})
		}
	}
	return t.arena.Reconcile(places)
}

func (t *Table) viewport() image.Rectangle {
	return image.Rect(0, t.offset, t.size.X, t.offset+t.size.Y)
}

// animate presents the transaction. Rows present before and after move
// by one shared delta so the window shifts as a whole.
func (t *Table) animate(tx Transaction, s snapshot, d view.Diff, inserted map[any]bool) {
	if !tx.Animated && !animated(tx.Anchor) {
		for _, e := range d.Removed {
			t.arena.Retire(e.ID, e.Handle, e.Handle.Generation())
		}
		return
	}
	shift := t.offset - s.offset
	delta, found := 0, false
	wasVisible := make(map[any]bool, len(s.rows))
	for _, r := range s.rows {
		wasVisible[r.id] = true
	}
	for _, e := range d.Kept {
		if wasVisible[e.ID] {
			delta, found = e.Old.Min.Y+shift-e.Handle.Frame.Min.Y, true
			break
		}
	}
	if !found {
		// A pure scroll slides the new rows in from the side it moved
		// towards.
		delta = s.content - t.rows.ContentHeight()
		if len(tx.Deleted)+len(tx.Inserted)+len(tx.Updated) == 0 {
			delta = shift
		}
		delta = min(max(delta, -t.size.Y), t.size.Y)
	}
	vp := t.viewport()
	shown := func(from, to image.Rectangle) bool {
		return !tx.AnimateVisibleOnly || from.Overlaps(vp) || to.Overlaps(vp)
	}

	for _, e := range d.Kept {
		to := e.Handle.Frame
		from := to.Add(image.Pt(0, delta))
		if from == to || !shown(from, to) {
			continue
		}
		t.animator.Animate(view.NewAnimation(e.Handle, from, to, 1, 1, nil))
	}
	for _, e := range d.Added {
		h := e.Handle
		to := h.Frame
		from := to.Add(image.Pt(0, delta))
		alpha := 1.0
		if inserted[e.ID] {
			alpha = 0
		}
		if (from == to && alpha == 1) || !shown(from, to) {
			continue
		}
		if alpha == 0 {
			h.Inserting = true
		}
		t.animator.Animate(view.NewAnimation(h, from, to, alpha, 1, func() {
			h.Inserting = false
		}))
	}
	for _, e := range d.Removed {
		h, id := e.Handle, e.ID
		from := e.Old.Add(image.Pt(0, shift))
		to := from
		_, still := t.rows.IndexOf(id)
		if still {
			to = from.Sub(image.Pt(0, delta))
		}
		h.Frame = to
		if (still && from == to) || !shown(from, to) {
			t.arena.Retire(id, h, h.Generation())
			continue
		}
		alpha := 0.0
		if still {
			alpha = 1
		}
		gen := h.Generation()
		t.animator.Animate(view.NewAnimation(h, from, to, 1, alpha, func() {
			t.arena.Retire(id, h, gen)
		}))
	}
}

// ScrollTo moves the viewport top to content y, clamped. It cancels any
// pending focus. During Apply the scroll-driven updates wait until the
// transaction completes.
func (t *Table) ScrollTo(y int) {
	t.pending = nil
	t.offset = t.clamp(y)
	if t.applying {
		t.scrollDirty = true
		return
	}
	t.scrolled()
}

// ScrollToItem applies an empty transaction with anchor a. The scroll
// is animated when a's Animated field is set.
func (t *Table) ScrollToItem(a Anchor) {
	t.Apply(Transaction{Anchor: a})
}

func (t *Table) scrolled() {
	t.scrollDirty = false
	d := t.reconcile(nil)
	for _, e := range d.Removed {
		t.arena.Retire(e.ID, e.Handle, e.Handle.Generation())
	}
	t.updateSticky()
	t.resolveFocus()
	t.notify()
}

// SetViewport resizes the viewport. A width change recomputes the
// heights of width-dependent rows and keeps the first visible row in
// place.
func (t *Table) SetViewport(size image.Point) {
	if size == t.size {
		return
	}
	s := t.snapshot()
	t.size = size
	off := t.offset
	if t.rows.SetWidth(size.X) {
		off = t.saveVisible(SaveVisible{Side: Lower}, s)
	}
	t.offset = t.clamp(off)
	if t.applying {
		t.scrollDirty = true
		return
	}
	t.scrolled()
}
