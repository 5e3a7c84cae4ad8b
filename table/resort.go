package table

import (
	"image"

	"github.com/rjkroege/uikit/view"
)

type resort struct {
	id     any
	from   int
	hole   int
	grab   int
	height int
	view   *view.Handle
}

// SetResortable lets the user drag rows within [first, last) to reorder
// them. done receives the dragged row's old and new index when a drag
// ends; it is responsible for reordering the data, typically by applying
// a transaction that deletes from and inserts at to.
func (t *Table) SetResortable(first, last int, done func(from, to int)) {
	t.resortFirst, t.resortLast, t.resortDone = first, last, done
}

// resortRange is the resortable range clamped to the collection.
func (t *Table) resortRange() (first, last int) {
	n := t.rows.Len()
	return min(max(t.resortFirst, 0), n), min(max(t.resortLast, 0), n)
}

// Resorting reports whether a row is being dragged.
func (t *Table) Resorting() bool { return t.drag != nil }

// BeginResort starts dragging the row under viewport point pt. It
// reports whether a drag started.
func (t *Table) BeginResort(pt image.Point) bool {
	if t.applying || t.drag != nil || t.resortDone == nil {
		return false
	}
	y := pt.Y + t.offset
	if y < 0 || y >= t.rows.ContentHeight() {
		return false
	}
	first, last := t.resortRange()
	i := t.rows.RowAt(y)
	if i < first || i >= last {
		return false
	}
	id := t.rows.At(i).StableID()
	h, ok := t.arena.Detach(id)
	if !ok {
		return false
	}
	f := t.rows.Frame(i)
	t.drag = &resort{
		id:     id,
		from:   i,
		hole:   i,
		grab:   y - f.Min.Y,
		height: f.Dy(),
		view:   h,
	}
	return true
}

// DragResort moves the dragged row to follow pt and shifts the rows
// between its old and new hole.
func (t *Table) DragResort(pt image.Point) {
	r := t.drag
	if r == nil {
		return
	}
	y := pt.Y + t.offset
	top := y - r.grab
	r.view.Frame = image.Rect(0, top, t.size.X, top+r.height)

	first, last := t.resortRange()
	if r.from >= last {
		return
	}
	hole := min(max(t.rows.RowAt(y), first), last-1)
	if hole == r.hole {
		return
	}
	r.hole = hole
	for i := first; i < last; i++ {
		h, ok := t.arena.Get(t.rows.At(i).StableID())
		if !ok {
			continue
		}
		to := t.slotFrame(i)
		if to == h.Frame {
			continue
		}
		from := h.Frame
		h.Frame = to
		t.animator.Animate(view.NewAnimation(h, from, to, 1, 1, nil))
	}
}

// EndResort drops the dragged row into its hole and reports the move.
func (t *Table) EndResort() {
	r := t.drag
	if r == nil {
		return
	}
	r.hole = min(r.hole, t.rows.Len()-1)
	var top int
	switch {
	case r.hole > r.from:
		top = t.rows.Top(r.hole+1) - r.height
	case r.hole < r.from:
		top = t.rows.Top(r.hole)
	default:
		top = t.rows.Top(r.from)
	}
	to := image.Rect(0, top, t.size.X, top+r.height)
	from := r.view.Frame
	r.view.Frame = to
	t.arena.Attach(r.id, r.view)
	t.drag = nil
	if from != to {
		t.animator.Animate(view.NewAnimation(r.view, from, to, 1, 1, nil))
	}
	t.resortDone(r.from, r.hole)
	t.scrolled()
}

func (t *Table) cancelResort() {
	r := t.drag
	r.view.Frame = t.rows.Frame(r.from)
	t.arena.Attach(r.id, r.view)
	t.drag = nil
}

// slotFrame is row i's frame with the drag hole opened.
func (t *Table) slotFrame(i int) image.Rectangle {
	f := t.rows.Frame(i)
	r := t.drag
	if r == nil || i == r.from {
		return f
	}
	switch {
	case r.from < r.hole && i > r.from && i <= r.hole:
		return f.Sub(image.Pt(0, r.height))
	case r.hole < r.from && i >= r.hole && i < r.from:
		return f.Add(image.Pt(0, r.height))
	}
	return f
}
