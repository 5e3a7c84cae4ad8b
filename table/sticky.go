package table

import (
	"image"

	"github.com/rjkroege/uikit/view"
)

// Sticky is the section header pinned at the top of the viewport.
type Sticky struct {
	ID    any
	Index int
	// Frame is in content coordinates.
	Frame image.Rectangle
	// Pushed is set while the next header pushes this one up.
	Pushed bool
}

// Sticky returns the pinned header and its view, if one is shown.
func (t *Table) Sticky() (Sticky, *view.Handle, bool) {
	if !t.stuck {
		return Sticky{}, nil, false
	}
	return t.sticky, t.stickyView, true
}

func (t *Table) isHeader(i int) bool {
	return t.arena.Pool().Factory().ViewKind(t.rows.At(i)) == t.stickyKind
}

func (t *Table) findSticky() (Sticky, bool) {
	n := t.rows.Len()
	if t.stickyKind == "" || n == 0 || t.offset <= t.minOffset() || t.rows.ContentHeight() <= t.size.Y {
		return Sticky{}, false
	}
	pin := t.offset + t.insets.Top
	h := -1
	for i := t.rows.RowAt(pin); i >= 0; i-- {
		if t.isHeader(i) {
			h = i
			break
		}
	}
	// A header still at or below the pin line shows in place.
	if h < 0 || t.rows.Top(h) >= pin {
		return Sticky{}, false
	}
	height := t.rows.Height(h)
	y, pushed := pin, false
	for j := h + 1; j < n; j++ {
		top := t.rows.Top(j)
		if top >= pin+height {
			break
		}
		if t.isHeader(j) {
			y, pushed = top-height, true
			break
		}
	}
	return Sticky{
		ID:     t.rows.At(h).StableID(),
		Index:  h,
		Frame:  image.Rect(0, y, t.size.X, y+height),
		Pushed: pushed,
	}, true
}

func (t *Table) updateSticky() {
	s, ok := t.findSticky()
	if !ok {
		if t.stickyView != nil {
			t.arena.Pool().Release(t.stickyView)
			t.stickyView = nil
		}
		t.stuck = false
		t.sticky = Sticky{}
		return
	}
	item := t.rows.At(s.Index)
	if t.stickyView == nil {
		t.stickyView = t.arena.Pool().Acquire(t.stickyKind)
		t.stickyView.View.Bind(item)
	} else if !t.stuck || t.sticky.ID != s.ID {
		t.stickyView.View.Bind(item)
	}
	if t.stickyView.Frame.Size() != s.Frame.Size() {
		t.stickyView.View.Layout(s.Frame.Size())
	}
	t.stickyView.Frame = s.Frame
	t.sticky, t.stuck = s, true
}
