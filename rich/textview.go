package rich

import (
	"image"
)

// Intent is a keyboard or menu command delivered to a TextView.
type Intent int

const (
	IntentExtendNext Intent = iota
	IntentExtendPrev
	IntentSelectAll
	IntentCopy
	IntentClear
)

// TextView tracks pointer and keyboard selection over one Layout.
type TextView struct {
	layout *Layout
	sel    Selection
	hasSel bool

	down     image.Point
	clicks   int
	dragging bool
	moved    bool

	// OnSelectionChanged is called whenever the selection changes.
	OnSelectionChanged func(Selection)
}

// NewTextView returns a view over l with nothing selected.
func NewTextView(l *Layout) *TextView {
	return &TextView{layout: l}
}

// Layout returns the layout the view hit-tests against.
func (v *TextView) Layout() *Layout { return v.layout }

// SetLayout replaces the layout, keeping the selection when it still fits
// the new text.
func (v *TextView) SetLayout(l *Layout) {
	v.layout = l
	if v.hasSel {
		v.sel.clamp(l.Text.Len())
		v.changed()
	}
}

// Selection returns the current selection and whether there is one.
func (v *TextView) Selection() (Selection, bool) { return v.sel, v.hasSel }

// SelectedText returns the text under the selection.
func (v *TextView) SelectedText() string {
	if !v.hasSel {
		return ""
	}
	return v.layout.Text.Slice(v.sel.Range)
}

func (v *TextView) set(r Range, anchor int) {
	v.sel = NewSelection(r, anchor)
	v.hasSel = true
	v.changed()
}

// Clear drops the selection.
func (v *TextView) Clear() {
	if !v.hasSel {
		return
	}
	v.sel = Selection{}
	v.hasSel = false
	v.changed()
}

func (v *TextView) changed() {
	if v.OnSelectionChanged != nil {
		v.OnSelectionChanged(v.sel)
	}
}

// MouseDown starts a gesture at pt. clicks is the click count: two selects
// a word, three a line.
func (v *TextView) MouseDown(pt image.Point, clicks int) {
	v.down = pt
	v.clicks = clicks
	v.dragging = true
	v.moved = false
	l := v.layout
	switch {
	case clicks == 2:
		if r, ok := l.WordRange(pt); ok {
			v.set(r, r.Start)
			return
		}
	case clicks >= 3:
		if r, ok := l.LineSelectRange(pt); ok {
			v.set(r, r.Start)
			return
		}
	}
	v.Clear()
}

// MouseDragged extends the gesture to pt.
func (v *TextView) MouseDragged(pt image.Point) {
	if !v.dragging {
		return
	}
	v.moved = true
	l := v.layout
	r := l.DragRange(v.down, pt, v.clicks == 2)
	if v.clicks >= 3 {
		r = l.ExpandToLines(r)
	}
	anchor := r.Start
	if pt.Y < v.down.Y || (l.LineIndexForPoint(pt) == l.LineIndexForPoint(v.down) && pt.X < v.down.X) {
		anchor = r.End
	}
	v.set(r, anchor)
}

// MouseUp ends the gesture. A single click without movement on a hidden
// spoiler reveals it; on a link it returns the link.
func (v *TextView) MouseUp(pt image.Point) (Link, bool) {
	wasDrag := v.dragging && v.moved
	v.dragging = false
	if wasDrag || v.clicks != 1 {
		return Link{}, false
	}
	l := v.layout
	idx := l.CharacterIndexForPoint(pt)
	if idx < 0 {
		return Link{}, false
	}
	if k, ok := l.SpoilerAt(idx); ok {
		l.RevealSpoiler(k)
		return Link{}, false
	}
	link, _, ok := l.LinkAt(idx)
	return link, ok
}

// Perform executes an intent. For IntentCopy it returns the copied text.
func (v *TextView) Perform(in Intent) string {
	n := v.layout.Text.Len()
	switch in {
	case IntentExtendNext:
		if v.hasSel {
			v.sel.Advance(n)
			v.changed()
		}
	case IntentExtendPrev:
		if v.hasSel {
			v.sel.Retreat(n)
			v.changed()
		}
	case IntentSelectAll:
		r := Rng(0, n)
		if v.hasSel {
			r = v.layout.ExpandToLines(v.sel.Range)
			if r == v.sel.Range {
				r = Rng(0, n)
			}
		}
		v.set(r, r.Start)
	case IntentCopy:
		return v.SelectedText()
	case IntentClear:
		v.Clear()
	}
	return ""
}
