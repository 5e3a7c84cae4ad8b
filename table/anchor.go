package table

import (
	"github.com/rjkroege/uikit/view"
)

// Anchor is a scroll-anchor policy resolved after a transaction's
// mutations. A nil Anchor behaves as AnchorNone.
type Anchor interface {
	isAnchor()
}

// AnchorNone keeps the current offset.
type AnchorNone struct{}

// AnchorTop scrolls so the item with ID sits Inset below the viewport top.
// Focus, if set, is called with the item's view once it is materialized.
type AnchorTop struct {
	ID       any
	Inset    int
	Animated bool
	Focus    func(h *view.Handle)
}

// AnchorBottom scrolls so the item with ID sits Inset above the viewport
// bottom.
type AnchorBottom struct {
	ID       any
	Inset    int
	Animated bool
	Focus    func(h *view.Handle)
}

// AnchorCenter scrolls so the item with ID is centred in the viewport,
// moved down by Inset.
type AnchorCenter struct {
	ID       any
	Inset    int
	Animated bool
	Focus    func(h *view.Handle)
}

// Side selects where SaveVisible starts looking for its anchor row.
type Side int

const (
	// Lower scans from the first visible row.
	Lower Side = iota
	// Upper scans from the last visible row.
	Upper
	// Around scans outward from the row with the given ID.
	Around
)

// SaveVisible keeps a row that was visible before the transaction at
// the same screen position afterwards.
type SaveVisible struct {
	Side Side
	ID   any
}

// ScrollUp jumps to the start of the content.
type ScrollUp struct{ Animated bool }

// ScrollDown jumps to the end of the content.
type ScrollDown struct{ Animated bool }

// ScrollUpOffset jumps to the start of the content moved down by Delta.
type ScrollUpOffset struct {
	Animated bool
	Delta    int
}

func (AnchorNone) isAnchor()     {}
func (AnchorTop) isAnchor()      {}
func (AnchorBottom) isAnchor()   {}
func (AnchorCenter) isAnchor()   {}
func (SaveVisible) isAnchor()    {}
func (ScrollUp) isAnchor()       {}
func (ScrollDown) isAnchor()     {}
func (ScrollUpOffset) isAnchor() {}

// animated reports whether a asks for an animated scroll.
func animated(a Anchor) bool {
	switch a := a.(type) {
	case AnchorTop:
		return a.Animated
	case AnchorBottom:
		return a.Animated
	case AnchorCenter:
		return a.Animated
	case ScrollUp:
		return a.Animated
	case ScrollDown:
		return a.Animated
	case ScrollUpOffset:
		return a.Animated
	}
	return false
}

type edge int

const (
	edgeTop edge = iota
	edgeBottom
	edgeCenter
)

// visibleRow is one row of the pre-transaction anchor set. Top and
// bottom are relative to the viewport.
type visibleRow struct {
	id          any
	top, bottom int
	usable      bool
}

type snapshot struct {
	rows    []visibleRow
	offset  int
	content int
}

func (t *Table) snapshot() snapshot {
	s := snapshot{offset: t.offset, content: t.rows.ContentHeight()}
	first, last := t.span(t.offset, t.offset+t.size.Y)
	for i := first; i < last; i++ {
		it := t.rows.At(i)
		id := it.StableID()
		usable := canBeAnchor(it)
		if h, ok := t.arena.Get(id); ok && h.Inserting {
			usable = false
		}
		f := t.rows.Frame(i)
		s.rows = append(s.rows, visibleRow{
			id:     id,
			top:    f.Min.Y - t.offset,
			bottom: f.Max.Y - t.offset,
			usable: usable,
		})
	}
	return s
}

// resolve returns the unclamped offset that a satisfies.
func (t *Table) resolve(a Anchor, s snapshot) int {
	switch a := a.(type) {
	case AnchorTop:
		return t.target(a.ID, a.Inset, edgeTop, a.Focus)
	case AnchorBottom:
		return t.target(a.ID, a.Inset, edgeBottom, a.Focus)
	case AnchorCenter:
		return t.target(a.ID, a.Inset, edgeCenter, a.Focus)
	case SaveVisible:
		return t.saveVisible(a, s)
	case ScrollUp:
		return t.minOffset()
	case ScrollDown:
		return t.maxOffset()
	case ScrollUpOffset:
		return t.minOffset() + a.Delta
	}
	return t.offset
}

func (t *Table) target(id any, inset int, e edge, focus func(*view.Handle)) int {
	i, ok := t.rows.IndexOf(id)
	if !ok {
		t.logger.Printf("table: scroll to unknown id %v", id)
		return t.offset
	}
	if focus != nil {
		t.pending = &pendingFocus{id: id, fn: focus}
	}
	f := t.rows.Frame(i)
	switch e {
	case edgeBottom:
		return f.Max.Y - t.size.Y + inset
	case edgeCenter:
		return f.Min.Y + f.Dy()/2 - t.size.Y/2 + inset
	}
	return f.Min.Y - inset
}

func (t *Table) saveVisible(a SaveVisible, s snapshot) int {
	try := func(r visibleRow) (int, bool) {
		if !r.usable {
			return 0, false
		}
		i, ok := t.rows.IndexOf(r.id)
		if !ok {
			return 0, false
		}
		return t.rows.Top(i) - r.top, true
	}
	n := len(s.rows)
	switch a.Side {
	case Lower:
		for _, r := range s.rows {
			if off, ok := try(r); ok {
				return off
			}
		}
	case Upper:
		for k := n - 1; k >= 0; k-- {
			if off, ok := try(s.rows[k]); ok {
				return off
			}
		}
	case Around:
		c := 0
		for k, r := range s.rows {
			if r.id == a.ID {
				c = k
				break
			}
		}
		for d := 0; d < n; d++ {
			for _, k := range []int{c + d, c - d} {
				if k < 0 || k >= n {
					continue
				}
				if off, ok := try(s.rows[k]); ok {
					return off
				}
			}
		}
	}
	return t.offset
}

type pendingFocus struct {
	id any
	fn func(h *view.Handle)
}

// resolveFocus delivers a pending focus once its view exists and drops
// it when the item is gone.
func (t *Table) resolveFocus() {
	p := t.pending
	if p == nil {
		return
	}
	if h, ok := t.arena.Get(p.id); ok {
		t.pending = nil
		p.fn(h)
		return
	}
	if _, ok := t.rows.IndexOf(p.id); !ok {
		t.pending = nil
	}
}
