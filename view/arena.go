package view

import "image"

// Placement is where an engine wants the view for one item.
type Placement struct {
	ID    any
	Item  any
	Frame image.Rectangle
	// Rebind asks for the item to be bound again, as after an update.
	Rebind bool
}

// Entry describes one view touched by a reconciliation.
type Entry struct {
	ID     any
	Handle *Handle
	// Old is the frame before reconciliation.
	Old image.Rectangle
}

// Diff is the outcome of Arena.Reconcile.
type Diff struct {
	Added   []Entry
	Kept    []Entry
	Removed []Entry
}

// Arena owns the live views of one engine, keyed by stable id.
type Arena struct {
	pool    *Pool
	live    map[any]*Handle
	leaving map[any]*Handle
}

// NewArena returns an empty arena drawing views from p.
func NewArena(p *Pool) *Arena {
	return &Arena{
		pool:    p,
		live:    make(map[any]*Handle),
		leaving: make(map[any]*Handle),
	}
}

// Pool returns the arena's pool.
func (a *Arena) Pool() *Pool { return a.pool }

// Get returns the live view for id.
func (a *Arena) Get(id any) (*Handle, bool) {
	h, ok := a.live[id]
	return h, ok
}

// Len returns the number of live views.
func (a *Arena) Len() int { return len(a.live) }

// Each calls fn for every live view.
func (a *Arena) Each(fn func(id any, h *Handle)) {
	for id, h := range a.live {
		fn(id, h)
	}
}

// Detach removes id's view from the arena without recycling it, as when
// a view is handed over to a floating drag.
func (a *Arena) Detach(id any) (*Handle, bool) {
	h, ok := a.live[id]
	if ok {
		delete(a.live, id)
	}
	return h, ok
}

// Attach puts a detached view back under id.
func (a *Arena) Attach(id any, h *Handle) { a.live[id] = h }

// Reconcile makes the live set match places. Existing views are kept when
// their kind still matches and either they need no rebind or they can
// animate the update; otherwise they are replaced. Views whose id is no
// longer placed are removed from the live set and reported; the caller
// finishes them with Retire once any disappearance animation ends.
func (a *Arena) Reconcile(places []Placement) Diff {
	var d Diff
	f := a.pool.factory
	want := make(map[any]bool, len(places))
	for _, p := range places {
		want[p.ID] = true
	}
	for id, h := range a.live {
		if !want[id] {
			delete(a.live, id)
			if prev, ok := a.leaving[id]; ok {
				a.pool.Release(prev)
			}
			a.leaving[id] = h
			d.Removed = append(d.Removed, Entry{ID: id, Handle: h, Old: h.Frame})
		}
	}
	for _, p := range places {
		kind := f.ViewKind(p.Item)
		h, ok := a.live[p.ID]
		if !ok {
			if l, back := a.leaving[p.ID]; back && l.Kind == kind {
				delete(a.leaving, p.ID)
				l.renew()
				h, ok = l, true
				a.live[p.ID] = h
			}
		}
		if ok && h.Kind == kind && (!p.Rebind || h.View.CanAnimateUpdate(p.Item)) {
			old := h.Frame
			if p.Rebind {
				h.View.Bind(p.Item)
			}
			if p.Rebind || old.Size() != p.Frame.Size() {
				h.View.Layout(p.Frame.Size())
			}
			h.Frame = p.Frame
			d.Kept = append(d.Kept, Entry{ID: p.ID, Handle: h, Old: old})
			continue
		}
		old := h
		h = a.pool.Acquire(kind)
		if ok {
			a.pool.Release(old)
		}
		h.View.Bind(p.Item)
		h.View.Layout(p.Frame.Size())
		h.Frame = p.Frame
		a.live[p.ID] = h
		d.Added = append(d.Added, Entry{ID: p.ID, Handle: h, Old: p.Frame})
	}
	return d
}

// Retire recycles a removed view if it has not been reassigned since gen.
// It reports whether the view was recycled.
func (a *Arena) Retire(id any, h *Handle, gen uint64) bool {
	if h.gen != gen || a.leaving[id] != h {
		return false
	}
	delete(a.leaving, id)
	a.pool.Release(h)
	return true
}

// Leaving returns the number of removed views not yet retired.
func (a *Arena) Leaving() int { return len(a.leaving) }

// Clear recycles every view.
func (a *Arena) Clear() {
	for id, h := range a.live {
		a.pool.Release(h)
		delete(a.live, id)
	}
	for id, h := range a.leaving {
		a.pool.Release(h)
		delete(a.leaving, id)
	}
}
