package table

import (
	"image"
	"slices"
)

// Span is a half-open range of row indices.
type Span struct {
	First, Last int
}

// Geometry describes the scrollable content.
type Geometry struct {
	Offset        int
	ContentHeight int
	Size          image.Point
}

type subscriber[T any] struct {
	fn func(T)
}

type subscribers[T any] struct {
	list []*subscriber[T]
}

func (s *subscribers[T]) add(fn func(T)) (cancel func()) {
	sub := &subscriber[T]{fn: fn}
	s.list = append(s.list, sub)
	return func() {
		if i := slices.Index(s.list, sub); i >= 0 {
			s.list = slices.Delete(slices.Clone(s.list), i, i+1)
		}
	}
}

func (s *subscribers[T]) emit(v T) {
	for _, sub := range s.list {
		sub.fn(v)
	}
}

// OnVisibleRangeChanged registers fn to receive the range of rows
// intersecting the viewport whenever it changes. Calling cancel
// unregisters it.
func (t *Table) OnVisibleRangeChanged(fn func(Span)) (cancel func()) {
	return t.onRange.add(fn)
}

// OnContentGeometryChanged registers fn to receive the content geometry
// whenever it changes.
func (t *Table) OnContentGeometryChanged(fn func(Geometry)) (cancel func()) {
	return t.onGeom.add(fn)
}

// Visible returns the rows intersecting the viewport.
func (t *Table) Visible() Span {
	first, last := t.span(t.offset, t.offset+t.size.Y)
	return Span{first, last}
}

// Geometry returns the current content geometry.
func (t *Table) Geometry() Geometry {
	return Geometry{
		Offset:        t.offset,
		ContentHeight: t.rows.ContentHeight(),
		Size:          t.size,
	}
}

func (t *Table) notify() {
	if v := t.Visible(); v != t.visible {
		t.visible = v
		t.onRange.emit(v)
	}
	if g := t.Geometry(); g != t.geometry {
		t.geometry = g
		t.onGeom.emit(g)
	}
}
