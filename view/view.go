// Package view recycles the row and cell views that the table and grid
// engines place on screen. Engines own their views through Handles in an
// Arena; views never reference the engine.
package view

import "image"

// Kind identifies a family of interchangeable views.
type Kind string

// View is a recyclable row or cell view.
type View interface {
	// Bind shows item.
	Bind(item any)
	// Layout sizes the view's content.
	Layout(size image.Point)
	// PrepareForReuse clears item-specific state before the view goes
	// back to the pool.
	PrepareForReuse()
	// CanAnimateUpdate reports whether the view can move to showing item
	// in place instead of being replaced.
	CanAnimateUpdate(item any) bool
}

// Factory creates views. ViewKind selects the family for an item and
// MakeView creates a new view of that family.
type Factory interface {
	ViewKind(item any) Kind
	MakeView(kind Kind) View
}

// Handle is an engine's record of one view. The generation changes every
// time the view is assigned or reclaimed, so work captured against an old
// generation can detect that the view has moved on.
type Handle struct {
	View  View
	Kind  Kind
	Frame image.Rectangle
	Alpha float64

	// Inserting is set while an appearance animation is in flight.
	Inserting bool

	gen uint64
}

// Generation returns the handle's assignment generation.
func (h *Handle) Generation() uint64 { return h.gen }

func (h *Handle) renew() { h.gen++ }
