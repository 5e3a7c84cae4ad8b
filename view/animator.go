package view

import (
	"image"
	"time"
)

// Animation is a fire-and-forget transition of one view. The engine has
// already moved the handle to its final state; the animator presents the
// change and calls Done when finished.
type Animation struct {
	Handle    *Handle
	From, To  image.Rectangle
	FromAlpha float64
	ToAlpha   float64
	Duration  time.Duration

	gen        uint64
	completion func()
}

// DefaultDuration is the duration engines use for transitions.
const DefaultDuration = 300 * time.Millisecond

// NewAnimation returns an animation of h from one frame and alpha to
// another. completion runs from Done only while h keeps the generation
// it had when the animation was created.
func NewAnimation(h *Handle, from, to image.Rectangle, fromAlpha, toAlpha float64, completion func()) *Animation {
	return &Animation{
		Handle:     h,
		From:       from,
		To:         to,
		FromAlpha:  fromAlpha,
		ToAlpha:    toAlpha,
		Duration:   DefaultDuration,
		gen:        h.gen,
		completion: completion,
	}
}

// Valid reports whether the animated view is still assigned as it was.
func (a *Animation) Valid() bool { return a.Handle.gen == a.gen }

// Done finishes the animation. It is a no-op for a stale view.
func (a *Animation) Done() {
	if !a.Valid() || a.completion == nil {
		return
	}
	f := a.completion
	a.completion = nil
	f()
}

// Animator runs animations.
type Animator interface {
	Animate(a *Animation)
}

// Immediate completes every animation at once.
type Immediate struct{}

func (Immediate) Animate(a *Animation) { a.Done() }

// Manual collects animations until Finish is called. Tests use it to
// observe what an engine animated and to complete animations late.
type Manual struct {
	Pending []*Animation
}

func (m *Manual) Animate(a *Animation) { m.Pending = append(m.Pending, a) }

// Finish completes and forgets every pending animation.
func (m *Manual) Finish() {
	p := m.Pending
	m.Pending = nil
	for _, a := range p {
		a.Done()
	}
}
