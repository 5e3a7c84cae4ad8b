package table

import (
	"io"
	"log"

	"github.com/rjkroege/uikit/view"
)

const defaultPreload = 100

// Option configures a Table.
type Option func(*Table)

// WithInsets reserves space above the first row and below the last.
func WithInsets(top, bottom int) Option {
	return func(t *Table) {
		t.insets = Insets{Top: top, Bottom: bottom}
	}
}

// WithPreload extends the window of materialized rows by px above and
// below the viewport.
func WithPreload(px int) Option {
	return func(t *Table) {
		t.preload = max(px, 0)
	}
}

// WithStickyKind makes rows of kind k section headers that stick to the
// top of the viewport.
func WithStickyKind(k view.Kind) Option {
	return func(t *Table) {
		t.stickyKind = k
	}
}

// WithAnimator sets the animator that presents transitions. The default
// completes every animation immediately.
func WithAnimator(a view.Animator) Option {
	return func(t *Table) {
		t.animator = a
	}
}

// WithLogger directs diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(t *Table) {
		t.logger = l
	}
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}
