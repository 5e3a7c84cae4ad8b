package grid

import (
	"io"
	"log"

	"github.com/rjkroege/uikit/view"
)

// Option configures a Grid.
type Option func(*Grid)

// WithLastRowPolicy sets how wide the final row of a Balanced layout is.
// The default is ThirdsLastRow.
func WithLastRowPolicy(p LastRowPolicy) Option {
	return func(g *Grid) {
		g.lastRow = p
	}
}

// WithAnimator sets the animator that presents transitions.
func WithAnimator(a view.Animator) Option {
	return func(g *Grid) {
		g.animator = a
	}
}

// WithLogger directs diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(g *Grid) {
		g.logger = l
	}
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}
