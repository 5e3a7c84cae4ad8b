package rich

import (
	"io"
	"log"

	"github.com/rjkroege/uikit/theme"
)

// Option configures a Layouter.
type Option func(*Layouter)

// WithTheme sets the palette used for default colours such as link
// strokes and the truncation token.
func WithTheme(p theme.Palette) Option {
	return func(lo *Layouter) {
		lo.palette = p
	}
}

// WithLogger directs diagnostics (shaper fallbacks, discarded items) to l.
func WithLogger(l *log.Logger) Option {
	return func(lo *Layouter) {
		lo.logger = l
	}
}

// WithStrokeLinks enables an underline stroke below every link.
func WithStrokeLinks(on bool) Option {
	return func(lo *Layouter) {
		lo.strokeLinks = on
	}
}

// WithTooltips enables hover regions for links that carry a tooltip.
func WithTooltips(on bool) Option {
	return func(lo *Layouter) {
		lo.tooltips = on
	}
}

// WithSelectWholeText makes every word selection cover the whole text.
func WithSelectWholeText(on bool) Option {
	return func(lo *Layouter) {
		lo.selectWhole = on
	}
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}
