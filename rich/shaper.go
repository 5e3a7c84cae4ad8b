package rich

import (
	"image/color"

	"github.com/rjkroege/uikit/draw"
)

// Truncation selects where an over-long last line is elided.
type Truncation int

const (
	TruncateTail Truncation = iota
	TruncateHead
	TruncateMiddle
)

// Run is a positioned piece of a shaped line drawn with one font and
// colour. X is relative to the line's pen position.
type Run struct {
	Range Range
	X     int
	Width int
	RTL   bool
	Font  draw.Font
	Color color.Color

	// Token marks the truncation token; Text holds its string.
	Token bool
	Text  string
}

// Shaped is an opaque typeset line as produced by a Shaper.
type Shaped struct {
	// Source is the text the line was shaped from.
	Source *Text
	// Range is the part of Source the line stands for, including any
	// runes hidden by truncation (see Elided).
	Range  Range
	Elided Range

	// Width is the typographic width without trailing whitespace;
	// Advance includes it.
	Width   int
	Advance int
	Ascent  int
	Descent int

	// RTL is set when any run is right-to-left.
	RTL  bool
	Runs []Run
}

// Height is the sum of ascent and descent.
func (s *Shaped) Height() int { return s.Ascent + s.Descent }

// Token describes the truncation token. A nil Color means the colour in
// effect at the truncation point.
type Token struct {
	Text  string
	Color color.Color
}

// Ellipsis is the default truncation token text.
const Ellipsis = "…"

// Shaper is the text-shaping backend the layout engine delegates to. It
// must be deterministic for a given text and width.
type Shaper interface {
	// Metrics returns the line metrics of the font in effect at index i.
	Metrics(t *Text, i int) (ascent, descent int)
	// SuggestBreak returns how many runes starting at start fit on one
	// line no wider than maxWidth. It returns at least one grapheme when
	// start < t.Len(), and includes a terminating newline.
	SuggestBreak(t *Text, start, maxWidth int) int
	// ShapeLine typesets r as a single line.
	ShapeLine(t *Text, r Range) *Shaped
	// OffsetForIndex maps a rune index to a line-relative x.
	OffsetForIndex(l *Shaped, index int) int
	// IndexForOffset maps a line-relative x to the nearest rune boundary.
	IndexForOffset(l *Shaped, x int) int
	// TruncateLine elides part of l so it fits maxWidth together with
	// token. ok is false when no truncated line could be produced.
	TruncateLine(l *Shaped, maxWidth int, mode Truncation, token Token) (s *Shaped, ok bool)
}
