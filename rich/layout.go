package rich

import (
	"image"
	"image/color"
	"log"

	"github.com/rjkroege/uikit/theme"
)

// Cutout is an area carved out of a corner of the layout rectangle. A zero
// size means no cutout.
type Cutout struct {
	TopLeft     image.Point
	TopRight    image.Point
	BottomRight image.Point
}

// Constraints are the inputs of a measurement besides the text itself.
// Constraints is comparable and is used as a cache key.
type Constraints struct {
	MaxWidth int
	// MaxLines limits the number of lines; 0 means unlimited. The last
	// permitted line is truncated when text remains.
	MaxLines   int
	Truncation Truncation
	Cutout     Cutout

	// Alignment is the pen flush: 0 left, 0.5 centred, 1 right.
	Alignment float64

	// LineSpacing overrides the font-derived spacing when SpacingSet.
	LineSpacing int
	SpacingSet  bool

	// TruncationColor overrides the colour of the truncation token.
	TruncationColor color.Color
}

// Strike is a strikethrough stroke relative to its line's origin.
type Strike struct {
	Rect  image.Rectangle
	Color color.Color
}

// Placement is an embedded item positioned within the layout.
type Placement struct {
	Range Range
	Item  any
	Rect  image.Rectangle
}

// Line is one laid-out line.
type Line struct {
	Shaped *Shaped
	// Frame is the line's rectangle in layout coordinates before the
	// pen offset is applied; its width is the typographic width.
	Frame image.Rectangle
	Range Range
	RTL   bool
	// Flush is the effective pen flush after the RTL flip.
	Flush float64
	// Right is the horizontal space reserved right of the line.
	Right int
	Quote *Quote

	Strikes  []Strike
	Embedded []Placement
}

// InQuote reports whether the line belongs to a block quote.
func (ln *Line) InQuote() bool { return ln.Quote != nil }

// Ascent is the distance from the top of the frame to the baseline.
func (ln *Line) Ascent() int { return ln.Shaped.Ascent }

// QuoteRegion is the merged background region of consecutive lines
// of one quote.
type QuoteRegion struct {
	Quote  *Quote
	Range  Range
	Frame  image.Rectangle
	Header image.Rectangle
}

// Layout is the immutable result of Layouter.Measure.
type Layout struct {
	Text        *Text
	Constraints Constraints
	Lines       []Line
	BlockQuotes []QuoteRegion
	Embedded    []Placement
	Size        image.Point
	Spacing     int
	// Truncated is set when the text did not fit and a line was elided.
	Truncated bool

	LinkStrokes    []Stroke
	Tooltips       []Tooltip
	HexMarkers     []HexMarker
	SpoilerRegions []SpoilerRegion

	shaper      Shaper
	palette     theme.Palette
	selectWhole bool
	spoilers    []spoiler
}

// PenOffset returns the horizontal alignment offset of line i.
func (l *Layout) PenOffset(i int) int {
	ln := &l.Lines[i]
	avail := l.Size.X - ln.Frame.Min.X - ln.Right
	slack := avail - ln.Frame.Dx()
	if slack <= 0 {
		return 0
	}
	return int(float64(slack) * ln.Flush)
}

// Origin returns the top-left of line i's text with the pen offset applied.
func (l *Layout) Origin(i int) image.Point {
	ln := &l.Lines[i]
	return ln.Frame.Min.Add(image.Pt(l.PenOffset(i), 0))
}

// Layouter measures annotated text into Layouts.
type Layouter struct {
	shaper      Shaper
	palette     theme.Palette
	logger      *log.Logger
	strokeLinks bool
	tooltips    bool
	selectWhole bool
}

// NewLayouter returns a Layouter shaping with s.
func NewLayouter(s Shaper, opts ...Option) *Layouter {
	lo := &Layouter{
		shaper:  s,
		palette: theme.Light(),
		logger:  discardLogger(),
	}
	for _, o := range opts {
		o(lo)
	}
	return lo
}

// cutoutWidth is the width taken from a line at [top, top+h) by a
// cutout of size c at the top of the layout.
func cutoutWidth(c image.Point, top, h, spacing int) int {
	if c.X <= 0 || c.Y <= 0 {
		return 0
	}
	if top < c.Y+spacing && top+h > -spacing {
		return c.X
	}
	return 0
}

// Measure lays t out under c. It never fails: text that cannot be laid
// out yields an empty Layout.
func (lo *Layouter) Measure(t *Text, c Constraints) *Layout {
	l := &Layout{
		Text:        t,
		Constraints: c,
		shaper:      lo.shaper,
		palette:     lo.palette,
		selectWhole: lo.selectWhole,
	}
	if t.Len() == 0 || c.MaxWidth <= 0 {
		return l
	}
	for _, e := range t.Annotations(KindSpoiler) {
		l.spoilers = append(l.spoilers, spoiler{Range: e.Range, Color: e.Annotation.(Spoiler).Color})
	}

	ascent, descent := lo.shaper.Metrics(t, 0)
	lineHeight := ascent + descent
	spacing := lineHeight * 12 / 100
	if c.SpacingSet {
		spacing = c.LineSpacing
	}
	l.Spacing = spacing

	shaping := t.withoutEmbeddedColor()
	n := t.Len()
	y, pos := 0, 0
	var quote *Quote
	for pos < n {
		if c.MaxLines > 0 && len(l.Lines) >= c.MaxLines {
			break
		}
		last := c.MaxLines > 0 && len(l.Lines) == c.MaxLines-1

		q := t.Attrs(pos).Quote
		if len(l.Lines) > 0 {
			y += spacing
		}
		if q != quote {
			if quote != nil {
				y += quote.Space
			}
			if q != nil {
				y += q.Space + spacing + q.HeaderHeight
			}
			quote = q
		}

		x, right := 0, 0
		if q != nil {
			x, right = q.Inset, q.Space
		}
		tl := cutoutWidth(c.Cutout.TopLeft, y, lineHeight, spacing)
		tr := cutoutWidth(c.Cutout.TopRight, y, lineHeight, spacing)
		x += tl
		right += tr
		avail := c.MaxWidth - x - right

		count := lo.shaper.SuggestBreak(shaping, pos, avail)
		if count <= 0 {
			lo.logger.Printf("rich: no break opportunity at %d", pos)
			break
		}

		var shaped *Shaped
		if last && pos+count < n {
			shaped = lo.truncate(shaping, t, Rng(pos, n), avail-c.Cutout.BottomRight.X, c, l)
			pos = n
		} else {
			shaped = lo.shaper.ShapeLine(shaping, Rng(pos, pos+count))
			pos += count
		}

		h := max(lineHeight, shaped.Height())
		ln := Line{
			Shaped: shaped,
			Frame:  image.Rect(x, y, x+shaped.Width, y+h),
			Range:  shaped.Range,
			RTL:    shaped.RTL,
			Flush:  c.Alignment,
			Right:  right,
			Quote:  q,
		}
		if ln.RTL {
			ln.Flush = 1 - ln.Flush
		}
		lo.decorate(&ln, t)
		l.Lines = append(l.Lines, ln)
		l.Size.X = max(l.Size.X, ln.Frame.Max.X+right)
		y += h
	}
	if len(l.Lines) > 0 {
		y += spacing
	}
	if quote != nil {
		y += quote.Space
	}
	l.Size.Y = y

	for i := range l.Lines {
		if q := l.Lines[i].Quote; q != nil && q.IsCode {
			l.Size.X = max(l.Size.X, c.MaxWidth)
		}
	}
	lo.placeEmbedded(l)
	l.BlockQuotes = coalesceQuotes(l)
	lo.computeRegions(l)
	return l
}

// truncate typesets the remaining text r as one line and elides it if it
// is wider than maxWidth. The untruncated line is kept when the shaper
// cannot truncate.
func (lo *Layouter) truncate(shaping, t *Text, r Range, maxWidth int, c Constraints, l *Layout) *Shaped {
	full := lo.shaper.ShapeLine(shaping, r)
	if full.Width <= maxWidth {
		return full
	}
	tok := Token{Text: Ellipsis, Color: c.TruncationColor}
	if tok.Color == nil {
		tok.Color = lo.palette.TruncationToken
	}
	s, ok := lo.shaper.TruncateLine(full, maxWidth, c.Truncation, tok)
	if !ok {
		lo.logger.Printf("rich: truncation of %v failed; keeping full line", r)
		return full
	}
	l.Truncated = true
	return s
}

// decorate fills the per-line strikethrough and embedded item records.
func (lo *Layouter) decorate(ln *Line, t *Text) {
	sh := ln.Shaped
	for _, seg := range t.Segments(ln.Range) {
		if !seg.Attrs.Strikethrough {
			continue
		}
		a := lo.shaper.OffsetForIndex(sh, seg.Range.Start)
		b := lo.shaper.OffsetForIndex(sh, seg.Range.End)
		if a > b {
			a, b = b, a
		}
		if a == b {
			continue
		}
		col := seg.Attrs.Fg
		if col == nil {
			col = lo.palette.Text
		}
		mid := sh.Ascent - sh.Ascent/3
		ln.Strikes = append(ln.Strikes, Strike{Rect: image.Rect(a, mid, b, mid+1), Color: col})
	}
	for _, e := range t.Annotations(KindEmbedded) {
		if _, ok := e.Range.Intersect(ln.Range); !ok {
			continue
		}
		if !ln.Range.ContainsRange(e.Range) {
			lo.logger.Printf("rich: embedded item %v spans a line break; discarded", e.Range)
			continue
		}
		a := lo.shaper.OffsetForIndex(sh, e.Range.Start)
		b := lo.shaper.OffsetForIndex(sh, e.Range.End)
		if a > b {
			a, b = b, a
		}
		box := image.Rect(a, 0, b, sh.Height())
		if box.Dx() > 2*embedMargin && box.Dy() > 2*embedMargin {
			box = box.Inset(embedMargin)
		}
		ln.Embedded = append(ln.Embedded, Placement{
			Range: e.Range,
			Item:  e.Annotation.(Embedded).Item,
			Rect:  box,
		})
	}
}

// embedMargin is the inset of an embedded item within its placeholder.
// Boxes too small to inset are used whole.
const embedMargin = 1

func (lo *Layouter) placeEmbedded(l *Layout) {
	for i := range l.Lines {
		o := l.Origin(i)
		for _, p := range l.Lines[i].Embedded {
			p.Rect = p.Rect.Add(o)
			l.Embedded = append(l.Embedded, p)
		}
	}
}

// coalesceQuotes merges the per-line quote regions of consecutive lines
// that share a quote, widening each merged region to its widest line and
// adding the quote padding and header.
func coalesceQuotes(l *Layout) []QuoteRegion {
	var out []QuoteRegion
	half := (l.Spacing + 1) / 2
	for i := range l.Lines {
		ln := &l.Lines[i]
		q := ln.Quote
		if q == nil {
			continue
		}
		right := ln.Frame.Max.X + l.PenOffset(i) + q.Space
		if q.IsCode {
			right = l.Size.X
		}
		f := image.Rect(ln.Frame.Min.X-q.Inset, ln.Frame.Min.Y-half, right, ln.Frame.Max.Y+half)
		if n := len(out); n > 0 {
			prev := &out[n-1]
			if prev.Quote == q && prev.Range.End == ln.Range.Start && prev.Frame.Max.Y >= f.Min.Y {
				prev.Range.End = ln.Range.End
				prev.Frame = prev.Frame.Union(f)
				continue
			}
		}
		out = append(out, QuoteRegion{Quote: q, Range: ln.Range, Frame: f})
	}
	for i := range out {
		b := &out[i]
		q := b.Quote
		b.Frame.Min.Y += half - q.Space - q.HeaderHeight
		b.Frame.Max.Y += q.Space - half
		if q.HeaderHeight > 0 {
			top := b.Frame.Min.Y + q.Space
			b.Header = image.Rect(b.Frame.Min.X+q.Inset, top, b.Frame.Max.X, top+q.HeaderHeight)
		}
	}
	return out
}
