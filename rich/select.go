package rich

import (
	"image"
	"math"
	"unicode"
	"unicode/utf8"
)

// Sentinel y coordinates accepted by LineIndexForPoint.
const (
	TopOfText    = 0
	BottomOfText = math.MaxInt
)

// LineIndexForPoint returns the line whose frame contains pt.Y, or the
// line whose vertical centre is nearest. It returns -1 for an empty
// layout.
func (l *Layout) LineIndexForPoint(pt image.Point) int {
	n := len(l.Lines)
	switch {
	case n == 0:
		return -1
	case pt.Y == BottomOfText:
		return n - 1
	case pt.Y <= TopOfText:
		return 0
	}
	best, dist := 0, math.MaxInt
	for i := range l.Lines {
		f := l.Lines[i].Frame
		if pt.Y >= f.Min.Y && pt.Y < f.Max.Y {
			return i
		}
		c := (f.Min.Y + f.Max.Y) / 2
		d := c - pt.Y
		if d < 0 {
			d = -d
		}
		if d < dist {
			best, dist = i, d
		}
	}
	return best
}

// CharacterIndexForPoint returns the index of the character under pt, or
// -1 when pt lies beyond the typographic width of its line.
func (l *Layout) CharacterIndexForPoint(pt image.Point) int {
	i := l.LineIndexForPoint(pt)
	if i < 0 {
		return -1
	}
	ln := &l.Lines[i]
	x := pt.X - l.Origin(i).X
	if x >= ln.Frame.Dx() {
		return -1
	}
	x = max(x, 0)
	idx := l.shaper.IndexForOffset(ln.Shaped, x)
	// IndexForOffset rounds to the nearest boundary; the character under
	// x may be the one before it.
	if idx > ln.Range.Start {
		a, b := l.shaper.OffsetForIndex(ln.Shaped, idx-1), l.shaper.OffsetForIndex(ln.Shaped, idx)
		if a > b {
			a, b = b, a
		}
		if x >= a && x < b {
			idx--
		}
	}
	if idx >= l.Text.Len() {
		idx = l.Text.Len() - 1
	}
	return idx
}

func (l *Layout) lineEnd(i int) int {
	ln := &l.Lines[i]
	if ln.Range.End > ln.Range.Start && l.Text.Rune(ln.Range.End-1) == '\n' {
		return ln.Range.End - 1
	}
	return ln.Range.End
}

// indexInLine maps x to an insertion index on line i. Points past either
// edge snap to the line's logical ends.
func (l *Layout) indexInLine(i, x int) int {
	ln := &l.Lines[i]
	rel := x - l.Origin(i).X
	start, end := ln.Range.Start, l.lineEnd(i)
	if ln.RTL {
		start, end = end, start
	}
	switch {
	case rel <= 0:
		return start
	case rel >= ln.Frame.Dx():
		return end
	}
	return l.shaper.IndexForOffset(ln.Shaped, rel)
}

// DragRange returns the range selected by dragging from p0 to p1. With
// byWord set, both ends expand to word boundaries.
func (l *Layout) DragRange(p0, p1 image.Point, byWord bool) Range {
	a, b := l.LineIndexForPoint(p0), l.LineIndexForPoint(p1)
	if a < 0 {
		return Range{}
	}
	if b < a || (a == b && p1.X < p0.X) {
		a, b = b, a
		p0, p1 = p1, p0
	}
	var r Range
	caret := -1
	for i := a; i <= b; i++ {
		ln := &l.Lines[i]
		s, e := ln.Range.Start, ln.Range.End
		if i == a {
			s = l.indexInLine(i, p0.X)
		}
		if i == b {
			e = l.indexInLine(i, p1.X)
		}
		if s > e {
			s, e = e, s
		}
		if caret < 0 {
			caret = s
		}
		r = r.Union(Rng(s, e))
	}
	if r.Empty() {
		r = Rng(caret, caret)
	}
	if byWord {
		r = l.expandWords(r)
	}
	return r
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == utf8.RuneError
}

func (l *Layout) expandWords(r Range) Range {
	t := l.Text
	for r.Start > 0 && isWordRune(t.Rune(r.Start-1)) {
		r.Start--
	}
	for r.End < t.Len() && isWordRune(t.Rune(r.End)) {
		r.End++
	}
	return r
}

// WordRange returns the range a double click at pt selects: the whole
// link or block quote under pt, otherwise the surrounding word.
func (l *Layout) WordRange(pt image.Point) (Range, bool) {
	if l.selectWhole {
		return Rng(0, l.Text.Len()), l.Text.Len() > 0
	}
	idx := l.CharacterIndexForPoint(pt)
	if idx < 0 {
		return Range{}, false
	}
	if _, r, ok := l.LinkAt(idx); ok {
		return r, true
	}
	if q := l.Text.Attrs(idx).Quote; q != nil {
		return l.Text.quoteRange(q), true
	}
	if !isWordRune(l.Text.Rune(idx)) {
		return Rng(idx, idx+1), true
	}
	return l.expandWords(Rng(idx, idx+1)), true
}

// LineSelectRange returns the paragraph around pt without its newline,
// or the enclosing block quote.
func (l *Layout) LineSelectRange(pt image.Point) (Range, bool) {
	idx := l.CharacterIndexForPoint(pt)
	if idx < 0 {
		if i := l.LineIndexForPoint(pt); i >= 0 {
			idx = max(l.lineEnd(i)-1, l.Lines[i].Range.Start)
		} else {
			return Range{}, false
		}
	}
	t := l.Text
	if q := t.Attrs(idx).Quote; q != nil {
		return t.quoteRange(q), true
	}
	s, e := idx, idx
	for s > 0 && t.Rune(s-1) != '\n' {
		s--
	}
	for e < t.Len() && t.Rune(e) != '\n' {
		e++
	}
	return Rng(s, e), true
}

// ExpandToLines grows r to whole newline-delimited paragraphs, or to the
// full extent of a block quote it touches.
func (l *Layout) ExpandToLines(r Range) Range {
	t := l.Text
	r = r.Clamp(t.Len())
	for _, b := range l.BlockQuotes {
		if _, ok := b.Range.Intersect(r); ok {
			r = r.Union(t.quoteRange(b.Quote))
		}
	}
	for r.Start > 0 && t.Rune(r.Start-1) != '\n' {
		r.Start--
	}
	for r.End < t.Len() && t.Rune(r.End) != '\n' {
		r.End++
	}
	return r
}

// LineRect is the part of a selection that falls on one line.
type LineRect struct {
	Line int
	Rect image.Rectangle
}

// RectsForRange returns one rectangle per line intersecting r.
func (l *Layout) RectsForRange(r Range) []LineRect {
	var out []LineRect
	l.forLines(r, func(i int, part Range) {
		out = append(out, LineRect{Line: i, Rect: l.segmentRect(i, part)})
	})
	return out
}
