package rich

import (
	"image"
	"image/color"
)

// Stroke is an underline drawn below a link or underlined text.
type Stroke struct {
	Rect  image.Rectangle
	Color color.Color
}

// Tooltip is a hover region carrying link tooltip text.
type Tooltip struct {
	Rect image.Rectangle
	Text string
}

// HexMarker is a colour swatch drawn beside a hex colour literal.
type HexMarker struct {
	Rect  image.Rectangle
	Color color.Color
	Range Range
}

// SpoilerRegion is an area covered by spoiler dust.
type SpoilerRegion struct {
	Rect    image.Rectangle
	Color   color.Color
	Spoiler int
}

type spoiler struct {
	Range    Range
	Color    color.Color
	Revealed bool
}

// segmentRect returns the absolute rectangle of r on line i. A segment
// starting at the line start begins at the line edge.
func (l *Layout) segmentRect(i int, r Range) image.Rectangle {
	ln := &l.Lines[i]
	a := 0
	if r.Start != ln.Range.Start || ln.RTL {
		a = l.shaper.OffsetForIndex(ln.Shaped, r.Start)
	}
	b := l.shaper.OffsetForIndex(ln.Shaped, r.End)
	if a > b {
		a, b = b, a
	}
	o := l.Origin(i)
	return image.Rect(o.X+a, ln.Frame.Min.Y, o.X+b, ln.Frame.Max.Y)
}

// forLines calls fn for every line intersecting r.
func (l *Layout) forLines(r Range, fn func(i int, part Range)) {
	for i := range l.Lines {
		if part, ok := l.Lines[i].Range.Intersect(r); ok {
			fn(i, part)
		}
	}
}

func (lo *Layouter) computeRegions(l *Layout) {
	t := l.Text
	strokes := t.Annotations(KindUnderline)
	if lo.strokeLinks {
		strokes = append(append([]Annotated(nil), strokes...), t.Annotations(KindLink)...)
	}
	for _, e := range strokes {
		l.forLines(e.Range, func(i int, part Range) {
			r := l.segmentRect(i, part)
			base := r.Min.Y + l.Lines[i].Ascent() + 1
			col := t.Attrs(part.Start).Fg
			if col == nil {
				col = lo.palette.Link
			}
			l.LinkStrokes = append(l.LinkStrokes, Stroke{Rect: image.Rect(r.Min.X, base, r.Max.X, base+1), Color: col})
		})
	}
	if lo.tooltips {
		for _, e := range t.Annotations(KindLink) {
			tip := e.Annotation.(Link).Tooltip
			if tip == "" {
				continue
			}
			l.forLines(e.Range, func(i int, part Range) {
				l.Tooltips = append(l.Tooltips, Tooltip{Rect: l.segmentRect(i, part), Text: tip})
			})
		}
	}
	for _, e := range t.Annotations(KindHexColor) {
		hc := e.Annotation.(HexColor)
		l.forLines(e.Range, func(i int, part Range) {
			if part.Start != e.Range.Start {
				return
			}
			r := l.segmentRect(i, part)
			mid := (r.Min.Y + r.Max.Y) / 2
			sz := hc.Size
			l.HexMarkers = append(l.HexMarkers, HexMarker{
				Rect:  image.Rect(r.Min.X, mid-sz.Y/2, r.Min.X+sz.X, mid-sz.Y/2+sz.Y),
				Color: hc.Color,
				Range: e.Range,
			})
		})
	}
	l.SpoilerRegions = l.SpoilerRects(Range{})
}

// SpoilerRects returns the dust regions of every unrevealed spoiler with
// the part covered by sel left uncovered.
func (l *Layout) SpoilerRects(sel Range) []SpoilerRegion {
	var out []SpoilerRegion
	for k, s := range l.spoilers {
		if s.Revealed {
			continue
		}
		for _, part := range subtract(s.Range, sel) {
			l.forLines(part, func(i int, p Range) {
				out = append(out, SpoilerRegion{Rect: l.segmentRect(i, p), Color: s.Color, Spoiler: k})
			})
		}
	}
	return out
}

// subtract returns r without o as zero, one or two ranges.
func subtract(r, o Range) []Range {
	in, ok := r.Intersect(o)
	if !ok {
		return []Range{r}
	}
	var out []Range
	if in.Start > r.Start {
		out = append(out, Rng(r.Start, in.Start))
	}
	if in.End < r.End {
		out = append(out, Rng(in.End, r.End))
	}
	return out
}

// SpoilerAt returns the index of the unrevealed spoiler covering text
// index i.
func (l *Layout) SpoilerAt(i int) (int, bool) {
	for k, s := range l.spoilers {
		if !s.Revealed && s.Range.Contains(i) {
			return k, true
		}
	}
	return -1, false
}

// RevealSpoiler uncovers spoiler k and recomputes the dust regions.
func (l *Layout) RevealSpoiler(k int) {
	if k < 0 || k >= len(l.spoilers) {
		return
	}
	l.spoilers[k].Revealed = true
	l.SpoilerRegions = l.SpoilerRects(Range{})
}

// RevealSpoilers uncovers every spoiler.
func (l *Layout) RevealSpoilers() {
	for k := range l.spoilers {
		l.spoilers[k].Revealed = true
	}
	l.SpoilerRegions = nil
}

// LinkAt returns the link covering text index i.
func (l *Layout) LinkAt(i int) (Link, Range, bool) {
	e, ok := l.Text.At(i, KindLink)
	if !ok {
		return Link{}, Range{}, false
	}
	return e.Annotation.(Link), e.Range, true
}
