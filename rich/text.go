package rich

import (
	"image/color"
	"sort"
	"unicode/utf8"

	"github.com/rjkroege/uikit/draw"
)

// Text is a string with typed annotation ranges. Build it with NewText and
// Annotate; once handed to a Layouter it must not be modified.
type Text struct {
	runes  []rune
	byKind [numKinds][]Annotated
}

// NewText returns an unannotated Text holding s.
func NewText(s string) *Text {
	return &Text{runes: []rune(s)}
}

// Len returns the length of the text in runes.
func (t *Text) Len() int {
	if t == nil {
		return 0
	}
	return len(t.runes)
}

func (t *Text) String() string { return string(t.runes) }

// Rune returns the rune at i, or utf8.RuneError when i is out of range.
func (t *Text) Rune(i int) rune {
	if i < 0 || i >= len(t.runes) {
		return utf8.RuneError
	}
	return t.runes[i]
}

// Slice returns the substring covered by r.
func (t *Text) Slice(r Range) string {
	r = r.Clamp(len(t.runes))
	return string(t.runes[r.Start:r.End])
}

// Annotate attaches a over r, replacing whatever part of an existing
// annotation of the same kind r overlaps. It returns t for chaining.
func (t *Text) Annotate(r Range, a Annotation) *Text {
	r = r.Clamp(len(t.runes))
	if r.Empty() || a == nil {
		return t
	}
	k := a.Kind()
	list := t.byKind[k]
	out := make([]Annotated, 0, len(list)+2)
	for _, e := range list {
		if e.Range.End <= r.Start || e.Range.Start >= r.End {
			out = append(out, e)
			continue
		}
		if e.Range.Start < r.Start {
			out = append(out, Annotated{Range: Rng(e.Range.Start, r.Start), Annotation: e.Annotation})
		}
		if e.Range.End > r.End {
			out = append(out, Annotated{Range: Rng(r.End, e.Range.End), Annotation: e.Annotation})
		}
	}
	out = append(out, Annotated{Range: r, Annotation: a})
	sort.Slice(out, func(i, j int) bool { return out[i].Range.Start < out[j].Range.Start })
	t.byKind[k] = coalesce(out)
	return t
}

// coalesce merges touching neighbours carrying equal annotations.
func coalesce(list []Annotated) []Annotated {
	if len(list) < 2 {
		return list
	}
	out := list[:1]
	for _, e := range list[1:] {
		last := &out[len(out)-1]
		if last.Range.End == e.Range.Start && sameAnnotation(last.Annotation, e.Annotation) {
			last.Range.End = e.Range.End
			continue
		}
		out = append(out, e)
	}
	return out
}

func sameAnnotation(a, b Annotation) bool {
	switch a := a.(type) {
	case Bold, Italic, Strikethrough, Underline, Code:
		return a.Kind() == b.Kind()
	case Link:
		bl, ok := b.(Link)
		return ok && a == bl
	case BlockQuote:
		bq, ok := b.(BlockQuote)
		return ok && a.Quote == bq.Quote
	case Spoiler:
		bs, ok := b.(Spoiler)
		return ok && sameColor(a.Color, bs.Color)
	case Foreground:
		bf, ok := b.(Foreground)
		return ok && sameColor(a.Color, bf.Color)
	case Font:
		bf, ok := b.(Font)
		return ok && a.Face == bf.Face
	case HexColor:
		bh, ok := b.(HexColor)
		return ok && a.Size == bh.Size && sameColor(a.Color, bh.Color)
	}
	// Embedded items are distinct even when adjacent.
	return false
}

func sameColor(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

// Annotations returns the annotations of kind k in text order. The
// returned slice must not be modified.
func (t *Text) Annotations(k Kind) []Annotated {
	if t == nil || k < 0 || k >= numKinds {
		return nil
	}
	return t.byKind[k]
}

// All returns every annotation ordered by start, then kind.
func (t *Text) All() []Annotated {
	var all []Annotated
	for k := Kind(0); k < numKinds; k++ {
		all = append(all, t.byKind[k]...)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Range.Start < all[j].Range.Start })
	return all
}

// At returns the annotation of kind k covering index i.
func (t *Text) At(i int, k Kind) (Annotated, bool) {
	list := t.Annotations(k)
	n := sort.Search(len(list), func(j int) bool { return list[j].Range.Start > i })
	if n == 0 {
		return Annotated{}, false
	}
	if e := list[n-1]; e.Range.Contains(i) {
		return e, true
	}
	return Annotated{}, false
}

// Attrs is the merged attribute set in effect at one index.
type Attrs struct {
	Bold, Italic, Strikethrough, Underline, Code bool

	Link     *Link
	Quote    *Quote
	Spoiler  *Spoiler
	Embedded *Embedded
	Hex      *HexColor

	Fg   color.Color
	Font draw.Font
}

// Attrs resolves the attributes at index i.
func (t *Text) Attrs(i int) Attrs {
	var a Attrs
	for k := Kind(0); k < numKinds; k++ {
		e, ok := t.At(i, k)
		if !ok {
			continue
		}
		switch v := e.Annotation.(type) {
		case Bold:
			a.Bold = true
		case Italic:
			a.Italic = true
		case Strikethrough:
			a.Strikethrough = true
		case Underline:
			a.Underline = true
		case Code:
			a.Code = true
		case Link:
			a.Link = &v
		case BlockQuote:
			a.Quote = v.Quote
		case Spoiler:
			a.Spoiler = &v
		case Embedded:
			a.Embedded = &v
		case HexColor:
			a.Hex = &v
		case Foreground:
			a.Fg = v.Color
		case Font:
			a.Font = v.Face
		}
	}
	return a
}

// Segment is a maximal sub-range with uniform attributes.
type Segment struct {
	Range Range
	Attrs Attrs
}

// Segments splits r at every annotation boundary.
func (t *Text) Segments(r Range) []Segment {
	r = r.Clamp(t.Len())
	if r.Empty() {
		return nil
	}
	cuts := []int{r.Start, r.End}
	for k := Kind(0); k < numKinds; k++ {
		for _, e := range t.byKind[k] {
			if e.Range.Start > r.Start && e.Range.Start < r.End {
				cuts = append(cuts, e.Range.Start)
			}
			if e.Range.End > r.Start && e.Range.End < r.End {
				cuts = append(cuts, e.Range.End)
			}
		}
	}
	sort.Ints(cuts)
	segs := make([]Segment, 0, len(cuts))
	for i := 1; i < len(cuts); i++ {
		if cuts[i] == cuts[i-1] {
			continue
		}
		s := Rng(cuts[i-1], cuts[i])
		segs = append(segs, Segment{Range: s, Attrs: t.Attrs(s.Start)})
	}
	return segs
}

// quoteRange returns the union of every range annotated with q.
func (t *Text) quoteRange(q *Quote) Range {
	var r Range
	for _, e := range t.byKind[KindBlockQuote] {
		if e.Annotation.(BlockQuote).Quote == q {
			r = r.Union(e.Range)
		}
	}
	return r
}

// withoutEmbeddedColor returns a copy of t in which every embedded item
// range is painted transparent, so shapers do not draw placeholder glyphs.
func (t *Text) withoutEmbeddedColor() *Text {
	items := t.byKind[KindEmbedded]
	if len(items) == 0 {
		return t
	}
	c := &Text{runes: t.runes}
	for k := range t.byKind {
		c.byKind[k] = append([]Annotated(nil), t.byKind[k]...)
	}
	for _, e := range items {
		c.Annotate(e.Range, Foreground{Color: color.Transparent})
	}
	return c
}
