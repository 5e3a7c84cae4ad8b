package rich

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"github.com/rjkroege/uikit/draw"
	"golang.org/x/text/unicode/bidi"
)

// Fonts are the faces a FontShaper picks from by attribute. Missing
// variants fall back to Regular.
type Fonts struct {
	Regular    draw.Font
	Bold       draw.Font
	Italic     draw.Font
	BoldItalic draw.Font
	Code       draw.Font
}

// FontShaper shapes text with draw.Font metrics. Line-break opportunities
// follow Unicode UAX #14 and truncation cuts at grapheme boundaries. Runs
// containing strong right-to-left characters mark their line RTL, and RTL
// lines are positioned from the right edge.
type FontShaper struct {
	fonts Fonts
	tabW  int
}

var _ = Shaper((*FontShaper)(nil))

// NewFontShaper returns a shaper over fonts. fonts.Regular is required.
func NewFontShaper(fonts Fonts) *FontShaper {
	if fonts.Bold == nil {
		fonts.Bold = fonts.Regular
	}
	if fonts.Italic == nil {
		fonts.Italic = fonts.Regular
	}
	if fonts.BoldItalic == nil {
		fonts.BoldItalic = fonts.Bold
	}
	if fonts.Code == nil {
		fonts.Code = fonts.Regular
	}
	return &FontShaper{
		fonts: fonts,
		tabW:  4,
	}
}

// FontFor returns the face used for runes carrying a.
func (s *FontShaper) FontFor(a Attrs) draw.Font {
	switch {
	case a.Font != nil:
		return a.Font
	case a.Code:
		return s.fonts.Code
	case a.Bold && a.Italic:
		return s.fonts.BoldItalic
	case a.Bold:
		return s.fonts.Bold
	case a.Italic:
		return s.fonts.Italic
	}
	return s.fonts.Regular
}

func (s *FontShaper) Metrics(t *Text, i int) (ascent, descent int) {
	f := s.fonts.Regular
	if i >= 0 && i < t.Len() {
		f = s.FontFor(t.Attrs(i))
	}
	a := draw.AscentOf(f)
	return a, f.Height() - a
}

func (s *FontShaper) runeWidth(f draw.Font, r rune) int {
	switch r {
	case '\n', '\r':
		return 0
	case '\t':
		return s.tabW * f.StringWidth(" ")
	}
	return f.RunesWidth([]rune{r})
}

// advances returns the width of every rune in r.
func (s *FontShaper) advances(t *Text, r Range) []int {
	w := make([]int, 0, r.Len())
	for _, seg := range t.Segments(r) {
		f := s.FontFor(seg.Attrs)
		for i := seg.Range.Start; i < seg.Range.End; i++ {
			w = append(w, s.runeWidth(f, t.runes[i]))
		}
	}
	return w
}

func isTrailingSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// breakWindow is the number of runes SuggestBreak examines first.
const breakWindow = 256

// SuggestBreak examines a window of text after start and doubles it
// until the break is decided inside the window, so each line costs time
// proportional to its own length.
func (s *FontShaper) SuggestBreak(t *Text, start, maxWidth int) int {
	n := t.Len()
	if start < 0 || start >= n {
		return 0
	}
	for window := breakWindow; ; window *= 2 {
		end := min(start+window, n)
		if k, ok := s.breakIn(t, start, end, maxWidth); ok || end == n {
			return k
		}
	}
}

// breakIn finds the break for the line at start looking only at runes
// before end. ok is false when the answer depends on text past end.
func (s *FontShaper) breakIn(t *Text, start, end, maxWidth int) (int, bool) {
	n := t.Len()
	adv := s.advances(t, Rng(start, end))
	rest := string(t.runes[start:end])
	state := -1
	pos := start
	width := 0
	for len(rest) > 0 {
		var seg string
		var mustBreak bool
		seg, rest, mustBreak, state = uniseg.FirstLineSegmentInString(rest, state)
		segLen := utf8.RuneCountInString(seg)
		// The final segment of a window may continue past end.
		cut := len(rest) == 0 && end < n

		segW, inkW := 0, 0
		for i := 0; i < segLen; i++ {
			segW += adv[pos-start+i]
			if !isTrailingSpace(t.runes[pos+i]) {
				inkW = segW
			}
		}
		if width+inkW > maxWidth {
			if pos > start {
				return pos - start, true
			}
			if cut {
				return 0, false
			}
			return s.graphemesThatFit(t, adv, start, pos+segLen, maxWidth), true
		}
		if cut {
			return 0, false
		}
		width += segW
		pos += segLen
		if mustBreak && pos < n {
			return pos - start, true
		}
	}
	return pos - start, true
}

// graphemesThatFit breaks inside an unbreakable segment [start, end),
// keeping at least one grapheme cluster.
func (s *FontShaper) graphemesThatFit(t *Text, adv []int, start, end, maxWidth int) int {
	pos := start
	width := 0
	for _, b := range graphemeBounds(t, Rng(start, end)) {
		w := 0
		for i := pos; i < b; i++ {
			w += adv[i-start]
		}
		if width+w > maxWidth && pos > start {
			break
		}
		width += w
		pos = b
	}
	return pos - start
}

// graphemeBounds returns the end offset of every grapheme cluster in r.
func graphemeBounds(t *Text, r Range) []int {
	var bounds []int
	rest := string(t.runes[r.Start:r.End])
	pos := r.Start
	state := -1
	for len(rest) > 0 {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		pos += utf8.RuneCountInString(cluster)
		bounds = append(bounds, pos)
	}
	return bounds
}

func isRTL(runes []rune) bool {
	for _, r := range runes {
		p, _ := bidi.LookupRune(r)
		if c := p.Class(); c == bidi.R || c == bidi.AL {
			return true
		}
	}
	return false
}

func (s *FontShaper) ShapeLine(t *Text, r Range) *Shaped {
	r = r.Clamp(t.Len())
	l := &Shaped{Source: t, Range: r}
	s.appendRuns(l, t, r)
	s.finish(l)
	return l
}

// appendRuns lays the segments of r out after the runs already in l.
func (s *FontShaper) appendRuns(l *Shaped, t *Text, r Range) {
	x := l.Advance
	for _, seg := range t.Segments(r) {
		f := s.FontFor(seg.Attrs)
		w := 0
		for i := seg.Range.Start; i < seg.Range.End; i++ {
			w += s.runeWidth(f, t.runes[i])
		}
		run := Run{
			Range: seg.Range,
			X:     x,
			Width: w,
			RTL:   isRTL(t.runes[seg.Range.Start:seg.Range.End]),
			Font:  f,
			Color: seg.Attrs.Fg,
		}
		l.Runs = append(l.Runs, run)
		x += w
		a := draw.AscentOf(f)
		l.Ascent = max(l.Ascent, a)
		l.Descent = max(l.Descent, f.Height()-a)
		l.RTL = l.RTL || run.RTL
	}
	l.Advance = x
}

func (s *FontShaper) appendToken(l *Shaped, tok Token, f draw.Font) {
	w := f.StringWidth(tok.Text)
	l.Runs = append(l.Runs, Run{
		Range: Rng(l.Elided.Start, l.Elided.Start),
		X:     l.Advance,
		Width: w,
		Font:  f,
		Color: tok.Color,
		Token: true,
		Text:  tok.Text,
	})
	l.Advance += w
}

// finish computes Width and, for RTL lines, mirrors run positions so the
// first logical run sits at the right edge.
func (s *FontShaper) finish(l *Shaped) {
	trailing := 0
	for i := len(l.Runs) - 1; i >= 0; i-- {
		run := l.Runs[i]
		if run.Token {
			break
		}
		done := false
		for j := run.Range.End - 1; j >= run.Range.Start; j-- {
			c := l.Source.runes[j]
			if !isTrailingSpace(c) {
				done = true
				break
			}
			trailing += s.runeWidth(run.Font, c)
		}
		if done {
			break
		}
	}
	l.Width = l.Advance - trailing
	if l.RTL {
		for i := range l.Runs {
			l.Runs[i].X = l.Advance - l.Runs[i].X - l.Runs[i].Width
		}
	}
}

// logicalOffset is the distance from the logical start of l to index.
func (s *FontShaper) logicalOffset(l *Shaped, index int) int {
	for _, run := range l.Runs {
		x := run.X
		if l.RTL {
			x = l.Advance - run.X - run.Width
		}
		if run.Token {
			if l.Elided.Contains(index) {
				return x
			}
			continue
		}
		if index <= run.Range.Start {
			return x
		}
		if index < run.Range.End {
			for i := run.Range.Start; i < index; i++ {
				x += s.runeWidth(run.Font, l.Source.runes[i])
			}
			return x
		}
	}
	return l.Advance
}

func (s *FontShaper) OffsetForIndex(l *Shaped, index int) int {
	x := s.logicalOffset(l, index)
	if l.RTL {
		return l.Advance - x
	}
	return x
}

// visibleEnd is the end of l without a terminating newline.
func visibleEnd(l *Shaped) int {
	end := l.Range.End
	if end > l.Range.Start && l.Source.Rune(end-1) == '\n' {
		end--
	}
	return end
}

func (s *FontShaper) IndexForOffset(l *Shaped, x int) int {
	if l.RTL {
		x = l.Advance - x
	}
	if x <= 0 {
		return l.Range.Start
	}
	end := visibleEnd(l)
	acc := 0
	for _, run := range l.Runs {
		if run.Token {
			if x < acc+run.Width {
				return l.Elided.Start
			}
			acc += run.Width
			continue
		}
		for i := run.Range.Start; i < run.Range.End && i < end; i++ {
			w := s.runeWidth(run.Font, l.Source.runes[i])
			if x < acc+(w+1)/2 {
				return i
			}
			acc += w
		}
	}
	return end
}

func (s *FontShaper) TruncateLine(l *Shaped, maxWidth int, mode Truncation, token Token) (*Shaped, bool) {
	t := l.Source
	r := l.Range
	if t == nil || r.Empty() {
		return nil, false
	}
	bounds := append([]int{r.Start}, graphemeBounds(t, r)...)
	adv := s.advances(t, r)
	widthOf := func(from, to int) int {
		w := 0
		for i := from; i < to; i++ {
			if t.runes[i] == '\n' {
				continue
			}
			w += adv[i-r.Start]
		}
		return w
	}

	cut := func() int {
		switch mode {
		case TruncateHead:
			return r.End - 1
		case TruncateMiddle:
			return r.Start + r.Len()/2
		}
		return r.Start
	}()
	f := s.FontFor(t.Attrs(min(max(cut, r.Start), r.End-1)))
	if token.Color == nil {
		token.Color = t.Attrs(min(max(cut, r.Start), r.End-1)).Fg
	}
	avail := maxWidth - f.StringWidth(token.Text)
	if avail < 0 {
		return nil, false
	}

	out := &Shaped{Source: t, Range: r}
	switch mode {
	case TruncateTail:
		keep := r.Start
		for _, b := range bounds[1:] {
			if widthOf(r.Start, b) > avail {
				break
			}
			keep = b
		}
		for keep > r.Start && isTrailingSpace(t.runes[keep-1]) {
			keep--
		}
		out.Elided = Rng(keep, r.End)
		s.appendRuns(out, t, Rng(r.Start, keep))
		s.appendToken(out, token, f)
	case TruncateHead:
		from := r.End
		for i := len(bounds) - 2; i >= 0; i-- {
			if widthOf(bounds[i], r.End) > avail {
				break
			}
			from = bounds[i]
		}
		out.Elided = Rng(r.Start, from)
		s.appendToken(out, token, f)
		s.appendRuns(out, t, Rng(from, r.End))
	case TruncateMiddle:
		half := avail / 2
		keep := r.Start
		for _, b := range bounds[1:] {
			if widthOf(r.Start, b) > half {
				break
			}
			keep = b
		}
		rem := avail - widthOf(r.Start, keep)
		from := r.End
		for i := len(bounds) - 2; i >= 0 && bounds[i] >= keep; i-- {
			if widthOf(bounds[i], r.End) > rem {
				break
			}
			from = bounds[i]
		}
		out.Elided = Rng(keep, from)
		s.appendRuns(out, t, Rng(r.Start, keep))
		s.appendToken(out, token, f)
		s.appendRuns(out, t, Rng(from, r.End))
	default:
		return nil, false
	}
	s.finish(out)
	return out, true
}
