package rich

import (
	"image"
	"image/color"

	"github.com/rjkroege/uikit/draw"
	"github.com/rjkroege/uikit/theme"
)

// Renderer paints Layouts into draw.Images. Colour source images are
// allocated once per colour and reused.
type Renderer struct {
	display draw.Display
	font    draw.Font
	palette theme.Palette
	colors  map[draw.Color]draw.Image
}

// NewRenderer returns a renderer allocating from d. font is used for
// quote headers.
func NewRenderer(d draw.Display, font draw.Font, p theme.Palette) *Renderer {
	return &Renderer{
		display: d,
		font:    font,
		palette: p,
		colors:  make(map[draw.Color]draw.Image),
	}
}

// SetPalette switches the colours used by subsequent draws.
func (r *Renderer) SetPalette(p theme.Palette) { r.palette = p }

func (r *Renderer) color(c, def color.Color) draw.Image {
	if c == nil {
		c = def
	}
	dc := draw.ColorOf(c)
	if img, ok := r.colors[dc]; ok {
		return img
	}
	img, err := r.display.AllocImage(image.Rect(0, 0, 1, 1), draw.RGBA32, true, dc)
	if err != nil {
		return nil
	}
	r.colors[dc] = img
	return img
}

func transparent(c color.Color) bool {
	if c == nil {
		return false
	}
	_, _, _, a := c.RGBA()
	return a == 0
}

// Draw paints l at origin in dst with sel highlighted.
func (r *Renderer) Draw(dst draw.Image, l *Layout, origin image.Point, sel Range) {
	p := r.palette
	for _, b := range l.BlockQuotes {
		q := b.Quote
		f := b.Frame.Add(origin)
		back := q.Colors.Background
		if back == nil {
			back = p.QuoteBack
			if q.IsCode {
				back = p.CodeBack
			}
		}
		dst.Draw(f, r.color(back, p.QuoteBack), nil, image.Point{})
		if !q.IsCode && q.Inset > 0 {
			bar := image.Rect(f.Min.X, f.Min.Y, f.Min.X+max(q.Inset/4, 1), f.Max.Y)
			dst.Draw(bar, r.color(q.Colors.Bar, p.QuoteBar), nil, image.Point{})
		}
		if q.Header != "" && !b.Header.Empty() && r.font != nil {
			dst.Bytes(b.Header.Min.Add(origin), r.color(q.Colors.Header, p.QuoteHeader), image.Point{}, r.font, []byte(q.Header))
		}
	}

	if !sel.Empty() {
		for _, lr := range l.RectsForRange(sel) {
			dst.Draw(lr.Rect.Add(origin), r.color(p.SelectionBack, p.SelectionBack), nil, image.Point{})
		}
	}

	for i := range l.Lines {
		ln := &l.Lines[i]
		o := l.Origin(i).Add(origin)
		for _, run := range ln.Shaped.Runs {
			text := run.Text
			if !run.Token {
				text = l.Text.Slice(run.Range)
			}
			if text == "" || transparent(run.Color) {
				continue
			}
			def := p.Text
			if !run.Token && l.Text.Attrs(run.Range.Start).Link != nil {
				def = p.Link
			}
			src := r.color(run.Color, def)
			if _, in := sel.Intersect(run.Range); in && p.SelectionText != nil {
				src = r.color(p.SelectionText, def)
			}
			dst.Bytes(o.Add(image.Pt(run.X, 0)), src, image.Point{}, run.Font, []byte(text))
		}
		for _, s := range ln.Strikes {
			dst.Draw(s.Rect.Add(o), r.color(s.Color, p.Text), nil, image.Point{})
		}
	}

	for _, s := range l.LinkStrokes {
		dst.Draw(s.Rect.Add(origin), r.color(s.Color, p.Link), nil, image.Point{})
	}
	for _, h := range l.HexMarkers {
		dst.Draw(h.Rect.Add(origin), r.color(h.Color, p.Text), nil, image.Point{})
	}
	for _, s := range l.SpoilerRects(sel) {
		dst.Draw(s.Rect.Add(origin), r.color(s.Color, p.SpoilerDust), nil, image.Point{})
	}
}
