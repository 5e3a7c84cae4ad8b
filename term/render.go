package term

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rjkroege/uikit/rich"
	"github.com/rjkroege/uikit/theme"
	xterm "golang.org/x/term"
)

// Spoiler cells are covered with this rune until revealed.
const dust = '░'

// Renderer paints rich layouts measured with a CellFont onto a tcell
// screen. Layout coordinates are cells.
type Renderer struct {
	screen  tcell.Screen
	font    *CellFont
	palette theme.Palette
	logger  *log.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// NewRenderer returns a renderer drawing onto s with cell metrics from f.
func NewRenderer(s tcell.Screen, f *CellFont, p theme.Palette, opts ...Option) *Renderer {
	r := &Renderer{
		screen:  s,
		font:    f,
		palette: p,
		logger:  log.New(io.Discard, "", 0),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// ErrNotTerminal is returned by NewScreen when stdout is redirected.
var ErrNotTerminal = errors.New("term: stdout is not a terminal")

// NewScreen opens and initialises the controlling terminal.
func NewScreen() (tcell.Screen, error) {
	if !xterm.IsTerminal(int(os.Stdout.Fd())) {
		return nil, ErrNotTerminal
	}
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("term: open screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("term: init screen: %w", err)
	}
	return s, nil
}

// SetPalette switches the colours used by subsequent draws.
func (r *Renderer) SetPalette(p theme.Palette) { r.palette = p }

func colorOf(c, def color.Color) tcell.Color {
	if c == nil {
		c = def
	}
	if c == nil {
		return tcell.ColorDefault
	}
	return tcell.FromImageColor(c)
}

func transparent(c color.Color) bool {
	if c == nil {
		return false
	}
	_, _, _, a := c.RGBA()
	return a == 0
}

func (r *Renderer) fill(rect image.Rectangle, ch rune, st tcell.Style) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			r.screen.SetContent(x, y, ch, nil, st)
		}
	}
}

// Draw paints l with its top-left cell at origin and sel highlighted.
// It does not call Show.
func (r *Renderer) Draw(l *rich.Layout, origin image.Point, sel rich.Range) {
	p := r.palette
	if w, h := r.screen.Size(); origin.X+l.Size.X > w || origin.Y+l.Size.Y > h {
		r.logger.Printf("term: layout %v at %v clipped to %dx%d", l.Size, origin, w, h)
	}
	back := tcell.StyleDefault.Background(colorOf(p.Background, nil))
	r.fill(image.Rectangle{Max: l.Size}.Add(origin), ' ', back)

	quoteBack := make(map[int]tcell.Color)
	for _, b := range l.BlockQuotes {
		q := b.Quote
		bg := q.Colors.Background
		if bg == nil {
			bg = p.QuoteBack
			if q.IsCode {
				bg = p.CodeBack
			}
		}
		f := b.Frame.Add(origin)
		r.fill(f, ' ', back.Background(colorOf(bg, nil)))
		for y := f.Min.Y; y < f.Max.Y; y++ {
			quoteBack[y] = colorOf(bg, nil)
		}
		if !q.IsCode && q.Inset > 0 {
			bar := back.Background(colorOf(bg, nil)).Foreground(colorOf(q.Colors.Bar, p.QuoteBar))
			for y := f.Min.Y; y < f.Max.Y; y++ {
				r.screen.SetContent(f.Min.X, y, '▎', nil, bar)
			}
		}
		if q.Header != "" && !b.Header.Empty() {
			hdr := back.Background(colorOf(bg, nil)).Foreground(colorOf(q.Colors.Header, p.QuoteHeader)).Bold(true)
			r.text(b.Header.Min.Add(origin), []rune(q.Header), hdr)
		}
	}

	for i := range l.Lines {
		ln := &l.Lines[i]
		o := l.Origin(i).Add(origin)
		bg, quoted := quoteBack[o.Y]
		if !quoted {
			bg = colorOf(p.Background, nil)
		}
		for _, run := range ln.Shaped.Runs {
			if transparent(run.Color) {
				continue
			}
			if run.Token {
				st := tcell.StyleDefault.Background(bg).Foreground(colorOf(run.Color, p.Text))
				r.text(o.Add(image.Pt(run.X, 0)), []rune(run.Text), st)
				continue
			}
			r.run(l, o, run, bg, sel)
		}
	}

	for _, s := range l.SpoilerRects(sel) {
		st := back.Foreground(colorOf(s.Color, p.SpoilerDust))
		r.fill(s.Rect.Add(origin), dust, st)
	}
}

// run paints one shaped run rune by rune so selection can cover part
// of it.
func (r *Renderer) run(l *rich.Layout, o image.Point, run rich.Run, bg tcell.Color, sel rich.Range) {
	p := r.palette
	a := l.Text.Attrs(run.Range.Start)
	def := p.Text
	if a.Link != nil {
		def = p.Link
	}
	st := tcell.StyleDefault.
		Foreground(colorOf(run.Color, def)).
		Background(bg).
		Bold(a.Bold).
		Italic(a.Italic).
		StrikeThrough(a.Strikethrough).
		Underline(a.Underline || a.Link != nil)
	if a.Link != nil {
		st = st.Url(a.Link.URL)
	}
	hi := st.Background(colorOf(p.SelectionBack, nil))
	if p.SelectionText != nil {
		hi = hi.Foreground(colorOf(p.SelectionText, nil))
	}

	idx := make([]int, 0, run.Range.Len())
	for i := run.Range.Start; i < run.Range.End; i++ {
		idx = append(idx, i)
	}
	if run.RTL {
		for i, j := 0, len(idx)-1; i < j; i, j = i+1, j-1 {
			idx[i], idx[j] = idx[j], idx[i]
		}
	}
	x := o.X + run.X
	px := -1
	var comb []rune
	for _, i := range idx {
		c := l.Text.Rune(i)
		s := st
		if sel.Contains(i) {
			s = hi
		}
		switch c {
		case '\n', '\r':
			continue
		case '\t':
			w := r.font.StringWidth(" ") * 4
			for k := 0; k < w; k++ {
				r.screen.SetContent(x+k, o.Y, ' ', nil, s)
			}
			x += w
			px = -1
			continue
		}
		w := r.font.RuneWidth(c)
		if w == 0 {
			// Combining marks join the previous cell.
			if px >= 0 {
				comb = append(comb, c)
				main, _, ps, _ := r.screen.GetContent(px, o.Y)
				r.screen.SetContent(px, o.Y, main, comb, ps)
			}
			continue
		}
		r.screen.SetContent(x, o.Y, c, nil, s)
		px, comb = x, nil
		x += w
	}
}

func (r *Renderer) text(pt image.Point, s []rune, st tcell.Style) {
	x := pt.X
	for _, c := range s {
		w := r.font.RuneWidth(c)
		if w == 0 {
			continue
		}
		r.screen.SetContent(x, pt.Y, c, nil, st)
		x += w
	}
}
