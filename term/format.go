package term

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rjkroege/uikit/rich"
	"github.com/rjkroege/uikit/theme"
)

// Cell classes within one run.
const (
	classPlain = iota
	classSelected
	classDust
)

func hex(c color.Color) lipgloss.Color {
	if c == nil {
		return lipgloss.Color("")
	}
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}

// Format renders l, measured with a CellFont, as newline-separated text
// styled for r's colour profile. Vertical gaps become blank lines and
// unrevealed spoilers outside sel are dusted over.
func Format(r *lipgloss.Renderer, l *rich.Layout, p theme.Palette, sel rich.Range) string {
	f := NewCellFont(false)
	dusted := func(i int) bool {
		_, ok := l.SpoilerAt(i)
		return ok && !sel.Contains(i)
	}

	var b strings.Builder
	y := 0
	for i := range l.Lines {
		ln := &l.Lines[i]
		o := l.Origin(i)
		if i > 0 {
			b.WriteByte('\n')
			y++
		}
		for ; y < o.Y; y++ {
			b.WriteByte('\n')
		}
		runs := append([]rich.Run(nil), ln.Shaped.Runs...)
		sort.SliceStable(runs, func(m, n int) bool { return runs[m].X < runs[n].X })
		x := 0
		pad := func(to int) {
			if to > x {
				b.WriteString(strings.Repeat(" ", to-x))
				x = to
			}
		}
		for _, run := range runs {
			if transparent(run.Color) {
				continue
			}
			pad(o.X + run.X)
			if run.Token {
				st := r.NewStyle().Foreground(hex(colorOr(run.Color, p.Text)))
				b.WriteString(st.Render(run.Text))
				x += f.StringWidth(run.Text)
				continue
			}
			x += formatRun(&b, r, l, run, p, sel, dusted)
		}
	}
	return b.String()
}

func colorOr(c, def color.Color) color.Color {
	if c == nil {
		return def
	}
	return c
}

// formatRun writes run split into pieces of uniform class and returns
// the cells written.
func formatRun(b *strings.Builder, r *lipgloss.Renderer, l *rich.Layout, run rich.Run, p theme.Palette, sel rich.Range, dusted func(int) bool) int {
	a := l.Text.Attrs(run.Range.Start)
	def := p.Text
	if a.Link != nil {
		def = p.Link
	}
	base := r.NewStyle().
		Foreground(hex(colorOr(run.Color, def))).
		Bold(a.Bold).
		Italic(a.Italic).
		Strikethrough(a.Strikethrough).
		Underline(a.Underline || a.Link != nil)
	styles := [...]lipgloss.Style{
		classPlain:    base,
		classSelected: base.Background(hex(p.SelectionBack)),
		classDust:     r.NewStyle().Foreground(hex(p.SpoilerDust)),
	}
	if p.SelectionText != nil {
		styles[classSelected] = styles[classSelected].Foreground(hex(p.SelectionText))
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

	f := NewCellFont(false)
	w := 0
	var piece []rune
	class := -1
	flush := func() {
		if len(piece) > 0 {
			b.WriteString(styles[class].Render(string(piece)))
		}
		piece = piece[:0]
	}
	for _, i := range idx {
		c := l.Text.Rune(i)
		if c == '\n' || c == '\r' {
			continue
		}
		k := classPlain
		switch {
		case dusted(i):
			k = classDust
		case sel.Contains(i):
			k = classSelected
		}
		if k != class {
			flush()
			class = k
		}
		if k == classDust && f.RuneWidth(c) > 0 {
			for n := f.RuneWidth(c); n > 0; n-- {
				piece = append(piece, dust)
			}
		} else {
			piece = append(piece, c)
		}
		if c == '\t' {
			w += 4
		} else {
			w += f.RuneWidth(c)
		}
	}
	flush()
	return w
}
