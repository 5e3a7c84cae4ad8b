// Package term draws rich layouts onto character-cell terminals through
// tcell. Text is measured in cells: every line is one cell high and a
// rune is as wide as go-runewidth says.
package term

import (
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rjkroege/uikit/draw"
)

// CellFont is a draw.Font whose unit is the terminal cell.
type CellFont struct {
	cond *runewidth.Condition
}

var _ = draw.Font((*CellFont)(nil))

// NewCellFont returns a cell font. eastAsian selects the East Asian
// width table, where ambiguous runes take two cells.
func NewCellFont(eastAsian bool) *CellFont {
	c := runewidth.NewCondition()
	c.EastAsianWidth = eastAsian
	return &CellFont{cond: c}
}

func (f *CellFont) Name() string { return "cell" }
func (f *CellFont) Height() int  { return 1 }
func (f *CellFont) Ascent() int  { return 1 }

func (f *CellFont) BytesWidth(b []byte) int {
	w := 0
	for len(b) > 0 {
		r, n := utf8.DecodeRune(b)
		w += f.RuneWidth(r)
		b = b[n:]
	}
	return w
}

func (f *CellFont) RunesWidth(r []rune) int {
	w := 0
	for _, c := range r {
		w += f.RuneWidth(c)
	}
	return w
}

func (f *CellFont) StringWidth(s string) int { return f.cond.StringWidth(s) }

// RuneWidth returns the number of cells r occupies; combining marks
// and control characters take none.
func (f *CellFont) RuneWidth(r rune) int { return f.cond.RuneWidth(r) }
