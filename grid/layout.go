package grid

import (
	"image"
	"math"
)

// Item is a grid cell model.
type Item interface {
	StableID() any
	// Section returns the section the item belongs to, or nil.
	Section() Section
	// AspectRatio is width over height, used by Balanced layouts.
	AspectRatio() float64
}

// Section is a header band that starts a new run of rows.
type Section interface {
	SectionID() any
	Height() int
}

// Insets reserve space above and below the content.
type Insets struct {
	Top, Bottom int
}

// Layout describes the viewport and the packing used.
type Layout struct {
	Size    image.Point
	Insets  Insets
	Preload int
	Type    Type
}

// Type selects how items are packed.
type Type interface {
	isType()
}

// Fixed packs equal cells left to right, spreading the leftover width
// evenly between them.
type Fixed struct {
	ItemSize    image.Point
	LineSpacing int
}

// Balanced fills justified rows of IdealHeight, sizing each item by its
// aspect ratio.
type Balanced struct {
	IdealHeight int
}

func (Fixed) isType()    {}
func (Balanced) isType() {}

// LastRowPolicy returns the width to fill with the final row of a
// Balanced layout holding count items.
type LastRowPolicy func(count, width int) int

// ThirdsLastRow keeps a final row of one item to a third of the width and
// a row of two to two thirds.
func ThirdsLastRow(count, width int) int {
	switch {
	case count < 2:
		return width / 3
	case count < 3:
		return width * 2 / 3
	}
	return width
}

// FullLastRow stretches the final row like every other.
func FullLastRow(count, width int) int { return width }

const (
	interItemSpacing = 1
	balancedLineGap  = 1
)

// SectionFrame places a section header.
type SectionFrame struct {
	Section Section
	Frame   image.Rectangle
}

// Frames is a computed item layout in content coordinates.
type Frames struct {
	Items    []image.Rectangle
	Sections []SectionFrame
	Height   int
}

func sameSection(a, b Section) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.SectionID() == b.SectionID()
}

// Compute lays out items. firstOffset shifts the first item right by that
// many cells in a Fixed layout, as when the list starts mid-section.
func Compute(items []Item, l Layout, firstOffset int, lastRow LastRowPolicy) Frames {
	if l.Size.X <= 0 || l.Size.Y <= 0 || len(items) == 0 {
		return Frames{}
	}
	switch t := l.Type.(type) {
	case Fixed:
		return fixed(items, l.Size.X, t, firstOffset)
	case Balanced:
		if lastRow == nil {
			lastRow = ThirdsLastRow
		}
		return balanced(items, l.Size.X, t, lastRow)
	}
	return Frames{}
}

func fixed(items []Item, width int, t Fixed, firstOffset int) Frames {
	var f Frames
	sz := t.ItemSize
	if sz.X <= 0 || sz.Y <= 0 {
		return f
	}
	perRow := max(width/sz.X, 1)
	spacing := max(0, width-perRow*sz.X) / (perRow + 1)
	step := sz.Y + t.LineSpacing

	x, y := spacing, 0
	inRow := false
	var prev Section
	for i, it := range items {
		sec := it.Section()
		if !sameSection(prev, sec) {
			if inRow {
				x, y = spacing, y+step
				inRow = false
			}
			if sec != nil {
				f.Sections = append(f.Sections, SectionFrame{sec, image.Rect(0, y, width, y+sec.Height())})
				y += sec.Height()
				f.Height += sec.Height()
			}
		}
		prev = sec
		if !inRow {
			inRow = true
			f.Height += step
		}
		if i == 0 {
			x += (sz.X + spacing) * (firstOffset % perRow)
		}
		f.Items = append(f.Items, image.Rectangle{Min: image.Pt(x, y), Max: image.Pt(x, y).Add(sz)})
		x += sz.X + spacing
		if x+sz.X > width {
			x, y = spacing, y+step
			inRow = false
		}
	}
	return f
}

func balanced(items []Item, width int, t Balanced, lastRow LastRowPolicy) Frames {
	var f Frames
	weights := make([]int, len(items))
	total := 0.0
	for i, it := range items {
		weights[i] = int(it.AspectRatio() * 100)
		total += it.AspectRatio() * float64(t.IdealHeight)
	}
	rows := max(int(math.Round(total/float64(width))), 1)
	partition := LinearPartition(weights, rows)

	i, y := 0, 0
	for r, row := range partition {
		n := len(row)
		if n == 0 {
			continue
		}
		summed := 0.0
		for _, it := range items[i : i+n] {
			summed += it.AspectRatio()
		}
		if summed <= 0 {
			summed = 1
		}
		fill := width
		if r == len(partition)-1 {
			fill = lastRow(n, width)
		}
		rowSize := float64(fill - (n-1)*interItemSpacing)
		x := 0
		for _, it := range items[i : i+n] {
			w := int(math.Round(rowSize / summed * it.AspectRatio()))
			fw := w
			if x+w >= width-2 {
				fw = max(1, width-x)
			}
			fr := image.Rect(x, y, x+fw, y+t.IdealHeight)
			f.Items = append(f.Items, fr)
			f.Height = fr.Max.Y
			x += w + interItemSpacing
		}
		y += t.IdealHeight + balancedLineGap
		i += n
	}
	return f
}
