// Package theme holds the colour palette handed explicitly to layout and
// rendering. Re-theming is done by measuring or drawing again with a
// different Palette.
package theme

import "image/color"

type Palette struct {
	Text            color.Color
	Link            color.Color
	Background      color.Color
	SelectionBack   color.Color
	SelectionText   color.Color
	QuoteBar        color.Color
	QuoteBack       color.Color
	QuoteHeader     color.Color
	CodeBack        color.Color
	SpoilerDust     color.Color
	StickyBack      color.Color
	TruncationToken color.Color
}

var light = Palette{
	Text:            color.RGBA{0x00, 0x00, 0x00, 0xff},
	Link:            color.RGBA{0x00, 0x00, 0xee, 0xff},
	Background:      color.RGBA{0xff, 0xff, 0xff, 0xff},
	SelectionBack:   color.RGBA{0xb4, 0xd5, 0xfe, 0xff},
	SelectionText:   color.RGBA{0x00, 0x00, 0x00, 0xff},
	QuoteBar:        color.RGBA{0x3a, 0x8e, 0xe6, 0xff},
	QuoteBack:       color.RGBA{0xe8, 0xf1, 0xfc, 0xff},
	QuoteHeader:     color.RGBA{0x3a, 0x8e, 0xe6, 0xff},
	CodeBack:        color.RGBA{0xe6, 0xe6, 0xe6, 0xff},
	SpoilerDust:     color.RGBA{0x99, 0x99, 0x99, 0xff},
	StickyBack:      color.RGBA{0xf4, 0xf4, 0xf4, 0xff},
	TruncationToken: nil,
}

var dark = Palette{
	Text:            color.RGBA{0xee, 0xee, 0xee, 0xff},
	Link:            color.RGBA{0x6a, 0xb3, 0xf3, 0xff},
	Background:      color.RGBA{0x22, 0x22, 0x22, 0xff},
	SelectionBack:   color.RGBA{0x44, 0x55, 0x77, 0xff},
	SelectionText:   color.RGBA{0xff, 0xff, 0xff, 0xff},
	QuoteBar:        color.RGBA{0x6a, 0xb3, 0xf3, 0xff},
	QuoteBack:       color.RGBA{0x2c, 0x33, 0x3d, 0xff},
	QuoteHeader:     color.RGBA{0x6a, 0xb3, 0xf3, 0xff},
	CodeBack:        color.RGBA{0x33, 0x33, 0x33, 0xff},
	SpoilerDust:     color.RGBA{0x88, 0x88, 0x88, 0xff},
	StickyBack:      color.RGBA{0x2a, 0x2a, 0x2a, 0xff},
	TruncationToken: nil,
}

// Light returns the default light palette.
func Light() Palette { return light }

// Dark returns the dark palette.
func Dark() Palette { return dark }
