package rich

import (
	"image/color"

	"github.com/rjkroege/uikit/draw"
)

// Style defines visual attributes for a span of text.
type Style struct {
	// Colors (nil means use the palette default)
	Fg color.Color

	// Font variations
	Bold      bool
	Italic    bool
	Code      bool // Monospace font for code spans
	Strike    bool
	Underline bool

	// Font overrides the palette font selection when non-nil.
	Font draw.Font

	// Link target; empty means not a link.
	URL string

	// Quote makes the span part of a block quote.
	Quote *Quote

	Spoiler bool

	// Item makes the span an embedded item placeholder.
	Item any
}

// DefaultStyle returns the default body text style.
func DefaultStyle() Style {
	return Style{}
}

// LinkBlue is the standard blue color for hyperlinks.
var LinkBlue = color.RGBA{R: 0, G: 0, B: 238, A: 255}

// Common styles
var (
	StyleBold   = Style{Bold: true}
	StyleItalic = Style{Italic: true}
	StyleCode   = Style{Code: true}
	StyleStrike = Style{Strike: true}
)

// StyleLink returns a blue hyperlink style pointing at url.
func StyleLink(url string) Style {
	return Style{URL: url, Fg: LinkBlue}
}

// annotations returns the annotations equivalent to s.
func (s Style) annotations() []Annotation {
	var as []Annotation
	if s.Bold {
		as = append(as, Bold{})
	}
	if s.Italic {
		as = append(as, Italic{})
	}
	if s.Code {
		as = append(as, Code{})
	}
	if s.Strike {
		as = append(as, Strikethrough{})
	}
	if s.Underline {
		as = append(as, Underline{})
	}
	if s.Fg != nil {
		as = append(as, Foreground{Color: s.Fg})
	}
	if s.Font != nil {
		as = append(as, Font{Face: s.Font})
	}
	if s.URL != "" {
		as = append(as, Link{URL: s.URL})
	}
	if s.Quote != nil {
		as = append(as, BlockQuote{Quote: s.Quote})
	}
	if s.Spoiler {
		as = append(as, Spoiler{})
	}
	if s.Item != nil {
		as = append(as, Embedded{Item: s.Item})
	}
	return as
}
