package rich

import (
	"image"
	"image/color"

	"github.com/rjkroege/uikit/draw"
)

// Kind identifies one family of annotation. Ranges of the same Kind never
// overlap inside a Text; different kinds overlap freely.
type Kind int

const (
	KindBold Kind = iota
	KindItalic
	KindStrikethrough
	KindUnderline
	KindCode
	KindLink
	KindBlockQuote
	KindSpoiler
	KindEmbedded
	KindForeground
	KindFont
	KindHexColor

	numKinds
)

var kindNames = [...]string{
	KindBold:          "bold",
	KindItalic:        "italic",
	KindStrikethrough: "strikethrough",
	KindUnderline:     "underline",
	KindCode:          "code",
	KindLink:          "link",
	KindBlockQuote:    "blockquote",
	KindSpoiler:       "spoiler",
	KindEmbedded:      "embedded",
	KindForeground:    "foreground",
	KindFont:          "font",
	KindHexColor:      "hexcolor",
}

func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "unknown"
	}
	return kindNames[k]
}

// Annotation is the closed set of attributes that can be attached to a
// range of a Text.
type Annotation interface {
	Kind() Kind
	annotation()
}

type (
	Bold          struct{}
	Italic        struct{}
	Strikethrough struct{}
	Underline     struct{}
	Code          struct{}

	// Link carries the link payload. Tooltip, when non-empty and different
	// from the linked text, produces tooltip regions.
	Link struct {
		URL     string
		Tooltip string
	}

	// BlockQuote marks membership in the logical quote Quote. All ranges
	// sharing one *Quote form one quote, even when fragmented.
	BlockQuote struct {
		Quote *Quote
	}

	Spoiler struct {
		Color color.Color
	}

	// Embedded reserves space for an externally drawn item (custom emoji,
	// inline image). Item is an opaque handle returned with its placement.
	Embedded struct {
		Item any
	}

	Foreground struct {
		Color color.Color
	}

	Font struct {
		Face draw.Font
	}

	// HexColor marks a colour literal; Size is the swatch marker size.
	HexColor struct {
		Color color.Color
		Size  image.Point
	}
)

func (Bold) Kind() Kind          { return KindBold }
func (Italic) Kind() Kind        { return KindItalic }
func (Strikethrough) Kind() Kind { return KindStrikethrough }
func (Underline) Kind() Kind     { return KindUnderline }
func (Code) Kind() Kind          { return KindCode }
func (Link) Kind() Kind          { return KindLink }
func (BlockQuote) Kind() Kind    { return KindBlockQuote }
func (Spoiler) Kind() Kind       { return KindSpoiler }
func (Embedded) Kind() Kind      { return KindEmbedded }
func (Foreground) Kind() Kind    { return KindForeground }
func (Font) Kind() Kind          { return KindFont }
func (HexColor) Kind() Kind      { return KindHexColor }

func (Bold) annotation()          {}
func (Italic) annotation()        {}
func (Strikethrough) annotation() {}
func (Underline) annotation()     {}
func (Code) annotation()          {}
func (Link) annotation()          {}
func (BlockQuote) annotation()    {}
func (Spoiler) annotation()       {}
func (Embedded) annotation()      {}
func (Foreground) annotation()    {}
func (Font) annotation()          {}
func (HexColor) annotation()      {}

// QuoteColors are the colours a renderer uses for one block quote.
type QuoteColors struct {
	Bar        color.Color
	Background color.Color
	Header     color.Color
}

// Quote is the identity object of a logical block quote or code block.
type Quote struct {
	// Space is the vertical padding above and below the quote.
	Space int
	// Inset is the horizontal margin reserved on the left for the bar.
	Inset int
	// Header is optional caption text drawn above the quoted lines
	// (e.g. the language of a code block).
	Header       string
	HeaderHeight int
	Colors       QuoteColors
	IsCode       bool
}

// Annotated is one annotation over a range of a Text.
type Annotated struct {
	Range      Range
	Annotation Annotation
}
