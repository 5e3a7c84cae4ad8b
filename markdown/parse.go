// Package markdown converts a small markdown dialect into annotated rich
// text: emphasis, strikethrough, underline, spoilers, inline code, links,
// images, headings, block quotes and fenced code blocks.
package markdown

import (
	"image"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/rjkroege/uikit/rich"
	"github.com/rjkroege/uikit/theme"
)

type config struct {
	quoteSpace   int
	quoteInset   int
	headerHeight int
	hexSize      image.Point
	palette      theme.Palette
}

// Option configures Parse.
type Option func(*config)

// WithQuoteMetrics sets the vertical padding and left inset of quotes and
// code blocks.
func WithQuoteMetrics(space, inset int) Option {
	return func(c *config) {
		c.quoteSpace, c.quoteInset = space, inset
	}
}

// WithHeaderHeight sets the height reserved for a code block's language
// caption.
func WithHeaderHeight(h int) Option {
	return func(c *config) {
		c.headerHeight = h
	}
}

// WithHexMarkers annotates #rrggbb literals with swatches of size sz.
func WithHexMarkers(sz image.Point) Option {
	return func(c *config) {
		c.hexSize = sz
	}
}

// WithPalette sets the colours given to quotes and code blocks.
func WithPalette(p theme.Palette) Option {
	return func(c *config) {
		c.palette = p
	}
}

// Document is parsed markdown.
type Document struct {
	Text   *rich.Text
	Source *SourceMap
}

// Parse converts markdown source to annotated text.
func Parse(text string, opts ...Option) *Document {
	cfg := config{
		quoteSpace:   4,
		quoteInset:   10,
		headerHeight: 16,
		palette:      theme.Light(),
	}
	for _, o := range opts {
		o(&cfg)
	}

	in := &inliner{}
	var quote *rich.Quote
	fenced := false
	for _, raw := range strings.SplitAfter(text, "\n") {
		if raw == "" {
			continue
		}
		body := strings.TrimSuffix(raw, "\n")
		nl := len(body) < len(raw)

		switch {
		case strings.HasPrefix(body, "```"):
			if fenced {
				fenced, quote = false, nil
			} else {
				fenced = true
				quote = cfg.codeBlock(strings.TrimSpace(body[3:]))
			}
			in.src += len(raw)

		case fenced:
			in.emit(raw, rich.Style{Code: true, Quote: quote}, len(raw), 0)

		case strings.HasPrefix(body, ">"):
			if quote == nil || quote.IsCode {
				quote = cfg.blockQuote()
			}
			prefix := 1
			if strings.HasPrefix(body, "> ") {
				prefix = 2
			}
			in.src += prefix
			base := rich.Style{Quote: quote}
			in.parseInline(body[prefix:], base, false)
			if nl {
				in.emit("\n", base, 1, 0)
			}

		default:
			quote = nil
			base := rich.Style{}
			if level := headingLevel(body); level > 0 {
				base.Bold = true
				in.src += level + 1
				body = body[level+1:]
			}
			in.parseInline(body, base, false)
			if nl {
				in.emit("\n", rich.Style{}, 1, 0)
			}
		}
	}

	t := rich.Content(in.spans).Text()
	if cfg.hexSize != (image.Point{}) {
		annotateHex(t, cfg.hexSize)
	}
	return &Document{
		Text:   t,
		Source: &SourceMap{entries: in.entries, sourceLen: len(text)},
	}
}

func (c *config) blockQuote() *rich.Quote {
	return &rich.Quote{
		Space: c.quoteSpace,
		Inset: c.quoteInset,
		Colors: rich.QuoteColors{
			Bar:        c.palette.QuoteBar,
			Background: c.palette.QuoteBack,
			Header:     c.palette.QuoteHeader,
		},
	}
}

func (c *config) codeBlock(lang string) *rich.Quote {
	q := c.blockQuote()
	q.IsCode = true
	q.Colors.Background = c.palette.CodeBack
	if lang != "" {
		q.Header = lang
		q.HeaderHeight = c.headerHeight
	}
	return q
}

// headingLevel returns n for a line starting with n '#' and a space.
func headingLevel(line string) int {
	n := 0
	for n < len(line) && n < 6 && line[n] == '#' {
		n++
	}
	if n == 0 || n >= len(line) || line[n] != ' ' {
		return 0
	}
	return n
}

var hexColor = regexp.MustCompile(`#[0-9a-fA-F]{6}\b`)

func annotateHex(t *rich.Text, sz image.Point) {
	s := t.String()
	for _, m := range hexColor.FindAllStringIndex(s, -1) {
		v, err := strconv.ParseUint(s[m[0]+1:m[1]], 16, 32)
		if err != nil {
			continue
		}
		start := utf8.RuneCountInString(s[:m[0]])
		t.Annotate(rich.Rng(start, start+7), rich.HexColor{
			Color: rgb(uint32(v)),
			Size:  sz,
		})
	}
}
