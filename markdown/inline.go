package markdown

import (
	"strings"
	"unicode/utf8"

	"github.com/rjkroege/uikit/rich"
)

// Image is the embedded item an inline image becomes.
type Image struct {
	Alt string
	URL string
}

// Placeholder stands in for an embedded item in rendered text.
const Placeholder = "￼"

// inliner accumulates spans and source map entries for one document.
type inliner struct {
	spans   []rich.Span
	entries []SourceMapEntry

	plain     strings.Builder
	plainRend int
	plainSrc  int

	rend int // rune position in rendered text
	src  int // byte position in source
}

// literal appends s to the pending plain run.
func (in *inliner) literal(s string) {
	if in.plain.Len() == 0 {
		in.plainRend, in.plainSrc = in.rend, in.src
	}
	in.plain.WriteString(s)
	in.rend += utf8.RuneCountInString(s)
	in.src += len(s)
}

// flush emits the pending plain run with style.
func (in *inliner) flush(style rich.Style) {
	if in.plain.Len() == 0 {
		return
	}
	text := in.plain.String()
	in.spans = append(in.spans, rich.Span{Text: text, Style: style})
	in.entries = append(in.entries, SourceMapEntry{
		Rendered:    rich.Rng(in.plainRend, in.rend),
		SourceStart: in.plainSrc,
		SourceEnd:   in.src,
		text:        text,
	})
	in.plain.Reset()
}

// emit appends a formatted element rendered as text whose source is srcLen
// bytes long, of which prefix bytes precede the rendered text.
func (in *inliner) emit(text string, style rich.Style, srcLen, prefix int) {
	n := utf8.RuneCountInString(text)
	in.spans = append(in.spans, rich.Span{Text: text, Style: style})
	in.entries = append(in.entries, SourceMapEntry{
		Rendered:    rich.Rng(in.rend, in.rend+n),
		SourceStart: in.src,
		SourceEnd:   in.src + srcLen,
		PrefixLen:   prefix,
		text:        text,
	})
	in.rend += n
	in.src += srcLen
}

// delimiters are the paired inline markers, longest first.
var delimiters = []struct {
	marker string
	apply  func(*rich.Style)
}{
	{"***", func(s *rich.Style) { s.Bold, s.Italic = true, true }},
	{"**", func(s *rich.Style) { s.Bold = true }},
	{"~~", func(s *rich.Style) { s.Strike = true }},
	{"||", func(s *rich.Style) { s.Spoiler = true }},
	{"__", func(s *rich.Style) { s.Underline = true }},
	{"*", func(s *rich.Style) { s.Italic = true }},
}

// parseInline parses inline formatting in text, which starts at the
// inliner's current positions. Links are not recognised when noLinks is
// set, as inside link text.
func (in *inliner) parseInline(text string, base rich.Style, noLinks bool) {
	i := 0
	for i < len(text) {
		// Image: ![alt](url)
		if !noLinks && strings.HasPrefix(text[i:], "![") {
			if alt, url, n, ok := bracketed(text[i+1:]); ok {
				in.flush(base)
				s := base
				s.Item = Image{Alt: alt, URL: url}
				in.emit(Placeholder, s, 1+n, 0)
				i += 1 + n
				continue
			}
		}

		// Link: [text](url)
		if !noLinks && text[i] == '[' {
			if label, url, n, ok := bracketed(text[i:]); ok {
				in.flush(base)
				s := base
				s.URL = url
				in.src++ // [
				if label != "" {
					in.parseInline(label, s, true)
				}
				in.src += n - 1 - len(label)
				i += n
				continue
			}
		}

		// Inline code: `text`
		if text[i] == '`' {
			if end := strings.IndexByte(text[i+1:], '`'); end != -1 {
				in.flush(base)
				s := base
				s.Code = true
				in.emit(text[i+1:i+1+end], s, end+2, 1)
				i += end + 2
				continue
			}
		}

		matched := false
		for _, d := range delimiters {
			m := d.marker
			if !strings.HasPrefix(text[i:], m) {
				continue
			}
			end := strings.Index(text[i+len(m):], m)
			if end <= 0 {
				break
			}
			in.flush(base)
			s := base
			d.apply(&s)
			in.emit(text[i+len(m):i+len(m)+end], s, 2*len(m)+end, len(m))
			i += 2*len(m) + end
			matched = true
			break
		}
		if matched {
			continue
		}

		_, size := utf8.DecodeRuneInString(text[i:])
		in.literal(text[i : i+size])
		i += size
	}
	in.flush(base)
}

// bracketed parses "[label](url)" at the start of s and returns the
// label, the url and the source length.
func bracketed(s string) (label, url string, n int, ok bool) {
	if !strings.HasPrefix(s, "[") {
		return "", "", 0, false
	}
	close := strings.IndexByte(s, ']')
	if close == -1 || close+1 >= len(s) || s[close+1] != '(' {
		return "", "", 0, false
	}
	end := strings.IndexByte(s[close+2:], ')')
	if end == -1 {
		return "", "", 0, false
	}
	return s[1:close], s[close+2 : close+2+end], close + 2 + end + 1, true
}
