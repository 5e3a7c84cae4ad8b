package rich

import "unicode/utf8"

// Span represents a run of text with uniform style.
// This is the input model - what markup parsing produces.
type Span struct {
	Text  string
	Style Style
}

// Content is a sequence of styled spans representing a document.
type Content []Span

// Plain creates Content from unstyled text.
func Plain(text string) Content {
	return Content{{Text: text, Style: DefaultStyle()}}
}

// Len returns total rune count.
func (c Content) Len() int {
	n := 0
	for _, s := range c {
		n += utf8.RuneCountInString(s.Text)
	}
	return n
}

// Text flattens c into an annotated Text.
func (c Content) Text() *Text {
	var sb []byte
	for _, s := range c {
		sb = append(sb, s.Text...)
	}
	t := NewText(string(sb))
	pos := 0
	for _, s := range c {
		n := utf8.RuneCountInString(s.Text)
		for _, a := range s.Style.annotations() {
			t.Annotate(Rng(pos, pos+n), a)
		}
		pos += n
	}
	return t
}
