package markdown

import (
	"image/color"

	"github.com/rjkroege/uikit/rich"
)

// SourceMap maps positions in rendered text back to the markdown source.
type SourceMap struct {
	entries   []SourceMapEntry
	sourceLen int
}

// SourceMapEntry maps a rendered range to a source byte range.
type SourceMapEntry struct {
	Rendered    rich.Range
	SourceStart int
	SourceEnd   int
	// PrefixLen is the number of source bytes before the rendered text,
	// such as the "**" of bold text.
	PrefixLen int

	text string
}

// Entries returns the map's entries in rendered order.
func (sm *SourceMap) Entries() []SourceMapEntry { return sm.entries }

func (sm *SourceMap) entryAt(pos int) *SourceMapEntry {
	for i := range sm.entries {
		if sm.entries[i].Rendered.Contains(pos) {
			return &sm.entries[i]
		}
	}
	return nil
}

// byteOffset converts a rune offset within e's rendered text to bytes.
func (e *SourceMapEntry) byteOffset(n int) int {
	for i := range e.text {
		if n == 0 {
			return i
		}
		n--
	}
	return len(e.text)
}

// ToSource maps a rendered range to source byte offsets. A range that
// starts or ends on the boundary of a formatted element includes the
// element's markers.
func (sm *SourceMap) ToSource(r rich.Range) (start, end int) {
	r = r.Normalize()
	if e := sm.entryAt(r.Start); e == nil {
		start = min(r.Start, sm.sourceLen)
	} else if r.Start == e.Rendered.Start {
		start = e.SourceStart
	} else {
		start = e.SourceStart + e.PrefixLen + e.byteOffset(r.Start-e.Rendered.Start)
	}

	pos := r.End
	if r.End > r.Start {
		pos = r.End - 1
	}
	if e := sm.entryAt(pos); e == nil {
		end = max(start, min(r.End, sm.sourceLen))
	} else if r.End == e.Rendered.End {
		end = e.SourceEnd
	} else {
		end = e.SourceStart + e.PrefixLen + e.byteOffset(r.End-e.Rendered.Start)
	}
	return start, end
}

func rgb(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
