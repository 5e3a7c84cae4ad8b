package rich

// Edge names the fixed end of a selection; the opposite end moves when
// the selection is extended from the keyboard.
type Edge int

const (
	EdgeMin Edge = iota
	EdgeMax
)

// Anchor records which edge of a selection stays put and the index it was
// anchored at.
type Anchor struct {
	Edge  Edge
	Index int
}

// Selection is a selected range together with its keyboard anchor.
type Selection struct {
	Range  Range
	Anchor Anchor
}

// NewSelection returns the selection made by a pointer gesture that began
// at anchor and covers r.
func NewSelection(r Range, anchor int) Selection {
	r = r.Normalize()
	e := EdgeMin
	if anchor >= r.End && !r.Empty() {
		e = EdgeMax
	}
	return Selection{Range: r, Anchor: Anchor{Edge: e, Index: anchor}}
}

func (s *Selection) clamp(n int) {
	loc := min(max(s.Range.Start, 0), n)
	length := min(max(s.Range.Len(), 0), n-loc)
	s.Range = Rng(loc, loc+length)
}

// Advance extends the selection one character forward in a text of n
// runes. When the selection lies at or after the anchor it grows at the
// end; otherwise its start moves forward, shrinking it.
func (s *Selection) Advance(n int) {
	loc, length := s.Range.Start, s.Range.Len()
	if loc >= s.Anchor.Index {
		length++
	} else {
		loc++
		if length > 1 {
			length--
		}
	}
	s.Range = Rng(loc, loc+length)
	s.clamp(n)
}

// Retreat is the mirror of Advance.
func (s *Selection) Retreat(n int) {
	loc, length := s.Range.Start, s.Range.Len()
	if loc >= s.Anchor.Index {
		if length > 1 {
			length--
		} else {
			loc--
		}
	} else if loc > 0 {
		loc--
		length++
	}
	s.Range = Rng(loc, loc+length)
	s.clamp(n)
}
