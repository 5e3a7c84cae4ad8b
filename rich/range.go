package rich

// Range is a half-open interval [Start, End) of rune offsets.
type Range struct {
	Start, End int
}

// Rng is shorthand for Range{start, end}.
func Rng(start, end int) Range { return Range{Start: start, End: end} }

// Len returns the number of runes covered.
func (r Range) Len() int { return r.End - r.Start }

// Empty reports whether r covers no runes.
func (r Range) Empty() bool { return r.End <= r.Start }

// Contains reports whether i lies inside r.
func (r Range) Contains(i int) bool { return i >= r.Start && i < r.End }

// ContainsRange reports whether o lies entirely inside r.
func (r Range) ContainsRange(o Range) bool { return o.Start >= r.Start && o.End <= r.End }

// Intersect returns the overlap of r and o and whether it is non-empty.
func (r Range) Intersect(o Range) (Range, bool) {
	s := max(r.Start, o.Start)
	e := min(r.End, o.End)
	if e <= s {
		return Range{Start: s, End: s}, false
	}
	return Range{Start: s, End: e}, true
}

// Union returns the smallest range covering both r and o.
func (r Range) Union(o Range) Range {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	return Range{Start: min(r.Start, o.Start), End: max(r.End, o.End)}
}

// Normalize orders the endpoints so Start <= End.
func (r Range) Normalize() Range {
	if r.Start > r.End {
		return Range{Start: r.End, End: r.Start}
	}
	return r
}

// Clamp limits both endpoints to [0, n].
func (r Range) Clamp(n int) Range {
	r.Start = min(max(r.Start, 0), n)
	r.End = min(max(r.End, r.Start), n)
	return r
}
