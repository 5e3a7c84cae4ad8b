package rich

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func measure(t *testing.T, s string, width int) *Layout {
	t.Helper()
	return newTestLayouter().Measure(NewText(s), Constraints{MaxWidth: width})
}

func TestLineIndexForPoint(t *testing.T) {
	l := measure(t, "hello world", 60)
	for _, tc := range []struct {
		name string
		pt   image.Point
		want int
	}{
		{"top sentinel", image.Pt(0, TopOfText), 0},
		{"bottom sentinel", image.Pt(0, BottomOfText), 1},
		{"inside first", image.Pt(5, 5), 0},
		{"inside second", image.Pt(5, 20), 1},
		{"gap nearest", image.Pt(5, 14), 0},
		{"below", image.Pt(5, 500), 1},
		{"above", image.Pt(5, -40), 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := l.LineIndexForPoint(tc.pt); got != tc.want {
				t.Errorf("LineIndexForPoint(%v) = %d, want %d", tc.pt, got, tc.want)
			}
		})
	}
	if got := measure(t, "", 60).LineIndexForPoint(image.Pt(0, 0)); got != -1 {
		t.Errorf("empty layout gave line %d, want -1", got)
	}
}

func TestCharacterIndexForPoint(t *testing.T) {
	l := measure(t, "hello world", 1000)
	for _, tc := range []struct {
		pt   image.Point
		want int
	}{
		{image.Pt(0, 5), 0},
		{image.Pt(25, 5), 2},
		{image.Pt(29, 5), 2},
		{image.Pt(30, 5), 3},
		{image.Pt(52, 5), 5},
		{image.Pt(58, 5), 5},
		{image.Pt(109, 5), 10},
		{image.Pt(110, 5), -1},
		{image.Pt(1000, 5), -1},
	} {
		if got := l.CharacterIndexForPoint(tc.pt); got != tc.want {
			t.Errorf("CharacterIndexForPoint(%v) = %d, want %d", tc.pt, got, tc.want)
		}
	}
}

func TestDragRange(t *testing.T) {
	l := measure(t, "hello world\nsecond line", 1000)
	for _, tc := range []struct {
		name   string
		p0, p1 image.Point
		byWord bool
		want   Range
	}{
		{"forward", image.Pt(15, 5), image.Pt(25, 20), false, Rng(2, 15)},
		{"backward", image.Pt(25, 20), image.Pt(15, 5), false, Rng(2, 15)},
		{"by word", image.Pt(15, 5), image.Pt(25, 20), true, Rng(0, 18)},
		{"same line", image.Pt(15, 5), image.Pt(44, 5), false, Rng(2, 4)},
		{"same line backward", image.Pt(44, 5), image.Pt(15, 5), false, Rng(2, 4)},
		{"caret", image.Pt(15, 5), image.Pt(15, 5), false, Rng(2, 2)},
		{"past end of first line", image.Pt(500, 5), image.Pt(0, 20), false, Rng(11, 12)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := l.DragRange(tc.p0, tc.p1, tc.byWord); got != tc.want {
				t.Errorf("DragRange = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDragAcrossLinesNonEmpty(t *testing.T) {
	l := measure(t, "alpha beta gamma delta epsilon", 60)
	for i := 0; i+1 < len(l.Lines); i++ {
		p0 := image.Pt(5, l.Lines[i].Frame.Min.Y+2)
		p1 := image.Pt(5, l.Lines[i+1].Frame.Min.Y+2)
		if r := l.DragRange(p0, p1, false); r.Empty() {
			t.Errorf("drag from line %d to %d gave empty range %v", i, i+1, r)
		}
	}
}

func TestWordRangeRightHalf(t *testing.T) {
	l := measure(t, "hello_world test", 1000)
	for _, x := range []int{100, 104, 105, 106, 109} {
		if got, ok := l.WordRange(image.Pt(x, 5)); !ok || got != Rng(0, 11) {
			t.Errorf("WordRange(%d) = %v, %v; want [0,11)", x, got, ok)
		}
	}
	if got, _ := l.WordRange(image.Pt(112, 5)); got != Rng(11, 12) {
		t.Errorf("WordRange(112) = %v, want the space", got)
	}
}

func TestWordRange(t *testing.T) {
	text := NewText("hello world see docs_v2 > quoted bit")
	text.Annotate(Rng(16, 23), Link{URL: "https://example.org"})
	q := &Quote{}
	text.Annotate(Rng(26, 36), BlockQuote{Quote: q})
	l := newTestLayouter().Measure(text, Constraints{MaxWidth: 1000})

	for _, tc := range []struct {
		name string
		pt   image.Point
		want Range
		ok   bool
	}{
		{"word", image.Pt(75, 5), Rng(6, 11), true},
		{"space", image.Pt(52, 5), Rng(5, 6), true},
		{"link", image.Pt(165, 5), Rng(16, 23), true},
		{"quote", image.Pt(275, 5), Rng(26, 36), true},
		{"past end", image.Pt(900, 5), Range{}, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := l.WordRange(tc.pt)
			if got != tc.want || ok != tc.ok {
				t.Errorf("WordRange(%v) = %v, %v; want %v, %v", tc.pt, got, ok, tc.want, tc.ok)
			}
		})
	}

	whole := newTestLayouter(WithSelectWholeText(true)).Measure(text, Constraints{MaxWidth: 1000})
	if got, _ := whole.WordRange(image.Pt(75, 5)); got != Rng(0, text.Len()) {
		t.Errorf("select-whole WordRange = %v, want everything", got)
	}
}

func TestLineSelectRange(t *testing.T) {
	l := measure(t, "one\ntwo three\nfour", 1000)
	got, ok := l.LineSelectRange(image.Pt(15, 20))
	if !ok || got != Rng(4, 13) {
		t.Errorf("LineSelectRange = %v, %v; want [4,13), true", got, ok)
	}
}

func TestExpandToLines(t *testing.T) {
	l := measure(t, "one\ntwo three\nfour", 1000)
	if got, want := l.ExpandToLines(Rng(6, 15)), Rng(4, 18); got != want {
		t.Errorf("ExpandToLines = %v, want %v", got, want)
	}
}

func TestRectsForRange(t *testing.T) {
	l := measure(t, "hello world", 60)
	var got []image.Rectangle
	for _, lr := range l.RectsForRange(Rng(3, 8)) {
		got = append(got, lr.Rect)
	}
	want := []image.Rectangle{image.Rect(30, 0, 60, 14), image.Rect(0, 15, 20, 29)}
	if !cmp.Equal(got, want) {
		t.Errorf("RectsForRange = %v, want %v", got, want)
	}
}
