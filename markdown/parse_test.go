package markdown

import (
	"image"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rjkroege/uikit/rich"
)

func TestParseStripsMarkers(t *testing.T) {
	src := "Hello **world**"
	doc := Parse(src)
	if got, want := doc.Text.String(), "Hello world"; got != want {
		t.Errorf("text %q, want %q", got, want)
	}
	if got, want := doc.Text.Len(), len(src)-4; got != want {
		t.Errorf("length %d, want %d", got, want)
	}
	want := []rich.Annotated{{Range: rich.Rng(6, 11), Annotation: rich.Bold{}}}
	if diff := cmp.Diff(want, doc.Text.Annotations(rich.KindBold)); diff != "" {
		t.Errorf("bold annotations (-want +got):\n%s", diff)
	}
}

func TestParseInline(t *testing.T) {
	for _, tc := range []struct {
		name string
		src  string
		text string
		kind rich.Kind
		want []rich.Annotated
	}{
		{"italic", "an *idea*", "an idea", rich.KindItalic,
			[]rich.Annotated{{Range: rich.Rng(3, 7), Annotation: rich.Italic{}}}},
		{"bold italic", "***x***", "x", rich.KindItalic,
			[]rich.Annotated{{Range: rich.Rng(0, 1), Annotation: rich.Italic{}}}},
		{"strike", "~~gone~~ now", "gone now", rich.KindStrikethrough,
			[]rich.Annotated{{Range: rich.Rng(0, 4), Annotation: rich.Strikethrough{}}}},
		{"spoiler", "it was ||him||", "it was him", rich.KindSpoiler,
			[]rich.Annotated{{Range: rich.Rng(7, 10), Annotation: rich.Spoiler{}}}},
		{"underline", "__u__", "u", rich.KindUnderline,
			[]rich.Annotated{{Range: rich.Rng(0, 1), Annotation: rich.Underline{}}}},
		{"code", "run `ls`", "run ls", rich.KindCode,
			[]rich.Annotated{{Range: rich.Rng(4, 6), Annotation: rich.Code{}}}},
		{"link", "see [go](https://go.dev)", "see go", rich.KindLink,
			[]rich.Annotated{{Range: rich.Rng(4, 6), Annotation: rich.Link{URL: "https://go.dev"}}}},
		{"unclosed", "a ** b", "a ** b", rich.KindBold, nil},
		{"heading", "# Title", "Title", rich.KindBold,
			[]rich.Annotated{{Range: rich.Rng(0, 5), Annotation: rich.Bold{}}}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			doc := Parse(tc.src)
			if got := doc.Text.String(); got != tc.text {
				t.Errorf("text %q, want %q", got, tc.text)
			}
			if diff := cmp.Diff(tc.want, doc.Text.Annotations(tc.kind)); diff != "" {
				t.Errorf("%v annotations (-want +got):\n%s", tc.kind, diff)
			}
		})
	}
}

func TestParseImage(t *testing.T) {
	doc := Parse("a ![cat](c.png) b")
	if got, want := doc.Text.String(), "a "+Placeholder+" b"; got != want {
		t.Errorf("text %q, want %q", got, want)
	}
	want := []rich.Annotated{{Range: rich.Rng(2, 3), Annotation: rich.Embedded{Item: Image{Alt: "cat", URL: "c.png"}}}}
	if diff := cmp.Diff(want, doc.Text.Annotations(rich.KindEmbedded)); diff != "" {
		t.Errorf("embedded (-want +got):\n%s", diff)
	}
}

func TestParseBlockQuote(t *testing.T) {
	doc := Parse("> one\n> two\nafter")
	if got, want := doc.Text.String(), "one\ntwo\nafter"; got != want {
		t.Errorf("text %q, want %q", got, want)
	}
	quotes := doc.Text.Annotations(rich.KindBlockQuote)
	if len(quotes) != 1 {
		t.Fatalf("got %d quote annotations, want 1", len(quotes))
	}
	if got, want := quotes[0].Range, rich.Rng(0, 8); got != want {
		t.Errorf("quote range %v, want %v", got, want)
	}
	if q := quotes[0].Annotation.(rich.BlockQuote).Quote; q.IsCode || q.Space != 4 || q.Inset != 10 {
		t.Errorf("quote %+v, want default metrics", q)
	}
}

func TestParseCodeBlock(t *testing.T) {
	doc := Parse("```go\nx := 1\n```\nok", WithQuoteMetrics(2, 6), WithHeaderHeight(12))
	if got, want := doc.Text.String(), "x := 1\nok"; got != want {
		t.Errorf("text %q, want %q", got, want)
	}
	a := doc.Text.Attrs(0)
	if !a.Code || a.Quote == nil {
		t.Fatalf("attrs %+v, want code inside a quote", a)
	}
	if q := a.Quote; !q.IsCode || q.Header != "go" || q.HeaderHeight != 12 || q.Space != 2 || q.Inset != 6 {
		t.Errorf("code block quote %+v", q)
	}
	if a := doc.Text.Attrs(7); a.Code || a.Quote != nil {
		t.Errorf("text after the fence has attrs %+v", a)
	}
}

func TestParseHexMarkers(t *testing.T) {
	doc := Parse("c #ff0000", WithHexMarkers(image.Pt(6, 6)))
	want := []rich.Annotated{{
		Range:      rich.Rng(2, 9),
		Annotation: rich.HexColor{Color: color.RGBA{0xff, 0, 0, 0xff}, Size: image.Pt(6, 6)},
	}}
	if diff := cmp.Diff(want, doc.Text.Annotations(rich.KindHexColor)); diff != "" {
		t.Errorf("hex annotations (-want +got):\n%s", diff)
	}
	if got := Parse("c #ff0000").Text.Annotations(rich.KindHexColor); len(got) != 0 {
		t.Errorf("hex annotations without option: %v", got)
	}
}

func TestSourceMap(t *testing.T) {
	for _, tc := range []struct {
		name       string
		src        string
		r          rich.Range
		start, end int
	}{
		{"whole bold", "Hello **world**", rich.Rng(6, 11), 6, 15},
		{"inside bold", "Hello **world**", rich.Rng(7, 9), 9, 11},
		{"plain", "Hello **world**", rich.Rng(0, 3), 0, 3},
		{"link text", "see [go](u)", rich.Rng(4, 6), 5, 7},
		{"quote line", "> quoted", rich.Rng(0, 6), 2, 8},
		{"multibyte", "héllo **wörld**", rich.Rng(7, 9), 10, 13},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s, e := Parse(tc.src).Source.ToSource(tc.r)
			if s != tc.start || e != tc.end {
				t.Errorf("ToSource(%v) = %d, %d; want %d, %d", tc.r, s, e, tc.start, tc.end)
			}
		})
	}
}
