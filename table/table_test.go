package table

import (
	"errors"
	"fmt"
	"image"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/rjkroege/uikit/view"
)

type testView struct {
	bound  []string
	sizes  []image.Point
	resets int
}

func (v *testView) Bind(item any)                  { v.bound = append(v.bound, item.(*row).id) }
func (v *testView) Layout(size image.Point)        { v.sizes = append(v.sizes, size) }
func (v *testView) PrepareForReuse()               { v.resets++ }
func (v *testView) CanAnimateUpdate(item any) bool { return true }

type testFactory struct{}

func (testFactory) ViewKind(item any) view.Kind {
	if strings.HasPrefix(item.(*row).id, "h") {
		return "header"
	}
	return "row"
}

func (testFactory) MakeView(view.Kind) view.View { return &testView{} }

func makeRows(n int) []*row {
	rs := make([]*row, n)
	for i := range rs {
		rs[i] = &row{id: fmt.Sprintf("r%d", i), height: 20}
	}
	return rs
}

func fill(tb *Table, rs []*row) {
	var ins []Insert
	for i, r := range rs {
		ins = append(ins, Insert{Index: i, Item: r})
	}
	tb.Apply(Transaction{Inserted: ins})
}

// newTable returns a 100x100 table of n 20-pixel rows without preload.
func newTable(n int, opts ...Option) (*Table, []*row) {
	tb := New(testFactory{}, image.Pt(100, 100), append([]Option{WithPreload(0)}, opts...)...)
	rs := makeRows(n)
	fill(tb, rs)
	return tb, rs
}

func screenY(tb *Table, id string) int {
	i, _ := tb.Rows().IndexOf(id)
	return tb.Rows().Top(i) - tb.Offset()
}

func TestApplyRemap(t *testing.T) {
	tb := New(testFactory{}, image.Pt(100, 100))
	rs := []*row{{id: "A", height: 10}, {id: "B", height: 10}, {id: "C", height: 10}, {id: "D", height: 10}}
	fill(tb, rs)
	x := &row{id: "X", height: 10}
	tb.Apply(Transaction{Deleted: []int{1}, Inserted: []Insert{{Index: 1, Item: x}}})

	if diff := cmp.Diff([]string{"A", "X", "C", "D"}, ids(tb.Rows())); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if x.Index() != 1 || rs[2].Index() != 2 || rs[3].Index() != 3 || rs[1].Index() != -1 {
		t.Errorf("indices: X=%d C=%d D=%d B=%d", x.Index(), rs[2].Index(), rs[3].Index(), rs[1].Index())
	}
	if _, ok := tb.View("B"); ok {
		t.Errorf("deleted row still has a view")
	}
	if _, ok := tb.View("X"); !ok {
		t.Errorf("inserted row has no view")
	}
}

func TestApplyRejects(t *testing.T) {
	tb, _ := newTable(4)
	for _, tc := range []struct {
		name string
		tx   Transaction
		want error
	}{
		{"duplicate", Transaction{Inserted: []Insert{{Index: 0, Item: &row{id: "r2"}}}}, ErrDuplicateID},
		{"duplicate within", Transaction{Inserted: []Insert{{Index: 0, Item: &row{id: "n"}}, {Index: 1, Item: &row{id: "n"}}}}, ErrDuplicateID},
		{"insert past end", Transaction{Deleted: []int{0}, Inserted: []Insert{{Index: 4, Item: &row{id: "n"}}}}, ErrIndexOutOfRange},
		{"delete", Transaction{Deleted: []int{4}}, ErrIndexOutOfRange},
		{"delete twice", Transaction{Deleted: []int{1, 1}}, ErrIndexOutOfRange},
		{"update", Transaction{Updated: []Update{{Index: 4, Item: &row{id: "n"}}}}, ErrIndexOutOfRange},
	} {
		if err := panicErr(func() { tb.Apply(tc.tx) }); !errors.Is(err, tc.want) {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
	if diff := cmp.Diff([]string{"r0", "r1", "r2", "r3"}, ids(tb.Rows())); diff != "" {
		t.Errorf("collection changed (-want +got):\n%s", diff)
	}
	// Reinserting a deleted id in the same transaction is a move.
	r1, _ := tb.Rows().Find("r1")
	tb.Apply(Transaction{Deleted: []int{1}, Inserted: []Insert{{Index: 3, Item: r1}}})
	if diff := cmp.Diff([]string{"r0", "r2", "r3", "r1"}, ids(tb.Rows())); diff != "" {
		t.Errorf("after move (-want +got):\n%s", diff)
	}
}

func TestMoveKeepsView(t *testing.T) {
	tb, rs := newTable(4)
	h, _ := tb.View("r0")
	binds := len(h.View.(*testView).bound)
	tb.Apply(Transaction{Deleted: []int{0}, Inserted: []Insert{{Index: 2, Item: rs[0]}}})
	got, ok := tb.View("r0")
	if !ok || got != h {
		t.Fatalf("moved row lost its view")
	}
	if got.Frame != image.Rect(0, 40, 100, 60) {
		t.Errorf("Frame = %v", got.Frame)
	}
	if n := len(got.View.(*testView).bound); n != binds {
		t.Errorf("moved row rebound %d times", n-binds)
	}
}

func TestUpdateRebinds(t *testing.T) {
	tb, _ := newTable(3)
	h, _ := tb.View("r1")
	tb.Apply(Transaction{Updated: []Update{{Index: 1, Item: &row{id: "r1", height: 40}}}})
	got, _ := tb.View("r1")
	if got != h {
		t.Errorf("update replaced a view that can animate updates")
	}
	if diff := cmp.Diff([]string{"r1", "r1"}, got.View.(*testView).bound); diff != "" {
		t.Errorf("binds (-want +got):\n%s", diff)
	}
	if got.Frame != image.Rect(0, 20, 100, 60) {
		t.Errorf("Frame = %v", got.Frame)
	}
}

func TestSaveVisible(t *testing.T) {
	for _, tc := range []struct {
		name   string
		anchor Anchor
		at     int
		pin    string
		want   int
	}{
		{"upper", SaveVisible{Side: Upper}, 10, "", 300},
		{"lower", SaveVisible{Side: Lower}, 10, "", 300},
		{"none", nil, 10, "", 200},
		{"lower below first", SaveVisible{Side: Lower}, 11, "", 200},
		{"skips pinned", SaveVisible{Side: Lower}, 11, "r10", 300},
		{"around", SaveVisible{Side: Around, ID: "r13"}, 11, "", 300},
	} {
		t.Run(tc.name, func(t *testing.T) {
			tb := New(testFactory{}, image.Pt(100, 120), WithPreload(0))
			rs := makeRows(30)
			if tc.pin != "" {
				rs[10].pinned = true
			}
			fill(tb, rs)
			tb.ScrollTo(200)
			if got := tb.Visible(); got != (Span{10, 16}) {
				t.Fatalf("Visible = %v", got)
			}
			before := screenY(tb, "r15")

			var ins []Insert
			for i := 0; i < 5; i++ {
				ins = append(ins, Insert{Index: tc.at + i, Item: &row{id: fmt.Sprintf("n%d", i), height: 20}})
			}
			tb.Apply(Transaction{Inserted: ins, Anchor: tc.anchor})

			if got := tb.Offset(); got != tc.want {
				t.Errorf("Offset = %d, want %d", got, tc.want)
			}
			if tc.want == 300 {
				if got := screenY(tb, "r15"); got != before {
					t.Errorf("r15 moved from %d to %d", before, got)
				}
				if i, _ := tb.Rows().IndexOf("r15"); i != 20 {
					t.Errorf("r15 index %d, want 20", i)
				}
			}
		})
	}
}

func TestAnchorItem(t *testing.T) {
	for _, tc := range []struct {
		name   string
		anchor Anchor
		want   int
	}{
		{"top", AnchorTop{ID: "r10", Inset: 5}, 195},
		{"bottom", AnchorBottom{ID: "r10"}, 120},
		{"center", AnchorCenter{ID: "r10"}, 160},
		{"top clamps", AnchorTop{ID: "r29"}, 500},
		{"unknown", AnchorTop{ID: "zz"}, 40},
		{"down", ScrollDown{}, 500},
		{"up", ScrollUp{}, 0},
		{"up offset", ScrollUpOffset{Delta: 15}, 15},
	} {
		t.Run(tc.name, func(t *testing.T) {
			tb, _ := newTable(30)
			tb.ScrollTo(40)
			tb.ScrollToItem(tc.anchor)
			if got := tb.Offset(); got != tc.want {
				t.Errorf("Offset = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestInsetsClamp(t *testing.T) {
	tb := New(testFactory{}, image.Pt(100, 60), WithInsets(10, 5), WithPreload(0))
	fill(tb, makeRows(5))
	if got := tb.Offset(); got != -10 {
		t.Errorf("initial Offset = %d, want -10", got)
	}
	tb.ScrollTo(1000)
	if got := tb.Offset(); got != 45 {
		t.Errorf("Offset = %d, want 45", got)
	}
	tb.ScrollTo(-50)
	if got := tb.Offset(); got != -10 {
		t.Errorf("Offset = %d, want -10", got)
	}
	tb.ScrollToItem(ScrollUpOffset{Delta: 15})
	if got := tb.Offset(); got != 5 {
		t.Errorf("Offset = %d, want 5", got)
	}
}

func TestWindow(t *testing.T) {
	tb, _ := newTable(30)
	if got := tb.Views(); got != 5 {
		t.Errorf("Views = %d, want 5", got)
	}
	tb.ScrollTo(10)
	if got := tb.Views(); got != 6 {
		t.Errorf("Views = %d, want 6", got)
	}
	tb.ScrollTo(300)
	if _, ok := tb.View("r0"); ok {
		t.Errorf("r0 still materialized")
	}
	if h, ok := tb.View("r15"); !ok || h.Frame != image.Rect(0, 300, 100, 320) {
		t.Errorf("r15 view missing or misplaced")
	}

	pre := New(testFactory{}, image.Pt(100, 100), WithPreload(40))
	fill(pre, makeRows(30))
	if got := pre.Views(); got != 7 {
		t.Errorf("Views with preload = %d, want 7", got)
	}
}

func TestFocus(t *testing.T) {
	tb, _ := newTable(30)
	var focused *view.Handle
	tb.ScrollToItem(AnchorTop{ID: "r20", Focus: func(h *view.Handle) { focused = h }})
	if focused == nil {
		t.Fatalf("focus not delivered")
	}
	if got := focused.View.(*testView).bound; got[len(got)-1] != "r20" {
		t.Errorf("focused view bound to %v", got)
	}
	if tb.pending != nil {
		t.Errorf("pending focus left behind")
	}
}

func TestDeferredApply(t *testing.T) {
	tb, _ := newTable(5)
	calls := 0
	inner := -1
	cancel := tb.OnContentGeometryChanged(func(g Geometry) {
		calls++
		if calls == 1 {
			tb.Apply(Transaction{Inserted: []Insert{{Index: 0, Item: &row{id: "b", height: 20}}}})
			inner = tb.Rows().Len()
		}
	})
	tb.Apply(Transaction{Inserted: []Insert{{Index: 0, Item: &row{id: "a", height: 20}}}})
	if inner != 6 {
		t.Errorf("nested Apply ran immediately: Len %d inside callback", inner)
	}
	if got := tb.Rows().Len(); got != 7 {
		t.Errorf("Len = %d, want 7", got)
	}
	if calls != 2 {
		t.Errorf("geometry callbacks = %d, want 2", calls)
	}
	cancel()
	tb.Apply(Transaction{Deleted: []int{0}})
	if calls != 2 {
		t.Errorf("callback ran after cancel")
	}
}

func TestVisibleRangeNotified(t *testing.T) {
	tb, _ := newTable(30)
	var got []Span
	tb.OnVisibleRangeChanged(func(s Span) { got = append(got, s) })
	tb.ScrollTo(30)
	tb.ScrollTo(35)
	tb.ScrollTo(100)
	if diff := cmp.Diff([]Span{{1, 7}, {5, 10}}, got); diff != "" {
		t.Errorf("spans (-want +got):\n%s", diff)
	}
}

func TestAnimatedInsert(t *testing.T) {
	m := &view.Manual{}
	tb, _ := newTable(10, WithAnimator(m))
	n0 := &row{id: "n0", height: 20}
	tb.Apply(Transaction{Inserted: []Insert{{Index: 0, Item: n0}}, Animated: true})

	if got := len(m.Pending); got != 6 {
		t.Fatalf("animations = %d, want 6", got)
	}
	h, _ := tb.View("n0")
	if !h.Inserting {
		t.Errorf("inserted view not marked inserting")
	}
	for _, a := range m.Pending {
		switch a.Handle {
		case h:
			if a.From != image.Rect(0, -20, 100, 0) || a.FromAlpha != 0 || a.ToAlpha != 1 {
				t.Errorf("insert animation %v alpha %v->%v", a.From, a.FromAlpha, a.ToAlpha)
			}
		default:
			if d := a.To.Min.Y - a.From.Min.Y; d != 20 {
				t.Errorf("row moved by %d, want 20", d)
			}
		}
	}
	if got := tb.arena.Leaving(); got != 1 {
		t.Errorf("Leaving = %d, want 1", got)
	}
	m.Finish()
	if h.Inserting {
		t.Errorf("Inserting still set after finish")
	}
	if got := tb.arena.Leaving(); got != 0 {
		t.Errorf("Leaving after finish = %d, want 0", got)
	}
}

func TestAnimatedAnchor(t *testing.T) {
	for _, tc := range []struct {
		name       string
		start      int
		anchor     Anchor
		offset     int
		animations int
		id         string
		from, to   image.Rectangle
	}{
		{"top", 0, AnchorTop{ID: "r20", Animated: true}, 400, 10,
			"r20", image.Rect(0, 500, 100, 520), image.Rect(0, 400, 100, 420)},
		{"top jump", 0, AnchorTop{ID: "r20"}, 400, 0, "", image.Rectangle{}, image.Rectangle{}},
		{"up", 200, ScrollUp{Animated: true}, 0, 10,
			"r0", image.Rect(0, -100, 100, -80), image.Rect(0, 0, 100, 20)},
		{"up jump", 200, ScrollUp{}, 0, 0, "", image.Rectangle{}, image.Rectangle{}},
		{"down", 0, ScrollDown{Animated: true}, 500, 10,
			"r29", image.Rect(0, 680, 100, 700), image.Rect(0, 580, 100, 600)},
		{"up offset", 200, ScrollUpOffset{Animated: true, Delta: 40}, 40, 10,
			"r2", image.Rect(0, -60, 100, -40), image.Rect(0, 40, 100, 60)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			m := &view.Manual{}
			tb, _ := newTable(30, WithAnimator(m))
			tb.ScrollTo(tc.start)
			tb.ScrollToItem(tc.anchor)
			if got := tb.Offset(); got != tc.offset {
				t.Errorf("Offset = %d, want %d", got, tc.offset)
			}
			if got := len(m.Pending); got != tc.animations {
				t.Fatalf("animations = %d, want %d", got, tc.animations)
			}
			if tc.id != "" {
				h, _ := tb.View(tc.id)
				var got []image.Rectangle
				for _, a := range m.Pending {
					if a.Handle == h {
						got = append(got, a.From, a.To)
					}
				}
				if diff := cmp.Diff([]image.Rectangle{tc.from, tc.to}, got); diff != "" {
					t.Errorf("%s animation (-want +got):\n%s", tc.id, diff)
				}
			}
			m.Finish()
			if got := tb.arena.Leaving(); got != 0 {
				t.Errorf("Leaving after finish = %d, want 0", got)
			}
			if got := tb.Views(); got != 5 {
				t.Errorf("Views = %d, want 5", got)
			}
		})
	}
}

func TestStaleCompletion(t *testing.T) {
	m := &view.Manual{}
	tb, rs := newTable(10, WithAnimator(m))
	h1, _ := tb.View("r1")
	tb.Apply(Transaction{Deleted: []int{1}, Animated: true})
	if got := len(m.Pending); got != 1 {
		t.Fatalf("animations = %d, want 1", got)
	}
	if a := m.Pending[0]; a.Handle != h1 || a.ToAlpha != 0 {
		t.Errorf("expected r1 to fade out")
	}
	tb.Apply(Transaction{Inserted: []Insert{{Index: 1, Item: rs[1]}}})
	m.Finish()
	got, ok := tb.View("r1")
	if !ok || got != h1 {
		t.Fatalf("reinserted row did not get its view back")
	}
	if tb.arena.Leaving() != 0 {
		t.Errorf("Leaving = %d, want 0", tb.arena.Leaving())
	}
	if got := h1.View.(*testView).resets; got != 0 {
		t.Errorf("stale completion recycled the view")
	}
}

func TestSticky(t *testing.T) {
	tb := New(testFactory{}, image.Pt(100, 100), WithPreload(0), WithStickyKind("header"))
	var rs []*row
	for i := 0; i < 20; i++ {
		id := fmt.Sprintf("r%d", i)
		if i%10 == 0 {
			id = fmt.Sprintf("h%d", i)
		}
		rs = append(rs, &row{id: id, height: 20})
	}
	fill(tb, rs)

	for _, tc := range []struct {
		offset int
		ok     bool
		want   Sticky
	}{
		{0, false, Sticky{}},
		{50, true, Sticky{ID: "h0", Index: 0, Frame: image.Rect(0, 50, 100, 70)}},
		{190, true, Sticky{ID: "h0", Index: 0, Frame: image.Rect(0, 180, 100, 200), Pushed: true}},
		{200, false, Sticky{}},
		{250, true, Sticky{ID: "h10", Index: 10, Frame: image.Rect(0, 250, 100, 270)}},
	} {
		tb.ScrollTo(tc.offset)
		s, h, ok := tb.Sticky()
		if ok != tc.ok {
			t.Errorf("offset %d: stuck %v, want %v", tc.offset, ok, tc.ok)
			continue
		}
		if diff := cmp.Diff(tc.want, s); diff != "" {
			t.Errorf("offset %d (-want +got):\n%s", tc.offset, diff)
		}
		if ok {
			b := h.View.(*testView).bound
			if b[len(b)-1] != tc.want.ID {
				t.Errorf("offset %d: sticky view bound to %v", tc.offset, b)
			}
		}
	}
}

func TestStickyShortContent(t *testing.T) {
	tb := New(testFactory{}, image.Pt(100, 100), WithStickyKind("header"))
	fill(tb, []*row{{id: "h0", height: 20}, {id: "r1", height: 20}})
	tb.ScrollTo(10)
	if _, _, ok := tb.Sticky(); ok {
		t.Errorf("header stuck on content shorter than the viewport")
	}
}

func TestResize(t *testing.T) {
	tb := New(testFactory{}, image.Pt(100, 100), WithPreload(0))
	rs := makeRows(30)
	for _, r := range rs {
		r.wide = true
	}
	fill(tb, rs)
	tb.ScrollTo(100)
	tb.SetViewport(image.Pt(200, 100))
	if got := tb.Offset(); got != 50 {
		t.Errorf("Offset = %d, want 50", got)
	}
	h, ok := tb.View("r5")
	if !ok || h.Frame != image.Rect(0, 50, 200, 60) {
		t.Errorf("r5 frame after resize: %v", h)
	}
	if got := tb.Rows().ContentHeight(); got != 300 {
		t.Errorf("ContentHeight = %d, want 300", got)
	}
}

func TestResort(t *testing.T) {
	tb, rs := newTable(10)
	var from, to int
	tb.SetResortable(0, 10, func(f, dst int) {
		from, to = f, dst
		tb.Apply(Transaction{Deleted: []int{f}, Inserted: []Insert{{Index: dst, Item: rs[f]}}})
	})
	h1, _ := tb.View("r1")
	if !tb.BeginResort(image.Pt(5, 25)) {
		t.Fatalf("BeginResort failed")
	}
	tb.DragResort(image.Pt(5, 65))
	if h1.Frame != image.Rect(0, 60, 100, 80) {
		t.Errorf("floating frame = %v", h1.Frame)
	}
	for id, want := range map[string]image.Rectangle{
		"r2": image.Rect(0, 20, 100, 40),
		"r3": image.Rect(0, 40, 100, 60),
		"r4": image.Rect(0, 80, 100, 100),
	} {
		if h, _ := tb.View(id); h.Frame != want {
			t.Errorf("%s during drag: %v, want %v", id, h.Frame, want)
		}
	}
	tb.EndResort()
	if from != 1 || to != 3 {
		t.Errorf("done(%d, %d), want (1, 3)", from, to)
	}
	if diff := cmp.Diff([]string{"r0", "r2", "r3", "r1", "r4"}, ids(tb.Rows())[:5]); diff != "" {
		t.Errorf("order (-want +got):\n%s", diff)
	}
	if h, _ := tb.View("r1"); h != h1 || h.Frame != image.Rect(0, 60, 100, 80) {
		t.Errorf("r1 after drop: %v", h.Frame)
	}
	if tb.Resorting() {
		t.Errorf("still resorting")
	}
}

func TestResortClampsToRows(t *testing.T) {
	tb, _ := newTable(5)
	from, to := -1, -1
	tb.SetResortable(0, 5, func(f, dst int) { from, to = f, dst })
	tb.Apply(Transaction{Deleted: []int{3, 4}})

	if tb.BeginResort(image.Pt(5, 65)) {
		t.Errorf("BeginResort started below the last row")
	}
	if !tb.BeginResort(image.Pt(5, 25)) {
		t.Fatalf("BeginResort failed")
	}
	tb.DragResort(image.Pt(5, 55))
	tb.DragResort(image.Pt(5, 95))
	tb.EndResort()
	if from != 1 || to != 2 {
		t.Errorf("done(%d, %d), want (1, 2)", from, to)
	}
	if n := tb.Rows().Len(); to >= n {
		t.Errorf("to = %d beyond %d rows", to, n)
	}
}

func TestResortOutsideRange(t *testing.T) {
	tb, _ := newTable(10)
	tb.SetResortable(2, 5, func(int, int) {})
	if tb.BeginResort(image.Pt(5, 10)) {
		t.Errorf("BeginResort started outside the resortable range")
	}
	if !tb.BeginResort(image.Pt(5, 45)) {
		t.Fatalf("BeginResort failed inside the range")
	}
	tb.Apply(Transaction{})
	if tb.Resorting() {
		t.Errorf("transaction did not cancel the drag")
	}
	if _, ok := tb.View("r2"); !ok {
		t.Errorf("cancelled drag lost its view")
	}
}
