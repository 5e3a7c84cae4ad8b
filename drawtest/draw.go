// Package drawtest contains fixed-metric fakes of the draw interfaces for
// testing layout and rendering without a display server.
package drawtest

import (
	"fmt"
	"image"
	"sync"
	"unicode/utf8"

	"github.com/rjkroege/uikit/draw"
)

var _ = draw.Display((*Display)(nil))

// Display records every draw operation issued against images it allocated.
type Display struct {
	mu      sync.Mutex
	drawops []string
	screen  *Image
}

// NewDisplay returns a recording display whose screen covers r.
func NewDisplay(r image.Rectangle) *Display {
	d := &Display{}
	d.screen = &Image{d: d, r: r, name: "screen"}
	return d
}

func (d *Display) ScreenImage() draw.Image { return d.screen }

func (d *Display) AllocImage(r image.Rectangle, pix draw.Pix, repl bool, val draw.Color) (draw.Image, error) {
	return &Image{
		d:    d,
		r:    r,
		c:    val,
		repl: repl,
		name: fmt.Sprintf("%08x", uint32(val)),
	}, nil
}

func (d *Display) Flush() error        { return nil }
func (d *Display) ScaleSize(n int) int { return n }

// DrawOps returns the recorded operations in issue order.
func (d *Display) DrawOps() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.drawops...)
}

// Clear discards recorded operations.
func (d *Display) Clear() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.drawops = nil
}

func (d *Display) record(op string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.drawops = append(d.drawops, op)
}

var _ = draw.Image((*Image)(nil))

// Image is a named rectangle that logs what is drawn into it.
type Image struct {
	d    *Display
	r    image.Rectangle
	c    draw.Color
	repl bool
	name string
}

func (i *Image) Display() draw.Display { return i.d }
func (i *Image) R() image.Rectangle    { return i.r }

// Name returns the image's colour name, or "screen".
func (i *Image) Name() string { return i.name }

func nameOf(i draw.Image) string {
	if m, ok := i.(*Image); ok {
		return m.name
	}
	return "nil"
}

func (i *Image) Draw(r image.Rectangle, src, mask draw.Image, p1 image.Point) {
	i.d.record(fmt.Sprintf("%s <- fill %v src: %s", i.name, r, nameOf(src)))
}

func (i *Image) Border(r image.Rectangle, n int, color draw.Image, sp image.Point) {
	i.d.record(fmt.Sprintf("%s <- border %v thick: %d color: %s", i.name, r, n, nameOf(color)))
}

func (i *Image) Bytes(pt image.Point, src draw.Image, sp image.Point, f draw.Font, b []byte) image.Point {
	i.d.record(fmt.Sprintf("%s <- string %q at %v font: %s fill: %s", i.name, string(b), pt, f.Name(), nameOf(src)))
	return pt.Add(image.Pt(f.BytesWidth(b), 0))
}

func (i *Image) Free() error { return nil }

var _ = draw.Font((*Font)(nil))

// Font is a fixed-width font: every rune is Width pixels wide.
type Font struct {
	name          string
	width, height int
	ascent        int
}

// NewFont returns a fixed-width font named "mono".
func NewFont(width, height int) *Font {
	return NewNamedFont("mono", width, height)
}

// NewNamedFont returns a fixed-width font with the given name, useful to
// tell bold and code variants apart in recorded ops.
func NewNamedFont(name string, width, height int) *Font {
	return &Font{name: name, width: width, height: height, ascent: height - height/4}
}

func (f *Font) Name() string             { return f.name }
func (f *Font) Height() int              { return f.height }
func (f *Font) Ascent() int              { return f.ascent }
func (f *Font) BytesWidth(b []byte) int  { return f.width * utf8.RuneCount(b) }
func (f *Font) RunesWidth(r []rune) int  { return f.width * len(r) }
func (f *Font) StringWidth(s string) int { return f.width * utf8.RuneCountInString(s) }
