// Package draw is the narrow compositing surface the renderers draw
// through. The default implementation wraps 9fans.net/go/draw; building
// with the duitdraw tag swaps in github.com/ktye/duitdraw.
package draw

import (
	"image"
	"image/color"
)

type Display interface {
	ScreenImage() Image
	AllocImage(r image.Rectangle, pix Pix, repl bool, val Color) (Image, error)
	Flush() error
	ScaleSize(n int) int
}

type Image interface {
	Display() Display
	R() image.Rectangle

	Draw(r image.Rectangle, src, mask Image, p1 image.Point)
	Border(r image.Rectangle, n int, color Image, sp image.Point)
	Bytes(pt image.Point, src Image, sp image.Point, f Font, b []byte) image.Point
	Free() error
}

// Font measures text. Implementations may additionally provide
// Ascent() int; callers fall back to AscentOf otherwise.
type Font interface {
	Name() string
	Height() int
	BytesWidth(b []byte) int
	RunesWidth(r []rune) int
	StringWidth(s string) int
}

// AscentOf returns f's ascent, estimating four fifths of the height for
// fonts that do not report one.
func AscentOf(f Font) int {
	if a, ok := f.(interface{ Ascent() int }); ok {
		return a.Ascent()
	}
	return f.Height() * 4 / 5
}

// ColorOf packs c into the backend's 32-bit RGBA colour.
func ColorOf(c color.Color) Color {
	if c == nil {
		return Notacolor
	}
	r, g, b, a := c.RGBA()
	return Color(r>>8)<<24 | Color(g>>8)<<16 | Color(b>>8)<<8 | Color(a>>8)
}

// displayImpl implements the Display interface.
type displayImpl struct {
	*drawDisplay
}

var _ = Display((*displayImpl)(nil))

func (d *displayImpl) ScreenImage() Image { return &imageImpl{d.drawDisplay.ScreenImage} }

func (d *displayImpl) AllocImage(r image.Rectangle, pix Pix, repl bool, val Color) (Image, error) {
	i, err := d.drawDisplay.AllocImage(r, pix, repl, val)
	if err != nil {
		return nil, err
	}
	return &imageImpl{i}, nil
}

func (d *displayImpl) OpenFont(name string) (Font, error) {
	f, err := d.drawDisplay.OpenFont(name)
	if err != nil {
		return nil, err
	}
	return &fontImpl{f}, nil
}

// imageImpl implements the Image interface.
type imageImpl struct {
	*drawImage
}

var _ = Image((*imageImpl)(nil))

func (dst *imageImpl) Display() Display   { return &displayImpl{dst.drawImage.Display} }
func (dst *imageImpl) R() image.Rectangle { return dst.drawImage.R }

func (dst *imageImpl) Draw(r image.Rectangle, src, mask Image, p1 image.Point) {
	dst.drawImage.Draw(r, toDrawImage(src), toDrawImage(mask), p1)
}

func (dst *imageImpl) Border(r image.Rectangle, n int, color Image, sp image.Point) {
	dst.drawImage.Border(r, n, toDrawImage(color), sp)
}

func (dst *imageImpl) Bytes(pt image.Point, src Image, sp image.Point, f Font, b []byte) image.Point {
	return dst.drawImage.Bytes(pt, toDrawImage(src), sp, f.(*fontImpl).drawFont, b)
}

func toDrawImage(i Image) *drawImage {
	if i == nil {
		return nil
	}
	return i.(*imageImpl).drawImage
}

type fontImpl struct {
	*drawFont
}

func (f *fontImpl) Name() string { return f.drawFont.Name }
func (f *fontImpl) Height() int  { return f.drawFont.Height }
func (f *fontImpl) Ascent() int  { return f.drawFont.Ascent }
