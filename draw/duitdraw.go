//go:build duitdraw
// +build duitdraw

package draw

import (
	"fmt"

	draw "github.com/ktye/duitdraw"
)

const (
	Black       = draw.Black
	White       = draw.White
	Opaque      = draw.Opaque
	Transparent = draw.Transparent
	Notacolor   = draw.Notacolor
	Nofill      = draw.Nofill
)

var (
	RGBA32 = draw.RGBA32
	RGB24  = draw.RGB24
)

type (
	Color       = draw.Color
	Pix         = draw.Pix
	drawDisplay = draw.Display
	drawFont    = draw.Font
	drawImage   = draw.Image
)

// Open connects to the display server and opens fontname as the default
// font. errch receives asynchronous display errors.
func Open(errch chan<- error, fontname, label string) (Display, Font, error) {
	d, err := draw.Init(errch, fontname, label, "")
	if err != nil {
		return nil, nil, fmt.Errorf("draw: init %q: %w", label, err)
	}
	return &displayImpl{d}, &fontImpl{d.DefaultFont}, nil
}

// OpenFont loads a named font on d.
func OpenFont(d Display, name string) (Font, error) {
	di, ok := d.(*displayImpl)
	if !ok {
		return nil, fmt.Errorf("draw: OpenFont on foreign display %T", d)
	}
	f, err := di.OpenFont(name)
	if err != nil {
		return nil, fmt.Errorf("draw: open font %q: %w", name, err)
	}
	return f, nil
}
