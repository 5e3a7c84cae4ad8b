package draw

import (
	"golang.org/x/image/font"
)

// FaceFont adapts a golang.org/x/image/font.Face to Font so that layout
// can be measured against any outline or bitmap face.
type FaceFont struct {
	name string
	face font.Face
}

var _ = Font((*FaceFont)(nil))

// NewFaceFont wraps face under the given name.
func NewFaceFont(name string, face font.Face) *FaceFont {
	return &FaceFont{name: name, face: face}
}

func (f *FaceFont) Name() string { return f.name }

func (f *FaceFont) Height() int {
	m := f.face.Metrics()
	return (m.Ascent + m.Descent).Ceil()
}

func (f *FaceFont) Ascent() int { return f.face.Metrics().Ascent.Ceil() }

func (f *FaceFont) BytesWidth(b []byte) int { return font.MeasureBytes(f.face, b).Ceil() }

func (f *FaceFont) RunesWidth(r []rune) int { return font.MeasureString(f.face, string(r)).Ceil() }

func (f *FaceFont) StringWidth(s string) int { return font.MeasureString(f.face, s).Ceil() }

// Face returns the wrapped face.
func (f *FaceFont) Face() font.Face { return f.face }
