package draw

import (
	"testing"

	"golang.org/x/image/font/basicfont"
)

func TestFaceFont(t *testing.T) {
	f := NewFaceFont("7x13", basicfont.Face7x13)

	if got, want := f.StringWidth("hello"), 35; got != want {
		t.Errorf("StringWidth(hello) = %d, want %d", got, want)
	}
	if got, want := f.BytesWidth([]byte("ab")), 14; got != want {
		t.Errorf("BytesWidth(ab) = %d, want %d", got, want)
	}
	if got, want := f.RunesWidth([]rune("abc")), 21; got != want {
		t.Errorf("RunesWidth(abc) = %d, want %d", got, want)
	}
	if got, want := f.Height(), 13; got != want {
		t.Errorf("Height() = %d, want %d", got, want)
	}
	if got, want := AscentOf(f), 11; got != want {
		t.Errorf("AscentOf() = %d, want %d", got, want)
	}
}

func TestColorOf(t *testing.T) {
	if got := ColorOf(nil); got != Notacolor {
		t.Errorf("ColorOf(nil) = %#x, want Notacolor", uint32(got))
	}
}
