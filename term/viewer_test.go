package term

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
	"github.com/muesli/termenv"
	"github.com/rjkroege/uikit/rich"
	"github.com/rjkroege/uikit/theme"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "ctrl+a":
		return tea.KeyMsg{Type: tea.KeyCtrlA}
	case "shift+left":
		return tea.KeyMsg{Type: tea.KeyShiftLeft}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(v *Viewer, msgs ...tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	for _, m := range msgs {
		_, cmd = v.Update(m)
	}
	return cmd
}

func TestViewerScroll(t *testing.T) {
	v := NewViewer(rich.NewText("aaa bbb ccc"), formatter(termenv.Ascii), theme.Light())
	if got := v.View(); got != "" {
		t.Errorf("View before size = %q", got)
	}
	send(v, tea.WindowSizeMsg{Width: 5, Height: 2})

	var got []string
	got = append(got, v.View())
	send(v, key("down"))
	got = append(got, v.View())
	send(v, key("down"))
	got = append(got, v.View())
	send(v, key("up"), key("up"))
	got = append(got, v.View())
	want := []string{"aaa \nbbb ", "bbb \nccc", "bbb \nccc", "aaa \nbbb "}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("views (-want +got):\n%s", diff)
	}
}

func TestViewerSelectCopy(t *testing.T) {
	v := NewViewer(rich.NewText("ab cd"), formatter(termenv.Ascii), theme.Light())
	send(v, tea.WindowSizeMsg{Width: 20, Height: 1})

	send(v, key("ctrl+a"))
	if got, want := v.Selection(), rich.Rng(0, 5); got != want {
		t.Errorf("Selection = %v, want %v", got, want)
	}
	send(v, key("shift+left"))
	cmd := send(v, key("y"))
	if cmd == nil {
		t.Fatal("copy returned no command")
	}
	if diff := cmp.Diff(CopyMsg("ab c"), cmd()); diff != "" {
		t.Errorf("copy (-want +got):\n%s", diff)
	}
	if cmd := send(v, key("q")); cmd == nil {
		t.Error("q did not quit")
	} else if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("q sent %T", cmd())
	}
}

func TestViewerLinkClick(t *testing.T) {
	text := rich.NewText("go x").Annotate(rich.Rng(3, 4), rich.Link{URL: "u"})
	v := NewViewer(text, formatter(termenv.Ascii), theme.Light())
	send(v, tea.WindowSizeMsg{Width: 20, Height: 1})

	cmd := send(v,
		tea.MouseMsg{X: 3, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
		tea.MouseMsg{X: 3, Y: 0, Action: tea.MouseActionRelease},
	)
	if cmd == nil {
		t.Fatal("click on link returned no command")
	}
	if diff := cmp.Diff(LinkMsg{URL: "u"}, cmd()); diff != "" {
		t.Errorf("link (-want +got):\n%s", diff)
	}
}
