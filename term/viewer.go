package term

import (
	"image"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rjkroege/uikit/rich"
	"github.com/rjkroege/uikit/theme"
)

// LinkMsg is sent when a link is clicked.
type LinkMsg rich.Link

// CopyMsg carries the selected text after a copy key.
type CopyMsg string

// Viewer is a scrolling, selectable tea.Model over one rich.Text. The
// text is re-measured at the window width on every resize.
type Viewer struct {
	text    *rich.Text
	cache   *rich.Cache
	style   *lipgloss.Renderer
	palette theme.Palette
	view    *rich.TextView

	width, height int
	top           int
}

var _ tea.Model = (*Viewer)(nil)

// NewViewer returns a viewer over t styled for r.
func NewViewer(t *rich.Text, r *lipgloss.Renderer, p theme.Palette) *Viewer {
	lo := rich.NewLayouter(rich.NewFontShaper(rich.Fonts{Regular: NewCellFont(false)}), rich.WithTheme(p))
	return &Viewer{
		text:    t,
		cache:   rich.NewCache(lo, 4),
		style:   r,
		palette: p,
	}
}

// Init implements tea.Model.
func (v *Viewer) Init() tea.Cmd { return nil }

// Top returns the first visible line.
func (v *Viewer) Top() int { return v.top }

// Selection returns the selected range, empty when nothing is selected.
func (v *Viewer) Selection() rich.Range {
	if v.view == nil {
		return rich.Range{}
	}
	s, ok := v.view.Selection()
	if !ok {
		return rich.Range{}
	}
	return s.Range
}

func (v *Viewer) measure() {
	if v.width <= 0 {
		return
	}
	l := v.cache.Measure(v.text, rich.Constraints{MaxWidth: v.width})
	if v.view == nil {
		v.view = rich.NewTextView(l)
	} else {
		v.view.SetLayout(l)
	}
	v.scroll(0)
}

func (v *Viewer) scroll(d int) {
	if v.view == nil {
		return
	}
	limit := max(v.view.Layout().Size.Y-v.height, 0)
	v.top = min(max(v.top+d, 0), limit)
}

// Update handles resizes, scrolling, pointer selection and the
// selection keys.
func (v *Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width, v.height = msg.Width, msg.Height
		v.measure()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return v, tea.Quit
		case "up", "k":
			v.scroll(-1)
		case "down", "j":
			v.scroll(1)
		case "pgup":
			v.scroll(-v.height)
		case "pgdown", " ":
			v.scroll(v.height)
		}
		if v.view == nil {
			return v, nil
		}
		switch msg.String() {
		case "shift+right":
			v.view.Perform(rich.IntentExtendNext)
		case "shift+left":
			v.view.Perform(rich.IntentExtendPrev)
		case "ctrl+a":
			v.view.Perform(rich.IntentSelectAll)
		case "esc":
			v.view.Perform(rich.IntentClear)
		case "y":
			if s := v.view.Perform(rich.IntentCopy); s != "" {
				return v, func() tea.Msg { return CopyMsg(s) }
			}
		}
	case tea.MouseMsg:
		if v.view == nil {
			return v, nil
		}
		pt := image.Pt(msg.X, msg.Y+v.top)
		switch {
		case msg.Button == tea.MouseButtonWheelUp:
			v.scroll(-1)
		case msg.Button == tea.MouseButtonWheelDown:
			v.scroll(1)
		case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
			v.view.MouseDown(pt, 1)
		case msg.Action == tea.MouseActionMotion:
			v.view.MouseDragged(pt)
		case msg.Action == tea.MouseActionRelease:
			if link, ok := v.view.MouseUp(pt); ok {
				return v, func() tea.Msg { return LinkMsg(link) }
			}
		}
	}
	return v, nil
}

// View renders the visible lines.
func (v *Viewer) View() string {
	if v.view == nil || v.height <= 0 {
		return ""
	}
	out := Format(v.style, v.view.Layout(), v.palette, v.Selection())
	lines := strings.Split(out, "\n")
	if v.top >= len(lines) {
		return ""
	}
	return strings.Join(lines[v.top:min(v.top+v.height, len(lines))], "\n")
}
