package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// StatusKind selects how the popup's status line is styled
type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusLoading
	StatusEmpty
	StatusError
)

// PopupState contains everything needed to draw the switcher popup
type PopupState struct {
	Label      string
	Input      string // rendered text input
	Items      []string
	Selected   int
	Status     string
	StatusKind StatusKind
	Width      int // outer width, border included
}

// Layout describes where a rendered popup sits on screen
type Layout struct {
	X, Y          int // top-left corner of the popup
	Width, Height int
	FirstRow      int // line of the first candidate, relative to Y
	Rows          int // candidates drawn
}

// Contains reports whether the cell (x, y) is inside the popup
func (l Layout) Contains(x, y int) bool {
	return x >= l.X && x < l.X+l.Width && y >= l.Y && y < l.Y+l.Height
}

// RowAt returns the candidate index drawn at (x, y), or -1
func (l Layout) RowAt(x, y int) int {
	if !l.Contains(x, y) {
		return -1
	}
	row := y - l.Y - l.FirstRow
	if row < 0 || row >= l.Rows {
		return -1
	}
	return row
}

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// Render draws the popup. The returned layout is relative to the popup's own
// top-left corner; Overlay fills in the screen position.
func (pr *PopupRenderer) Render(s PopupState) (string, Layout) {
	style := pr.styles.Popup
	inner := s.Width - style.GetHorizontalFrameSize()
	if inner < 10 {
		inner = 10
	}

	lines := []string{
		pr.renderTop(s.Label, inner),
		pr.styles.Prompt.Render("> ") + s.Input,
	}
	firstRow := len(lines)
	for i, item := range s.Items {
		lines = append(lines, pr.renderItem(item, i == s.Selected, inner))
	}
	if s.Status != "" {
		lines = append(lines, pr.renderStatus(s.Status, s.StatusKind, inner))
	}

	content := strings.Join(lines, "\n")
	rendered := style.Width(inner + style.GetHorizontalPadding()).Render(content)

	return rendered, Layout{
		Width:    lipgloss.Width(rendered),
		Height:   lipgloss.Height(rendered),
		FirstRow: style.GetBorderTopSize() + style.GetPaddingTop() + firstRow,
		Rows:     len(s.Items),
	}
}

func (pr *PopupRenderer) renderTop(label string, width int) string {
	instructions := pr.styles.Key.Render("tab") + pr.styles.Instructions.Render(" or ") +
		pr.styles.Key.Render("↑↓") + pr.styles.Instructions.Render(" to navigate  ") +
		pr.styles.Key.Render("enter") + pr.styles.Instructions.Render(" to select  ") +
		pr.styles.Key.Render("esc") + pr.styles.Instructions.Render(" to dismiss")

	top := pr.styles.Label.Render(label)
	gap := width - lipgloss.Width(top) - lipgloss.Width(instructions)
	if gap < 2 {
		// Not enough room: keep the label, drop the instructions
		return ansi.Truncate(top, width, "…")
	}
	return top + strings.Repeat(" ", gap) + instructions
}

func (pr *PopupRenderer) renderItem(item string, selected bool, width int) string {
	text := ansi.Truncate(strings.ReplaceAll(item, "\n", " "), width-2, "…")
	if selected {
		line := pr.styles.Highlight.Render("▸ " + text)
		pad := width - lipgloss.Width(line)
		if pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		return pr.styles.HighlightBg.Render(line)
	}
	return "  " + pr.styles.Item.Render(text)
}

func (pr *PopupRenderer) renderStatus(msg string, kind StatusKind, width int) string {
	msg = ansi.Truncate(msg, width, "…")
	switch kind {
	case StatusError:
		return pr.styles.StatusError.Render(msg)
	case StatusLoading:
		return pr.styles.StatusLoading.Render(msg)
	case StatusEmpty:
		return pr.styles.StatusEmpty.Render(msg)
	default:
		return pr.styles.Dim.Render(msg)
	}
}

// Overlay draws popup centred on top of a greyed-out background and returns
// the screen with the popup's layout positioned on it
func (pr *PopupRenderer) Overlay(background, popup string, layout Layout, width, height int) (string, Layout) {
	x := (width - layout.Width) / 2
	y := (height - layout.Height) / 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	layout.X, layout.Y = x, y

	bg := strings.Split(background, "\n")
	for len(bg) < height {
		bg = append(bg, "")
	}
	for i, line := range bg {
		bg[i] = pr.styles.Background.Render(ansi.Strip(line))
	}

	for i, pl := range strings.Split(popup, "\n") {
		row := y + i
		if row >= len(bg) {
			break
		}
		base := bg[row]
		left := ansi.Truncate(base, x, "")
		if w := ansi.StringWidth(left); w < x {
			left += strings.Repeat(" ", x-w)
		}
		right := ansi.TruncateLeft(base, x+ansi.StringWidth(pl), "")
		bg[row] = left + pl + right
	}

	return strings.Join(bg, "\n"), layout
}
