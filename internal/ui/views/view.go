package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// ViewState contains all the state needed for rendering the screen behind
// the popup
type ViewState struct {
	Width      int
	Height     int
	Title      string
	Selections []string // most recent last
	HelpModel  help.Model
	Keys       help.KeyMap
	Blank      bool        // draw nothing behind the popup
	Popup      *PopupState // nil while hidden
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(styles *Styles) *Renderer {
	return &Renderer{
		styles:      styles,
		popupRender: NewPopupRenderer(styles),
	}
}

// Render draws the whole screen. Layout.Rows is zero when no popup is shown.
func (r *Renderer) Render(state ViewState) (string, Layout) {
	screen := r.renderScreen(state)
	if state.Popup == nil {
		return screen, Layout{}
	}

	popup := *state.Popup
	if popup.Width <= 0 || popup.Width > state.Width-2 {
		popup.Width = min(72, state.Width-2)
	}
	rendered, layout := r.popupRender.Render(popup)
	return r.popupRender.Overlay(screen, rendered, layout, state.Width, state.Height)
}

func (r *Renderer) renderScreen(state ViewState) string {
	if state.Blank {
		return strings.Repeat("\n", max(state.Height-1, 0))
	}

	var b strings.Builder

	b.WriteString(r.styles.Title.Render(state.Title))
	b.WriteString("\n")

	maxLines := state.Height - 8
	selections := state.Selections
	if maxLines > 0 && len(selections) > maxLines {
		selections = selections[len(selections)-maxLines:]
	}
	if len(selections) == 0 {
		b.WriteString(r.styles.Dim.Render("nothing selected yet"))
		b.WriteString("\n")
	}
	for _, s := range selections {
		b.WriteString(r.styles.Selection.Render("✓ " + s))
		b.WriteString("\n")
	}

	if state.Keys != nil {
		b.WriteString("\n")
		b.WriteString(r.styles.Help.Render(state.HelpModel.View(state.Keys)))
	}

	out := r.styles.Main.Render(b.String())
	if state.Height > 0 {
		out = lipgloss.NewStyle().MaxHeight(state.Height).Render(out)
	}
	return out
}
