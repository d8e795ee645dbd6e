package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"fuzzyswitch/internal/ui/input/types"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	keys   types.KeyMap
	hotkey string
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(keys types.KeyMap, hotkey string) *HelpRenderer {
	return &HelpRenderer{keys: keys, hotkey: hotkey}
}

// Render renders the key reference shown in the pager
func (r *HelpRenderer) Render() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(22)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	line := func(keys, desc string) string {
		return fmt.Sprintf("  %s%s\n", keyStyle.Render(keys), descStyle.Render(desc))
	}
	binding := func(b key.Binding, desc string) string {
		return line(strings.Join(b.Keys(), ", "), desc)
	}

	var help strings.Builder

	help.WriteString(titleStyle.Render("fuzzyswitch help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Opening"))
	help.WriteString("\n")
	help.WriteString(line(r.hotkey, "Open the switcher"))
	help.WriteString(line("q", "Quit (while the switcher is closed)"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("In the switcher"))
	help.WriteString("\n")
	help.WriteString(line("any text", "Filter candidates"))
	help.WriteString(binding(r.keys.Up, "Highlight previous candidate"))
	help.WriteString(binding(r.keys.Down, "Highlight next candidate"))
	help.WriteString(binding(r.keys.Confirm, "Select highlighted candidate"))
	help.WriteString(binding(r.keys.Cancel, "Dismiss"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Mouse"))
	help.WriteString("\n")
	help.WriteString(line("hover", "Highlight candidate"))
	help.WriteString(line("click", "Select candidate"))
	help.WriteString(line("click outside", "Dismiss"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	help.WriteString(binding(r.keys.Help, "Show this help"))
	help.WriteString(binding(r.keys.Quit, "Quit"))

	return help.String()
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h == nil || h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// showHelp returns a command that shows help using ov pager
func (h *HelpOps) showHelp(helpContent string) tea.Cmd {
	return func() tea.Msg {
		return helpPagerMsg{err: h.ShowHelpInPager(helpContent)}
	}
}
