package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Popup         lipgloss.Style
	Label         lipgloss.Style
	Instructions  lipgloss.Style
	Key           lipgloss.Style
	Prompt        lipgloss.Style
	Item          lipgloss.Style
	Highlight     lipgloss.Style
	HighlightBg   lipgloss.Style
	Background    lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	StatusEmpty   lipgloss.Style
	Selection     lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().Padding(1, 2),
		Popup: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		Label:         lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")),
		Instructions:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Key:           lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		Prompt:        lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Item:          lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		HighlightBg:   lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Background:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Selection:     lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
	}
}
