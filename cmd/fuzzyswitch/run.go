package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"fuzzyswitch/internal/ui"
)

// errDismissed is returned by pick when the popup closed without a selection.
var errDismissed = errors.New("nothing selected")

// runProgram runs app full-screen on stderr so stdout stays free for
// results. ttyInput reads keys from the terminal device when stdin carried
// the item list.
func runProgram(ctx context.Context, app *ui.App[string], ttyInput bool) error {
	opts := []tea.ProgramOption{
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithOutput(os.Stderr),
	}
	if ttyInput {
		opts = append(opts, tea.WithInputTTY())
	}

	p := tea.NewProgram(app, opts...)
	app.SetProgram(p)

	log.Printf("Starting UI...")
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			log.Printf("UI interrupted")
			return nil
		}
		log.Printf("Error running program: %v", err)
		return fmt.Errorf("run ui: %w", err)
	}
	log.Printf("UI exited normally")
	return nil
}
