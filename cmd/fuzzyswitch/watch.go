package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"fuzzyswitch/internal/ui"
)

func newWatchCmd(cfgPath *string) *cobra.Command {
	var itemsFile string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stay in the background and open the switcher on the hotkey",
		Long: `Wait for the configured hotkey (ctrl+p by default) and open the switcher.
Every confirmed entry is printed to stdout. Press q or ctrl+c to exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(*cfgPath, func(e *env) error {
				items, fromStdin, err := loadItems(itemsFile, os.Stdin, e.cfg)
				if err != nil {
					return err
				}
				opts, err := buildOptions(e.cfg, items)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				live := !isTerminal(out)
				if live {
					// Piped: stream each selection as it happens
					opts.OnSelect = func(item string) {
						fmt.Fprintln(out, item)
					}
				}

				app, err := ui.NewApp(ui.Config[string]{
					Options: opts,
					Hotkey:  e.cfg.Hotkey,
					Watch:   true,
					Title:   "fuzzyswitch · " + e.cfg.Label,
					Bus:     e.bus,
				})
				if err != nil {
					return err
				}
				defer app.Close()

				if err := runProgram(cmd.Context(), app, fromStdin); err != nil {
					return err
				}

				// On a terminal, the alternate screen would swallow them
				if !live {
					for _, s := range app.Selections() {
						fmt.Fprintln(out, s)
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&itemsFile, "items-file", "f", "", "read candidates from this file, one per line")

	return cmd
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
