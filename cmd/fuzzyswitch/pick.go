package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fuzzyswitch/internal/ui"
)

func newPickCmd(cfgPath *string) *cobra.Command {
	var itemsFile string
	var label string

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Open the switcher and print the chosen entry",
		Long: `Open the switcher immediately and print the confirmed entry to stdout.

Candidates come from --items-file, from stdin when it is piped, or from the
config's items. A [fetch] section in the config queries a command or URL on
every keystroke instead. Exits 1 when the switcher is dismissed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(*cfgPath, func(e *env) error {
				if label != "" {
					e.cfg.Label = label
				}
				items, fromStdin, err := loadItems(itemsFile, os.Stdin, e.cfg)
				if err != nil {
					return err
				}
				opts, err := buildOptions(e.cfg, items)
				if err != nil {
					return err
				}

				app, err := ui.NewApp(ui.Config[string]{
					Options: opts,
					Hotkey:  e.cfg.Hotkey,
					Bus:     e.bus,
				})
				if err != nil {
					return err
				}
				defer app.Close()

				if err := runProgram(cmd.Context(), app, fromStdin); err != nil {
					return err
				}

				result, ok := app.Result()
				if !ok {
					return errDismissed
				}
				fmt.Fprintln(cmd.OutOrStdout(), result)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&itemsFile, "items-file", "f", "", "read candidates from this file, one per line")
	cmd.Flags().StringVarP(&label, "label", "l", "", "label shown above the input")

	return cmd
}
