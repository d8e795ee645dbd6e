package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:           "fuzzyswitch",
		Short:         "Fuzzy-search a list in a popup and pick one entry",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default ~/.config/fuzzyswitch/config.toml)")

	cmd.AddCommand(newPickCmd(&cfgPath))
	cmd.AddCommand(newWatchCmd(&cfgPath))
	cmd.AddCommand(newConfigCmd(&cfgPath))

	return cmd
}
