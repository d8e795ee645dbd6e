package main

import (
	"errors"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"fuzzyswitch/internal/config"
)

func newConfigCmd(cfgPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the config file",
	}
	cmd.AddCommand(newConfigInitCmd(cfgPath))
	cmd.AddCommand(newConfigShowCmd(cfgPath))
	return cmd
}

func newConfigInitCmd(cfgPath *string) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := config.NewConfigService(*cfgPath)
			if _, err := os.Stat(svc.Path()); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", svc.Path())
			} else if err != nil && !errors.Is(err, os.ErrNotExist) {
				return err
			}
			if err := svc.Save(config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", svc.Path())
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func newConfigShowCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := config.NewConfigService(*cfgPath)
			cfg, err := svc.Load()
			if err != nil {
				return err
			}
			data, err := toml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("encode config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", svc.Path(), data)
			return nil
		},
	}
}
