package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type configFlags struct {
	dir  string
	path string
	save bool
}

func newConfigCmd() *cobra.Command {
	flags := &configFlags{}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration the list view would use: the built-in defaults
merged with the user config file and VSCROLL_* environment overrides.

With --save the result is written to config.yaml in the config directory,
which is a quick way to start a config file or convert a TOML one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader, err := openConfig(flags.dir, flags.path)
			if err != nil {
				return err
			}
			if !flags.save {
				return loader.Encode(cmd.OutOrStdout())
			}
			if err := loader.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", loader.Path())
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.dir, "dir", "", "config directory (default is $XDG_CONFIG_HOME/vscroll)")
	cmd.Flags().StringVar(&flags.path, "config", "", "read this config file instead of the one in the config directory")
	cmd.Flags().BoolVar(&flags.save, "save", false, "write the effective configuration to config.yaml")

	return cmd
}
