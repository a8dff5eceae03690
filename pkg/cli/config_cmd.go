package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/computerscienceiscool/license-search/pkg/config"
)

func newConfigCmd(rt *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a configuration file with the default settings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultConfigName + ".yaml"
			if len(args) == 1 {
				path = args[0]
			}

			if err := config.SaveConfig(config.DefaultFileConfig(), path, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	cmd.AddCommand(initCmd)
	return cmd
}

// configOnly resolves the configuration without opening any resources.
func (rt *state) configOnly() (*config.Config, error) {
	cfg, err := config.FromViper(rt.v)
	if err != nil {
		return nil, fmt.Errorf("failed to build config: %w", err)
	}
	return cfg, nil
}
