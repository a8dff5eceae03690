package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd(rt *state) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the searchable licenses in search order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rt.configOnly()
			if err != nil {
				return err
			}
			catalog, err := cfg.Catalog()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, e := range catalog.Entries() {
				fmt.Fprintf(out, "%d. %s (%s)\n", i+1, e.Name, e.File)
			}
			return nil
		},
	}
}
