package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/computerscienceiscool/license-search/pkg/config"
)

func newHistoryCmd(rt *state) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent searches recorded in the search database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return fmt.Errorf("--limit must be positive")
			}

			a, err := rt.bootstrap()
			if err != nil {
				return err
			}
			defer a.Close()

			events, err := a.History(limit)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tOUTCOME\tQUERY\tLICENSE\tSCANNED\tDURATION")
			for _, e := range events {
				fmt.Fprintf(tw, "%s\t%s\t%q\t%s\t%d\t%s\n",
					e.Timestamp.Local().Format(time.RFC3339),
					e.Outcome,
					e.Query,
					e.Label,
					e.Scanned,
					e.Duration,
				)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", config.DefaultHistoryLimit, "Number of searches to show")
	return cmd
}
