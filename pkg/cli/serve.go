package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/computerscienceiscool/license-search/pkg/config"
)

func newServeCmd(rt *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the license search page over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := rt.bootstrap()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rt.logger.Info("starting server",
				zap.String("addr", a.Config().Addr),
				zap.String("root", a.Config().Root),
				zap.Strings("licenses", a.Catalog().Names()),
			)
			return a.Serve(ctx)
		},
	}

	cmd.Flags().String("addr", config.DefaultAddr, "Listen address")
	bindFlags(rt.v, cmd.Flags(), map[string]string{"addr": "addr"})
	return cmd
}
