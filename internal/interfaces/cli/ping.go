package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/room-schedule/internal/application/usecases"
)

func newPingCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the reservation service answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			src, closeSrc, err := a.newSource(cfg, a.logger)
			if err != nil {
				return err
			}
			defer closeSrc()

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.APITimeout+5*time.Second)
			defer cancel()
			if err := (usecases.PingSource{Source: src}).Execute(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", src.Name())
			return nil
		},
	}
}
