package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/room-schedule/internal/cache"
)

func newCacheCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Shared response cache maintenance",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop every cached response from Redis",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if cfg.RedisAddr == "" {
				return errors.New("REDIS_ADDR is not set; the in-process cache lives only inside a running server")
			}
			rc := cache.NewRedis(cache.NewRedisClient(cfg.RedisAddr, "", 0), cfg.CacheTTL, "")
			defer rc.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			if err := rc.Ping(ctx); err != nil {
				return fmt.Errorf("redis ping: %w", err)
			}
			if err := rc.Reset(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "cache cleared")
			return nil
		},
	})
	return cmd
}
