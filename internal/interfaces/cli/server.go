package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/room-schedule/internal/application/refresher"
	"github.com/example/room-schedule/internal/application/usecases"
	"github.com/example/room-schedule/internal/interfaces/web"
)

func newServerCmd(a *app) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Run the web UI and JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTPAddr = addr
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			src, closeSrc, err := a.newSource(cfg, a.logger)
			if err != nil {
				return err
			}
			defer closeSrc()

			if cfg.RefreshInterval > 0 {
				r := &refresher.Refresher{Source: src, Interval: cfg.RefreshInterval, Logger: a.logger}
				go func() { _ = r.Run(ctx) }()
			}

			var prefs *web.PrefsStore
			if cfg.HasCookieKeys() {
				prefs = web.NewPrefsStore(cfg.CookieHashKey, cfg.CookieBlockKey)
			} else {
				a.logger.Printf("COOKIE_HASH_KEY not set; filter preferences will not be remembered")
			}

			tmpl, err := web.ParseTemplates()
			if err != nil {
				return err
			}

			ws := &web.Server{
				Schedule:  usecases.BrowseSchedule{Source: src, Location: cfg.Location},
				Templates: tmpl,
				Prefs:     prefs,
				Location:  cfg.Location,
				Clock:     a.clock,
				Logger:    a.logger,
			}
			return web.Start(ctx, cfg.HTTPAddr, ws.Routes(), a.logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides HTTP_ADDR)")
	return cmd
}

