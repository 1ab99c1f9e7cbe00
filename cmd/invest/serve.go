package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/komsit37/invest/pkg/invest/server"
	"github.com/komsit37/invest/pkg/invest/thesis"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API for the dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			src, path := a.dataset(nil)
			gen := thesis.NewGenerator(cfg.Thesis.Seed, cfg.Latency.Thesis)
			srv := server.New(server.Config{
				Addr:          cfg.Server.Addr,
				Log:           a.log,
				Source:        src,
				DatasetSpec:   path,
				Thesis:        thesis.NewCacheService(gen, cfg.Thesis.CacheTTL, cfg.Thesis.CacheSize),
				ScreenLatency: cfg.Latency.Screen,
				GrowthYears:   cfg.Growth.Years,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() { errc <- srv.Start() }()

			select {
			case err := <-errc:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().String("addr", ":8080", "listen address")
	_ = a.v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	return cmd
}
