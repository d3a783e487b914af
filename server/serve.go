package main

import (
	"context"
	"errors"
	nhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
	"go-commodity-market/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the market HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(os.Stderr, env.LogLevel)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		m, err := newMarket(ctx, env, logger)
		if err != nil {
			return err
		}
		defer m.Close()

		srv := &nhttp.Server{
			Addr:              env.Addr,
			Handler:           http.NewServer(m.payments, m.factory, level.Error(log.With(logger, "component", "http"))),
			ReadHeaderTimeout: 5 * time.Second,
		}

		errc := make(chan error, 1)
		go func() {
			level.Info(logger).Log("msg", "listening", "addr", env.Addr)
			errc <- srv.ListenAndServe()
		}()

		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
		}

		level.Info(logger).Log("msg", "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, nhttp.ErrServerClosed) {
			return err
		}
		return nil
	},
}
