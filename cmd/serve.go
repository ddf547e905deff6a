package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/formdraft/formdraft/config"
	"github.com/formdraft/formdraft/logger"
	"github.com/formdraft/formdraft/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the drafting API server",
	Long: `Start the HTTP server exposing the registered templates and the
generation pipeline. The server listens on http.addr (FORMDRAFT_HTTP_ADDR)
and shuts down cleanly on SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		p, err := newPipeline(cfg)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              cfg.HTTP.Addr,
			Handler:           server.New(p).Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Infof("Listening on %s", cfg.HTTP.Addr)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}

		logger.Sync()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
