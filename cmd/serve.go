package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"blog-api/config"
	"blog-api/handlers"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var shutdownTimeout time.Duration

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Migrate the database and start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer closeDB(db)

		if err := config.Migrate(db); err != nil {
			return err
		}

		if !cfg.IsDevelopment() {
			gin.SetMode(gin.ReleaseMode)
		}

		server := handlers.NewServer(cfg, db, log)
		server.SignInLimiter.StartCleanup(10 * time.Minute)
		defer server.SignInLimiter.Stop()

		httpServer := &http.Server{
			Addr:              cfg.Addr(),
			Handler:           server.Router,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       2 * time.Minute,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			log.Info("server starting", "addr", httpServer.Addr, "env", cfg.Env)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 15*time.Second, "How long to wait for in-flight requests")
	rootCmd.AddCommand(serveCmd)
}
