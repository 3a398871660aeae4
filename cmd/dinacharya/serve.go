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

	httpadapter "github.com/PabloGalante/dinacharya/internal/adapters/http"
	"github.com/PabloGalante/dinacharya/internal/observability"
)

const (
	readTimeout     = 15 * time.Second
	writeTimeout    = 60 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 10 * time.Second
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the planner HTTP API",
	Long: `Serve the planner over HTTP.

Endpoints:
  POST /generate-planner     compute a plan
  POST /decision-framework   score a decision
  GET  /healthz              liveness

Examples:
  dinacharya serve
  dinacharya serve --port 9000 --log-format console`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&servePort, "port", "", "Listen port (overrides DINACHARYA_PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log := observability.Logger()

	svc, err := newPlannerService(ctx, appCfg)
	if err != nil {
		return err
	}

	handler := httpadapter.NewServer(svc, httpadapter.Settings{
		CORSOrigins:    appCfg.CORSOrigins,
		RateLimitRPS:   appCfg.RateLimitRPS,
		RateLimitBurst: appCfg.RateLimitBurst,
		MaxBodyBytes:   appCfg.MaxBodyBytes,
	})

	port := appCfg.Port
	if servePort != "" {
		port = servePort
	}

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("Dinacharya API listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	return server.Shutdown(shutdownCtx)
}
