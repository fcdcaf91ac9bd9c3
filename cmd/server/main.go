package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"healthsphere/internal/platform/config"
	"healthsphere/internal/platform/logger"
)

// main loads configuration, builds the application graph and keeps the server
// lifecycle small. Business logic lives in internal services packages.
func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("initializing healthsphere",
		"addr", cfg.Addr,
		"environment", cfg.Environment,
		"registry_mode", cfg.Registry.Mode,
		"assessor_mode", cfg.Assessor.Mode,
		"acceptance_threshold", cfg.Verification.AcceptanceThreshold,
	)

	app, err := build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Verification may take up to VERIFICATION_TIMEOUT before the response is written.
		WriteTimeout: cfg.Verification.Timeout + 15*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down server gracefully")
	// In-flight verifications may run for the full verification timeout.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace(cfg.Verification.Timeout))
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}

func shutdownGrace(verificationTimeout time.Duration) time.Duration {
	return max(10*time.Second, verificationTimeout+5*time.Second)
}
