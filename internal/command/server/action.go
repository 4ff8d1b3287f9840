package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251215-go-pkg-envexp/internal/command"
)

func action(ctx context.Context, cmd *cli.Command) error {
	cfg, err := command.LoadConfig(ctx, cmd)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      newHandler(cfg),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  cfg.Server.Idletime,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}

		return nil
	case <-sigChan:
	case <-ctx.Done():
	}

	slog.Info("Shutting down")

	// WithoutCancel 保留 context 链，避免父 context 取消影响 shutdown
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Server.Timeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)

		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("Server stopped gracefully")

	return nil
}
