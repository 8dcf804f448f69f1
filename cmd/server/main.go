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

	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"

	"github.com/foodbridge/dashboard/internal/config"
	"github.com/foodbridge/dashboard/internal/dashboard"
	"github.com/foodbridge/dashboard/internal/notifier"
	"github.com/foodbridge/dashboard/internal/server"
	"github.com/foodbridge/dashboard/internal/storage"
	"github.com/foodbridge/dashboard/internal/subscriber"
)

func main() {
	slog.Info("Starting dashboard server...")
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Critical error loading configuration", "error", err)
		os.Exit(1)
	}
	slog.SetLogLoggerLevel(cfg.LogLevel)

	if err := run(cfg); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped.")
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	store, err := storage.New(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return fmt.Errorf("initializing Firestore client: %w", err)
	}
	defer store.Close()

	hub := notifier.New(cfg.BroadcastInterval)
	dash := dashboard.New(subscriber.New(store), cfg.Collections, cfg.PageSize)
	dash.OnChange(hub.Notify)

	if err := dash.Start(ctx); err != nil {
		return err
	}
	// Every subscription is released exactly once on the way out.
	defer dash.Close()

	srv := server.New(dash, hub.ServeWS)
	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return hub.Run(gctx)
	})
	g.Go(func() error {
		slog.Info("Listening on port", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down gracefully...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP server shutdown error", "error", err)
		}
		return nil
	})

	return g.Wait()
}
