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
	"go.uber.org/zap"

	"github.com/hyperjump/contentkit/internal/content"
	"github.com/hyperjump/contentkit/internal/server"
	"github.com/hyperjump/contentkit/internal/watcher"
)

func (a *app) serveCmd() *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only content API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runServe(watch)
		},
	}
	cmd.Flags().String("host", "", "listen host")
	cmd.Flags().Int("port", 0, "listen port")
	cmd.Flags().BoolVar(&watch, "watch", false, "lint content files as they change")
	return cmd
}

func (a *app) runServe(watch bool) error {
	loader := a.loader()
	a.logger.Info("config loaded",
		zap.String("content_root", a.cfg.Content.Root),
		zap.Bool("strict", a.cfg.Content.Strict),
		zap.Bool("debug", a.cfg.Debug),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if watch {
		w, err := a.startWatcher(ctx, loader)
		if err != nil {
			return err
		}
		defer w.Stop()
	}

	srv := server.NewServer(
		content.NewLibrary(loader),
		a.ranker(),
		a.aggregator(),
		a.cfg.Tags.RelatedLimit,
		&a.cfg.Server,
		a.logger,
	)
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-waitForSignal():
	}

	a.logger.Info("Shutting down...")
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return srv.Stop(shutdownCtx)
}

func (a *app) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Lint content files as they change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			w, err := a.startWatcher(ctx, a.loader())
			if err != nil {
				return err
			}
			defer w.Stop()
			<-waitForSignal()
			a.logger.Info("Stopping watcher...")
			return nil
		},
	}
}

func (a *app) startWatcher(ctx context.Context, loader *content.Loader) (*watcher.Watcher, error) {
	linter := watcher.NewLinter(loader, a.cfg.Content.Root, a.logger)
	w := watcher.NewWatcher(
		a.cfg.Content.Root,
		a.cfg.Watch.Extensions,
		linter.Changed,
		linter.Removed,
		watcher.WithLogger(a.logger),
		watcher.WithDebounce(a.cfg.Watch.Debounce),
	)
	if err := w.Start(ctx); err != nil {
		return nil, err
	}
	a.logger.Info("watching content", zap.String("root", w.Root()))
	return w, nil
}

func waitForSignal() <-chan os.Signal {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	return sigChan
}
