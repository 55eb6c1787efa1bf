package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/Chrissankov/gymshark-ecommerce/app/storefront"
	"github.com/Chrissankov/gymshark-ecommerce/core/config"
	"github.com/Chrissankov/gymshark-ecommerce/core/logger"
	"github.com/Chrissankov/gymshark-ecommerce/core/server"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var cfg storefront.Config
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.FromEnv(cfg.AppName, cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := storefront.New(ctx, cfg, storefront.WithLogger(log))
	if err != nil {
		return fmt.Errorf("init storefront: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Error("storefront shutdown", logger.Error(err))
		}
	}()

	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(log))
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(srv.Run(ctx, app.Handler()))
	g.Go(app.Run(ctx))

	log.Info("storefront started",
		logger.Component("storefront"),
		slog.String("addr", cfg.Server.Addr),
		slog.String("storage", cfg.StorageDriver))

	return g.Wait()
}
