package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"orderdesk/internal/config"
	"orderdesk/internal/console"
	"orderdesk/internal/handler"
	"orderdesk/internal/notify"
	"orderdesk/internal/service"
	"orderdesk/internal/worker"
)

func main() {
	cfg, err := config.New(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	logger := config.NewLogger(cfg.LogLevel, os.Stdout)
	logger.WithField("orders", cfg.OrderServiceAddress).Info("starting orderdesk")

	// Services
	ordersClient := service.NewOrdersClient(cfg.OrderServiceAddress, cfg.RequestTimeout, logger)
	cache := service.NewOrderCache()
	notes := notify.New(notify.WithTTLs(cfg.ErrorTTL, cfg.SuccessTTL))
	ctrl := console.New(ordersClient, cache, notes, logger)

	renderer, err := handler.NewRenderer()
	if err != nil {
		logger.WithError(err).Fatal("failed to load templates")
	}

	// Worker
	sweeper := worker.NewNotificationSweeper(notes, cfg.SweepInterval, logger)

	srv := &http.Server{
		Addr:         cfg.RunAddress,
		Handler:      handler.NewRouter(ctrl, renderer, logger, cfg.AllowedOrigins),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 10*time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go sweeper.Start(ctx)

	// Initial load, as when the console is first opened.
	if err := ctrl.LoadOrders(ctx); err != nil {
		logger.WithError(err).Warn("initial order load failed")
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	logger.WithField("addr", cfg.RunAddress).Info("starting server")

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("server failed")
		}
	}()

	<-quit
	logger.Info("shutting down...")

	cancel() // stop sweeper
	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := srv.Shutdown(ctxShut); err != nil {
		logger.WithError(err).Error("server shutdown failed")
	}

	logger.Info("server stopped")
}
