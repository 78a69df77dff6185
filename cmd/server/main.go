package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"photorelay/internal/config"
	"photorelay/internal/domain"
	"photorelay/internal/handler"
	"photorelay/internal/logging"
	"photorelay/internal/metrics"
	"photorelay/internal/router"
	"photorelay/internal/service"
	"photorelay/internal/storage"
)

func main() {
	if err := run(); err != nil {
		logrus.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// The store outlives the signal context so in-flight uploads can still
	// refresh tokens while the server drains.
	store, err := storage.New(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize %s storage: %w", cfg.Storage.Backend, err)
	}
	logger.WithFields(logrus.Fields{
		"backend":   cfg.Storage.Backend,
		"principal": store.Principal(),
		"container": cfg.Storage.Container,
	}).Info("storage ready")

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize services
	m := metrics.New()
	uploadSvc := service.NewUploadService(store, domain.StorageTarget{Container: cfg.Storage.Container}, nil, logger)

	// Initialize handlers
	uploadH := handler.NewUploadHandler(uploadSvc, m, logger)
	healthH := handler.NewHealthHandler(nil)

	// Setup router
	r := router.Setup(cfg.CORS, uploadH, healthH, m, logger)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down gracefully")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("forced shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
