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

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"finitefield.org/glb-gallery/internal/httpserver"
	"finitefield.org/glb-gallery/internal/platform/config"
	"finitefield.org/glb-gallery/internal/platform/observability"
	appsession "finitefield.org/glb-gallery/internal/session"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the gallery over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		baseLogger, err := observability.NewLogger(cfg.Observability.LogLevel)
		if err != nil {
			return fmt.Errorf("initialise logger: %w", err)
		}
		defer func() {
			_ = baseLogger.Sync()
		}()
		logger := baseLogger.Named("gallery")

		// The manifest fetch has no deadline.
		ctx := observability.WithLogger(context.Background(), logger)
		rt := bootstrap(ctx, cfg, logger)
		defer rt.Close(logger)

		sessions, err := newSessionManager(cfg, logger)
		if err != nil {
			return err
		}

		server, err := httpserver.New(httpserver.Config{
			Address:        ":" + cfg.Server.Port,
			Title:          "GLB Gallery",
			Environment:    cfg.Environment,
			TraceProjectID: cfg.Observability.TraceProjectID,
			State:          rt.state,
			Store:          rt.store,
			Notice:         rt.notice,
			Sessions:       sessions,
			Logger:         logger,
			ReadTimeout:    cfg.Server.ReadTimeout,
			WriteTimeout:   cfg.Server.WriteTimeout,
			IdleTimeout:    cfg.Server.IdleTimeout,
		})
		if err != nil {
			return err
		}

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

		serverErr := make(chan error, 1)
		serverLogger := logger.Named("http").With(zap.String("addr", server.Addr))
		go func() {
			serverLogger.Info("gallery listening", zap.Int("cards", rt.state.Registry.Len()))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- err
			}
			close(serverErr)
		}()

		select {
		case err := <-serverErr:
			if err != nil {
				return fmt.Errorf("http server: %w", err)
			}
			return nil
		case <-shutdown:
		}
		logger.Info("shutdown signal received; draining requests")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
			return err
		}
		return nil
	},
}

func newSessionManager(cfg config.Config, logger *zap.Logger) (*appsession.Manager, error) {
	hashKey := []byte(cfg.Session.HashKey)
	if len(hashKey) == 0 {
		// validation already demands a key in prod
		logger.Warn("GALLERY_SESSION_HASH_KEY not set; sessions will not survive a restart")
		hashKey = appsession.GenerateKey()
	}
	var blockKey []byte
	if cfg.Session.BlockKey != "" {
		blockKey = []byte(cfg.Session.BlockKey)
	}
	return appsession.NewManager(appsession.Config{
		HashKey:        hashKey,
		BlockKey:       blockKey,
		CookieSecure:   cfg.Session.Secure,
		CookieSameSite: http.SameSiteLaxMode,
	})
}
