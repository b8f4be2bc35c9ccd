package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nijaru/yt-blog/config"
	"github.com/nijaru/yt-blog/db"
	"github.com/nijaru/yt-blog/handlers"
	"github.com/nijaru/yt-blog/logger"
	"github.com/nijaru/yt-blog/middleware"
	"github.com/nijaru/yt-blog/session"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the two-pane web UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return errors.Wrap(err, "invalid configuration")
			}
			if port != "" {
				cfg.ServerPort = port
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "port to listen on (overrides SERVER_PORT)")
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	level := cfg.LogLevel
	if cfg.Debug {
		level = "debug"
	}
	log, closer, err := logger.New(cfg.LogDir, level)
	if err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}
	defer closer.Close()

	store, closeStore, err := openSessionStore(cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	h := handlers.New(newPipeline(cfg, log), store, handlers.Options{
		RequestTimeout: cfg.RequestTimeout,
		SessionTTL:     cfg.SessionTTL,
	}, log)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      h.Routes(middleware.NewRateLimiter(cfg.RateLimitRPM, cfg.RateLimitBurst)),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go sweepSessions(ctx, store, cfg.SessionTTL, log)

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.ServerPort).Info("Listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return errors.Wrapf(err, "could not listen on :%s", cfg.ServerPort)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down the server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "server shutdown")
	}
	return nil
}

func openSessionStore(cfg *config.Config, log *logrus.Logger) (session.Store, func(), error) {
	if cfg.SessionStore != config.SessionStoreSQLite {
		return session.NewMemoryStore(cfg.SessionTTL), func() {}, nil
	}

	conn, err := db.Open(cfg.DBPath, db.DefaultConfig())
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to initialize database")
	}

	store, err := db.NewSessionStore(conn, db.DefaultConfig(), cfg.SessionTTL, log)
	if err != nil {
		conn.Close()
		return nil, nil, err
	}

	return store, func() {
		store.Close()
		if err := conn.Close(); err != nil {
			log.WithError(err).Error("Failed to close database")
		}
	}, nil
}

// sweepSessions drops expired sessions once per ttl until ctx ends.
func sweepSessions(ctx context.Context, store session.Store, ttl time.Duration, log *logrus.Logger) {
	ticker := time.NewTicker(ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := store.Sweep(ctx); err != nil {
				log.WithError(err).Warn("Session sweep failed")
			}
		}
	}
}
