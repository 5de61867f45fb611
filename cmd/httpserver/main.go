package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"movieapi/httpserver"
	"movieapi/movie"
	"movieapi/pkg/config"
	"movieapi/pkg/logger"
	"movieapi/pkg/sentry"
	"movieapi/store"

	sentrygo "github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.LoadConfig()
	if err != nil {
		basic, _ := zap.NewProduction()
		basic.Error("cannot load config", zap.Error(err))
		return 1
	}

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		basic, _ := zap.NewProduction()
		basic.Error("cannot init logger", zap.Error(err))
		return 1
	}
	defer func() {
		_ = log.Sync()
	}()

	err = sentrygo.Init(sentrygo.ClientOptions{
		Dsn:              cfg.SentryDSN,
		Environment:      cfg.AppEnv,
		AttachStacktrace: true,
	})
	if err != nil {
		log.Errorw("cannot init sentry", "error", err)
		return 1
	}
	defer sentry.Flush()

	policy, err := movie.ParseMergePolicy(cfg.UpdateMode)
	if err != nil {
		log.Errorw("invalid update mode", "mode", cfg.UpdateMode, "error", err)
		return 1
	}

	ctx := context.Background()
	movies, err := store.Open(ctx, cfg)
	if err != nil {
		log.Errorw("cannot open movie store", "driver", cfg.DB.Driver, "error", err)
		return 1
	}
	defer func() {
		if err := movies.Close(); err != nil {
			log.Warnw("cannot close movie store", "error", err)
		}
	}()

	server, err := httpserver.New(
		httpserver.WithConfig(cfg),
		httpserver.WithLogger(log),
		httpserver.WithMovieService(movie.NewUsecase(movies.Repository, movie.WithMergePolicy(policy))),
	)
	if err != nil {
		log.Errorw("cannot create server", "error", err)
		return 1
	}

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()
	log.Infow("server started", "addr", server.Addr, "store", movies.Driver, "update_mode", policy)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("server stopped with error", "error", err)
			return 1
		}
	case sig := <-shutdown:
		log.Infow("shutdown signal received", "signal", sig.String())

		ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Errorw("graceful shutdown failed", "error", err)
			return 1
		}
	}

	log.Info("server stopped")
	return 0
}
