package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mudawwana/internal/config"
	"mudawwana/internal/db"
	"mudawwana/internal/logging"
	"mudawwana/internal/middleware"
	"mudawwana/internal/router"
	"mudawwana/internal/services"
	"mudawwana/internal/store"
	"mudawwana/internal/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("load config")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	gin.SetMode(cfg.GinMode)

	stores, err := openStores(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("open store")
	}

	svc := services.New(stores, logging.Logger())

	treeCache, err := utils.NewTTLCache[[]*services.CommentNode](cfg.CacheSize, cfg.CacheTTL)
	if err != nil {
		logging.Fatal().Err(err).Msg("create comment cache")
	}

	r := router.New(router.Deps{
		Services:  svc,
		Verifier:  middleware.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer, cfg.Admins()),
		TreeCache: treeCache,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info().Str("port", cfg.Port).Str("store", cfg.StoreDriver).Msg("mudawwana server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logging.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("server shutdown")
	}

	// let in-flight notifications finish
	svc.Notifier.Wait()
	logging.Info().Msg("server stopped")
}

func openStores(cfg *config.Config) (*store.Stores, error) {
	if cfg.StoreDriver == config.StoreMemory {
		logging.Warn().Msg("using in-memory store, data is lost on restart")
		return store.NewMemory().Stores(), nil
	}
	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return store.NewGorm(conn), nil
}
