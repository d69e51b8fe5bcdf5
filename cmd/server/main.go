// Command server runs the wireframe-to-code backend: an HTTP API that turns
// uploaded wireframe images into working front-end code through a
// chat-completions vision model, with per-user credit accounting.
//
// @title           Wireframe-to-Code API
// @version         1.0
// @description     Upload a wireframe image, pick a vision model, and receive
// @description     generated front-end code. Generations consume per-user
// @description     credits; records can be listed, regenerated, and deleted.
// @BasePath        /api
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/apollohq/wireframe-to-code-backend/docs"
	"github.com/apollohq/wireframe-to-code-backend/internal/cache"
	"github.com/apollohq/wireframe-to-code-backend/internal/config"
	httpapi "github.com/apollohq/wireframe-to-code-backend/internal/http"
	"github.com/apollohq/wireframe-to-code-backend/internal/inference"
	"github.com/apollohq/wireframe-to-code-backend/internal/observability"
	"github.com/apollohq/wireframe-to-code-backend/internal/repo"
	"github.com/apollohq/wireframe-to-code-backend/internal/storage"
	"github.com/apollohq/wireframe-to-code-backend/internal/sysutil"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()
	sysutil.SetupLogger(cfg.LogLevel, cfg.LogPretty)

	version := sysutil.FirstNonEmpty(os.Getenv("APP_VERSION"), "dev")
	docs.SwaggerInfo.Version = version
	docs.SwaggerInfo.BasePath = cfg.APIBasePath

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database failed")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}

	store, err := storage.NewDiskStore(cfg.StorageDir, cfg.PublicBaseURL)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.StorageDir).Msg("object store init failed")
	}

	var resultCache cache.Cache
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			// The cache is an optimization; a dead Redis must not keep the
			// API down.
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, caching disabled")
		} else {
			defer rc.Close()
			resultCache = rc
		}
	}

	ai := inference.NewClient(cfg.Inference)

	gin.SetMode(cfg.GinMode)
	engine := gin.New()
	httpapi.RegisterRoutes(engine, db, store, ai, resultCache, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	sctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("server stopped")
}
