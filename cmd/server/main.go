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

	"github.com/joho/godotenv"

	"github.com/linkbasket/catalog/internal/api"
	"github.com/linkbasket/catalog/internal/core/service"
	"github.com/linkbasket/catalog/internal/infrastructure/config"
	mongodb "github.com/linkbasket/catalog/internal/infrastructure/db/mongo"
	redisdb "github.com/linkbasket/catalog/internal/infrastructure/db/redis"
	"github.com/linkbasket/catalog/internal/infrastructure/storage"
	"github.com/linkbasket/catalog/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	// --- Stores: opened here, closed on shutdown. Unreachable at boot is fatal. ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb unreachable")
	}
	defer func() {
		if err := mongodb.Disconnect(context.Background(), mongoClient); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis unreachable")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("redis close failed")
		}
	}()

	uploads, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("upload area unavailable")
	}

	// --- Repositories and services ---
	productRepo := mongodb.NewProductRepository(db)
	adminRepo := mongodb.NewAdminRepository(db)
	sessions := redisdb.NewSessionStore(rdb, cfg.Session.TTL)

	catalogService := service.NewCatalogService(productRepo, uploads, log)
	authService := service.NewAuthService(adminRepo, sessions, log)

	if err := productRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("product index creation failed")
	}
	if err := adminRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("admin index creation failed")
	}

	if err := authService.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Fatal().Err(err).Msg("admin bootstrap failed")
	}

	// --- HTTP server ---
	e, err := api.NewRouter(api.Deps{
		Catalog:    catalogService,
		Auth:       authService,
		Sessions:   sessions,
		Mongo:      db,
		Redis:      rdb,
		UploadDir:  uploads.Dir(),
		SessionTTL: cfg.Session.TTL,
		Logger:     log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("router setup failed")
	}

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("catalog server running")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
