package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"toolbox/api/config"
	"toolbox/api/database"
	"toolbox/api/handlers"
	"toolbox/api/logger"
	"toolbox/api/server"
	"toolbox/api/service"
	"toolbox/api/session"
	"toolbox/catalog"
	"toolbox/converter"
	"toolbox/pool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tools := catalog.Default()
	if cfg.App.CatalogFile != "" {
		categories, err := catalog.LoadFile(cfg.App.CatalogFile)
		if err != nil {
			log.Fatal("Failed to load catalog", zap.String("path", cfg.App.CatalogFile), zap.Error(err))
		}
		tools.Replace(categories)
		if err := catalog.Watch(ctx, tools, cfg.App.CatalogFile, log); err != nil {
			log.Warn("Catalog hot reload disabled", zap.Error(err))
		}
	}

	var (
		store       session.Store
		healthCheck func(context.Context) error
	)
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		cache, err := database.ConnectCache(cfg.Session.RedisAddr)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.String("addr", cfg.Session.RedisAddr), zap.Error(err))
		}
		defer cache.Close()
		store = session.NewRedisStore(cache, cfg.Session.TTL, log)
		healthCheck = cache.Ping
	default:
		memory := session.NewMemoryStore(cfg.Session.TTL)
		go memory.RunJanitor(ctx, time.Minute)
		store = memory
	}
	log.Info("Session store ready", zap.String("backend", cfg.Session.Backend))

	limiter := pool.NewLimiter(cfg.App.MaxEncoders)
	imageService := service.NewImageService(store, converter.NewConverter(log), limiter, service.ImageServiceConfig{
		DefaultQuality: cfg.App.DefaultQuality,
		MaxUploadSize:  cfg.App.MaxUploadSize,
	}, log)

	srv := server.New(cfg, server.Handlers{
		Catalog:    handlers.NewCatalogHandler(tools, cfg.App.AdvisoryFileSize, log),
		Image:      handlers.NewImageHandler(imageService, cfg.App.MaxUploadSize, log),
		Calculator: handlers.NewCalculatorHandler(time.Now, cfg.App.Timezone, log),
		Text:       handlers.NewTextHandler(log),
		Health:     healthCheck,
	}, log)

	log.Info("API Service starting",
		zap.String("address", cfg.Server.Addr()),
		zap.String("env", cfg.App.Env),
		zap.Int("max_encoders", limiter.Capacity()),
		zap.Bool("webp_encoding", converter.Supported(converter.FormatWEBP)),
	)

	go func() {
		if err := srv.Run(); err != nil {
			log.Error("Server failed", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	limiter.Wait()

	log.Info("Server exited")
}
