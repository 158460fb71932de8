package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"github.com/example/voltline/internal/cache"
	"github.com/example/voltline/internal/chatbot"
	"github.com/example/voltline/internal/config"
	"github.com/example/voltline/internal/database"
	"github.com/example/voltline/internal/handlers"
	"github.com/example/voltline/internal/logger"
	"github.com/example/voltline/internal/middleware"
	"github.com/example/voltline/internal/routes"
	"github.com/example/voltline/internal/services"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.IsDevelopment())
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg.Database, log)
	if err != nil {
		log.Fatalw("database setup failed", "error", err)
	}
	if err := database.SeedAdmin(ctx, db, cfg.Auth, log); err != nil {
		log.Fatalw("admin seed failed", "error", err)
	}

	deps := routes.Deps{
		Config:   cfg,
		DB:       db,
		Cache:    newCache(ctx, cfg, log),
		Notifier: newNotifier(cfg, log),
		Bot:      chatbot.Default(),
		Log:      log,
	}
	if storage := newStorage(ctx, cfg, log); storage != nil {
		deps.Storage = storage
	}

	app := fiber.New(fiber.Config{
		AppName:      "Voltline Backend",
		BodyLimit:    int(cfg.Limits.PDFMaxBytes) + 1<<20,
		ErrorHandler: handlers.ErrorHandler(log),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	routes.Register(app, deps)

	go func() {
		log.Infow("starting server", "port", cfg.AppPort, "env", cfg.AppEnv)
		if err := app.Listen(":" + cfg.AppPort); err != nil {
			log.Fatalw("fiber.Listen error", "error", err)
		}
	}()

	<-ctx.Done()
	log.Infow("shutting down")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Errorw("graceful shutdown failed", "error", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func newCache(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger) cache.Cache {
	if cfg.Cache.RedisAddr == "" {
		log.Infow("redis not configured, catalog cache disabled")
		return cache.Noop{}
	}
	c, err := cache.NewRedis(ctx, cfg.Cache)
	if err != nil {
		log.Warnw("redis unavailable, catalog cache disabled", "error", err)
		return cache.Noop{}
	}
	log.Infow("redis connected", "addr", cfg.Cache.RedisAddr, "ttl", cfg.Cache.TTL)
	return c
}

func newStorage(ctx context.Context, cfg *config.Config, log *zap.SugaredLogger) *services.MinioStorage {
	if cfg.Storage.AccessKey == "" {
		return nil
	}
	storage, err := services.NewMinioStorage(ctx, cfg.Storage)
	if err != nil {
		log.Errorw("minio unavailable", "endpoint", cfg.Storage.Endpoint, "error", err)
		return nil
	}
	log.Infow("minio connected", "endpoint", cfg.Storage.Endpoint, "bucket", cfg.Storage.Bucket)
	return storage
}

func newNotifier(cfg *config.Config, log *zap.SugaredLogger) services.Notifier {
	var notifiers services.MultiNotifier

	telegram := services.NewTelegramService(cfg.Telegram.BotToken, cfg.Telegram.AdminChat, log)
	if telegram.Enabled() {
		notifiers = append(notifiers, telegram)
	}
	mailer := services.NewMailService(cfg.SMTP)
	if mailer.Enabled() {
		notifiers = append(notifiers, mailer)
	}

	log.Infow("notifications configured", "channels", len(notifiers))
	return notifiers
}
