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
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"github.com/imaaryan1108/consist/internal/cache"
	"github.com/imaaryan1108/consist/internal/config"
	"github.com/imaaryan1108/consist/internal/database"
	"github.com/imaaryan1108/consist/internal/handlers"
	"github.com/imaaryan1108/consist/internal/logger"
	"github.com/imaaryan1108/consist/internal/middleware"
	"github.com/imaaryan1108/consist/internal/routes"
	"github.com/imaaryan1108/consist/internal/scoring"
	"github.com/imaaryan1108/consist/internal/services"
	"github.com/imaaryan1108/consist/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("connect database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("migrate database", zap.Error(err))
	}

	loc, _ := cfg.Location()
	clock := scoring.NewClock(loc)

	var guard cache.Guard = cache.NopGuard{}
	rdb, err := cache.NewClient(cfg.RedisURL)
	if err != nil {
		log.Fatal("redis", zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
		guard = cache.NewRedisGuard(rdb, log.Named("redis"))
		log.Info("redis check-in guard enabled")
	}

	// A nil *FCMMessenger must not become a non-nil interface.
	var messenger services.Messenger
	fcm, err := services.NewFCMMessenger(context.Background(), cfg.FCMServiceAccount, log)
	if err != nil {
		log.Warn("fcm disabled", zap.Error(err))
	} else if fcm != nil {
		messenger = fcm
	}

	auth := middleware.NewJWT(cfg.JWTSecret)
	hub := handlers.NewHub(log.Named("ws"))
	svc := services.New(store.New(db), services.Options{
		Clock:           clock,
		Guard:           guard,
		Publisher:       hub,
		Messenger:       messenger,
		Tokens:          auth,
		HistoryLimit:    cfg.CheckInHistoryLimit,
		MaxPushesPerDay: cfg.MaxPushesPerDay,
		Log:             log,
	})

	app := fiber.New(fiber.Config{
		AppName:      "consist-api",
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	routes.Setup(app, handlers.New(svc, log.Named("http")), hub, auth, middleware.NewRateLimiter(cfg.PushRatePerMinute))

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Error("shutdown", zap.Error(err))
		}
	}()

	log.Info("starting server", zap.String("port", cfg.Port), zap.String("timezone", cfg.Timezone))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
