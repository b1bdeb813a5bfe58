package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/critiq-labs/review-service/internal/auth"
	"github.com/critiq-labs/review-service/internal/config"
	"github.com/critiq-labs/review-service/internal/events"
	"github.com/critiq-labs/review-service/internal/handlers"
	"github.com/critiq-labs/review-service/internal/mailer"
	"github.com/critiq-labs/review-service/internal/repositories/postgres"
	"github.com/critiq-labs/review-service/internal/services"
	"github.com/critiq-labs/review-service/internal/utils"
	"github.com/critiq-labs/review-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(slogger)
	logger := utils.NewSlogLogger(slogger)

	logger.Info("starting review service",
		"environment", cfg.Environment,
		"port", cfg.Port)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			logger.Warn("redis unavailable, running without cache", "error", err)
			redisClient = nil
		}
	}

	repoMgr := postgres.NewManager(postgres.RepositoryConfig{
		DB:          db,
		RedisClient: redisClient,
		Logger:      logger,
	})

	wmLogger := watermill.NewSlogLogger(slogger)
	var publisher message.Publisher
	var subscriber message.Subscriber
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err = events.NewKafkaPublisher(cfg.KafkaBrokers, wmLogger)
		if err != nil {
			logger.Error("failed to connect kafka publisher", "error", err)
			os.Exit(1)
		}
		subscriber, err = events.NewKafkaSubscriber(cfg.KafkaBrokers, "review-service-mailer", wmLogger)
		if err != nil {
			logger.Error("failed to connect kafka subscriber", "error", err)
			os.Exit(1)
		}
		logger.Info("events routed through kafka", "brokers", cfg.KafkaBrokers)
	} else {
		bus := events.NewGoChannelBus(wmLogger)
		publisher = bus
		subscriber = bus
		logger.Info("events routed through in-process bus")
	}

	var outbound mailer.Mailer
	if cfg.SMTP.Host != "" {
		outbound = mailer.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From)
	} else {
		outbound = mailer.NewLogMailer(logger)
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dispatcher := mailer.NewDispatcher(subscriber, outbound, logger)
	if err := dispatcher.Run(rootCtx); err != nil {
		logger.Error("failed to start mail dispatcher", "error", err)
		os.Exit(1)
	}

	serviceMgr := services.NewServiceManager(cfg, repoMgr, events.NewWatermillPublisher(publisher), logger)
	if err := serviceMgr.Initialize(); err != nil {
		logger.Error("failed to initialize services", "error", err)
		os.Exit(1)
	}

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)
	authMW := handlers.NewAuthMiddleware(tokens, serviceMgr.Auth, logger)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	handlers.SetupMiddleware(router, logger)
	handlers.NewHandlerManager(serviceMgr, authMW, logger).SetupRoutes(router)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown failed", "error", err)
	}
	if err := serviceMgr.Shutdown(shutdownCtx); err != nil {
		logger.Error("service shutdown failed", "error", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			logger.Error("redis close failed", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
