package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"prepay-sim/config"
	httpLayer "prepay-sim/http"
	"prepay-sim/repository"
	"prepay-sim/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.LoadConfig(logger)
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.SetLevel(cfg.LogLevel)

	var cache repository.CacheRepository = repository.NewMockCache()
	if cfg.RedisAddr != "" {
		redisCache := repository.NewRedisCache(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, cfg.CacheTTL, logger)
		defer redisCache.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisCache.Ping(ctx)
		cancel()
		if err != nil {
			logger.WithError(err).Warn("redis unreachable, using in-memory cache")
		} else {
			logger.WithField("addr", cfg.RedisAddr).Info("using redis cache")
			cache = redisCache
		}
	}

	loanService := service.NewLoanService(repository.NewLoanRepositoryMemory(), logger)
	advisor := service.NewAdvisorService(cfg.AdvisorAPIKey, cfg.AdvisorAPIURL, logger)
	sweepService := service.NewSweepService(
		cache,
		repository.NewSweepRepositoryMemory(cfg.HistorySize),
		advisor,
		cfg.SweepWorkers,
		logger,
	)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimitCapacity, cfg.RateLimitWindow)
	defer rateLimiter.Stop()

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpLayer.NewRouter(loanService, sweepService, rateLimiter, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.WithField("addr", cfg.HTTPAddr).Info("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.WithError(err).Error("server failed")
		return
	case <-quit:
		logger.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("server shutdown failed")
	}

	logger.Info("server exited")
}
