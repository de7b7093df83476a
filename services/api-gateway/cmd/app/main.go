package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/waste3d/learnplatform-api/pkg/logger"
	"github.com/waste3d/learnplatform-api/services/api-gateway/internal/client"
	"github.com/waste3d/learnplatform-api/services/api-gateway/internal/config"
	"github.com/waste3d/learnplatform-api/services/api-gateway/internal/middleware"
	"github.com/waste3d/learnplatform-api/services/api-gateway/internal/security"
	handlers "github.com/waste3d/learnplatform-api/services/api-gateway/internal/transport/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

func main() {
	// 1. Конфиг
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(fmt.Sprintf("failed to init logger: %v", err))
	}
	defer log.Sync()

	if cfg.LogMode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Redis для лимитов. Без него лимиты выключены
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal("failed to connect to Redis", "addr", cfg.RedisAddr, "error", err)
		}
		defer rdb.Close()
		log.Info("connected to Redis", "addr", cfg.RedisAddr)
	}
	rateLimiter := middleware.NewRateLimiter(rdb, log)

	// 3. gRPC клиент сервиса прогресса
	progressClient, err := client.NewProgressClient(cfg.ProgressSvcUrl)
	if err != nil {
		log.Fatal("failed to create progress service client", "url", cfg.ProgressSvcUrl, "error", err)
	}
	defer progressClient.Close()

	// 4. Роутер
	router := handlers.NewRouter(handlers.RouterDeps{
		Client:         progressClient.Client,
		Tokens:         security.NewTokenManager(cfg.AccessSecret),
		Limiter:        rateLimiter,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	// 5. Запуск HTTP сервера
	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("API gateway started", "addr", cfg.Port, "progress_svc", cfg.ProgressSvcUrl)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down API gateway")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("API gateway stopped with error", "error", err)
	}
}
