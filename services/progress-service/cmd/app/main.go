package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os/signal"
	"syscall"

	"github.com/waste3d/learnplatform-api/pkg/logger"
	"github.com/waste3d/learnplatform-api/services/progress-service/config"
	"github.com/waste3d/learnplatform-api/services/progress-service/internal/application/usecase"
	"github.com/waste3d/learnplatform-api/services/progress-service/internal/domain"
	"github.com/waste3d/learnplatform-api/services/progress-service/internal/infrastructure/cache"
	"github.com/waste3d/learnplatform-api/services/progress-service/internal/infrastructure/repository"
	grpc_server "github.com/waste3d/learnplatform-api/services/progress-service/internal/transport/grpc"
	"github.com/waste3d/learnplatform-api/services/progress-service/pkg/progresspb"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	// 1. Загрузка конфига
	cfg, err := config.LoadConfig(".")
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		panic(fmt.Sprintf("failed to init logger: %v", err))
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Подключение к БД
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatal("failed to connect to DB", "error", err)
	}

	// 3. Миграции
	log.Info("running migrations")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("failed to migrate DB", "error", err)
	}

	// 4. Кеш compliance. Без REDIS_ADDR сервис работает напрямую с БД
	var complianceCache usecase.ComplianceCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal("failed to connect to Redis", "addr", cfg.RedisAddr, "error", err)
		}
		defer rdb.Close()
		complianceCache = cache.NewComplianceCache(rdb, cfg.ComplianceCacheTTL)
	} else {
		log.Warn("REDIS_ADDR is empty, compliance cache disabled")
	}

	// 5. Инициализация слоев
	store := repository.NewStore(db)
	targets := domain.ComplianceTargets{Technical: cfg.TechTarget, NonTechnical: cfg.NonTechTarget}

	progressServer := grpc_server.NewProgressServer(
		usecase.NewProgressUseCase(store, complianceCache, log, cfg.EnrollmentDueDays),
		usecase.NewQuizUseCase(store, log),
		usecase.NewComplianceUseCase(store, complianceCache, targets, log),
		usecase.NewCertificationUseCase(store, complianceCache, log),
		usecase.NewLearningPathUseCase(store, complianceCache, log, cfg.EnrollmentDueDays),
		log,
	)

	// 6. Запуск gRPC сервера
	lis, err := net.Listen("tcp", cfg.GRPCPort)
	if err != nil {
		log.Fatal("failed to listen", "addr", cfg.GRPCPort, "error", err)
	}

	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(grpc_server.LoggingInterceptor(log)))
	progresspb.RegisterProgressServiceServer(grpcServer, progressServer)

	healthServer := health.NewServer()
	healthServer.SetServingStatus(progresspb.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("progress service started", "addr", cfg.GRPCPort)
		if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down progress service")
		healthServer.Shutdown()
		grpcServer.GracefulStop()
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("progress service stopped with error", "error", err)
	}
}
