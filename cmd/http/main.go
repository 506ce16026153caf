package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roster-service/internal/app/config"
	"roster-service/internal/app/contracts"
	"roster-service/internal/app/delivery/http/controllers"
	"roster-service/internal/app/delivery/http/middlewares"
	"roster-service/internal/app/delivery/http/routers"
	"roster-service/internal/app/drivers/database"
	"roster-service/internal/app/drivers/logger"
	"roster-service/internal/app/drivers/messaging"
	"roster-service/internal/app/drivers/storage"
	"roster-service/internal/app/services/core/coverages"
	"roster-service/internal/app/services/core/plans"
	"roster-service/internal/app/services/shared/notifier"
	"roster-service/internal/app/services/shared/ratelimiter"
	"roster-service/internal/app/services/shared/redis"
	sharedStorage "roster-service/internal/app/services/shared/storage"
	"roster-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

var errMongoDisabled = errors.New("COVERAGE_SOURCE is mongo but MONGODB_ENABLED is false")

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger, err := logger.NewZapLogger(driverConfig, internalConfig)
	if err != nil {
		log.Fatalf("Error while initializing zap logger: %v", err)
	}

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		zapLogger.Fatal("Error loading location", zap.Error(err))
	}
	time.Local = location

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	connectDrivers(bootstrap)

	refreshWorker, err := bootstrapingTheApp(bootstrap)
	if err != nil {
		zapLogger.Fatal("Error while bootstraping the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: bootstrap.Router,
	}

	go func() {
		zapLogger.Info("Server started", zap.String("address", internalConfig.App.Port))
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	zapLogger.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	if refreshWorker != nil {
		refreshWorker.Stop()
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Error while closing drivers: %v", err)
	}

	log.Println("Server exiting")
}

// connectDrivers opens every enabled external driver. A driver that is
// enabled but unreachable stops the service.
func connectDrivers(bootstrap *config.Bootstrap) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	driverConfig := bootstrap.DriverConfig
	log := bootstrap.Logger
	var err error

	if driverConfig.MongoDB.Enabled {
		bootstrap.MongoDB, err = database.NewMongoDB(ctx, driverConfig)
		if err != nil {
			log.Fatal("MongoDB unavailable", zap.Error(err))
		}
	}

	if driverConfig.Redis.Enabled {
		bootstrap.Redis, err = database.NewRedisClient(ctx, driverConfig)
		if err != nil {
			log.Fatal("Redis unavailable", zap.Error(err))
		}
	}

	if driverConfig.Minio.Enabled {
		bootstrap.Minio, err = storage.NewMinio(ctx, driverConfig, bootstrap.InternalConfig.Export.BucketName)
		if err != nil {
			log.Fatal("MinIO unavailable", zap.Error(err))
		}
	}

	if driverConfig.RabbitMQ.Enabled {
		bootstrap.RabbitMQ, err = messaging.NewRabbitMQ(driverConfig)
		if err != nil {
			log.Fatal("RabbitMQ unavailable", zap.Error(err))
		}
	}
}

// bootstrapingTheApp wires every layer into the router. The returned worker
// is nil when scheduled coverage reloads are disabled.
func bootstrapingTheApp(bootstrap *config.Bootstrap) (*coverages.RefreshWorker, error) {
	internalConfig := bootstrap.InternalConfig

	// Redis
	var redisRepository contracts.RedisRepository
	var quotaLimiter *ratelimiter.QuotaLimiter
	if bootstrap.Redis != nil {
		redisRepository = redis.NewRedisRepository(bootstrap.Redis)
		quotaLimiter = ratelimiter.NewQuotaLimiter(redisRepository, bootstrap.Logger)
	}

	// Storage
	var exportStorage contracts.Storage
	if bootstrap.Minio != nil {
		exportStorage = sharedStorage.NewMinioStorage(bootstrap.Minio)
	}

	// Notifier
	var exportNotifier contracts.ExportNotifier
	if bootstrap.RabbitMQ != nil {
		var err error
		exportNotifier, err = notifier.NewExportNotifier(bootstrap.RabbitMQ, internalConfig.Export.RabbitMQQueue)
		if err != nil {
			return nil, err
		}
	}

	// Coverage
	var coverageRepository contracts.CoverageRepository
	switch internalConfig.Coverage.Source {
	case constvars.CoverageSourceMongo:
		if bootstrap.MongoDB == nil {
			return nil, errMongoDisabled
		}
		coverageRepository = coverages.NewCoverageMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
	default:
		coverageRepository = coverages.NewCoverageFileRepository(afero.NewOsFs(), internalConfig.Coverage.FilePath)
	}
	coverageUsecase := coverages.NewCoverageUsecase(coverageRepository, redisRepository, internalConfig, bootstrap.Logger)
	coverageController := controllers.NewCoverageController(bootstrap.Logger, coverageUsecase, internalConfig)

	warmupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := coverageUsecase.Resolver(warmupCtx); err != nil {
		bootstrap.Logger.Warn("Coverage table not loaded at startup, retrying on first request", zap.Error(err))
	}

	var refreshWorker *coverages.RefreshWorker
	if internalConfig.Coverage.RefreshCronSpec != "" {
		refreshWorker = coverages.NewRefreshWorker(bootstrap.Logger, internalConfig, coverageUsecase)
		refreshWorker.Start(context.Background())
	}

	// Plan
	planUsecase := plans.NewPlanUsecase(coverageUsecase, exportStorage, exportNotifier, internalConfig, bootstrap.Logger)
	planController := controllers.NewPlanController(bootstrap.Logger, planUsecase, internalConfig)

	// Health
	healthController := controllers.NewHealthController(bootstrap.Logger)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, internalConfig, quotaLimiter)

	routers.SetupRoutes(
		bootstrap.Router,
		internalConfig,
		middlewares,
		healthController,
		planController,
		coverageController,
	)
	return refreshWorker, nil
}
