package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"schedule-ledger-service/internal/app/config"
	"schedule-ledger-service/internal/app/contracts"
	"schedule-ledger-service/internal/app/delivery/http/controllers"
	"schedule-ledger-service/internal/app/delivery/http/middlewares"
	"schedule-ledger-service/internal/app/delivery/http/routers"
	"schedule-ledger-service/internal/app/drivers/database"
	"schedule-ledger-service/internal/app/drivers/logger"
	"schedule-ledger-service/internal/app/drivers/messaging"
	"schedule-ledger-service/internal/app/drivers/storage"
	"schedule-ledger-service/internal/app/services/core/schedule_entries"
	"schedule-ledger-service/internal/app/services/shared/eventqueue"
	"schedule-ledger-service/internal/app/services/shared/locker"
	"schedule-ledger-service/internal/app/services/shared/redis"
	sharedStorage "schedule-ledger-service/internal/app/services/shared/storage"
	"schedule-ledger-service/internal/pkg/constvars"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	if err := internalConfig.Validate(); err != nil {
		log.Fatalf("Error validating configuration: %v", err)
	}

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		zapLogger.Fatal("Error loading location", zap.Error(err))
	}
	time.Local = location

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		Redis:          database.NewRedisClient(driverConfig),
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	if internalConfig.Ledger.StoreDriver == constvars.StoreDriverMongo {
		bootstrap.MongoDB = database.NewMongoDB(driverConfig)
	}
	if internalConfig.Ledger.EventsEnabled {
		bootstrap.RabbitMQ = messaging.NewRabbitMQ(driverConfig)
	}
	if internalConfig.Ledger.SnapshotsEnabled {
		bootstrap.Minio = storage.NewMinio(driverConfig, internalConfig.Ledger.SnapshotBucketName)
	}

	closePublisher, err := bootstrapingTheApp(bootstrap)
	if err != nil {
		zapLogger.Fatal("Error bootstraping the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: bootstrap.Router,
	}

	go func() {
		zapLogger.Info("Server started", zap.String("port", internalConfig.App.Port))
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
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := closePublisher(); err != nil {
		zapLogger.Error("Error closing ledger event publisher", zap.Error(err))
	}
	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down dependencies: %v", err)
	}

	log.Println("Server exiting")
}

// bootstrapingTheApp wires the ledger and returns the closer of the event
// publisher channel.
func bootstrapingTheApp(bootstrap *config.Bootstrap) (func() error, error) {
	ledgerConfig := bootstrap.InternalConfig.Ledger
	closePublisher := func() error { return nil }

	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockerService := locker.NewLockService(redisRepository, bootstrap.Logger)

	// Entry store
	var scheduleEntryRepository contracts.ScheduleEntryRepository
	if ledgerConfig.StoreDriver == constvars.StoreDriverMongo {
		mongoRepository := schedule_entries.NewScheduleEntryMongoRepository(bootstrap.MongoDB, bootstrap.DriverConfig.MongoDB.DbName)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := mongoRepository.EnsureIndexes(ctx); err != nil {
			return closePublisher, err
		}
		scheduleEntryRepository = mongoRepository
	} else {
		bootstrap.Logger.Warn("Using in-memory schedule entry store, entries are lost on restart")
		scheduleEntryRepository = schedule_entries.NewScheduleEntryMemoryRepository()
	}

	// Ledger events
	eventPublisher := eventqueue.NewNopPublisher()
	if bootstrap.RabbitMQ != nil {
		publisher, err := eventqueue.NewPublisher(bootstrap.RabbitMQ, bootstrap.Logger, ledgerConfig.EventsQueueName)
		if err != nil {
			return closePublisher, err
		}
		eventPublisher = publisher
		closePublisher = publisher.Close
	}

	// Ledger snapshots
	snapshotArchive := sharedStorage.NewNopSnapshotArchive()
	if bootstrap.Minio != nil {
		minioStorage := sharedStorage.NewMinioStorage(bootstrap.Minio)
		snapshotArchive = sharedStorage.NewLedgerSnapshotArchive(minioStorage, ledgerConfig.SnapshotBucketName, bootstrap.Logger)
	}

	// Schedule entries
	scheduleEntryUsecase := schedule_entries.NewScheduleEntryUsecase(
		scheduleEntryRepository,
		lockerService,
		eventPublisher,
		snapshotArchive,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	scheduleEntryController := controllers.NewScheduleEntryController(bootstrap.Logger, scheduleEntryUsecase, bootstrap.InternalConfig)

	// Audit worker
	if ledgerConfig.AuditEnabled {
		auditWorker := schedule_entries.NewAuditWorker(bootstrap.Logger, bootstrap.InternalConfig, lockerService, scheduleEntryUsecase)
		auditWorker.Start(context.Background())
		bootstrap.AuditWorkerStop = auditWorker.Stop
	}

	// Middlewares
	middlewareInstance := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig)

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, middlewareInstance, scheduleEntryController)
	return closePublisher, nil
}
