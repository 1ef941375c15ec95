package main

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/delivery/http/controllers"
	"clinic-service/internal/app/delivery/http/middlewares"
	"clinic-service/internal/app/delivery/http/routers"
	"clinic-service/internal/app/drivers/database"
	"clinic-service/internal/app/drivers/logger"
	"clinic-service/internal/app/drivers/messaging"
	"clinic-service/internal/app/services/core/appointments"
	"clinic-service/internal/app/services/core/doctors"
	"clinic-service/internal/app/services/core/payments"
	"clinic-service/internal/app/services/core/slot"
	"clinic-service/internal/app/services/core/users"
	"clinic-service/internal/app/services/shared/eventpublisher"
	"clinic-service/internal/app/services/shared/jwtmanager"
	"clinic-service/internal/app/services/shared/locker"
	"clinic-service/internal/app/services/shared/payment_gateway"
	"clinic-service/internal/app/services/shared/ratelimiter"
	"clinic-service/internal/app/services/shared/redis"
	"clinic-service/internal/app/services/shared/transaction"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	if err := internalConfig.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	zapLogger := logger.NewZapLogger(driverConfig, internalConfig)

	mongoDB := database.NewMongoDB(driverConfig, zapLogger)
	redisClient := database.NewRedisClient(driverConfig, zapLogger)
	chiRouter := chi.NewRouter()

	bootstrap := &config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		Logger:         zapLogger,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}
	if internalConfig.RabbitMQ.PublishEvents {
		bootstrap.RabbitMQ = messaging.NewRabbitMQ(driverConfig, zapLogger)
	}

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	bootstrapingTheApp(workerCtx, bootstrap)

	server := &http.Server{
		Addr:              internalConfig.App.Port,
		Handler:           chiRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("Server listening", zap.String("address", internalConfig.App.Port))
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

	cancelWorkers()
	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		zapLogger.Error("Error while closing resources", zap.Error(err))
	}

	zapLogger.Info("Server exiting")
	// syncing stdout returns EINVAL on some platforms
	_ = zapLogger.Sync()
}

func bootstrapingTheApp(ctx context.Context, bootstrap *config.Bootstrap) {
	internalConfig := bootstrap.InternalConfig
	dbName := bootstrap.DriverConfig.MongoDB.DbName

	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockService := locker.NewLockService(redisRepository, bootstrap.Logger)
	resourceLimiter := ratelimiter.NewResourceLimiter(redisRepository, bootstrap.Logger)

	// Tokens
	tokenTTL := time.Duration(internalConfig.JWT.ExpTimeInHour) * time.Hour
	patientTokens := jwtmanager.NewJWTManager(internalConfig.JWT.Secret, tokenTTL, jwtmanager.AudiencePatient, bootstrap.Logger)
	doctorTokens := jwtmanager.NewJWTManager(internalConfig.JWT.Secret, tokenTTL, jwtmanager.AudienceDoctor, bootstrap.Logger)

	// Repositories
	userRepository := users.NewUserMongoRepository(bootstrap.MongoDB, dbName)
	doctorRepository := doctors.NewDoctorMongoRepository(bootstrap.MongoDB, dbName)
	appointmentRepository := appointments.NewAppointmentMongoRepository(bootstrap.MongoDB, dbName)

	// Transactions need a replica set
	var transactionRunner contracts.TransactionRunner
	if internalConfig.MongoDB.UseTransaction {
		transactionRunner = transaction.NewMongoTransactionRunner(bootstrap.MongoDB, bootstrap.Logger)
	} else {
		transactionRunner = transaction.NewNoopTransactionRunner()
	}

	// Events
	var eventPublisher contracts.EventPublisher
	if bootstrap.RabbitMQ != nil {
		publisher, err := eventpublisher.NewRabbitMQPublisher(bootstrap.RabbitMQ, internalConfig.RabbitMQ.AppointmentExchange, bootstrap.Logger)
		if err != nil {
			bootstrap.Logger.Fatal("Failed to initialize event publisher", zap.Error(err))
		}
		eventPublisher = publisher
	} else {
		eventPublisher = eventpublisher.NewNoopPublisher(bootstrap.Logger)
	}

	// Payment gateway
	paymentGateway := payment_gateway.NewMomoService(internalConfig, bootstrap.Logger)

	// Usecases
	userUsecase := users.NewUserUsecase(userRepository, patientTokens, bootstrap.Logger)
	doctorUsecase := doctors.NewDoctorUsecase(doctorRepository, appointmentRepository, doctorTokens, internalConfig, bootstrap.Logger)
	appointmentUsecase := appointments.NewAppointmentUsecase(
		appointmentRepository,
		doctorRepository,
		userRepository,
		lockService,
		transactionRunner,
		eventPublisher,
		internalConfig,
		bootstrap.Logger,
	)
	paymentUsecase := payments.NewPaymentUsecase(appointmentRepository, paymentGateway, eventPublisher, bootstrap.Logger)

	// Slot reconciler
	if internalConfig.Worker.ReconcilerEnabled {
		worker := slot.NewWorker(bootstrap.Logger, internalConfig, lockService, doctorRepository, appointmentRepository)
		worker.Start(ctx)
		bootstrap.WorkerStop = worker.Stop
	}

	// Delivery
	mw := middlewares.NewMiddlewares(bootstrap.Logger, internalConfig, patientTokens, doctorTokens, resourceLimiter)
	routers.SetupRoutes(
		bootstrap.Router,
		internalConfig,
		mw,
		controllers.NewUserController(bootstrap.Logger, internalConfig, userUsecase),
		controllers.NewDoctorController(bootstrap.Logger, internalConfig, doctorUsecase),
		controllers.NewAppointmentController(bootstrap.Logger, internalConfig, appointmentUsecase),
		controllers.NewPaymentController(bootstrap.Logger, internalConfig, paymentUsecase),
		controllers.NewAdminController(bootstrap.Logger, internalConfig, doctorUsecase),
	)
}
