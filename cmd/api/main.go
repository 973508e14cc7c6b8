package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	bookingshandler "carrental/internal/bookings/handler"
	bookingsrepo "carrental/internal/bookings/repository"
	bookingsservice "carrental/internal/bookings/service"
	bookingsvalidator "carrental/internal/bookings/validator"
	carshandler "carrental/internal/cars/handler"
	carsrepo "carrental/internal/cars/repository"
	carsservice "carrental/internal/cars/service"
	"carrental/internal/health"
	usershandler "carrental/internal/users/handler"
	usersrepo "carrental/internal/users/repository"
	usersservice "carrental/internal/users/service"
	usersvalidator "carrental/internal/users/validator"
	"carrental/pkg/app"
	"carrental/pkg/auth"
	"carrental/pkg/config"
	"carrental/pkg/email"
	"carrental/pkg/kafka"
	kafka_config "carrental/pkg/kafka/config"
	kafka_middleware "carrental/pkg/kafka/middleware"
	"carrental/pkg/middleware"
)

const ServiceName = "carrental-api"

func main() {
	cfg := config.Load(ServiceName)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	if err := cfg.ValidateAuth(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	cfg.LogConfiguration()

	connectCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cfg.SetMongo(connectCtx)
	stop()
	if err != nil {
		cfg.Log.Fatal("Gave up connecting to MongoDB", "error", err)
	}

	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		cfg.Log.Fatal("Failed to create token manager", "error", err)
	}

	serverApp := app.NewApplication(cfg)

	gateway, closeGateway := initEmailGateway(cfg)
	dispatcher := email.NewDispatcher(gateway, cfg.EmailSendTimeout, cfg.Log)

	otpLimiter := middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow, cfg.Log)
	idempotencyStore := middleware.NewInMemoryIdempotencyStore(cfg.IdempotencyTTL)

	serverApp.OnShutdown(dispatcher.Wait)
	serverApp.OnShutdown(closeGateway)
	serverApp.OnShutdown(otpLimiter.Stop)
	serverApp.OnShutdown(idempotencyStore.Stop)
	serverApp.OnShutdown(cfg.GracefulShutdown)

	userService := usersservice.NewUserService(
		usersrepo.NewMongoUserRepository(cfg),
		usersvalidator.NewUserValidator(cfg.Log),
		tokens,
		dispatcher,
		cfg,
	)
	bookingService := bookingsservice.NewBookingService(
		bookingsrepo.NewMongoBookingRepository(cfg),
		bookingsvalidator.NewBookingValidator(cfg.Log),
		dispatcher,
		cfg,
	)
	carService := carsservice.NewCarService(carsrepo.NewMongoCarRepository(cfg), cfg)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	serverApp.SetApp(
		health.NewHealthHandler(cfg.Client.Mongo, cfg.Log),
		usershandler.NewUserHandler(
			userService,
			cfg.Log,
			middleware.Authenticate(tokens, cfg.Log),
			middleware.RateLimit(otpLimiter, middleware.EmailOrIPKey),
		),
		carshandler.NewCarHandler(carService, cfg.Log),
		bookingshandler.NewBookingHandler(bookingService, cfg.Log, middleware.Idempotency(idempotencyStore)),
	)
	serverApp.Run()
}

// initEmailGateway picks SMTP or the Kafka queue by EMAIL_TRANSPORT. The
// returned func releases whatever the gateway holds.
func initEmailGateway(cfg *config.Config) (email.Gateway, func()) {
	if cfg.EmailTransport != config.EmailTransportKafka {
		cfg.Log.Info("Email transport: SMTP", "host", cfg.EmailHost, "port", cfg.EmailPort)
		return email.NewSMTPGateway(smtpConfig(cfg)), func() {}
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.Log, kafkaCfg.EmailTopic, kafkaCfg.EmailDLQTopic)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	metrics := kafka_middleware.NewMetrics()
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
		producer.Use(metrics.ProducerMiddleware())
	}

	cfg.Log.Info("Email transport: Kafka", "topic", producer.Topic())

	return email.NewQueueGateway(producer, ServiceName), func() {
		metrics.Log(cfg.Log)
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	}
}

func smtpConfig(cfg *config.Config) email.SMTPConfig {
	return email.SMTPConfig{
		Host:     cfg.EmailHost,
		Port:     cfg.EmailPort,
		Username: cfg.EmailUser,
		Password: cfg.EmailPass,
		From:     cfg.EmailFrom,
	}
}
