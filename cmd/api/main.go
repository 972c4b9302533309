package main

import (
	guideHandler "sandgrund/internal/guides/handler"
	guideRepository "sandgrund/internal/guides/repository"
	guideService "sandgrund/internal/guides/service"
	guideValidator "sandgrund/internal/guides/validator"
	tourHandler "sandgrund/internal/tours/handler"
	tourRepository "sandgrund/internal/tours/repository"
	tourService "sandgrund/internal/tours/service"
	tourValidator "sandgrund/internal/tours/validator"
	userHandler "sandgrund/internal/users/handler"
	userRepository "sandgrund/internal/users/repository"
	userService "sandgrund/internal/users/service"
	userValidator "sandgrund/internal/users/validator"
	"sandgrund/pkg/app"
	"sandgrund/pkg/auth"
	"sandgrund/pkg/config"
	"sandgrund/pkg/kafka"
	kafka_config "sandgrund/pkg/kafka/config"
	kafka_middleware "sandgrund/pkg/kafka/middleware"
	"sandgrund/pkg/mailer"
	"sandgrund/pkg/metrics"
	"sandgrund/pkg/middleware"
	"sandgrund/pkg/storage"
)

const ServiceName = "api"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()

	cfg.Log.Info("Starting Sandgrund API")
	m := metrics.New(ServiceName)
	serverApp := app.NewApplication(cfg, m)

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.JWTExpiresIn)
	denylist := auth.NewRedisDenylist(cfg.Client.Redis)
	authenticator := middleware.NewAuthenticator(issuer, denylist, cfg.Log)

	images := initImageStore(cfg, serverApp)
	publisher := initPublisher(cfg, m)
	serverApp.OnShutdown(publisher)

	var mail mailer.Sender
	if cfg.MailEnabled() {
		mail = mailer.NewZeptoSender(cfg.MailAPIURL, cfg.MailAPIKey, cfg.MailFrom, cfg.Log)
	}

	tours := tourService.NewTourService(
		tourRepository.NewMongoTourRepository(cfg),
		tourValidator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)
	guides := guideService.NewGuideService(
		guideRepository.NewMongoGuideRepository(cfg),
		guideValidator.NewGuideValidator(cfg.Log),
		images,
		m,
		cfg,
	)
	users := userService.NewUserService(
		userRepository.NewMongoUserRepository(cfg),
		userValidator.NewUserValidator(cfg.Log),
		issuer,
		denylist,
		mail,
		cfg,
	)
	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	serverApp.SetApp(
		tourHandler.NewTourHandler(tours, authenticator, cfg.Log),
		guideHandler.NewGuideHandler(guides, authenticator, int64(cfg.MaxUploadSize), cfg.Log),
		userHandler.NewUserHandler(users, authenticator, cfg.Log),
	)
	serverApp.Run()
}

// initImageStore prefers Cloudinary and falls back to the local upload
// directory, which the application then serves itself.
func initImageStore(cfg *config.Config, serverApp *app.Application) storage.ImageStore {
	if cfg.CloudinaryEnabled() {
		store, err := storage.NewCloudinaryStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
		if err != nil {
			cfg.Log.Fatal("Failed to configure Cloudinary", "error", err)
		}
		cfg.Log.Info("Guide photos stored on Cloudinary", "folder", cfg.CloudinaryFolder)
		return store
	}

	serverApp.ServeStatic(cfg.UploadDir)
	cfg.Log.Info("Guide photos stored locally", "dir", cfg.UploadDir, "path", config.PublicImagePath)
	return storage.NewLocalStore(cfg.UploadDir, config.PublicImagePath)
}

func initPublisher(cfg *config.Config, m *metrics.Metrics) kafka.Publisher {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, booking events are not published")
		return kafka.NopPublisher{}
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.BookingTopic, cfg.BookingDLQTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
		producer.Use(kafka_middleware.MetricsProducerMiddleware(m))
	}
	return producer
}
