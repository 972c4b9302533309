package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "sandgrund"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultRedisAddr = "localhost:6379"
	DefaultRedisDB   = 0

	DefaultPort      = "8000"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultJWTExpiresIn  = 72 * time.Hour
	DefaultResetTokenTTL = 10 * time.Minute
	DefaultBcryptCost    = 12

	DefaultUploadDir     = "public/img/guides"
	DefaultMaxUploadSize = 5 * 1024 * 1024 // 5MB
	DefaultMaxImageWidth = 1200

	DefaultCloudinaryFolder = "guides"

	DefaultKafkaEnabled    = false
	DefaultBookingTopic    = "tours.bookings"
	DefaultBookingDLQTopic = "tours.bookings.dlq"
	DefaultNotifierGroupID = "sandgrund-notifier"

	DefaultCORSAllowOrigins = "http://localhost:3000"

	DefaultRateLimitRequests = 100
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultMetricsPath = "/metrics"

	// PublicImagePath is where uploaded guide photos are served from.
	PublicImagePath = "/public/img/guides/"
)
