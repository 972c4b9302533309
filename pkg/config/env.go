package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvRedisAddr     = "REDIS_ADDR"
	EnvRedisPassword = "REDIS_PASSWORD"
	EnvRedisDB       = "REDIS_DB"

	EnvPort      = "PORT"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"

	EnvJWTSecret     = "JWT_SECRET"
	EnvJWTExpiresIn  = "JWT_EXPIRES_IN"
	EnvResetTokenTTL = "RESET_TOKEN_TTL"
	EnvBcryptCost    = "BCRYPT_COST"

	EnvUploadDir     = "UPLOAD_DIR"
	EnvMaxUploadSize = "MAX_UPLOAD_SIZE"
	EnvMaxImageWidth = "MAX_IMAGE_WIDTH"

	EnvCloudinaryCloudName = "CLOUDINARY_CLOUD_NAME"
	EnvCloudinaryAPIKey    = "CLOUDINARY_API_KEY"
	EnvCloudinaryAPISecret = "CLOUDINARY_API_SECRET"
	EnvCloudinaryFolder    = "CLOUDINARY_FOLDER"

	EnvMailAPIURL = "ZEPTO_API_URL"
	EnvMailAPIKey = "ZEPTO_API_KEY"
	EnvMailFrom   = "EMAIL_FROM"

	EnvKafkaEnabled     = "KAFKA_ENABLED"
	EnvBookingTopic     = "BOOKING_EVENTS_TOPIC"
	EnvBookingDLQTopic  = "BOOKING_EVENTS_DLQ_TOPIC"
	EnvNotifierGroupID  = "NOTIFIER_GROUP_ID"
	EnvCORSAllowOrigins = "CORS_ALLOWED_ORIGINS"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvMetricsPath = "METRICS_PATH"
)
