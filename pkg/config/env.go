package config

const (
	EnvMongoURI           = "MONGODB_URI"
	EnvMongoDatabaseName  = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout   = "MONGO_CONN_TIMEOUT"
	EnvMongoRetryInterval = "MONGO_RETRY_INTERVAL"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvJWTSecret = "JWT_SECRET"
	EnvJWTTTL    = "JWT_TTL"

	EnvEmailHost        = "EMAIL_HOST"
	EnvEmailPort        = "EMAIL_PORT"
	EnvEmailUser        = "EMAIL_USER"
	EnvEmailPass        = "EMAIL_PASS"
	EnvEmailFrom        = "EMAIL_FROM"
	EnvEmailTransport   = "EMAIL_TRANSPORT"
	EnvEmailSendTimeout = "EMAIL_SEND_TIMEOUT"

	EnvDefaultPhoneRegion = "DEFAULT_PHONE_REGION"
	EnvCORSAllowedOrigins = "CORS_ALLOWED_ORIGINS"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
