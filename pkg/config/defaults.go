package config

import "time"

const (
	DefaultMongoURI           = "mongodb://localhost:27017"
	DefaultMongoDatabaseName  = "carrental"
	DefaultMongoConnTimeout   = 30 * time.Second
	DefaultMongoRetryInterval = 5 * time.Second

	DefaultPort     = "3001"
	DefaultLogLevel = "info"

	DefaultJWTTTL = 1 * time.Hour

	DefaultEmailHost        = "localhost"
	DefaultEmailPort        = 587
	DefaultEmailTransport   = EmailTransportSMTP
	DefaultEmailSendTimeout = 30 * time.Second

	DefaultPhoneRegion        = "US"
	DefaultCORSAllowedOrigins = "*"

	DefaultRateLimitRequests = 5
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)

const (
	EmailTransportSMTP  = "smtp"
	EmailTransportKafka = "kafka"
)
