package kafka_config

import "time"

const (
	DefaultKafkaBrokers     = "localhost:9092"
	DefaultEnableMiddleware = true

	DefaultEmailTopic    = "carrental.email.outbound"
	DefaultEmailDLQTopic = "carrental.email.outbound.dlq"
	DefaultMailerGroup   = "carrental-mailer"

	// An email event is small and a lost one means a customer never sees
	// their code, so the producer waits for every replica.
	DefaultProducerMaxAttempts  = 5
	DefaultProducerBatchTimeout = 5 * time.Millisecond
	DefaultProducerRequireAcks  = -1
	DefaultProducerCompression  = "snappy"

	DefaultConsumerStartOffset       = -2 // oldest: a new mailer group drains the backlog
	DefaultConsumerMinBytes          = 1
	DefaultConsumerMaxBytes          = 1024 * 1024
	DefaultConsumerMaxWait           = 500 * time.Millisecond
	DefaultConsumerCommitInterval    = 0 // commit each message after it is sent
	DefaultConsumerHeartbeatInterval = 3 * time.Second
	DefaultConsumerSessionTimeout    = 30 * time.Second
	DefaultConsumerRebalanceTimeout  = 60 * time.Second
	DefaultConsumerMaxRetries        = 5
	DefaultConsumerRetryBackoff      = 5 * time.Second
)

var compressions = []string{"none", "gzip", "snappy", "lz4", "zstd"}
