package kafka_config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"carrental/pkg/logger"
)

// Producer tunes the writer behind the queued email gateway.
type Producer struct {
	MaxAttempts  int
	BatchTimeout time.Duration
	RequireAcks  int    // -1 all replicas, 0 none, 1 leader
	Compression  string // none, gzip, snappy, lz4, zstd
	Async        bool
}

// Consumer tunes the mailer's group reader and its retry policy.
type Consumer struct {
	StartOffset       int64 // -1 newest, -2 oldest
	MinBytes          int
	MaxBytes          int
	MaxWait           time.Duration
	CommitInterval    time.Duration
	HeartbeatInterval time.Duration
	SessionTimeout    time.Duration
	RebalanceTimeout  time.Duration
	MaxRetries        int
	RetryBackoff      time.Duration
}

// Config is shared by the API (producing email events) and the mailer
// (consuming them).
type Config struct {
	Brokers []string

	EmailTopic    string
	EmailDLQTopic string
	MailerGroup   string

	Producer Producer
	Consumer Consumer

	EnableMiddleware bool
}

// Load reads the Kafka settings from the environment and validates them.
func Load() (*Config, error) {
	cfg := &Config{
		Brokers: splitList(getEnvStr(EnvKafkaBrokers, DefaultKafkaBrokers)),

		EmailTopic:    getEnvStr(EnvKafkaEmailTopic, DefaultEmailTopic),
		EmailDLQTopic: getEnvStr(EnvKafkaEmailDLQTopic, DefaultEmailDLQTopic),
		MailerGroup:   getEnvStr(EnvKafkaMailerGroup, DefaultMailerGroup),

		Producer: Producer{
			MaxAttempts:  getEnvInt(EnvKafkaProducerMaxAttempts, DefaultProducerMaxAttempts),
			BatchTimeout: getEnvDuration(EnvKafkaProducerBatchTimeout, DefaultProducerBatchTimeout),
			RequireAcks:  getEnvInt(EnvKafkaProducerRequireAcks, DefaultProducerRequireAcks),
			Compression:  strings.ToLower(getEnvStr(EnvKafkaProducerCompression, DefaultProducerCompression)),
			Async:        getEnvBool(EnvKafkaProducerAsync, false),
		},

		Consumer: Consumer{
			StartOffset:       int64(getEnvInt(EnvKafkaConsumerStartOffset, DefaultConsumerStartOffset)),
			MinBytes:          getEnvInt(EnvKafkaConsumerMinBytes, DefaultConsumerMinBytes),
			MaxBytes:          getEnvInt(EnvKafkaConsumerMaxBytes, DefaultConsumerMaxBytes),
			MaxWait:           getEnvDuration(EnvKafkaConsumerMaxWait, DefaultConsumerMaxWait),
			CommitInterval:    getEnvDuration(EnvKafkaConsumerCommitInterval, DefaultConsumerCommitInterval),
			HeartbeatInterval: getEnvDuration(EnvKafkaConsumerHeartbeatInterval, DefaultConsumerHeartbeatInterval),
			SessionTimeout:    getEnvDuration(EnvKafkaConsumerSessionTimeout, DefaultConsumerSessionTimeout),
			RebalanceTimeout:  getEnvDuration(EnvKafkaConsumerRebalanceTimeout, DefaultConsumerRebalanceTimeout),
			MaxRetries:        getEnvInt(EnvKafkaConsumerMaxRetries, DefaultConsumerMaxRetries),
			RetryBackoff:      getEnvDuration(EnvKafkaConsumerRetryBackoff, DefaultConsumerRetryBackoff),
		},

		EnableMiddleware: getEnvBool(EnvKafkaEnableMiddleware, DefaultEnableMiddleware),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("kafka: %w", err)
	}
	return cfg, nil
}

type problems []string

func (p *problems) check(ok bool, format string, args ...any) {
	if !ok {
		*p = append(*p, fmt.Sprintf(format, args...))
	}
}

func (cfg *Config) Validate() error {
	var p problems

	p.check(len(cfg.Brokers) > 0, "At least one Kafka broker is required")
	p.check(cfg.EmailTopic != "", "EmailTopic cannot be empty")
	p.check(cfg.MailerGroup != "", "MailerGroup cannot be empty")
	p.check(cfg.EmailDLQTopic != cfg.EmailTopic || cfg.EmailTopic == "",
		"EmailDLQTopic must differ from EmailTopic, got: %s", cfg.EmailDLQTopic)

	pr := cfg.Producer
	p.check(pr.MaxAttempts > 0, "Producer.MaxAttempts must be positive, got: %d", pr.MaxAttempts)
	p.check(pr.BatchTimeout > 0, "Producer.BatchTimeout must be positive, got: %s", pr.BatchTimeout)
	p.check(pr.RequireAcks >= -1 && pr.RequireAcks <= 1, "Producer.RequireAcks must be -1, 0, or 1, got: %d", pr.RequireAcks)
	p.check(slices.Contains(compressions, pr.Compression),
		"Producer.Compression must be one of %v, got: %s", compressions, pr.Compression)

	c := cfg.Consumer
	p.check(c.StartOffset >= -2, "Consumer.StartOffset must be -1 (newest), -2 (oldest), or >= 0, got: %d", c.StartOffset)
	p.check(c.MinBytes > 0, "Consumer.MinBytes must be positive, got: %d", c.MinBytes)
	p.check(c.MaxBytes >= c.MinBytes, "Consumer.MaxBytes must be at least MinBytes, got: %d", c.MaxBytes)
	p.check(c.MaxWait > 0, "Consumer.MaxWait must be positive, got: %s", c.MaxWait)
	p.check(c.CommitInterval >= 0, "Consumer.CommitInterval cannot be negative, got: %s", c.CommitInterval)
	p.check(c.HeartbeatInterval > 0, "Consumer.HeartbeatInterval must be positive, got: %s", c.HeartbeatInterval)
	p.check(c.SessionTimeout > c.HeartbeatInterval,
		"Consumer.SessionTimeout must exceed HeartbeatInterval, got: %s", c.SessionTimeout)
	p.check(c.RebalanceTimeout > 0, "Consumer.RebalanceTimeout must be positive, got: %s", c.RebalanceTimeout)
	p.check(c.MaxRetries >= 0, "Consumer.MaxRetries cannot be negative, got: %d", c.MaxRetries)
	p.check(c.RetryBackoff >= 0, "Consumer.RetryBackoff cannot be negative, got: %s", c.RetryBackoff)

	if len(p) == 0 {
		return nil
	}
	errMsg := "Configuration validation failed:\n"
	for i, msg := range p {
		errMsg += fmt.Sprintf("  %d. %s\n", i+1, msg)
	}
	return fmt.Errorf("%s", errMsg)
}

func (cfg *Config) LogConfiguration(log *logger.Logger) {
	log.Info("Kafka configuration loaded successfully",
		"brokers", cfg.Brokers,
		"email_topic", cfg.EmailTopic,
		"email_dlq_topic", cfg.EmailDLQTopic,
		"mailer_group", cfg.MailerGroup,
		"producer", cfg.Producer,
		"consumer", cfg.Consumer,
		"enable_middleware", cfg.EnableMiddleware,
	)
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
