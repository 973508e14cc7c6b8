package kafka_config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if len(cfg.Brokers) != 1 || cfg.Brokers[0] != DefaultKafkaBrokers {
		t.Errorf("Brokers = %v", cfg.Brokers)
	}
	if cfg.EmailTopic != DefaultEmailTopic || cfg.MailerGroup != DefaultMailerGroup {
		t.Errorf("topic %q group %q", cfg.EmailTopic, cfg.MailerGroup)
	}
	if cfg.Consumer.StartOffset != -2 {
		t.Errorf("StartOffset = %d, want oldest", cfg.Consumer.StartOffset)
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv(EnvKafkaBrokers, "k1:9092, k2:9092,")
	t.Setenv(EnvKafkaEmailTopic, "mail")
	t.Setenv(EnvKafkaProducerCompression, "GZIP")
	t.Setenv(EnvKafkaConsumerRetryBackoff, "250ms")
	t.Setenv(EnvKafkaEnableMiddleware, "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if len(cfg.Brokers) != 2 || cfg.Brokers[1] != "k2:9092" {
		t.Errorf("Brokers = %v", cfg.Brokers)
	}
	if cfg.EmailTopic != "mail" || cfg.Producer.Compression != "gzip" {
		t.Errorf("topic %q compression %q", cfg.EmailTopic, cfg.Producer.Compression)
	}
	if cfg.Consumer.RetryBackoff != 250*time.Millisecond || cfg.EnableMiddleware {
		t.Errorf("backoff %s middleware %v", cfg.Consumer.RetryBackoff, cfg.EnableMiddleware)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"no brokers", func(c *Config) { c.Brokers = nil }, "At least one Kafka broker"},
		{"dlq equals topic", func(c *Config) { c.EmailDLQTopic = c.EmailTopic }, "EmailDLQTopic must differ"},
		{"no group", func(c *Config) { c.MailerGroup = "" }, "MailerGroup cannot be empty"},
		{"bad acks", func(c *Config) { c.Producer.RequireAcks = 2 }, "RequireAcks"},
		{"bad compression", func(c *Config) { c.Producer.Compression = "brotli" }, "Compression must be one of"},
		{"bad offset", func(c *Config) { c.Consumer.StartOffset = -3 }, "StartOffset"},
		{"session below heartbeat", func(c *Config) { c.Consumer.SessionTimeout = time.Second }, "SessionTimeout must exceed"},
		{"negative retries", func(c *Config) { c.Consumer.MaxRetries = -1 }, "MaxRetries cannot be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			tt.mutate(cfg)

			err = cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}
