package kafka_config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"sandgrund/pkg/logger"
)

// Config holds what the booking event producer (cmd/api) and the guide
// notifier consumer (cmd/notifier) let operators tune.
type Config struct {
	Brokers          []string
	Producer         ProducerConfig
	Consumer         ConsumerConfig
	EnableMiddleware bool
}

// ProducerConfig tunes the booking event writer. Writes are synchronous so a
// failed publish is logged next to the booking update that caused it.
type ProducerConfig struct {
	MaxAttempts  int
	BatchTimeout time.Duration
	RequireAcks  int    // -1 all replicas, 0 none, 1 leader
	Compression  string // none, gzip, snappy, lz4, zstd
}

// ConsumerConfig tunes the notifier group. RetryBackoff grows linearly per
// attempt and also paces dead-letter retries.
type ConsumerConfig struct {
	StartOffset  int64 // -1 newest, -2 oldest
	MaxWait      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
}

var compressions = []string{"none", "gzip", "snappy", "lz4", "zstd"}

// Load reads the KAFKA_* variables. Unlike unset variables, malformed values
// are reported rather than replaced by defaults.
func Load() (*Config, error) {
	env := &envReader{}

	cfg := &Config{
		Brokers: splitBrokers(env.str(EnvKafkaBrokers, DefaultKafkaBrokers)),
		Producer: ProducerConfig{
			MaxAttempts:  env.int(EnvKafkaProducerMaxAttempts, DefaultProducerMaxAttempts),
			BatchTimeout: env.duration(EnvKafkaProducerBatchTimeout, DefaultProducerBatchTimeout),
			RequireAcks:  env.int(EnvKafkaProducerRequireAcks, DefaultProducerRequireAcks),
			Compression:  env.str(EnvKafkaProducerCompression, DefaultProducerCompression),
		},
		Consumer: ConsumerConfig{
			StartOffset:  int64(env.int(EnvKafkaConsumerStartOffset, DefaultConsumerStartOffset)),
			MaxWait:      env.duration(EnvKafkaConsumerMaxWait, DefaultConsumerMaxWait),
			MaxRetries:   env.int(EnvKafkaConsumerMaxRetries, DefaultConsumerMaxRetries),
			RetryBackoff: env.duration(EnvKafkaConsumerRetryBackoff, DefaultConsumerRetryBackoff),
		},
		EnableMiddleware: env.bool(EnvKafkaEnableMiddleware, DefaultEnableMiddleware),
	}

	if err := joinProblems(append(env.problems, cfg.problems()...)); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	return joinProblems(cfg.problems())
}

func (cfg *Config) problems() []string {
	var problems []string

	if len(cfg.Brokers) == 0 {
		problems = append(problems, "at least one Kafka broker is required")
	}
	if cfg.Producer.MaxAttempts <= 0 {
		problems = append(problems, fmt.Sprintf("producer max attempts must be positive, got %d", cfg.Producer.MaxAttempts))
	}
	if cfg.Producer.BatchTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("producer batch timeout must be positive, got %s", cfg.Producer.BatchTimeout))
	}
	if a := cfg.Producer.RequireAcks; a < -1 || a > 1 {
		problems = append(problems, fmt.Sprintf("producer require acks must be -1, 0 or 1, got %d", a))
	}
	if !contains(compressions, cfg.Producer.Compression) {
		problems = append(problems, fmt.Sprintf("producer compression must be one of %s, got %q", strings.Join(compressions, ", "), cfg.Producer.Compression))
	}
	if o := cfg.Consumer.StartOffset; o != -1 && o != -2 {
		problems = append(problems, fmt.Sprintf("consumer start offset must be -1 (newest) or -2 (oldest), got %d", o))
	}
	if cfg.Consumer.MaxWait <= 0 {
		problems = append(problems, fmt.Sprintf("consumer max wait must be positive, got %s", cfg.Consumer.MaxWait))
	}
	if cfg.Consumer.MaxRetries < 0 {
		problems = append(problems, fmt.Sprintf("consumer max retries cannot be negative, got %d", cfg.Consumer.MaxRetries))
	}
	if cfg.Consumer.RetryBackoff < 0 {
		problems = append(problems, fmt.Sprintf("consumer retry backoff cannot be negative, got %s", cfg.Consumer.RetryBackoff))
	}
	return problems
}

func (cfg *Config) LogConfiguration(log *logger.Logger) {
	log.Info("Kafka configuration loaded",
		"brokers", cfg.Brokers,
		"producer_max_attempts", cfg.Producer.MaxAttempts,
		"producer_batch_timeout", cfg.Producer.BatchTimeout,
		"producer_require_acks", cfg.Producer.RequireAcks,
		"producer_compression", cfg.Producer.Compression,
		"consumer_start_offset", cfg.Consumer.StartOffset,
		"consumer_max_wait", cfg.Consumer.MaxWait,
		"consumer_max_retries", cfg.Consumer.MaxRetries,
		"consumer_retry_backoff", cfg.Consumer.RetryBackoff,
		"enable_middleware", cfg.EnableMiddleware,
	)
}

func joinProblems(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	var b strings.Builder
	b.WriteString("Kafka configuration validation failed:\n")
	for i, p := range problems {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, p)
	}
	return fmt.Errorf("%s", b.String())
}

func splitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// envReader collects malformed values instead of failing on the first one.
type envReader struct {
	problems []string
}

func (r *envReader) str(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func (r *envReader) int(key string, def int) int {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.problems = append(r.problems, fmt.Sprintf("%s must be an integer, got %q", key, v))
		return def
	}
	return n
}

func (r *envReader) bool(key string, def bool) bool {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.problems = append(r.problems, fmt.Sprintf("%s must be true or false, got %q", key, v))
		return def
	}
	return b
}

func (r *envReader) duration(key string, def time.Duration) time.Duration {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.problems = append(r.problems, fmt.Sprintf("%s must be a duration like 500ms, got %q", key, v))
		return def
	}
	return d
}
