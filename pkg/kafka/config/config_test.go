package kafka_config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Brokers)
	assert.Equal(t, "snappy", cfg.Producer.Compression)
	assert.Equal(t, int64(-2), cfg.Consumer.StartOffset)
	assert.Equal(t, 2*time.Second, cfg.Consumer.RetryBackoff)
	assert.True(t, cfg.EnableMiddleware)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr []string
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "brokers trimmed and blanks dropped",
			env:  map[string]string{EnvKafkaBrokers: " kafka-1:9092, ,kafka-2:9092 "},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Brokers)
			},
		},
		{
			name: "overrides applied",
			env: map[string]string{
				EnvKafkaProducerCompression:  "zstd",
				EnvKafkaConsumerMaxRetries:   "0",
				EnvKafkaConsumerRetryBackoff: "250ms",
				EnvKafkaEnableMiddleware:     "false",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "zstd", cfg.Producer.Compression)
				assert.Equal(t, 0, cfg.Consumer.MaxRetries)
				assert.Equal(t, 250*time.Millisecond, cfg.Consumer.RetryBackoff)
				assert.False(t, cfg.EnableMiddleware)
			},
		},
		{
			name:    "no brokers",
			env:     map[string]string{EnvKafkaBrokers: " , "},
			wantErr: []string{"at least one Kafka broker"},
		},
		{
			name: "malformed values reported together",
			env: map[string]string{
				EnvKafkaProducerMaxAttempts:  "three",
				EnvKafkaConsumerMaxWait:      "soon",
				EnvKafkaProducerCompression:  "brotli",
				EnvKafkaConsumerStartOffset:  "42",
				EnvKafkaProducerRequireAcks:  "2",
				EnvKafkaEnableMiddleware:     "maybe",
				EnvKafkaConsumerRetryBackoff: "-1s",
			},
			wantErr: []string{
				"KAFKA_PRODUCER_MAX_ATTEMPTS must be an integer",
				"KAFKA_CONSUMER_MAX_WAIT must be a duration",
				"KAFKA_ENABLE_MIDDLEWARE must be true or false",
				`compression must be one of none, gzip, snappy, lz4, zstd, got "brotli"`,
				"start offset must be -1 (newest) or -2 (oldest), got 42",
				"require acks must be -1, 0 or 1, got 2",
				"retry backoff cannot be negative",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if len(tt.wantErr) > 0 {
				require.Error(t, err)
				for _, want := range tt.wantErr {
					assert.Contains(t, err.Error(), want)
				}
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}
