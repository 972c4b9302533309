package kafka_config

import "time"

const (
	DefaultKafkaBrokers = "localhost:9092"

	// Booking events are rare; a short batch window keeps publish latency
	// below the request timeout.
	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 10 * time.Millisecond
	DefaultProducerRequireAcks  = -1
	DefaultProducerCompression  = "snappy"

	// A new notifier group starts from the oldest event so no assignment
	// made before its first deploy is skipped.
	DefaultConsumerStartOffset  = -2
	DefaultConsumerMaxWait      = 500 * time.Millisecond
	DefaultConsumerMaxRetries   = 3
	DefaultConsumerRetryBackoff = 2 * time.Second

	DefaultEnableMiddleware = true
)
