package kafka_middleware

import (
	"context"
	"errors"
	"testing"

	"sandgrund/pkg/kafka"
	"sandgrund/pkg/logger"
	"sandgrund/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsConsumerMiddleware(t *testing.T) {
	m := metrics.New("test")
	mw := MetricsConsumerMiddleware(m)
	msg := kafka.Message{Topic: "tours.bookings", Headers: map[string]string{kafka.HeaderEventType: "booking.guide_assigned"}}

	_ = mw(context.Background(), msg, func(context.Context, kafka.Message) error { return nil })
	_ = mw(context.Background(), msg, func(context.Context, kafka.Message) error {
		return kafka.NewTransientError("smtp", errors.New("timeout"))
	})
	_ = mw(context.Background(), msg, func(context.Context, kafka.Message) error {
		return kafka.NewPermanentError("bad payload", nil)
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.KafkaConsumed.WithLabelValues("tours.bookings", "booking.guide_assigned")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.KafkaFailed.WithLabelValues("tours.bookings", "retry")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.KafkaFailed.WithLabelValues("tours.bookings", "dlq")))
}

func TestLoggingMiddlewarePassesThrough(t *testing.T) {
	want := errors.New("boom")
	err := LoggingConsumerMiddleware(logger.Discard())(context.Background(), kafka.Message{}, func(context.Context, kafka.Message) error {
		return want
	})
	assert.ErrorIs(t, err, want)
}
