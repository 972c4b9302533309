package kafka_middleware

import (
	"context"

	"sandgrund/pkg/kafka"
	"sandgrund/pkg/metrics"
)

func MetricsProducerMiddleware(m *metrics.Metrics) kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		err := next(ctx, msg)
		if err != nil {
			m.Failed(msg.Topic, "publish")
		} else {
			m.Published(msg.Topic)
		}
		return err
	}
}

// MetricsConsumerMiddleware counts each handler attempt, so a message retried
// twice contributes two failures before its final outcome.
func MetricsConsumerMiddleware(m *metrics.Metrics) kafka.ConsumerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		err := next(ctx, msg)
		switch {
		case err == nil:
			m.Consumed(msg.Topic, msg.GetEventType())
		case kafka.ClassifyError(err) == kafka.ErrorTypeTransient:
			m.Failed(msg.Topic, "retry")
		default:
			m.Failed(msg.Topic, "dlq")
		}
		return err
	}
}
