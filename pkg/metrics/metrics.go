// Package metrics holds the Prometheus collectors shared by the HTTP stack,
// the Kafka clients and the upload handler.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sandgrund"

type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	KafkaPublished *prometheus.CounterVec
	KafkaConsumed  *prometheus.CounterVec
	KafkaFailed    *prometheus.CounterVec

	Uploads *prometheus.CounterVec
}

// New registers every collector on a fresh registry labelled with service.
func New(service string) *Metrics {
	reg := prometheus.NewRegistry()
	constLabels := prometheus.Labels{"service": service}

	m := &Metrics{
		registry: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "requests_total",
			Help:        "HTTP requests by method, route and status code.",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   "http",
			Name:        "request_duration_seconds",
			Help:        "HTTP request latency.",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "route"}),
		KafkaPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "kafka",
			Name:        "messages_published_total",
			Help:        "Kafka messages published by topic.",
			ConstLabels: constLabels,
		}, []string{"topic"}),
		KafkaConsumed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "kafka",
			Name:        "messages_consumed_total",
			Help:        "Kafka messages handled by topic and event type.",
			ConstLabels: constLabels,
		}, []string{"topic", "event_type"}),
		KafkaFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "kafka",
			Name:        "messages_failed_total",
			Help:        "Kafka messages that failed, by topic and outcome (retry|dlq).",
			ConstLabels: constLabels,
		}, []string{"topic", "outcome"}),
		Uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "guides",
			Name:        "image_uploads_total",
			Help:        "Guide image uploads by result.",
			ConstLabels: constLabels,
		}, []string{"result"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.KafkaPublished,
		m.KafkaConsumed,
		m.KafkaFailed,
		m.Uploads,
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Nil-safe recorders so optional wiring does not need guards at call sites.

func (m *Metrics) UploadResult(result string) {
	if m == nil {
		return
	}
	m.Uploads.WithLabelValues(result).Inc()
}

func (m *Metrics) Published(topic string) {
	if m == nil {
		return
	}
	m.KafkaPublished.WithLabelValues(topic).Inc()
}

func (m *Metrics) Consumed(topic, eventType string) {
	if m == nil {
		return
	}
	m.KafkaConsumed.WithLabelValues(topic, eventType).Inc()
}

func (m *Metrics) Failed(topic, outcome string) {
	if m == nil {
		return
	}
	m.KafkaFailed.WithLabelValues(topic, outcome).Inc()
}
