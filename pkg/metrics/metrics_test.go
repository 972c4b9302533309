package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorders(t *testing.T) {
	m := New("test")

	m.UploadResult("ok")
	m.UploadResult("ok")
	m.Published("tours.bookings")
	m.Failed("tours.bookings", "dlq")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Uploads.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.KafkaPublished.WithLabelValues("tours.bookings")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.KafkaFailed.WithLabelValues("tours.bookings", "dlq")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.UploadResult("ok")
		m.Published("t")
		m.Consumed("t", "e")
		m.Failed("t", "retry")
	})
}

func TestHandler(t *testing.T) {
	m := New("test")
	m.Published("tours.bookings")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "sandgrund_kafka_messages_published_total")
}
