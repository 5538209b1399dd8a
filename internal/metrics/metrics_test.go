package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	m := New("kitesurf")
	m.ObserveRequest(http.MethodGet, "/api/clients", 200, 5*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "/api/clients", 200, time.Millisecond)
	m.Login("success")
	m.Login("invalid")
	m.Login("invalid")
	m.Booking("create")
	m.EventPublished(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestCount.WithLabelValues("GET", "/api/clients", "200")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.LoginAttempts.WithLabelValues("invalid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingChanges.WithLabelValues("create")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsPublished.WithLabelValues("error")))

	// independent registries
	other := New("kitesurf")
	assert.Equal(t, 0.0, testutil.ToFloat64(other.LoginAttempts.WithLabelValues("invalid")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New("kitesurf")
	m.Login("success")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "kitesurf_auth_login_attempts_total")
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Login("success")
		m.Booking("delete")
		m.ObserveRequest("GET", "/", 200, 0)
		m.EventPublished(true)
	})
}
