package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsAreNoops(t *testing.T) {
	t.Parallel()

	var m *Metrics
	require.NotPanics(t, func() {
		m.ConnectionOpened()
		m.ConnectionClosed()
		m.FrameSent("heartbeat", false)
		m.NotificationEmitted("TASK_ASSIGNED")
		m.AuthzDecision("allow")
	})
}

func TestLiveCounters(t *testing.T) {
	t.Parallel()

	m := New()
	m.ConnectionOpened()
	m.ConnectionOpened()
	m.ConnectionClosed()
	require.InDelta(t, 1, testutil.ToFloat64(m.liveConnections), 0)

	m.FrameSent("notification", true)
	m.FrameSent("notification", false)
	require.InDelta(t, 1, testutil.ToFloat64(m.framesSent.WithLabelValues("notification", "delivered")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.droppedConnections), 0)
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	t.Parallel()

	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/v1/organizations/{orgID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/organizations/abc", nil))

	require.Equal(t, 1, testutil.CollectAndCount(m.httpRequestDuration))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Contains(t, rec.Body.String(), `route="/v1/organizations/{orgID}"`)
}
