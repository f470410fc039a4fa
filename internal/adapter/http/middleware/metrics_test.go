package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/iho/fxwarehouse/internal/infrastructure/metrics"
)

func TestMetricsMiddleware_LabelsByRoutePattern(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(NewMetricsMiddleware(m).Wrap)
	r.Get("/api/v1/deals/{dealID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"FX001", "FX002"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/deals/"+id, nil))
	}

	got := testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodGet, "/api/v1/deals/{dealID}", "404"))
	if got != 2 {
		t.Fatalf("expected 2 requests under the route pattern, got %v", got)
	}

	if n := testutil.CollectAndCount(m.HTTPRequests); n != 1 {
		t.Fatalf("expected a single label set, got %d", n)
	}

	if v := testutil.ToFloat64(m.HTTPRequestsInFlight); v != 0 {
		t.Fatalf("expected in-flight gauge back at 0, got %v", v)
	}
}

func TestMetricsMiddleware_UnmatchedRoute(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	h := NewMetricsMiddleware(m).Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	if got := testutil.ToFloat64(m.HTTPRequests.WithLabelValues(http.MethodGet, unmatchedRoute, "200")); got != 1 {
		t.Fatalf("expected request to be counted as unmatched, got %v", got)
	}
}
