package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/iho/fxwarehouse/internal/domain"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()

	m := New(registry)

	if m.DealsImported == nil || m.HTTPRequests == nil || m.DealsRejected == nil {
		t.Fatalf("expected key metrics to be initialized: %+v", m)
	}

	m.ObserveHTTP("GET", "/health", 200, time.Millisecond)

	metricFamilies, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	if len(metricFamilies) == 0 {
		t.Fatalf("expected registered metrics, got none")
	}
}

func TestObserveImport(t *testing.T) {
	m := New(prometheus.NewRegistry())

	summary := domain.Summarize("batch", []domain.ImportOutcome{
		domain.Imported("FX001"),
		domain.Imported("FX002"),
		domain.Rejected("FX001", domain.ReasonDuplicate),
		domain.Rejected("FX003", domain.ReasonProcessingError),
		domain.Rejected("FX004", domain.ReasonDuplicate),
	})

	m.ObserveImport(summary, 5, 20*time.Millisecond)

	if got := testutil.ToFloat64(m.DealsImported); got != 2 {
		t.Fatalf("expected 2 imported, got %v", got)
	}
	if got := testutil.ToFloat64(m.DealsRejected.WithLabelValues("duplicate")); got != 2 {
		t.Fatalf("expected 2 duplicate rejections, got %v", got)
	}
	if got := testutil.ToFloat64(m.DealsRejected.WithLabelValues("processing error")); got != 1 {
		t.Fatalf("expected 1 processing error, got %v", got)
	}
	if got := testutil.CollectAndCount(m.ImportBatchSize); got != 1 {
		t.Fatalf("expected batch size histogram to be collected, got %d", got)
	}
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	registry := prometheus.NewRegistry()
	New(registry)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected second registration on the same registry to panic")
		}
	}()
	New(registry)
}
