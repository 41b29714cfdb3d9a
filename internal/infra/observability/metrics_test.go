package observability_test

import (
	"testing"
	"time"

	"github.com/biztech/portal-bff-go/internal/infra/observability"
)

func TestSnapshot_Empty(t *testing.T) {
	m := observability.NewMetrics()

	snap := m.Snapshot()
	if snap.TotalRequests != 0 || snap.ErrorRate != 0 || snap.CacheHitRate != 0 {
		t.Errorf("expected zero snapshot, got %+v", snap)
	}
}

func TestSnapshot_ErrorRate(t *testing.T) {
	m := observability.NewMetrics()

	m.IncrRequest("success")
	m.IncrRequest("success")
	m.IncrRequest("success")
	m.IncrRequest("error")

	snap := m.Snapshot()
	if snap.TotalRequests != 4 {
		t.Errorf("total requests = %d, want 4", snap.TotalRequests)
	}
	if snap.ErrorRate != 0.25 {
		t.Errorf("error rate = %v, want 0.25", snap.ErrorRate)
	}
}

func TestSnapshot_SumsHitsAcrossCaches(t *testing.T) {
	m := observability.NewMetrics()

	// Hit rate must reflect whatever cache labels were actually written,
	// not a fixed label list.
	m.IncrCacheHit("drafts")
	m.IncrCacheHit("drafts")
	m.IncrCacheHit("roster")
	m.IncrCacheMiss("drafts")

	snap := m.Snapshot()
	if snap.CacheHitRate != 0.75 {
		t.Errorf("cache hit rate = %v, want 0.75", snap.CacheHitRate)
	}
}

func TestRecordRequestDuration(t *testing.T) {
	m := observability.NewMetrics()

	m.RecordRequestDuration("client_dashboard", 120*time.Millisecond)

	families, err := m.Registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, fam := range families {
		if fam.GetName() == "portal_request_duration_seconds" {
			return
		}
	}
	t.Fatal("portal_request_duration_seconds not registered")
}

func TestIncrCoreErrorShowsUpInRegistry(t *testing.T) {
	m := observability.NewMetrics()

	m.IncrCoreError("GET /requests")

	families, err := m.Registry.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, fam := range families {
		if fam.GetName() != "portal_core_api_errors_total" {
			continue
		}
		if len(fam.GetMetric()) == 0 || fam.GetMetric()[0].GetCounter().GetValue() != 1 {
			t.Fatalf("unexpected core error counter: %+v", fam)
		}
		return
	}
	t.Fatal("portal_core_api_errors_total not registered")
}
