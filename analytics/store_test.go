package analytics

import (
	"path/filepath"
	"testing"
	"time"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "analytics_test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSettings(t *testing.T) {
	s := setupTestStore(t)

	val, err := s.GetSetting("missing")
	if err != nil {
		t.Fatalf("GetSetting failed: %v", err)
	}
	if val != "" {
		t.Errorf("missing setting = %q, want empty", val)
	}

	if err := s.SetSetting("hash_salt", "abc123"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}
	val, err = s.GetSetting("hash_salt")
	if err != nil {
		t.Fatalf("GetSetting failed: %v", err)
	}
	if val != "abc123" {
		t.Errorf("setting = %q, want abc123", val)
	}

	// Upsert overwrites.
	if err := s.SetSetting("hash_salt", "def456"); err != nil {
		t.Fatalf("SetSetting failed: %v", err)
	}
	val, _ = s.GetSetting("hash_salt")
	if val != "def456" {
		t.Errorf("setting = %q, want def456", val)
	}
}

func TestSaveVisitAndGetStats(t *testing.T) {
	s := setupTestStore(t)
	now := time.Now().UTC()

	visits := []Visit{
		{VisitorID: "v1", IPHash: "h1", Device: "desktop", Path: "/blog/ab-test-sample-size", Referrer: "news.ycombinator.com", Timestamp: now},
		{VisitorID: "v1", IPHash: "h1", Device: "desktop", Path: "/", Timestamp: now.Add(-time.Hour)},
		{VisitorID: "v2", IPHash: "h2", Device: "mobile", Path: "/blog/ab-test-sample-size", Timestamp: now.Add(-2 * time.Hour)},
	}
	for i := range visits {
		if err := s.SaveVisit(&visits[i]); err != nil {
			t.Fatalf("SaveVisit failed: %v", err)
		}
	}

	stats, err := s.GetStats(now.Add(-24*time.Hour), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.TotalViews != 3 {
		t.Errorf("TotalViews = %d, want 3", stats.TotalViews)
	}
	if stats.UniqueVisitors != 2 {
		t.Errorf("UniqueVisitors = %d, want 2", stats.UniqueVisitors)
	}
	if len(stats.TopPages) == 0 || stats.TopPages[0].Path != "/blog/ab-test-sample-size" || stats.TopPages[0].Views != 2 {
		t.Errorf("TopPages = %v", stats.TopPages)
	}
	if len(stats.ReferrerStats) != 1 || stats.ReferrerStats[0].Name != "news.ycombinator.com" {
		t.Errorf("ReferrerStats = %v", stats.ReferrerStats)
	}
	if len(stats.DeviceStats) != 2 {
		t.Errorf("DeviceStats = %v", stats.DeviceStats)
	}
	if len(stats.DailyViews) == 0 {
		t.Error("DailyViews should not be empty")
	}
}

func TestGetStatsRangeExcludesOutside(t *testing.T) {
	s := setupTestStore(t)
	now := time.Now().UTC()

	old := Visit{VisitorID: "v1", IPHash: "h1", Device: "desktop", Path: "/", Timestamp: now.AddDate(0, 0, -40)}
	recent := Visit{VisitorID: "v2", IPHash: "h2", Device: "desktop", Path: "/", Timestamp: now}
	for _, v := range []Visit{old, recent} {
		visit := v
		if err := s.SaveVisit(&visit); err != nil {
			t.Fatalf("SaveVisit failed: %v", err)
		}
	}

	stats, err := s.GetStats(now.AddDate(0, 0, -30), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.TotalViews != 1 {
		t.Errorf("TotalViews = %d, want 1 (old visit outside range)", stats.TotalViews)
	}
}

func TestCleanupBefore(t *testing.T) {
	s := setupTestStore(t)
	now := time.Now().UTC()

	for _, ts := range []time.Time{now.AddDate(-2, 0, 0), now.AddDate(0, 0, -400), now} {
		v := Visit{VisitorID: "v", IPHash: "h", Device: "desktop", Path: "/", Timestamp: ts}
		if err := s.SaveVisit(&v); err != nil {
			t.Fatalf("SaveVisit failed: %v", err)
		}
	}

	removed, err := s.CleanupBefore(now.AddDate(0, 0, -365))
	if err != nil {
		t.Fatalf("CleanupBefore failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}

	stats, err := s.GetStats(now.AddDate(-3, 0, 0), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.TotalViews != 1 {
		t.Errorf("TotalViews = %d, want 1 after cleanup", stats.TotalViews)
	}
}
