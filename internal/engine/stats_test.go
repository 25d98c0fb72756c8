package engine

import "testing"

func TestComputeStatsEmpty(t *testing.T) {
	s := ComputeStats(DefaultCatalog(), Progress{})
	if s.Visited() != 0 || s.Total != 47 || s.Score != 0 || s.Completion() != 0 {
		t.Fatalf("unexpected empty stats: visited=%d total=%d score=%d completion=%d", s.Visited(), s.Total, s.Score, s.Completion())
	}
	if len(s.Zones) != 9 {
		t.Fatalf("every zone should be reported, got %d", len(s.Zones))
	}
	if s.MaxScore() != 235 {
		t.Fatalf("MaxScore = %d", s.MaxScore())
	}
}

func TestComputeStatsTokyoLived(t *testing.T) {
	p := Progress{}.With("Tokyo", LevelLived)
	s := ComputeStats(DefaultCatalog(), p)
	if s.Score != 5 {
		t.Fatalf("score = %d, want 5", s.Score)
	}
	kanto, ok := s.Zone(ZoneKanto)
	if !ok || kanto.Visited != 1 || kanto.Total != 7 {
		t.Fatalf("kanto = %+v ok=%v", kanto, ok)
	}
	if kanto.Percent() != 14 {
		t.Fatalf("kanto percent = %d, want 14", kanto.Percent())
	}
}

func TestComputeStatsCountsSumToTotal(t *testing.T) {
	p := Progress{"Tokyo": 3, "Osaka": 2, "Hokkaido": 5, "Okinawa": 1, "Narnia": 4}
	s := ComputeStats(DefaultCatalog(), p)
	sum := 0
	for _, n := range s.LevelCounts {
		sum += n
	}
	if sum != 47 {
		t.Fatalf("level counts sum to %d", sum)
	}
	zoneTotal := 0
	for _, z := range s.Zones {
		zoneTotal += z.Total
	}
	if zoneTotal != 47 {
		t.Fatalf("zone totals sum to %d", zoneTotal)
	}
	if s.Score != 11 {
		t.Fatalf("unknown identities must be ignored, score = %d", s.Score)
	}
	if _, ok := s.Zone(Zone("Atlantis")); ok {
		t.Fatal("zone outside the catalog should not be reported")
	}
}

func TestMostCommonLevelPrefersLowestOnTie(t *testing.T) {
	var s Stats
	s.LevelCounts = [LevelCount]int{3, 5, 5, 0, 0, 5}
	if got := s.MostCommonLevel(); got != LevelPassed {
		t.Fatalf("MostCommonLevel = %v", got)
	}
	if Percent(1, 0) != 0 || Percent(2, 3) != 66 {
		t.Fatal("Percent should truncate and guard zero totals")
	}
}
