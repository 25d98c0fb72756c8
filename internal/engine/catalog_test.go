package engine

import "testing"

func TestDefaultCatalogShape(t *testing.T) {
	c := DefaultCatalog()
	if c.Len() != 47 {
		t.Fatalf("expected 47 regions, got %d", c.Len())
	}
	want := []ZoneBlock{
		{ZoneHokkaido, 1}, {ZoneTohoku, 6}, {ZoneKanto, 7}, {ZoneChubu, 9}, {ZoneKansai, 7},
		{ZoneChugoku, 5}, {ZoneShikoku, 4}, {ZoneKyushu, 7}, {ZoneOkinawa, 1},
	}
	got := c.Blocks()
	if len(got) != len(want) {
		t.Fatalf("expected %d zones, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("zone block %d: got %+v want %+v", i, got[i], want[i])
		}
	}
}

func TestDefaultCatalogGridCellsUnique(t *testing.T) {
	seen := map[[2]int]string{}
	for _, r := range DefaultCatalog().Regions() {
		cell := [2]int{r.GridRow, r.GridCol}
		if prev, ok := seen[cell]; ok {
			t.Fatalf("%s shares grid cell %v with %s", r.ID, cell, prev)
		}
		seen[cell] = r.ID
		if r.Population <= 0 || r.AreaKm2 <= 0 || r.Capital == "" || r.NameJP == "" {
			t.Fatalf("incomplete region record %+v", r)
		}
	}
}

func TestNewCatalogRejectsDuplicatesAndSplitZones(t *testing.T) {
	if _, err := NewCatalog([]Region{{ID: "A", Zone: ZoneKanto}, {ID: "A", Zone: ZoneKanto}}); err == nil {
		t.Fatal("expected duplicate identity error")
	}
	split := []Region{{ID: "A", Zone: ZoneKanto}, {ID: "B", Zone: ZoneTohoku}, {ID: "C", Zone: ZoneKanto}}
	if _, err := NewCatalog(split); err == nil {
		t.Fatal("expected non-contiguous zone error")
	}
}

func TestLookupAndZoneStart(t *testing.T) {
	c := DefaultCatalog()
	r, i, ok := c.Lookup("Tokyo")
	if !ok || r.Zone != ZoneKanto || r.NameJP != "東京都" {
		t.Fatalf("lookup Tokyo: %+v ok=%v", r, ok)
	}
	if c.At(i).ID != "Tokyo" {
		t.Fatalf("At(%d) = %s", i, c.At(i).ID)
	}
	if _, _, ok := c.Lookup("Atlantis"); ok {
		t.Fatal("unknown region should not be found")
	}
	if start, ok := c.ZoneStart(ZoneKanto); !ok || start != 7 {
		t.Fatalf("Kanto start = %d ok=%v, want 7", start, ok)
	}
}

func TestParseLevel(t *testing.T) {
	for v := 0; v <= 5; v++ {
		if l, err := ParseLevel(v); err != nil || int(l) != v {
			t.Fatalf("ParseLevel(%d) = %v, %v", v, l, err)
		}
	}
	for _, v := range []int{-1, 6, 42} {
		if _, err := ParseLevel(v); err == nil {
			t.Fatalf("ParseLevel(%d) should fail", v)
		}
	}
	if LevelLived.String() != "Lived there" || LevelNever.Key() != "never_been" {
		t.Fatalf("unexpected level naming %q %q", LevelLived.String(), LevelNever.Key())
	}
}
