package engine

// ZoneStat is the visited/total pair for one zone.
type ZoneStat struct {
	Zone    Zone
	Visited int
	Total   int
}

func (z ZoneStat) Percent() int { return Percent(z.Visited, z.Total) }

// Stats summarises progress over a catalog. It is derived on demand and never
// stored.
type Stats struct {
	LevelCounts [LevelCount]int
	Score       int
	Total       int
	Zones       []ZoneStat
}

// ComputeStats aggregates progress over the catalog. Progress entries for
// identities outside the catalog are ignored.
func ComputeStats(c *Catalog, p Progress) Stats {
	s := Stats{Total: c.Len(), Zones: make([]ZoneStat, 0, len(c.Blocks()))}
	pos := make(map[Zone]int, len(c.Blocks()))
	for _, b := range c.Blocks() {
		pos[b.Zone] = len(s.Zones)
		s.Zones = append(s.Zones, ZoneStat{Zone: b.Zone})
	}
	for _, r := range c.Regions() {
		lvl := p.Get(r.ID)
		if !lvl.Valid() {
			lvl = LevelNever
		}
		s.LevelCounts[lvl]++
		s.Score += int(lvl)
		zs := &s.Zones[pos[r.Zone]]
		zs.Total++
		if lvl > LevelNever {
			zs.Visited++
		}
	}
	return s
}

// Visited counts regions above LevelNever.
func (s Stats) Visited() int { return s.Total - s.LevelCounts[LevelNever] }

func (s Stats) Completion() int { return Percent(s.Visited(), s.Total) }

func (s Stats) MaxScore() int { return s.Total * int(MaxLevel) }

// MostCommonLevel returns the level with the highest count, preferring the
// lowest level on ties.
func (s Stats) MostCommonLevel() Level {
	best := LevelNever
	for l := 1; l < LevelCount; l++ {
		if s.LevelCounts[l] > s.LevelCounts[best] {
			best = Level(l)
		}
	}
	return best
}

// Zone looks up the stat of one zone; zones outside the catalog are absent.
func (s Stats) Zone(z Zone) (ZoneStat, bool) {
	for _, zs := range s.Zones {
		if zs.Zone == z {
			return zs, true
		}
	}
	return ZoneStat{}, false
}

// Percent is visited*100/total truncated, or 0 for an empty total.
func Percent(visited, total int) int {
	if total <= 0 {
		return 0
	}
	return visited * 100 / total
}
