package engine

// Map viewport and scroll bounds.
const (
	MapViewportHeight = 25
	StatsScrollMax    = 20
	SidebarVisible    = 20
)

// Per-zone overhead in the rendered map: a header, a footer and one blank
// separator between consecutive zones.
const (
	zoneHeaderLines    = 1
	zoneFooterLines    = 1
	zoneSeparatorLines = 1
)

// MapLayout computes line positions of the annotated map from the zone
// layout table.
type MapLayout struct {
	blocks []ZoneBlock
	n      int
}

func NewMapLayout(c *Catalog) MapLayout {
	return MapLayout{blocks: c.Blocks(), n: c.Len()}
}

// LineOf returns the absolute map line of region index i.
func (l MapLayout) LineOf(i int) int {
	if l.n == 0 {
		return 0
	}
	i = clamp(i, 0, l.n-1)
	line, start := 0, 0
	for _, b := range l.blocks {
		line += zoneHeaderLines
		if i < start+b.Count {
			return line + (i - start)
		}
		line += b.Count + zoneFooterLines + zoneSeparatorLines
		start += b.Count
	}
	return line
}

// TotalLines is the number of lines in the rendered map. The last zone has
// no trailing separator.
func (l MapLayout) TotalLines() int {
	if len(l.blocks) == 0 {
		return 0
	}
	total := 0
	for _, b := range l.blocks {
		total += zoneHeaderLines + b.Count + zoneFooterLines
	}
	return total + (len(l.blocks)-1)*zoneSeparatorLines
}

// MaxScroll is the largest map scroll that still fills the viewport.
func (l MapLayout) MaxScroll() int {
	return max(0, l.TotalLines()-MapViewportHeight)
}

// EnsureVisible returns the smallest scroll change that keeps line inside a
// viewport of the given height starting at top.
func EnsureVisible(line, top, height int) int {
	switch {
	case line < top:
		return line
	case line >= top+height:
		return max(0, line+1-height)
	default:
		return top
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
