package engine

import "fmt"

// Region is one immutable catalog entry.
type Region struct {
	ID         string // English name, unique
	NameJP     string
	Zone       Zone
	Capital    string
	Population int
	AreaKm2    int
	// Cell of the region on the fallback overview grid.
	GridRow int
	GridCol int
}

// Density is inhabitants per km².
func (r Region) Density() float64 {
	if r.AreaKm2 <= 0 {
		return 0
	}
	return float64(r.Population) / float64(r.AreaKm2)
}

// ZoneBlock is one entry of the zone layout table: a zone and how many
// consecutive catalog regions belong to it.
type ZoneBlock struct {
	Zone  Zone
	Count int
}

// Catalog is an ordered, validated set of regions. Catalog order is display
// order; regions of one zone are contiguous.
type Catalog struct {
	regions []Region
	blocks  []ZoneBlock
	index   map[string]int
}

// NewCatalog validates regions and derives the zone layout table.
func NewCatalog(regions []Region) (*Catalog, error) {
	c := &Catalog{
		regions: append([]Region(nil), regions...),
		index:   make(map[string]int, len(regions)),
	}
	seenZone := map[Zone]bool{}
	for i, r := range c.regions {
		if r.ID == "" {
			return nil, fmt.Errorf("region %d has empty identity", i)
		}
		if _, dup := c.index[r.ID]; dup {
			return nil, fmt.Errorf("duplicate region %q", r.ID)
		}
		c.index[r.ID] = i
		if n := len(c.blocks); n > 0 && c.blocks[n-1].Zone == r.Zone {
			c.blocks[n-1].Count++
			continue
		}
		if seenZone[r.Zone] {
			return nil, fmt.Errorf("zone %s is not contiguous at region %q", r.Zone, r.ID)
		}
		seenZone[r.Zone] = true
		c.blocks = append(c.blocks, ZoneBlock{Zone: r.Zone, Count: 1})
	}
	return c, nil
}

func (c *Catalog) Len() int { return len(c.regions) }

// At returns the region at index i, clamped into range.
func (c *Catalog) At(i int) Region {
	return c.regions[clamp(i, 0, len(c.regions)-1)]
}

func (c *Catalog) Regions() []Region { return c.regions }

// Lookup finds a region by identity.
func (c *Catalog) Lookup(id string) (Region, int, bool) {
	i, ok := c.index[id]
	if !ok {
		return Region{}, -1, false
	}
	return c.regions[i], i, true
}

// Blocks returns the zone layout table in display order.
func (c *Catalog) Blocks() []ZoneBlock { return c.blocks }

func (c *Catalog) Zones() []Zone {
	zs := make([]Zone, len(c.blocks))
	for i, b := range c.blocks {
		zs[i] = b.Zone
	}
	return zs
}

// ZoneStart returns the catalog index of the first region of zone z.
func (c *Catalog) ZoneStart(z Zone) (int, bool) {
	start := 0
	for _, b := range c.blocks {
		if b.Zone == z {
			return start, true
		}
		start += b.Count
	}
	return 0, false
}

var defaultCatalog = mustCatalog(japan)

// DefaultCatalog returns the compiled-in catalog of Japan's 47 prefectures.
func DefaultCatalog() *Catalog { return defaultCatalog }

func mustCatalog(rs []Region) *Catalog {
	c, err := NewCatalog(rs)
	if err != nil {
		panic(err)
	}
	return c
}

// Population figures are the 2020 census; areas are rounded km².
var japan = []Region{
	{"Hokkaido", "北海道", ZoneHokkaido, "Sapporo", 5224614, 83424, 1, 30},

	{"Aomori", "青森県", ZoneTohoku, "Aomori", 1237984, 9646, 3, 28},
	{"Iwate", "岩手県", ZoneTohoku, "Morioka", 1210534, 15275, 4, 32},
	{"Akita", "秋田県", ZoneTohoku, "Akita", 959502, 11638, 4, 24},
	{"Miyagi", "宮城県", ZoneTohoku, "Sendai", 2301996, 7282, 5, 28},
	{"Yamagata", "山形県", ZoneTohoku, "Yamagata", 1068027, 9323, 5, 24},
	{"Fukushima", "福島県", ZoneTohoku, "Fukushima", 1833152, 13784, 6, 28},

	{"Ibaraki", "茨城県", ZoneKanto, "Mito", 2867009, 6097, 7, 28},
	{"Tochigi", "栃木県", ZoneKanto, "Utsunomiya", 1933146, 6408, 7, 24},
	{"Gunma", "群馬県", ZoneKanto, "Maebashi", 1939110, 6362, 7, 20},
	{"Saitama", "埼玉県", ZoneKanto, "Saitama", 7344765, 3798, 8, 22},
	{"Tokyo", "東京都", ZoneKanto, "Tokyo", 14047594, 2194, 8, 26},
	{"Chiba", "千葉県", ZoneKanto, "Chiba", 6284480, 5158, 8, 30},
	{"Kanagawa", "神奈川県", ZoneKanto, "Yokohama", 9237337, 2416, 9, 26},

	{"Niigata", "新潟県", ZoneChubu, "Niigata", 2201272, 12584, 6, 18},
	{"Toyama", "富山県", ZoneChubu, "Toyama", 1034814, 4248, 8, 14},
	{"Ishikawa", "石川県", ZoneChubu, "Kanazawa", 1132526, 4186, 8, 10},
	{"Fukui", "福井県", ZoneChubu, "Fukui", 766863, 4191, 9, 10},
	{"Yamanashi", "山梨県", ZoneChubu, "Kofu", 809974, 4465, 9, 22},
	{"Nagano", "長野県", ZoneChubu, "Nagano", 2048011, 13562, 8, 18},
	{"Gifu", "岐阜県", ZoneChubu, "Gifu", 1978742, 10621, 9, 14},
	{"Shizuoka", "静岡県", ZoneChubu, "Shizuoka", 3633202, 7777, 10, 22},
	{"Aichi", "愛知県", ZoneChubu, "Nagoya", 7542415, 5173, 10, 14},

	{"Mie", "三重県", ZoneKansai, "Tsu", 1770254, 5774, 10, 10},
	{"Shiga", "滋賀県", ZoneKansai, "Otsu", 1413610, 4017, 9, 8},
	{"Kyoto", "京都府", ZoneKansai, "Kyoto", 2578087, 4612, 8, 6},
	{"Osaka", "大阪府", ZoneKansai, "Osaka", 8837685, 1905, 9, 4},
	{"Hyogo", "兵庫県", ZoneKansai, "Kobe", 5465002, 8401, 9, 2},
	{"Nara", "奈良県", ZoneKansai, "Nara", 1324473, 3691, 10, 6},
	{"Wakayama", "和歌山県", ZoneKansai, "Wakayama", 922584, 4725, 11, 4},

	{"Tottori", "鳥取県", ZoneChugoku, "Tottori", 553407, 3507, 8, 2},
	{"Shimane", "島根県", ZoneChugoku, "Matsue", 671126, 6708, 10, 0},
	{"Okayama", "岡山県", ZoneChugoku, "Okayama", 1888432, 7114, 10, 2},
	{"Hiroshima", "広島県", ZoneChugoku, "Hiroshima", 2799702, 8479, 11, 2},
	{"Yamaguchi", "山口県", ZoneChugoku, "Yamaguchi", 1342059, 6113, 12, 0},

	{"Tokushima", "徳島県", ZoneShikoku, "Tokushima", 719559, 4147, 12, 8},
	{"Kagawa", "香川県", ZoneShikoku, "Takamatsu", 950244, 1877, 12, 4},
	{"Ehime", "愛媛県", ZoneShikoku, "Matsuyama", 1334841, 5676, 12, 2},
	{"Kochi", "高知県", ZoneShikoku, "Kochi", 691527, 7104, 13, 4},

	{"Fukuoka", "福岡県", ZoneKyushu, "Fukuoka", 5135214, 4987, 14, 0},
	{"Saga", "佐賀県", ZoneKyushu, "Saga", 811442, 2441, 15, 0},
	{"Nagasaki", "長崎県", ZoneKyushu, "Nagasaki", 1312317, 4131, 16, 0},
	{"Kumamoto", "熊本県", ZoneKyushu, "Kumamoto", 1738301, 7409, 15, 2},
	{"Oita", "大分県", ZoneKyushu, "Oita", 1123852, 6341, 14, 4},
	{"Miyazaki", "宮崎県", ZoneKyushu, "Miyazaki", 1069576, 7735, 16, 2},
	{"Kagoshima", "鹿児島県", ZoneKyushu, "Kagoshima", 1588256, 9187, 17, 0},

	{"Okinawa", "沖縄県", ZoneOkinawa, "Naha", 1467480, 2282, 19, 0},
}
