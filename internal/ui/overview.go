package ui

import (
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/DaanHessen/jterm/internal/engine"
)

const (
	gridRows    = 20
	gridCols    = 60
	gridOffsetX = 15
)

// overview draws the map graphic for the AltMap view. The decoded image is
// kept for the session; the scaled rendering is cached per panel size.
type overview struct {
	img    image.Image
	err    error
	cached string
	w, h   int
}

func loadOverview(path string) *overview {
	f, err := os.Open(path)
	if err != nil {
		return &overview{err: err}
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return &overview{err: fmt.Errorf("decode %s: %w", path, err)}
	}
	return &overview{img: img}
}

func (o *overview) available() bool { return o != nil && o.img != nil }

// render scales the image into w cells by h rows using half blocks, two
// pixels per cell.
func (o *overview) render(w, h int) string {
	if !o.available() || w <= 0 || h <= 0 {
		return ""
	}
	if o.cached != "" && o.w == w && o.h == h {
		return o.cached
	}
	dst := image.NewRGBA(fitRect(o.img.Bounds(), w, h*2))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), o.img, o.img.Bounds(), draw.Over, nil)

	var b strings.Builder
	bounds := dst.Bounds()
	for y := 0; y < bounds.Dy(); y += 2 {
		for x := 0; x < bounds.Dx(); x++ {
			top := dst.RGBAAt(x, y)
			bottom := color.RGBA{}
			if y+1 < bounds.Dy() {
				bottom = dst.RGBAAt(x, y+1)
			}
			b.WriteString(halfBlock(top, bottom))
		}
		if y+2 < bounds.Dy() {
			b.WriteByte('\n')
		}
	}
	o.cached, o.w, o.h = b.String(), w, h
	return o.cached
}

// fitRect keeps the aspect ratio of src inside a w x h pixel box.
func fitRect(src image.Rectangle, w, h int) image.Rectangle {
	sw, sh := src.Dx(), src.Dy()
	if sw == 0 || sh == 0 {
		return image.Rect(0, 0, w, h)
	}
	if sw*h > sh*w {
		return image.Rect(0, 0, w, max(1, sh*w/sw))
	}
	return image.Rect(0, 0, max(1, sw*h/sh), h)
}

func halfBlock(top, bottom color.RGBA) string {
	const opaque = 128
	switch {
	case top.A < opaque && bottom.A < opaque:
		return " "
	case bottom.A < opaque:
		return lipgloss.NewStyle().Foreground(hexColor(top)).Render("▀")
	case top.A < opaque:
		return lipgloss.NewStyle().Foreground(hexColor(bottom)).Render("▄")
	}
	return lipgloss.NewStyle().Foreground(hexColor(top)).Background(hexColor(bottom)).Render("▀")
}

func hexColor(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// fallbackGrid places one level-colored square per region on a fixed grid.
func fallbackGrid(c *engine.Catalog, p engine.Progress, pal palette) string {
	cells := make([][]string, gridRows)
	for r := range cells {
		cells[r] = make([]string, gridCols)
		for col := range cells[r] {
			cells[r][col] = " "
		}
	}
	for _, reg := range c.Regions() {
		row, col := reg.GridRow, reg.GridCol+gridOffsetX
		if row < 0 || row >= gridRows || col < 0 || col >= gridCols {
			continue
		}
		cells[row][col] = lipgloss.NewStyle().Foreground(pal.LevelColor(p.Get(reg.ID))).Render("■")
	}
	lines := make([]string, gridRows)
	for r := range cells {
		lines[r] = strings.Join(cells[r], "")
	}
	return strings.Join(lines, "\n")
}
