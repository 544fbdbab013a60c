// Package render rasterizes the system map and the usage chart to PNG.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const maxDimension = 4096

// Size is a target canvas size in pixels.
type Size struct {
	Width  int
	Height int
}

// Normalize replaces non-positive dimensions with fallback and caps both.
func (s Size) Normalize(fallback Size) Size {
	if s.Width <= 0 {
		s.Width = fallback.Width
	}
	if s.Height <= 0 {
		s.Height = fallback.Height
	}
	s.Width = min(s.Width, maxDimension)
	s.Height = min(s.Height, maxDimension)
	return s
}

var (
	white       = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	defaultBlue = color.RGBA{0x3B, 0x82, 0xF6, 0xFF}
)

type canvas struct {
	img *image.RGBA
}

func newCanvas(size Size) *canvas {
	img := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: white}, image.Point{}, draw.Src)
	return &canvas{img: img}
}

func (c *canvas) set(x, y int, col color.RGBA) {
	if image.Pt(x, y).In(c.img.Rect) {
		c.img.SetRGBA(x, y, col)
	}
}

func (c *canvas) fillCircle(cx, cy, r float64, col color.RGBA) {
	for y := int(cy - r); y <= int(cy+r); y++ {
		for x := int(cx - r); x <= int(cx+r); x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			if dx*dx+dy*dy <= r*r {
				c.set(x, y, col)
			}
		}
	}
}

func (c *canvas) strokeCircle(cx, cy, r, width float64, col color.RGBA) {
	inner := (r - width/2) * (r - width/2)
	outer := (r + width/2) * (r + width/2)
	for y := int(cy - r - width); y <= int(cy+r+width); y++ {
		for x := int(cx - r - width); x <= int(cx+r+width); x++ {
			dx, dy := float64(x)-cx, float64(y)-cy
			d := dx*dx + dy*dy
			if d >= inner && d <= outer {
				c.set(x, y, col)
			}
		}
	}
}

// line draws a segment of the given width with Bresenham stepping.
func (c *canvas) line(x0, y0, x1, y1 float64, width float64, col color.RGBA) {
	ix0, iy0, ix1, iy1 := int(x0), int(y0), int(x1), int(y1)
	dx, dy := abs(ix1-ix0), -abs(iy1-iy0)
	sx, sy := 1, 1
	if ix0 > ix1 {
		sx = -1
	}
	if iy0 > iy1 {
		sy = -1
	}
	half := width / 2
	errAcc := dx + dy
	for {
		if width <= 1 {
			c.set(ix0, iy0, col)
		} else {
			c.fillCircle(float64(ix0), float64(iy0), half, col)
		}
		if ix0 == ix1 && iy0 == iy1 {
			return
		}
		e2 := 2 * errAcc
		if e2 >= dy {
			errAcc += dy
			ix0 += sx
		}
		if e2 <= dx {
			errAcc += dx
			iy0 += sy
		}
	}
}

func (c *canvas) fillRect(x, y, w, h int, col color.RGBA) {
	draw.Draw(c.img, image.Rect(x, y, x+w, y+h), &image.Uniform{C: col}, image.Point{}, draw.Over)
}

type align int

const (
	alignLeft align = iota
	alignCenter
	alignRight
)

// text draws s with its baseline at y.
func (c *canvas) text(s string, x, y float64, a align, col color.RGBA) {
	if s == "" {
		return
	}
	d := &font.Drawer{Dst: c.img, Src: image.NewUniform(col), Face: basicfont.Face7x13}
	width := d.MeasureString(s).Round()
	switch a {
	case alignCenter:
		x -= float64(width) / 2
	case alignRight:
		x -= float64(width)
	}
	d.Dot = fixed.P(int(x), int(y))
	d.DrawString(s)
}

// parseHex accepts #RRGGBB and falls back to the default series blue.
func parseHex(raw string) color.RGBA {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "#")
	if len(raw) != 6 {
		return defaultBlue
	}
	v, err := strconv.ParseUint(raw, 16, 32)
	if err != nil {
		return defaultBlue
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
