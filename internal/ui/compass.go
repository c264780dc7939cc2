package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Line glyphs indexed by 45° sector, starting north and going clockwise.
const (
	radialGlyphs  = "|/-\\|/-\\"
	tangentGlyphs = "-\\|/-\\|/"
	tipGlyphs     = "^/>\\v/<\\"
)

type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellRing
	cellAxis
	cellMark
	cellArrow
)

type compassCanvas struct {
	w, h  int
	chars [][]byte
	kinds [][]cellKind
}

func newCompassCanvas(w, h int) *compassCanvas {
	c := &compassCanvas{w: w, h: h, chars: make([][]byte, h), kinds: make([][]cellKind, h)}
	for r := range c.chars {
		c.chars[r] = []byte(strings.Repeat(" ", w))
		c.kinds[r] = make([]cellKind, w)
	}
	return c
}

func (c *compassCanvas) set(col, row int, ch byte, k cellKind) {
	if col < 0 || col >= c.w || row < 0 || row >= c.h {
		return
	}
	c.chars[row][col] = ch
	c.kinds[row][col] = k
}

func (c *compassCanvas) empty(col, row int) bool {
	return col >= 0 && col < c.w && row >= 0 && row < c.h && c.kinds[row][col] == cellEmpty
}

// RenderCompass draws a compass whose arrow points along heading (radians,
// 0=north, clockwise). reach is the blip's distance as a fraction of the
// radar range: the arrow is as long, relative to the ring, as the blip is
// far from the radar center.
func RenderCompass(width, height int, heading, reach float64) string {
	if width < 9 || height < 5 {
		return ""
	}
	reach = math.Max(0, math.Min(1, reach))

	c := newCompassCanvas(width, height)

	fcx := float64(width) / 2
	fcy := float64(height) / 2
	rx := math.Max(3, fcx-2) // columns
	ry := math.Max(2, fcy-2) // rows
	cx := int(math.Round(fcx))
	cy := int(math.Round(fcy))

	at := func(a, frac float64) (int, int) {
		return int(math.Round(fcx + frac*rx*math.Sin(a))), int(math.Round(fcy - frac*ry*math.Cos(a)))
	}

	for i := 0; i < 80; i++ {
		a := float64(i) * 2 * math.Pi / 80
		col, row := at(a, 1)
		if c.empty(col, row) {
			c.set(col, row, glyph(tangentGlyphs, a), cellRing)
		}
	}

	for r := cy - int(ry) + 1; r < cy+int(ry); r++ {
		if c.empty(cx, r) {
			c.set(cx, r, ':', cellAxis)
		}
	}
	for col := cx - int(rx) + 1; col < cx+int(rx); col++ {
		if c.empty(col, cy) {
			c.set(col, cy, '.', cellAxis)
		}
	}

	c.set(cx, cy-int(math.Round(ry))-1, 'N', cellMark)
	c.set(cx, cy+int(math.Round(ry))+1, 'S', cellMark)
	c.set(cx+int(math.Round(rx))+1, cy, 'E', cellMark)
	c.set(cx-int(math.Round(rx))-1, cy, 'W', cellMark)

	// A blip sitting on the center still gets a stub so the heading reads.
	length := math.Max(0.25, 0.9*reach)
	steps := max(2, int(math.Max(rx, ry)*length))
	tipCol, tipRow := cx, cy
	for s := 1; s <= steps; s++ {
		tipCol, tipRow = at(heading, float64(s)/float64(steps)*length)
		c.set(tipCol, tipRow, glyph(radialGlyphs, heading), cellArrow)
	}
	c.set(tipCol, tipRow, glyph(tipGlyphs, heading), cellArrow)
	c.set(cx, cy, '+', cellMark)

	styles := map[cellKind]lipgloss.Style{
		cellRing:  lipgloss.NewStyle().Foreground(ColorDimGreen),
		cellAxis:  lipgloss.NewStyle().Foreground(lipgloss.Color("#003300")),
		cellMark:  lipgloss.NewStyle().Foreground(ColorMatrixGreen).Bold(true),
		cellArrow: lipgloss.NewStyle().Foreground(lipgloss.Color(proximityColor(reach))).Bold(true),
	}

	var sb strings.Builder
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			k := c.kinds[row][col]
			if k == cellEmpty {
				sb.WriteByte(' ')
				continue
			}
			sb.WriteString(styles[k].Render(string(c.chars[row][col])))
		}
		if row < height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// glyph picks the character for angle a from an 8-sector table.
func glyph(table string, a float64) byte {
	return table[int(math.Round(wrapAngle(a)/(math.Pi/4)))%8]
}

// proximityColor maps a distance fraction of the range to a green shade
// (brighter = closer).
func proximityColor(frac float64) string {
	switch {
	case frac < 0.2:
		return "#00FF41"
	case frac < 0.4:
		return "#00CC33"
	case frac < 0.6:
		return "#00AA22"
	case frac < 0.8:
		return "#008F11"
	default:
		return "#005511"
	}
}

// wrapAngle wraps a to [0, 2π).
func wrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
