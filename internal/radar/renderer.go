package radar

import (
	"fmt"
	"math"
	"strings"

	"bluewave-radar.klederson.com/internal/bluetooth"
	"bluewave-radar.klederson.com/internal/config"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorBright     = lipgloss.Color("#00FF41")
	colorMid        = lipgloss.Color("#008F11")
	colorDim        = lipgloss.Color("#004A0A")
	colorDevice     = lipgloss.Color("#00FFAA")
	colorDeviceAnon = lipgloss.Color("#33AA66")
	colorLabelDim   = lipgloss.Color("#008F11")

	styleCenter    = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleRing      = lipgloss.NewStyle().Foreground(colorMid)
	styleDot       = lipgloss.NewStyle().Foreground(colorDim)
	styleDevice    = lipgloss.NewStyle().Foreground(colorDevice).Bold(true)
	styleDeviceAno = lipgloss.NewStyle().Foreground(colorDeviceAnon).Bold(true)
	styleSweepHit  = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleSelected  = lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(colorBright).Bold(true)
	styleLabel     = lipgloss.NewStyle().Foreground(colorDevice)
	styleLabelDim  = lipgloss.NewStyle().Foreground(colorLabelDim)
	styleLegend    = lipgloss.NewStyle().Foreground(colorMid)
)

const maxLabelLen = 8

// View bundles what the renderer needs for one frame.
type View struct {
	Devices        []bluetooth.ScannedDevice
	Positions      map[string]Point
	ViewportRadius float64
	Sweep          *Sweep // nil while the scan is stopped
	SelectedID     string
}

type devPos struct {
	col, row int
	dev      bluetooth.ScannedDevice
	label    string
	labelCol int
	labelRow int
}

// Render produces the complete radar display as a styled string.
func Render(width, height int, v View) string {
	if width < 10 || height < 5 {
		return ""
	}

	centerX := width / 2
	centerY := height / 2
	radius := float64(min(centerX-1, int(float64(centerY-1)/config.AspectRatio)))
	if radius < 3 {
		radius = 3
	}

	ringRadii := make([]float64, config.RingCount)
	for i := range ringRadii {
		ringRadii[i] = radius * float64(i+1) / float64(config.RingCount)
	}

	dps := buildDevicePositions(v, centerX, centerY, radius, width)

	type labelCell struct {
		dpIdx   int
		charIdx int
	}
	labelMap := make(map[int]labelCell)
	for i, dp := range dps {
		if dp.label == "" {
			continue
		}
		for ci := 0; ci < len(dp.label); ci++ {
			key := dp.labelRow*width + dp.labelCol + ci
			labelMap[key] = labelCell{dpIdx: i, charIdx: ci}
		}
	}

	var sb strings.Builder
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			key := row*width + col
			if lc, ok := labelMap[key]; ok {
				dp := dps[lc.dpIdx]
				sb.WriteString(styleLabelFor(dp.dev, v.Sweep, col, row, centerX, centerY, dp.label[lc.charIdx]))
				continue
			}
			sb.WriteString(renderCell(col, row, centerX, centerY, radius, ringRadii, v, dps))
		}
		if row < height-1 {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

// buildDevicePositions projects resolved points onto cells and resolves
// label collisions.
func buildDevicePositions(v View, centerX, centerY int, radius float64, width int) []devPos {
	dps := make([]devPos, 0, len(v.Devices))

	// Track occupied row segments: map[row] → list of (startCol, endCol)
	type segment struct{ start, end int }
	occupied := make(map[int][]segment)

	collides := func(row, col, n int) bool {
		for _, seg := range occupied[row] {
			if col < seg.end && col+n > seg.start {
				return true
			}
		}
		return false
	}

	for _, d := range v.Devices {
		p, ok := v.Positions[d.ID]
		if !ok {
			p = Point{X: v.ViewportRadius, Y: v.ViewportRadius}
		}
		dc, dr := ProjectToCell(p, v.ViewportRadius, radius, centerX, centerY)

		label := deviceCallsign(d)

		// Try placing label to the right
		lc := dc + 2
		lr := dr
		if lc+len(label) >= width {
			lc = dc - len(label) - 1
		}
		if lc < 0 {
			lc = 0
		}

		// Then one row below, then one above, else drop the label
		placed := false
		for _, candidate := range []int{dr, dr + 1, dr - 1} {
			if !collides(candidate, lc, len(label)) {
				lr = candidate
				placed = true
				break
			}
		}
		if !placed {
			label = ""
		}

		dps = append(dps, devPos{
			col:      dc,
			row:      dr,
			dev:      d,
			label:    label,
			labelCol: lc,
			labelRow: lr,
		})

		occupied[dr] = append(occupied[dr], segment{dc, dc + 1})
		if label != "" {
			occupied[lr] = append(occupied[lr], segment{lc, lc + len(label)})
		}
	}

	return dps
}

func deviceCallsign(d bluetooth.ScannedDevice) string {
	name := d.DisplayName()
	if !bluetooth.IsKnownName(d.Name) && d.Vendor != "" {
		name = d.Vendor
	}
	if len(name) > maxLabelLen {
		name = name[:maxLabelLen]
	}
	return name
}

func styleLabelFor(d bluetooth.ScannedDevice, sweep *Sweep, col, row, centerX, centerY int, ch byte) string {
	s := string(ch)
	if sweep.Intensity(CellAngle(col, row, centerX, centerY)) > 0.5 {
		return styleSweepHit.Render(s)
	}
	if !bluetooth.IsKnownName(d.Name) {
		return styleLabelDim.Render(s)
	}
	return styleLabel.Render(s)
}

func renderCell(col, row, centerX, centerY int, radius float64, ringRadii []float64, v View, devPositions []devPos) string {
	dist := CellDistance(col, row, centerX, centerY)
	angle := CellAngle(col, row, centerX, centerY)

	// Later devices win a shared cell, matching draw order.
	for i := len(devPositions) - 1; i >= 0; i-- {
		dp := devPositions[i]
		if col == dp.col && row == dp.row {
			return renderDevice(dp.dev, v, angle)
		}
	}

	if dist > radius+0.5 {
		return " "
	}

	if col == centerX && row == centerY {
		return styleCenter.Render("+")
	}

	if col == centerX && dist <= radius {
		return renderSweepChar('|', v.Sweep, angle)
	}
	if row == centerY && dist <= radius {
		return renderSweepChar('-', v.Sweep, angle)
	}

	for _, ringR := range ringRadii {
		if math.Abs(dist-ringR) < 0.8 {
			return renderSweepChar(RingChar(angle), v.Sweep, angle)
		}
	}

	if dist <= radius {
		return renderInteriorCell(v.Sweep, angle)
	}

	return " "
}

func renderDevice(d bluetooth.ScannedDevice, v View, cellAngle float64) string {
	blip := d.Initial()
	if d.ID == v.SelectedID {
		return styleSelected.Render(blip)
	}
	if v.Sweep.Intensity(cellAngle) > 0.5 {
		return styleSweepHit.Render(blip)
	}
	if !bluetooth.IsKnownName(d.Name) {
		return styleDeviceAno.Render(blip)
	}
	return styleDevice.Render(blip)
}

func renderSweepChar(ch rune, sweep *Sweep, angle float64) string {
	color := sweepColor(sweep.Intensity(angle))
	if color == "" {
		return styleRing.Render(string(ch))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(ch))
}

func renderInteriorCell(sweep *Sweep, angle float64) string {
	color := sweepColor(sweep.Intensity(angle))
	if color == "" {
		return styleDot.Render(".")
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(".")
}

func sweepColor(intensity float64) string {
	if intensity <= 0 {
		return ""
	}
	if intensity > 0.8 {
		return "#00FF41"
	}
	if intensity > 0.5 {
		return "#00CC33"
	}
	if intensity > 0.3 {
		return "#00AA22"
	}
	return "#005511"
}

// RenderLegend produces the ring scale line, e.g. "rings 2.5m 5.0m 7.5m 10.0m".
func RenderLegend(width int, maxDistance float64) string {
	parts := make([]string, config.RingCount)
	for i := range parts {
		parts[i] = fmt.Sprintf("%.1fm", RingLabel(i, config.RingCount, maxDistance))
	}
	legend := styleLegend.Render("rings " + strings.Join(parts, " "))

	pad := (width - lipgloss.Width(legend)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + legend
}
