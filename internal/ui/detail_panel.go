package ui

import (
	"fmt"
	"math"
	"strings"

	"bluewave-radar.klederson.com/internal/bluetooth"
	"github.com/charmbracelet/lipgloss"
)

// DetailInfo carries the derived values shown next to a device.
type DetailInfo struct {
	AnchorYaw   float64   // gyroscope z recorded at first sight
	Bearing     float64   // screen bearing of the blip, radians, 0=right, clockwise
	MaxDistance float64   // radar range in meters
	History     []float64 // recent distance estimates, oldest first
}

// RenderDetailPanel renders the device detail overlay that replaces the radar area.
func RenderDetailPanel(d bluetooth.ScannedDevice, info DetailInfo, width, height int) string {
	innerW := width - 4
	if innerW < 20 {
		innerW = 20
	}

	title := StylePanelTitle.Render("DEVICE INFO")
	escHint := StyleHelp.Render("[ESC]")
	titleLine := title + strings.Repeat(" ", max(0, innerW-lipgloss.Width(title)-lipgloss.Width(escHint))) + escHint

	sep := StyleRadarRing.Render(strings.Repeat("-", innerW))

	lines := []string{titleLine, sep, ""}

	labelSty := lipgloss.NewStyle().Foreground(ColorMidGreen)
	valSty := lipgloss.NewStyle().Foreground(ColorMatrixGreen).Bold(true)

	vendor := d.Vendor
	if vendor == "" {
		vendor = "-"
	}

	fields := []struct{ label, value string }{
		{"Name", d.DisplayName()},
		{"Distance", fmt.Sprintf("%.2f meters", d.Distance)},
		{"ID", d.ID},
		{"Vendor", vendor},
		{"Anchor", fmt.Sprintf("%+.3f", info.AnchorYaw)},
	}

	for _, f := range fields {
		label := labelSty.Render(fmt.Sprintf("  %-10s", f.label))
		lines = append(lines, label+valSty.Render(f.value))
	}

	lines = append(lines, "")

	if len(info.History) > 0 {
		sparkW := innerW - 4
		if sparkW < 10 {
			sparkW = 10
		}
		lines = append(lines, labelSty.Render("  Distance History:"))
		spark := renderSparkline(info.History, sparkW)
		lines = append(lines, "  "+lipgloss.NewStyle().Foreground(ColorGreen).Render(spark))
		lines = append(lines, "")
	}

	// Compass
	compassH := height - len(lines) - 5 // leave room for label + border
	if compassH < 5 {
		compassH = 5
	}
	compassW := innerW
	if compassW > compassH*3 {
		compassW = compassH * 3 // keep roughly proportional
	}

	heading := compassHeading(info.Bearing)
	reach := 1.0
	if info.MaxDistance > 0 {
		reach = d.Distance / info.MaxDistance
	}
	compass := RenderCompass(compassW, compassH, heading, reach)
	if compass != "" {
		prefix := strings.Repeat(" ", max(0, (innerW-compassW)/2))
		for _, cl := range strings.Split(compass, "\n") {
			lines = append(lines, prefix+cl)
		}
	}

	distLabel := fmt.Sprintf("~%.2fm  %s", d.Distance, angleToDir(heading))
	lines = append(lines, strings.Repeat(" ", max(0, (innerW-len(distLabel))/2))+valSty.Render(distLabel))

	for len(lines) < height-2 {
		lines = append(lines, "")
	}

	content := strings.Join(lines, "\n")
	return StylePanelActive.Width(width - 2).Height(height - 2).Render(content)
}

// compassHeading turns a screen bearing (0=right, clockwise) into a compass
// heading (0=up, clockwise).
func compassHeading(bearing float64) float64 {
	return wrapAngle(bearing + math.Pi/2)
}

// renderSparkline draws values scaled to their own min/max, newest last.
// Smaller values sit lower, so a device walking away climbs.
func renderSparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}

	chars := []byte{'_', '.', '-', '~', '^'}

	minV, maxV := values[0], values[0]
	for _, v := range values {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}

	rng := maxV - minV
	if rng < 0.1 {
		rng = 0.1
	}

	start := 0
	if len(values) > width {
		start = len(values) - width
	}

	var sb strings.Builder
	for i := start; i < len(values); i++ {
		idx := int((values[i] - minV) / rng * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))
		sb.WriteByte(chars[idx])
	}

	return sb.String()
}

func angleToDir(a float64) string {
	dirs := []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}
	idx := int(math.Round(wrapAngle(a)/(math.Pi/4))) % 8
	return dirs[idx]
}
