package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar. yaw is the calibrated
// gyroscope z reading.
func RenderStatusBar(width int, scanning bool, total int, yaw, sweepDeg, maxRange float64) string {
	status := StyleStatusPaused.Render("[STOPPED]")
	if scanning {
		status = StyleStatusScanning.Render("[SCANNING]")
	}

	info := fmt.Sprintf(" Devices: %d  Yaw: %+.3f  Sweep: %ddeg  Range: 0-%.0fm",
		total, yaw, int(sweepDeg), maxRange)

	content := status + StyleStatusBar.Foreground(ColorGreen).Render(info)

	gap := width - 2 - lipgloss.Width(content) // 2 = horizontal padding
	if gap < 0 {
		gap = 0
	}

	return StyleStatusBar.Width(width).Render(content + strings.Repeat(" ", gap))
}
