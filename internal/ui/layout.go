package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ComposeLayout stacks the menu bar, the body (left panel beside the device
// list) and the status bar.
func ComposeLayout(menuBar, leftPanel, deviceList, statusBar string) string {
	body := lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, deviceList)
	return lipgloss.JoinVertical(lipgloss.Left, menuBar, body, statusBar)
}

// RenderRadarPanel frames the radar drawing and its ring legend. The border
// lights up while a scan is running.
func RenderRadarPanel(width, height int, radarContent, legend string, scanning bool) string {
	style := StylePanelBorder
	if scanning {
		style = StylePanelActive
	}
	rendered := style.Width(width - 2).Height(height - 2).Render(radarContent + "\n" + legend)
	return clampLines(rendered, height)
}

// clampLines cuts or pads s to exactly n lines. lipgloss Height() only sets
// a minimum.
func clampLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
