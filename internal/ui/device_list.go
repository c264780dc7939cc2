package ui

import (
	"fmt"
	"strings"

	"bluewave-radar.klederson.com/internal/bluetooth"
)

const linesPerDevice = 4 // 3 content + 1 blank

// RenderDeviceList renders the scrollable device list panel with a cursor.
// The title stays fixed at the top; only the device entries scroll.
func RenderDeviceList(devices []bluetooth.ScannedDevice, width, height int, cursorIndex int) string {
	innerW := width - 4
	if innerW < 10 {
		innerW = 10
	}

	title := StylePanelTitle.Render(fmt.Sprintf("DEVICES [%d]", len(devices)))
	separator := StyleRadarRing.Render(strings.Repeat("-", innerW))
	headerLines := []string{title, separator}
	headerCount := len(headerLines)

	// Total inner height (excluding border top+bottom)
	innerH := height - 2
	if innerH < headerCount+1 {
		innerH = headerCount + 1
	}

	devSpace := innerH - headerCount
	if devSpace < 1 {
		devSpace = 1
	}

	var devLines []string
	if len(devices) == 0 {
		devLines = append(devLines, "")
		devLines = append(devLines, StyleHelp.Render(" No devices..."))
		devLines = append(devLines, StyleHelp.Render(" Press S to scan"))
	} else {
		maxVisible := devSpace / linesPerDevice
		if maxVisible < 1 {
			maxVisible = 1
		}

		// Keep the cursor inside the viewport
		viewStart := 0
		if cursorIndex >= maxVisible {
			viewStart = cursorIndex - maxVisible + 1
		}

		for i := viewStart; i < len(devices) && len(devLines) < devSpace; i++ {
			for _, l := range renderDeviceEntry(devices[i], innerW, i == cursorIndex) {
				if len(devLines) >= devSpace {
					break
				}
				devLines = append(devLines, l)
			}
		}
	}

	if len(devLines) > devSpace {
		devLines = devLines[:devSpace]
	}
	for len(devLines) < devSpace {
		devLines = append(devLines, "")
	}

	all := make([]string, 0, innerH)
	all = append(all, headerLines...)
	all = append(all, devLines...)

	content := strings.Join(all, "\n")
	return clampLines(StylePanelBorder.Width(width-2).Height(innerH).Render(content), height)
}

func renderDeviceEntry(d bluetooth.ScannedDevice, maxW int, isCursor bool) []string {
	name := d.DisplayName()
	nameMax := maxW - 8
	if nameMax < 4 {
		nameMax = 4
	}
	if len(name) > nameMax {
		name = name[:nameMax]
	}

	cursor := "  "
	if isCursor {
		cursor = ">>"
	}

	id := d.ID
	if len(id) > maxW-7 && maxW > 7 {
		id = id[:maxW-7]
	}

	distStr := fmt.Sprintf("~%.2fm", d.Distance)
	vendor := ""
	if d.Vendor != "" {
		vendor = "  " + d.Vendor
	}

	if isCursor {
		return []string{
			StyleCursorRow.Render(truncRaw(fmt.Sprintf("%s %s %s", cursor, d.Initial(), name), maxW)),
			StyleCursorRow.Render(truncRaw("     "+id, maxW)),
			StyleCursorRow.Render(truncRaw("     "+distStr+vendor, maxW)),
			"",
		}
	}

	nameSty := StyleDeviceName
	if !bluetooth.IsKnownName(d.Name) {
		nameSty = StyleDeviceAnon
	}

	return []string{
		fmt.Sprintf("%s %s %s", cursor, StyleDeviceBlip.Render(d.Initial()), nameSty.Render(name)),
		"     " + StyleDeviceID.Render(id),
		"     " + StyleDeviceDist.Render(distStr) + StyleHelp.Render(vendor),
		"",
	}
}

// truncRaw pads or truncates a raw string to exactly w characters.
func truncRaw(s string, w int) string {
	if len(s) > w {
		return s[:w]
	}
	if len(s) < w {
		return s + strings.Repeat(" ", w-len(s))
	}
	return s
}
