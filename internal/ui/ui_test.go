package ui

import (
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"bluewave-radar.klederson.com/internal/bluetooth"
)

func TestRenderDeviceList_Empty(t *testing.T) {
	out := RenderDeviceList(nil, 30, 12, 0)
	assert.Contains(t, out, "DEVICES [0]")
	assert.Contains(t, out, "No devices")
	assert.Len(t, strings.Split(out, "\n"), 12)
}

func TestRenderDeviceList_Entries(t *testing.T) {
	devices := []bluetooth.ScannedDevice{
		{ID: "AA:BB:CC:DD:EE:01", Name: "Phone-A", Distance: 2.345},
		{ID: "AA:BB:CC:DD:EE:02", Name: "Unknown", Distance: 7, Vendor: "Apple"},
	}
	out := RenderDeviceList(devices, 40, 14, 1)
	assert.Contains(t, out, "DEVICES [2]")
	assert.Contains(t, out, "Phone-A")
	assert.Contains(t, out, "~2.35m")
	assert.Contains(t, out, ">> U Unknown")
	assert.Contains(t, out, "Apple")
	assert.Len(t, strings.Split(out, "\n"), 14)
}

func TestRenderDetailPanel(t *testing.T) {
	d := bluetooth.ScannedDevice{ID: "AA:BB", Name: "", Distance: 3.14159}
	out := RenderDetailPanel(d, DetailInfo{
		AnchorYaw:   0.25,
		MaxDistance: 10,
		History:     []float64{3, 3.5, 4},
	}, 60, 30)

	assert.Contains(t, out, "Unknown")
	assert.Contains(t, out, "3.14 meters")
	assert.Contains(t, out, "AA:BB")
	assert.Contains(t, out, "+0.250")
	assert.Contains(t, out, "Distance History")
}

func TestCompassHeading(t *testing.T) {
	assert.Equal(t, "E", angleToDir(compassHeading(0)))
	assert.Equal(t, "S", angleToDir(compassHeading(math.Pi/2)))
	assert.Equal(t, "N", angleToDir(compassHeading(3*math.Pi/2)))
}

func TestRenderSparkline(t *testing.T) {
	assert.Equal(t, "_~^", renderSparkline([]float64{1, 1.8, 2}, 10))
	assert.Equal(t, "__", renderSparkline([]float64{5, 5, 5}, 2))
	assert.Len(t, renderSparkline(make([]float64, 50), 20), 20)
	assert.Equal(t, "", renderSparkline(nil, 5))
}

func TestRenderCompass(t *testing.T) {
	assert.Equal(t, "", RenderCompass(5, 3, 0, 0.1))
	out := RenderCompass(30, 11, 0, 0.2)
	assert.Contains(t, out, "N")
	assert.Contains(t, out, "^")

	east := RenderCompass(30, 11, math.Pi/2, 1)
	assert.Contains(t, east, ">")
	assert.Len(t, strings.Split(east, "\n"), 11)
}

func TestGlyph(t *testing.T) {
	assert.Equal(t, byte('^'), glyph(tipGlyphs, 0))
	assert.Equal(t, byte('>'), glyph(tipGlyphs, math.Pi/2))
	assert.Equal(t, byte('v'), glyph(tipGlyphs, math.Pi))
	assert.Equal(t, byte('<'), glyph(tipGlyphs, -math.Pi/2))
	assert.Equal(t, byte('-'), glyph(radialGlyphs, math.Pi/2))
	assert.Equal(t, byte('-'), glyph(tangentGlyphs, 0))
}

func TestStatusAndMenuBars(t *testing.T) {
	status := RenderStatusBar(100, true, 3, 0.5, 90, 10)
	assert.Contains(t, status, "SCANNING")
	assert.Contains(t, status, "Devices: 3")
	assert.Contains(t, status, "Yaw: +0.500")
	assert.Equal(t, 100, lipgloss.Width(status))

	menu := RenderMenuBar(100, "demo", false)
	assert.Contains(t, menu, "STOPPED")
	assert.Contains(t, menu, "Source: demo")
}

func TestRenderRadarPanel_FixedHeight(t *testing.T) {
	content := strings.Repeat("x\n", 30) + "x"
	out := RenderRadarPanel(40, 12, content, "rings", true)
	assert.Len(t, strings.Split(out, "\n"), 12)

	out = RenderRadarPanel(40, 12, "x", "rings", false)
	assert.Len(t, strings.Split(out, "\n"), 12)
	assert.Contains(t, out, "rings")
}

func TestClampLines(t *testing.T) {
	assert.Equal(t, "a\nb", clampLines("a\nb\nc", 2))
	assert.Equal(t, "a\n\n", clampLines("a", 3))
}
