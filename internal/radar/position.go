package radar

import (
	"math"

	"bluewave-radar.klederson.com/internal/bluetooth"
	"bluewave-radar.klederson.com/internal/config"
	"bluewave-radar.klederson.com/internal/gyro"
)

// Point is a viewport-local coordinate. (0,0) is the top-left corner and
// (R,R) the center of a viewport of radius R.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Bearing returns the screen angle of p around the center of a viewport of
// radius r, in radians. 0 points right (+x) and angles grow towards +y.
func (p Point) Bearing(r float64) float64 {
	return NormalizeAngle(math.Atan2(p.Y-r, p.X-r))
}

// Radius returns the distance of p from the center of a viewport of radius r.
func (p Point) Radius(r float64) float64 {
	return math.Hypot(p.X-r, p.Y-r)
}

// Resolver places devices inside a circular viewport from their estimated
// distance and the viewer's rotation since each device was first seen.
type Resolver struct {
	Radius      float64 // viewport radius R
	IconBuffer  float64 // subtracted from the scaled distance so blips clear the center icon
	Sensitivity float64 // multiplier on the rotation correction, a display tuning knob
	MaxDistance float64 // distance mapped to the viewport edge
}

// NewResolver builds a Resolver from configuration.
func NewResolver(rc config.RadarConfig, maxDistance float64) Resolver {
	return Resolver{
		Radius:      rc.ViewportRadius,
		IconBuffer:  rc.IconBuffer,
		Sensitivity: rc.AngleSensitivity,
		MaxDistance: maxDistance,
	}
}

// Center returns the viewport center.
func (r Resolver) Center() Point {
	return Point{X: r.Radius, Y: r.Radius}
}

// SlotAngle returns the evenly spaced baseline angle, in degrees, for the
// device at index among count devices. A lone device sits at 0.
func SlotAngle(index, count int) float64 {
	if count <= 1 {
		return 0
	}
	return float64(index) / float64(count) * 360
}

// Position resolves one device. snapshot is the full registry in registry
// order and decides the device's baseline slot. Without an anchor the
// device is drawn at the center.
func (r Resolver) Position(d bluetooth.ScannedDevice, snapshot []bluetooth.ScannedDevice,
	current, offset gyro.Sample, anchor gyro.Sample, hasAnchor bool) Point {
	if !hasAnchor {
		return r.Center()
	}
	return r.place(d, indexOf(snapshot, d.ID), len(snapshot), current, offset, anchor)
}

// Frame recomputes every device position from scratch. Devices without an
// anchor land on the center.
func (r Resolver) Frame(snapshot []bluetooth.ScannedDevice, anchors map[string]gyro.Sample,
	current, offset gyro.Sample) map[string]Point {
	out := make(map[string]Point, len(snapshot))
	for i, d := range snapshot {
		anchor, ok := anchors[d.ID]
		if !ok {
			out[d.ID] = r.Center()
			continue
		}
		out[d.ID] = r.place(d, i, len(snapshot), current, offset, anchor)
	}
	return out
}

func (r Resolver) place(d bluetooth.ScannedDevice, index, count int, current, offset, anchor gyro.Sample) Point {
	initialAngle := anchor.Z - offset.Z
	calibratedAngle := current.Z - offset.Z
	angleDifference := calibratedAngle - initialAngle

	angle := (SlotAngle(index, count) - angleDifference*r.Sensitivity) * math.Pi / 180

	scaled := d.Distance / r.MaxDistance * r.Radius
	separation := math.Max(0, scaled-r.IconBuffer)

	return Point{
		X: r.Radius + separation*math.Cos(angle),
		Y: r.Radius + separation*math.Sin(angle),
	}
}

// indexOf returns the registry position of id, or -1.
func indexOf(snapshot []bluetooth.ScannedDevice, id string) int {
	for i, d := range snapshot {
		if d.ID == id {
			return i
		}
	}
	return -1
}
