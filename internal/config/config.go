package config

import "time"

const (
	// Radar display
	AspectRatio   = 0.5  // Terminal char aspect correction (chars are ~2:1 tall)
	RingCount     = 4    // Number of concentric rings
	SweepSpeedRPM = 15   // One rotation every 4 seconds
	SweepTrailDeg = 60.0 // Sweep trail angle in degrees
	TargetFPS     = 30   // Target frames per second

	// Detail panel
	HistorySize = 64 // Distance samples kept per device for the sparkline

	// Demo mode
	DemoDeviceMin = 8  // Minimum fake devices
	DemoDeviceMax = 12 // Maximum fake devices
	DemoInterval  = 200 * time.Millisecond

	// App
	AppName    = "BLUEWAVE-RADAR"
	AppVersion = "1.0"

	// UnknownName is the placeholder shown for devices that advertise no name.
	UnknownName = "Unknown"
)
