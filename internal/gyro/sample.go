// Package gyro tracks the orientation of the device holding the radar.
package gyro

// Sample is one 3-axis gyroscope reading. Values are taken at face value:
// whatever the source reports, rate or angle, flows into the position math.
type Sample struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Source is anything that can provide gyroscope samples over time.
type Source interface {
	Next() (Sample, error)
	Name() string
	Close() error
}

// SampleMsg carries a fresh sample into the bubbletea event loop.
type SampleMsg struct {
	Sample Sample
}
