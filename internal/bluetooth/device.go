package bluetooth

import (
	"math"

	"bluewave-radar.klederson.com/internal/config"
)

// ScannedDevice is one discovered BLE peripheral.
type ScannedDevice struct {
	ID       string
	Name     string
	Distance float64 // Estimated distance in meters, [0, MaxDistance]
	Vendor   string  // Manufacturer label from advertisement data, may be empty
}

// DisplayName returns the device name or the placeholder if empty.
func (d ScannedDevice) DisplayName() string {
	return ResolveName(d.Name)
}

// Initial returns the first letter of the display name, used as the radar blip.
func (d ScannedDevice) Initial() string {
	for _, r := range d.DisplayName() {
		return string(r)
	}
	return "?"
}

// ResolveName substitutes the placeholder for a missing name.
func ResolveName(name string) string {
	if name == "" {
		return config.UnknownName
	}
	return name
}

// IsKnownName reports whether name is a real advertised name rather than
// the placeholder.
func IsKnownName(name string) bool {
	return name != "" && name != config.UnknownName
}

// Estimator converts RSSI to distance with the log-distance path loss model.
type Estimator struct {
	ReferencePower   float64 // RSSI at 1 meter
	PathLossExponent float64
	MaxDistance      float64
}

// NewEstimator builds an Estimator from configuration.
func NewEstimator(cfg config.EstimatorConfig) Estimator {
	return Estimator{
		ReferencePower:   cfg.ReferencePower,
		PathLossExponent: cfg.PathLossExponent,
		MaxDistance:      cfg.MaxDistance,
	}
}

// DefaultEstimator returns the -59 dBm, n=2, 10 m estimator.
func DefaultEstimator() Estimator {
	return NewEstimator(config.Default().Estimator)
}

// Distance estimates meters from rssi.
// Formula: d = min(max, 10^((referencePower - rssi) / (10 * n)))
func (e Estimator) Distance(rssi int) float64 {
	d := math.Pow(10, (e.ReferencePower-float64(rssi))/(10*e.PathLossExponent))
	return math.Min(e.MaxDistance, d)
}

// Admit reports whether a reading at distance may enter the registry.
// Anything past the cap is dropped. A reading pinned exactly at the cap is
// kept only for a device with a real name; unnamed far-field hits are noise.
func (e Estimator) Admit(distance float64, name string) bool {
	if distance > e.MaxDistance {
		return false
	}
	if distance == e.MaxDistance && !IsKnownName(name) {
		return false
	}
	return true
}
