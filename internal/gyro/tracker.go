package gyro

import "sync"

// Tracker holds the latest gyroscope sample and the calibration offset that
// zeroes out the viewer's absolute orientation.
type Tracker struct {
	mu      sync.RWMutex
	current Sample
	offset  Sample
}

// NewTracker creates a tracker with zero current sample and zero offset.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Update records a new sample as the current orientation.
func (t *Tracker) Update(s Sample) {
	t.mu.Lock()
	t.current = s
	t.mu.Unlock()
}

// Calibrate snapshots the current sample as the zero reference.
func (t *Tracker) Calibrate() Sample {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.offset = t.current
	return t.offset
}

// Current returns the latest sample.
func (t *Tracker) Current() Sample {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}

// Offset returns the calibration offset.
func (t *Tracker) Offset() Sample {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.offset
}

// Yaw returns the current z reading relative to the calibration offset.
func (t *Tracker) Yaw() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current.Z - t.offset.Z
}
