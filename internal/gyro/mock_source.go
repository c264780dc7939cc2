package gyro

import (
	"math"
	"time"
)

// MockSource produces a slow, smooth yaw drift so demo mode shows the
// rotation correction at work.
type MockSource struct {
	start time.Time
	now   func() time.Time
}

// NewMockSource creates a mock gyroscope.
func NewMockSource() *MockSource {
	return &MockSource{start: time.Now(), now: time.Now}
}

func (m *MockSource) Next() (Sample, error) {
	elapsed := m.now().Sub(m.start).Seconds()

	return Sample{
		X: 0.05 * math.Sin(elapsed*1.3),
		Y: 0.05 * math.Cos(elapsed*0.9),
		Z: 0.3 * math.Sin(elapsed*0.25),
	}, nil
}

func (m *MockSource) Name() string { return "mock" }

func (m *MockSource) Close() error { return nil }
