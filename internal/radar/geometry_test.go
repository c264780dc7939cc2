package radar

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAngle(t *testing.T) {
	assert.InDelta(t, 0, NormalizeAngle(2*math.Pi), 1e-12)
	assert.InDelta(t, 3*math.Pi/2, NormalizeAngle(-math.Pi/2), 1e-12)
	assert.InDelta(t, math.Pi, NormalizeAngle(5*math.Pi), 1e-12)
}

func TestCellAngle(t *testing.T) {
	assert.InDelta(t, 0, CellAngle(10, 5, 10, 10), 1e-12)          // north
	assert.InDelta(t, math.Pi/2, CellAngle(15, 10, 10, 10), 1e-12) // east
	assert.InDelta(t, math.Pi, CellAngle(10, 15, 10, 10), 1e-12)   // south
}

func TestCellDistance_AspectCorrected(t *testing.T) {
	assert.InDelta(t, 4, CellDistance(14, 10, 10, 10), 1e-12)
	assert.InDelta(t, 4, CellDistance(10, 12, 10, 10), 1e-12)
}

func TestProjectToCell(t *testing.T) {
	col, row := ProjectToCell(Point{X: 150, Y: 150}, 150, 20, 30, 12)
	assert.Equal(t, 30, col)
	assert.Equal(t, 12, row)

	col, row = ProjectToCell(Point{X: 300, Y: 150}, 150, 20, 30, 12)
	assert.Equal(t, 50, col)
	assert.Equal(t, 12, row)

	col, row = ProjectToCell(Point{X: 150, Y: 0}, 150, 20, 30, 12)
	assert.Equal(t, 30, col)
	assert.Equal(t, 2, row)
}

func TestRingLabel(t *testing.T) {
	assert.Equal(t, 2.5, RingLabel(0, 4, 10))
	assert.Equal(t, 10.0, RingLabel(3, 4, 10))
}

func TestSweep(t *testing.T) {
	s := NewSweep()
	s.advance(time.Second) // 15 RPM = 90° per second
	assert.InDelta(t, 90, s.Degrees(), 1e-9)

	assert.InDelta(t, 1, s.Intensity(math.Pi/2), 1e-9)
	assert.Equal(t, 0.0, s.Intensity(math.Pi))

	s.Reset()
	assert.Equal(t, 0.0, s.Angle)

	var stopped *Sweep
	assert.Equal(t, 0.0, stopped.Intensity(0))
}
