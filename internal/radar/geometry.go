package radar

import (
	"math"

	"bluewave-radar.klederson.com/internal/config"
)

// CellDistance computes the distance from a cell to the radar center,
// accounting for terminal aspect ratio.
func CellDistance(col, row, centerX, centerY int) float64 {
	dx := float64(col - centerX)
	dy := float64(row-centerY) / config.AspectRatio
	return math.Sqrt(dx*dx + dy*dy)
}

// CellAngle computes the angle from center to a cell.
// Returns radians in [0, 2π), where 0=north, increasing clockwise.
func CellAngle(col, row, centerX, centerY int) float64 {
	dx := float64(col - centerX)
	dy := float64(row-centerY) / config.AspectRatio
	angle := math.Atan2(dx, -dy) // 0=north, clockwise
	if angle < 0 {
		angle += 2 * math.Pi
	}
	return angle
}

// RingChar returns the appropriate character for a ring at the given angle.
func RingChar(angle float64) rune {
	sector := int(math.Round(NormalizeAngle(angle)/(math.Pi/4))) % 8

	switch sector {
	case 0, 4: // North, South
		return '-'
	case 1, 5: // NE, SW
		return '/'
	case 2, 6: // East, West
		return '|'
	case 3, 7: // SE, NW
		return '\\'
	default:
		return '.'
	}
}

// NormalizeAngle wraps an angle to [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// ProjectToCell maps a viewport point onto the terminal grid. radiusCells is
// the radar radius in columns; rows are squashed by the aspect ratio.
func ProjectToCell(p Point, viewportRadius, radiusCells float64, centerX, centerY int) (col, row int) {
	scale := radiusCells / viewportRadius
	dx := (p.X - viewportRadius) * scale
	dy := (p.Y - viewportRadius) * scale * config.AspectRatio
	return centerX + int(math.Round(dx)), centerY + int(math.Round(dy))
}

// RingLabel returns the distance a ring stands for, in meters.
func RingLabel(ring, rings int, maxDistance float64) float64 {
	return float64(ring+1) / float64(rings) * maxDistance
}
