package bluetooth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimator_ReferencePowerIsOneMeter(t *testing.T) {
	assert.Equal(t, 1.0, DefaultEstimator().Distance(-59))
}

func TestEstimator_CapReachedAtMinus79(t *testing.T) {
	// 10^((-59 - -79) / 20) = 10^1
	assert.Equal(t, 10.0, DefaultEstimator().Distance(-79))
}

func TestEstimator_ClampsFarReadings(t *testing.T) {
	est := DefaultEstimator()
	for _, rssi := range []int{-80, -95, -127, -1000} {
		assert.Equal(t, 10.0, est.Distance(rssi), "rssi %d", rssi)
	}
}

func TestEstimator_MonotonicAndBounded(t *testing.T) {
	est := DefaultEstimator()
	prev := est.Distance(-200)
	for rssi := -199; rssi <= -59; rssi++ {
		d := est.Distance(rssi)
		assert.GreaterOrEqual(t, d, 0.0)
		assert.LessOrEqual(t, d, 10.0)
		assert.LessOrEqual(t, d, prev, "distance must not grow as rssi rises (rssi %d)", rssi)
		prev = d
	}
}

func TestEstimator_StrongSignalUnderOneMeter(t *testing.T) {
	est := DefaultEstimator()
	assert.InDelta(t, 0.1, est.Distance(-39), 1e-12)
	assert.Greater(t, est.Distance(20), 0.0)
}

func TestEstimator_Admit(t *testing.T) {
	est := DefaultEstimator()

	tests := []struct {
		name     string
		distance float64
		devName  string
		want     bool
	}{
		{"inside range unnamed", 4.2, "", true},
		{"inside range placeholder", 4.2, "Unknown", true},
		{"inside range named", 4.2, "Phone-A", true},
		{"at cap named", 10, "Phone-A", true},
		{"at cap placeholder", 10, "Unknown", false},
		{"at cap unnamed", 10, "", false},
		{"past cap named", 10.01, "Phone-A", false},
		{"zero", 0, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, est.Admit(tt.distance, tt.devName))
		})
	}
}

func TestScannedDevice_Names(t *testing.T) {
	assert.Equal(t, "Unknown", ScannedDevice{}.DisplayName())
	assert.Equal(t, "U", ScannedDevice{}.Initial())
	assert.Equal(t, "P", ScannedDevice{Name: "Pixel"}.Initial())
	assert.Equal(t, "É", ScannedDevice{Name: "Écouteurs"}.Initial())
	assert.False(t, IsKnownName("Unknown"))
	assert.True(t, IsKnownName("Phone-A"))
}

func TestVendorOf(t *testing.T) {
	assert.Equal(t, "Apple", vendorOf([]uint16{0xFFFF, 0x004C}))
	assert.Equal(t, "", vendorOf(nil))
	assert.Equal(t, "", LookupManufacturer(0xFFFF))
}
