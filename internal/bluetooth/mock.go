package bluetooth

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"bluewave-radar.klederson.com/internal/config"
)

var mockDeviceTemplates = []struct {
	Name   string
	Vendor string
}{
	{"iPhone 15 Pro", "Apple"},
	{"Galaxy S24 Ultra", "Samsung"},
	{"Pixel 9 Pro", "Google"},
	{"AirPods Pro", "Apple"},
	{"MacBook Air", "Apple"},
	{"Apple Watch", "Apple"},
	{"Fitbit Charge 6", "Fitbit"},
	{"Tile Tracker", "Tile"},
	{"Tesla Model 3", ""},
	{"iPad Pro", "Apple"},
	{"OnePlus Buds 3", ""},
	{"", "Xiaomi"},
	{"", "Espressif"},
	{"", ""},
	{"", ""},
}

type mockDevice struct {
	id        string
	name      string
	vendor    string
	baseRSSI  float64
	phase     float64
	amplitude float64
	active    bool
}

// MockScanner generates fake advertisements for demo mode.
type MockScanner struct {
	devices []mockDevice
	rng     *rand.Rand
	cancel  context.CancelFunc
}

// NewMockScanner creates a mock scanner with random fake devices.
func NewMockScanner(seed int64) *MockScanner {
	rng := rand.New(rand.NewSource(seed))

	total := config.DemoDeviceMin + rng.Intn(config.DemoDeviceMax-config.DemoDeviceMin+1)
	if total > len(mockDeviceTemplates) {
		total = len(mockDeviceTemplates)
	}
	perm := rng.Perm(len(mockDeviceTemplates))

	devices := make([]mockDevice, total)
	for i := 0; i < total; i++ {
		tmpl := mockDeviceTemplates[perm[i]]
		devices[i] = mockDevice{
			id:        randomMAC(rng),
			name:      tmpl.Name,
			vendor:    tmpl.Vendor,
			baseRSSI:  -45 - rng.Float64()*35, // -45 to -80 dBm
			phase:     rng.Float64() * 2 * math.Pi,
			amplitude: 2 + rng.Float64()*6,
			active:    true,
		}
	}

	return &MockScanner{devices: devices, rng: rng}
}

// Start begins the mock scanner.
func (s *MockScanner) Start(sender Sender) error {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go s.loop(ctx, sender)
	return nil
}

func (s *MockScanner) loop(ctx context.Context, sender Sender) {
	ticker := time.NewTicker(config.DemoInterval)
	defer ticker.Stop()

	t := 0.0
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t += config.DemoInterval.Seconds()
			for _, msg := range s.emit(t) {
				sender.Send(msg)
			}
		}
	}
}

// emit produces one round of advertisements at time t seconds.
func (s *MockScanner) emit(t float64) []DeviceDiscoveredMsg {
	var out []DeviceDiscoveredMsg
	for i := range s.devices {
		d := &s.devices[i]

		// Randomly toggle device visibility (appear/disappear)
		if s.rng.Float64() < 0.005 {
			d.active = !d.active
		}
		if !d.active {
			continue
		}

		// Sinusoidal RSSI fluctuation + noise
		rssi := d.baseRSSI + d.amplitude*math.Sin(t*0.5+d.phase) + (s.rng.Float64()-0.5)*4

		out = append(out, DeviceDiscoveredMsg{
			ID:      d.id,
			Name:    d.name,
			RSSI:    int16(rssi),
			HasRSSI: s.rng.Float64() >= 0.02, // the odd advertisement arrives without RSSI
			Vendor:  d.vendor,
		})
	}
	return out
}

// Stop halts the mock scanner.
func (s *MockScanner) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

func randomMAC(rng *rand.Rand) string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = byte(rng.Intn(256))
	}
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X", b[0], b[1], b[2], b[3], b[4], b[5])
}
