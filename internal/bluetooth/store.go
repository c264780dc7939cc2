package bluetooth

import (
	"sync"

	"github.com/sirupsen/logrus"

	"bluewave-radar.klederson.com/internal/gyro"
)

// OrientationReader exposes the viewer's current gyroscope sample and the
// calibration offset taken at scan start. *gyro.Tracker satisfies it.
type OrientationReader interface {
	Current() gyro.Sample
	Offset() gyro.Sample
}

// DeviceStore is the device registry. Entries keep first-sight order and
// live until Reset; there is no eviction while a scan is running. Each
// entry has a bearing anchor written once, when the device is first seen.
type DeviceStore struct {
	mu      sync.RWMutex
	est     Estimator
	orient  OrientationReader
	logger  logrus.FieldLogger
	order   []string
	devices map[string]*ScannedDevice
	anchors map[string]gyro.Sample
}

// NewDeviceStore creates a new empty DeviceStore.
func NewDeviceStore(est Estimator, orient OrientationReader, logger logrus.FieldLogger) *DeviceStore {
	return &DeviceStore{
		est:     est,
		orient:  orient,
		logger:  logger,
		devices: make(map[string]*ScannedDevice),
		anchors: make(map[string]gyro.Sample),
	}
}

// Observe feeds one discovery event through the estimation pipeline.
// Events without RSSI are ignored. Returns whether the reading was admitted.
func (s *DeviceStore) Observe(msg DeviceDiscoveredMsg) bool {
	if !msg.HasRSSI {
		return false
	}
	distance := s.est.Distance(int(msg.RSSI))
	if !s.Upsert(msg.ID, distance, msg.Name) {
		s.logger.WithFields(logrus.Fields{
			"device":   msg.ID,
			"rssi":     msg.RSSI,
			"distance": distance,
		}).Debug("reading rejected")
		return false
	}
	if msg.Vendor != "" {
		s.SetVendor(msg.ID, msg.Vendor)
	}
	return true
}

// Upsert adds or refreshes a device. Inadmissible readings leave the
// registry untouched and return false. On first sight the current
// orientation, z corrected by the calibration offset, becomes the device's
// anchor; later updates never move it.
func (s *DeviceStore) Upsert(id string, distance float64, name string) bool {
	if !s.est.Admit(distance, name) {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.devices[id]; ok {
		existing.Distance = distance
		existing.Name = ResolveName(name)
		return true
	}

	cur := s.orient.Current()
	off := s.orient.Offset()
	anchor := gyro.Sample{X: cur.X, Y: cur.Y, Z: cur.Z - off.Z}

	s.devices[id] = &ScannedDevice{
		ID:       id,
		Name:     ResolveName(name),
		Distance: distance,
	}
	s.anchors[id] = anchor
	s.order = append(s.order, id)

	s.logger.WithFields(logrus.Fields{
		"device":   id,
		"distance": distance,
		"anchor_z": anchor.Z,
	}).Debug("device registered")
	return true
}

// SetVendor attaches a manufacturer label to an existing entry.
func (s *DeviceStore) SetVendor(id, vendor string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d, ok := s.devices[id]; ok {
		d.Vendor = vendor
	}
}

// Reset clears all devices and anchors.
func (s *DeviceStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.devices = make(map[string]*ScannedDevice)
	s.anchors = make(map[string]gyro.Sample)
	s.order = nil
}

// Snapshot returns a copy of all devices in registry order.
func (s *DeviceStore) Snapshot() []ScannedDevice {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]ScannedDevice, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, *s.devices[id])
	}
	return result
}

// Get returns a copy of one device.
func (s *DeviceStore) Get(id string) (ScannedDevice, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.devices[id]
	if !ok {
		return ScannedDevice{}, false
	}
	return *d, true
}

// Anchor returns the orientation recorded when id was first seen.
func (s *DeviceStore) Anchor(id string) (gyro.Sample, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.anchors[id]
	return a, ok
}

// Anchors returns a copy of the anchor table.
func (s *DeviceStore) Anchors() map[string]gyro.Sample {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]gyro.Sample, len(s.anchors))
	for id, a := range s.anchors {
		out[id] = a
	}
	return out
}

// Count returns the total number of tracked devices.
func (s *DeviceStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.devices)
}
