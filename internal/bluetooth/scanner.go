package bluetooth

import (
	"fmt"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"tinygo.org/x/bluetooth"
)

// Sender accepts messages for the event loop. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// DeviceDiscoveredMsg is sent via tea.Program.Send when an advertisement
// is received.
type DeviceDiscoveredMsg struct {
	ID      string
	Name    string
	RSSI    int16
	HasRSSI bool   // false when the stack reported no signal strength
	Vendor  string // manufacturer label, display only
}

// ScanErrorMsg reports that the radio stopped delivering advertisements.
type ScanErrorMsg struct {
	Err error
}

func (e ScanErrorMsg) Error() string {
	return e.Err.Error()
}

// BLEScanner handles Bluetooth Low Energy scanning.
type BLEScanner struct {
	adapter *bluetooth.Adapter
	logger  logrus.FieldLogger
	running atomic.Bool
}

// NewBLEScanner creates a scanner on the named adapter (e.g. "hci1").
func NewBLEScanner(adapterID string, logger logrus.FieldLogger) *BLEScanner {
	return &BLEScanner{
		adapter: openAdapter(adapterID),
		logger:  logger,
	}
}

// Start begins BLE scanning in a goroutine. Discovered devices are sent
// as tea messages via sender.Send().
func (s *BLEScanner) Start(sender Sender) error {
	if err := s.adapter.Enable(); err != nil {
		return fmt.Errorf("failed to enable BLE adapter: %w (try running with sudo or setcap cap_net_admin+ep)", err)
	}

	s.running.Store(true)
	go func() {
		err := s.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			if !s.running.Load() {
				return
			}
			sender.Send(discoveryFromScan(result))
		})
		if err != nil {
			s.logger.WithError(err).Error("BLE scan stopped")
			sender.Send(ScanErrorMsg{Err: err})
		}
	}()

	s.logger.Info("BLE scanner started")
	return nil
}

func discoveryFromScan(result bluetooth.ScanResult) DeviceDiscoveredMsg {
	var ids []uint16
	for _, m := range result.ManufacturerData() {
		ids = append(ids, m.CompanyID)
	}

	return DeviceDiscoveredMsg{
		ID:   result.Address.String(),
		Name: result.LocalName(),
		RSSI: result.RSSI,
		// tinygo reports 0 when the controller gave no RSSI
		HasRSSI: result.RSSI != 0,
		Vendor:  vendorOf(ids),
	}
}

// Stop halts the BLE scanner.
func (s *BLEScanner) Stop() {
	if s.running.Swap(false) {
		_ = s.adapter.StopScan()
		s.logger.Info("BLE scanner stopped")
	}
}
