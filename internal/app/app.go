package app

import (
	"time"

	"bluewave-radar.klederson.com/internal/bluetooth"
	"bluewave-radar.klederson.com/internal/config"
	"bluewave-radar.klederson.com/internal/gyro"
	"bluewave-radar.klederson.com/internal/logging"
	"bluewave-radar.klederson.com/internal/radar"
	"bluewave-radar.klederson.com/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

// scanner is a device discovery backend: the BLE adapter or the demo feed.
type scanner interface {
	Start(s bluetooth.Sender) error
	Stop()
}

// shared holds state shared between the Bubble Tea model copies and main.go.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	store   *bluetooth.DeviceStore
	tracker *gyro.Tracker
	sweep   *radar.Sweep
	history map[string]*HistoryRing
	scanner scanner
	poller  *gyro.Poller
}

// Options configures a new model.
type Options struct {
	Config *config.Config
	Logger logrus.FieldLogger
	Gyro   gyro.Source // nil leaves the orientation at zero
}

// AppModel is the root Bubble Tea model for the radar.
type AppModel struct {
	width  int
	height int

	scanning   bool
	demoMode   bool
	adapter    string
	cursor     int
	detailOpen bool
	scanErr    error

	cfg      *config.Config
	resolver radar.Resolver
	logger   logrus.FieldLogger
	gyroSrc  gyro.Source

	shared *shared

	// Recomputed every tick
	devices   []bluetooth.ScannedDevice
	positions map[string]radar.Point
}

// New creates a new AppModel with a scan session already running.
func New(opts Options) AppModel {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	tracker := gyro.NewTracker()
	est := bluetooth.NewEstimator(cfg.Estimator)

	m := AppModel{
		demoMode: cfg.Scanner.Demo,
		adapter:  cfg.Scanner.Adapter,
		cfg:      cfg,
		resolver: radar.NewResolver(cfg.Radar, cfg.Estimator.MaxDistance),
		logger:   logger,
		gyroSrc:  opts.Gyro,
		shared: &shared{
			store:   bluetooth.NewDeviceStore(est, tracker, logger),
			tracker: tracker,
			sweep:   radar.NewSweep(),
			history: make(map[string]*HistoryRing),
		},
	}
	m.beginScan()
	return m
}

func (m AppModel) Init() tea.Cmd {
	return tickCmd()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		if m.scanning {
			m.shared.sweep.Update()
		}
		m.refresh()
		return m, tickCmd()

	case gyro.SampleMsg:
		if m.scanning {
			m.shared.tracker.Update(msg.Sample)
		}
		return m, nil

	case bluetooth.DeviceDiscoveredMsg:
		if m.scanning && m.shared.store.Observe(msg) {
			m.recordHistory(msg.ID)
		}
		return m, nil

	case bluetooth.ScanErrorMsg:
		m.logger.WithError(msg.Err).Error("scanner error")
		m.scanErr = msg.Err
		return m, nil
	}

	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "Q", "ctrl+c":
		m.StopScanners()
		return m, tea.Quit

	case "s", "S":
		if !m.scanning {
			m.beginScan()
			m.refresh()
		}

	case "p", "P":
		if m.scanning {
			m.scanning = false
			m.logger.WithField("devices", m.shared.store.Count()).Info("scan stopped")
		}

	case "c", "C":
		off := m.shared.tracker.Calibrate()
		m.logger.WithField("offset_z", off.Z).Info("gyro recalibrated")

	case "enter":
		if len(m.devices) > 0 {
			m.detailOpen = true
		}

	case "esc":
		m.detailOpen = false

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.devices)-1 {
			m.cursor++
		}

	case "home":
		m.cursor = 0

	case "end":
		if len(m.devices) > 0 {
			m.cursor = len(m.devices) - 1
		}
	}

	return m, nil
}

// beginScan starts a new scan session: the registry and histories are
// cleared and the current orientation becomes the zero reference.
func (m *AppModel) beginScan() {
	m.shared.store.Reset()
	m.shared.history = make(map[string]*HistoryRing)
	m.shared.sweep.Reset()
	off := m.shared.tracker.Calibrate()

	m.scanning = true
	m.cursor = 0
	m.detailOpen = false
	m.devices = nil
	m.positions = nil

	m.logger.WithField("offset_z", off.Z).Info("scan started")
}

// refresh takes a registry snapshot and resolves every position again.
func (m *AppModel) refresh() {
	st := m.shared
	m.devices = st.store.Snapshot()
	m.positions = m.resolver.Frame(m.devices, st.store.Anchors(), st.tracker.Current(), st.tracker.Offset())

	if m.cursor >= len(m.devices) {
		m.cursor = max(0, len(m.devices)-1)
	}
	if len(m.devices) == 0 {
		m.detailOpen = false
	}
}

func (m *AppModel) recordHistory(id string) {
	d, ok := m.shared.store.Get(id)
	if !ok {
		return
	}
	ring, ok := m.shared.history[id]
	if !ok {
		ring = NewHistoryRing(config.HistorySize)
		m.shared.history[id] = ring
	}
	ring.Push(d.Distance)
}

// selected returns the device under the cursor.
func (m AppModel) selected() (bluetooth.ScannedDevice, bool) {
	if m.cursor < 0 || m.cursor >= len(m.devices) {
		return bluetooth.ScannedDevice{}, false
	}
	return m.devices[m.cursor], true
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing radar..."
	}

	menuH := 1
	statusH := 1
	bodyH := m.height - menuH - statusH
	if bodyH < 5 {
		bodyH = 5
	}

	radarW := m.width * 3 / 4
	if radarW < 30 {
		radarW = 30
	}
	listW := m.width - radarW
	if listW < 15 {
		listW = 15
		radarW = m.width - listW
	}

	menuBar := ui.RenderMenuBar(m.width, m.sourceLabel(), m.scanning)

	sel, hasSel := m.selected()

	var leftPanel string
	if m.detailOpen && hasSel {
		leftPanel = ui.RenderDetailPanel(sel, m.detailInfo(sel), radarW, bodyH)
	} else {
		innerW := max(5, radarW-4)
		innerH := max(3, bodyH-4)

		var sweep *radar.Sweep
		if m.scanning {
			sweep = m.shared.sweep
		}
		selectedID := ""
		if hasSel {
			selectedID = sel.ID
		}

		radarContent := radar.Render(innerW, innerH, radar.View{
			Devices:        m.devices,
			Positions:      m.positions,
			ViewportRadius: m.resolver.Radius,
			Sweep:          sweep,
			SelectedID:     selectedID,
		})
		legend := radar.RenderLegend(innerW, m.cfg.Estimator.MaxDistance)
		leftPanel = ui.RenderRadarPanel(radarW, bodyH, radarContent, legend, m.scanning)
	}

	deviceList := ui.RenderDeviceList(m.devices, listW, bodyH, m.cursor)

	statusBar := ui.RenderStatusBar(m.width, m.scanning, len(m.devices),
		m.shared.tracker.Yaw(), m.shared.sweep.Degrees(), m.cfg.Estimator.MaxDistance)

	return ui.ComposeLayout(menuBar, leftPanel, deviceList, statusBar)
}

func (m AppModel) detailInfo(d bluetooth.ScannedDevice) ui.DetailInfo {
	info := ui.DetailInfo{MaxDistance: m.cfg.Estimator.MaxDistance}
	if anchor, ok := m.shared.store.Anchor(d.ID); ok {
		info.AnchorYaw = anchor.Z
	}
	if p, ok := m.positions[d.ID]; ok {
		info.Bearing = p.Bearing(m.resolver.Radius)
	}
	if ring, ok := m.shared.history[d.ID]; ok {
		info.History = ring.Values()
	}
	return info
}

func (m AppModel) sourceLabel() string {
	gyroName := "off"
	if m.gyroSrc != nil {
		gyroName = m.gyroSrc.Name()
	}
	src := m.adapter
	if m.demoMode {
		src = "demo"
	}
	if m.scanErr != nil {
		src += "!"
	}
	return src + "/" + gyroName
}

// StartScanners initializes and starts the discovery backend and the
// gyroscope poller. Must be called before p.Run().
func (m *AppModel) StartScanners(p bluetooth.Sender) error {
	if m.demoMode {
		m.shared.scanner = bluetooth.NewMockScanner(time.Now().UnixNano())
	} else {
		m.shared.scanner = bluetooth.NewBLEScanner(m.adapter, m.logger.WithField("adapter", m.adapter))
	}
	if err := m.shared.scanner.Start(p); err != nil {
		m.shared.scanner = nil
		return err
	}

	if m.gyroSrc != nil {
		m.shared.poller = gyro.NewPoller(m.gyroSrc, m.cfg.Gyro.Interval, m.logger)
		m.shared.poller.Start(p)
	}

	return nil
}

// StopScanners halts discovery and gyroscope polling.
func (m AppModel) StopScanners() {
	if m.shared.scanner != nil {
		m.shared.scanner.Stop()
		m.shared.scanner = nil
	}
	if m.shared.poller != nil {
		if err := m.shared.poller.Stop(); err != nil {
			m.logger.WithError(err).Warn("gyro source close failed")
		}
		m.shared.poller = nil
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(config.TargetFPS), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
