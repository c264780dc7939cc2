package gyro

import (
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_CalibrateSnapshotsCurrent(t *testing.T) {
	tr := NewTracker()
	tr.Update(Sample{X: 1, Y: 2, Z: 0.5})

	off := tr.Calibrate()
	assert.Equal(t, Sample{X: 1, Y: 2, Z: 0.5}, off)
	assert.Equal(t, off, tr.Offset())

	tr.Update(Sample{Z: 0.8})
	assert.Equal(t, Sample{X: 1, Y: 2, Z: 0.5}, tr.Offset(), "offset only moves on Calibrate")
	assert.InDelta(t, 0.3, tr.Yaw(), 1e-12)
}

func TestTracker_ZeroValue(t *testing.T) {
	tr := NewTracker()
	assert.Equal(t, Sample{}, tr.Current())
	assert.Equal(t, Sample{}, tr.Offset())
	assert.Equal(t, 0.0, tr.Yaw())
}

func TestMockSource_Deterministic(t *testing.T) {
	base := time.Unix(1000, 0)
	m := &MockSource{start: base, now: func() time.Time { return base.Add(2 * time.Second) }}

	s, err := m.Next()
	require.NoError(t, err)
	assert.InDelta(t, 0.3*math.Sin(0.5), s.Z, 1e-12)
	assert.Equal(t, "mock", m.Name())
	assert.NoError(t, m.Close())
}

func TestRawToRadPerSec(t *testing.T) {
	// 131 counts is 1°/s at ±250°/s
	assert.InDelta(t, math.Pi/180, 131*rawToRadPerSec(0), 1e-12)
	assert.InDelta(t, math.Pi/180, 16.4*rawToRadPerSec(3), 1e-12)
}

func TestNewMPU9250Source_InvalidRange(t *testing.T) {
	_, err := NewMPU9250Source("/dev/spidev0.0", "8", 7)
	assert.Error(t, err)
}

type fakeSource struct {
	mu     sync.Mutex
	calls  int
	failAt int
	closed bool
}

func (f *fakeSource) Next() (Sample, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls == f.failAt {
		return Sample{}, errors.New("bus glitch")
	}
	return Sample{Z: float64(f.calls)}, nil
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

type recordingSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

func (r *recordingSender) Send(msg tea.Msg) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recordingSender) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.msgs)
}

func TestPoller_ForwardsSamplesAndSkipsErrors(t *testing.T) {
	src := &fakeSource{failAt: 1}
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	p := NewPoller(src, 5*time.Millisecond, logger)
	sender := &recordingSender{}
	p.Start(sender)

	require.Eventually(t, func() bool { return sender.count() >= 3 }, time.Second, 5*time.Millisecond)
	require.NoError(t, p.Stop())

	sender.mu.Lock()
	first := sender.msgs[0].(SampleMsg)
	sender.mu.Unlock()
	assert.Equal(t, 2.0, first.Sample.Z, "failed first read is skipped")

	src.mu.Lock()
	assert.True(t, src.closed)
	src.mu.Unlock()
}

func TestPoller_StopWithoutStart(t *testing.T) {
	src := &fakeSource{}
	p := NewPoller(src, time.Millisecond, logrus.New())
	assert.NoError(t, p.Stop())
}
