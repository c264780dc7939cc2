package gyro

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

// Sender accepts messages for the event loop. *tea.Program satisfies it.
type Sender interface {
	Send(msg tea.Msg)
}

// Poller reads a Source at a fixed cadence and forwards samples as
// SampleMsg. Failed reads are logged and skipped.
type Poller struct {
	source   Source
	interval time.Duration
	logger   logrus.FieldLogger
	cancel   context.CancelFunc
	done     chan struct{}
}

// NewPoller creates a poller for source.
func NewPoller(source Source, interval time.Duration, logger logrus.FieldLogger) *Poller {
	return &Poller{
		source:   source,
		interval: interval,
		logger:   logger.WithField("source", source.Name()),
	}
}

// Start begins polling in a goroutine.
func (p *Poller) Start(s Sender) {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})

	go p.loop(ctx, s)
}

func (p *Poller) loop(ctx context.Context, s Sender) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sample, err := p.source.Next()
			if err != nil {
				p.logger.WithError(err).Warn("gyro read failed")
				continue
			}
			s.Send(SampleMsg{Sample: sample})
		}
	}
}

// Stop halts polling, waits for the loop to exit and closes the source.
func (p *Poller) Stop() error {
	if p.cancel != nil {
		p.cancel()
		<-p.done
		p.cancel = nil
	}
	return p.source.Close()
}
