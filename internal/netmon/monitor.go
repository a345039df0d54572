// Package netmon watches connectivity and bandwidth and turns them into an
// advisory banner. It never blocks or retries operations.
package netmon

import (
	"context"
	"sync"
	"time"

	"github.com/julianstephens/hermione/internal/constants"
	"github.com/julianstephens/hermione/internal/logger"
)

// Sampler estimates the current bandwidth in Mbps. ok is false when no
// estimate is available.
type Sampler interface {
	Sample(ctx context.Context) (mbps float64, ok bool)
}

// Signals delivers online/offline transitions. Subscribe returns the
// function that detaches the listener.
type Signals interface {
	Subscribe(fn func(online bool)) (unsubscribe func())
}

// Status is a snapshot of the monitor
type Status struct {
	Online bool
	// Mbps is nil until a sample succeeds
	Mbps *float64
}

// Strong reports a known estimate above threshold
func (s Status) Strong(threshold float64) bool {
	return s.Mbps != nil && *s.Mbps > threshold
}

// Monitor combines connectivity signals with periodic bandwidth samples
type Monitor struct {
	sampler   Sampler
	signals   Signals
	interval  time.Duration
	threshold float64

	mu          sync.Mutex
	status      Status
	onChange    func(Status)
	cancel      context.CancelFunc
	done        chan struct{}
	unsubscribe func()
}

// New builds a monitor. Zero interval and threshold fall back to the
// defaults; signals may be nil.
func New(sampler Sampler, signals Signals, interval time.Duration, threshold float64) *Monitor {
	if interval <= 0 {
		interval = constants.NetworkSampleInterval
	}
	if threshold <= 0 {
		threshold = constants.StrongConnectionMbps
	}
	return &Monitor{
		sampler:   sampler,
		signals:   signals,
		interval:  interval,
		threshold: threshold,
		status:    Status{Online: true},
	}
}

// OnChange registers a listener called after every status update
func (m *Monitor) OnChange(fn func(Status)) {
	m.mu.Lock()
	m.onChange = fn
	m.mu.Unlock()
}

// Start attaches the connectivity listener and launches the sampler. It is
// a no-op while running.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		return
	}

	if m.signals != nil {
		m.unsubscribe = m.signals.Subscribe(m.setOnline)
	}

	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})
	go m.run(ctx, m.done)
	logger.Debug("network monitor started", "interval", m.interval)
}

// Stop detaches the listener, stops the sampler and waits for it to exit.
// It is safe to call more than once.
func (m *Monitor) Stop() {
	m.mu.Lock()
	cancel, done, unsubscribe := m.cancel, m.done, m.unsubscribe
	m.cancel, m.done, m.unsubscribe = nil, nil, nil
	m.mu.Unlock()

	if cancel == nil {
		return
	}
	if unsubscribe != nil {
		unsubscribe()
	}
	cancel()
	<-done
	logger.Debug("network monitor stopped")
}

func (m *Monitor) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.sample(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.sample(ctx)
		}
	}
}

func (m *Monitor) sample(ctx context.Context) {
	mbps, ok := m.sampler.Sample(ctx)
	if ctx.Err() != nil {
		return
	}
	m.apply(func(s *Status) {
		if ok {
			s.Mbps = &mbps
		} else {
			s.Mbps = nil
		}
	})
}

func (m *Monitor) setOnline(online bool) {
	m.apply(func(s *Status) { s.Online = online })
}

func (m *Monitor) apply(fn func(s *Status)) {
	m.mu.Lock()
	fn(&m.status)
	snap := m.snapshotLocked()
	listener := m.onChange
	m.mu.Unlock()

	if listener != nil {
		listener(snap)
	}
}

func (m *Monitor) snapshotLocked() Status {
	snap := m.status
	if snap.Mbps != nil {
		v := *snap.Mbps
		snap.Mbps = &v
	}
	return snap
}

// Status returns a snapshot of the current status
func (m *Monitor) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

// Strong reports whether the connection is above the strength threshold
func (m *Monitor) Strong() bool {
	return m.Status().Strong(m.threshold)
}

// Banner returns the advisory text, or "" when the connection is fine.
// Offline wins over weak.
func (m *Monitor) Banner() string {
	return BannerFor(m.Status(), m.threshold)
}

// BannerFor computes the banner for a status
func BannerFor(s Status, threshold float64) string {
	switch {
	case !s.Online:
		return constants.MsgOffline
	case !s.Strong(threshold):
		return constants.MsgWeakConnection
	default:
		return ""
	}
}
