package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/gas-sensor-assistant/internal/sensor"
)

const probeTimeout = 10 * time.Second

// Status is the outcome of the most recent store probe.
type Status struct {
	State     string    `json:"state"` // "unknown", "up" or "down"
	CheckedAt time.Time `json:"checkedAt,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Scheduler periodically pings the sensor store and keeps the last result.
type Scheduler struct {
	scheduler *gocron.Scheduler
	pinger    sensor.Pinger
	interval  time.Duration
	onProbe   func(up bool)

	mu     sync.RWMutex
	status Status
}

// New creates a new Scheduler. onProbe, if set, is called after each probe.
func New(pinger sensor.Pinger, interval time.Duration, onProbe func(up bool)) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		pinger:    pinger,
		interval:  interval,
		onProbe:   onProbe,
		status:    Status{State: "unknown"},
	}
}

// Start schedules the probe job and starts the underlying scheduler. The
// first probe runs immediately.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		slog.Info("scheduler: store probe disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		defer cancel()
		s.Probe(ctx)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Probe pings the store once and records the result.
func (s *Scheduler) Probe(ctx context.Context) Status {
	st := Status{State: "up", CheckedAt: time.Now().UTC()}
	if err := s.pinger.Ping(ctx); err != nil {
		st.State = "down"
		st.Error = err.Error()
		slog.Warn("scheduler: store probe failed", "error", err)
	}

	s.mu.Lock()
	prev := s.status.State
	s.status = st
	s.mu.Unlock()

	if prev != st.State {
		slog.Info("scheduler: store state changed", "from", prev, "to", st.State)
	}
	if s.onProbe != nil {
		s.onProbe(st.State == "up")
	}
	return st
}

// Status returns the last recorded probe result.
func (s *Scheduler) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Stop stops the scheduler and cancels any future probes.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
