package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/gas-sensor-assistant/internal/sensor"
)

var (
	// ErrCircuitOpen is returned without touching the store while the
	// breaker is open.
	ErrCircuitOpen = errors.New("circuit breaker open")

	errUnexpectedResult = errors.New("unexpected result type from circuit breaker")
)

// BreakerOptions controls when reads stop reaching a failing store.
type BreakerOptions struct {
	// ConsecutiveFailures opens the breaker (default 5).
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before a trial read (default 30s).
	OpenTimeout time.Duration
	// OnStateChange is called on every transition, e.g. to export a gauge.
	OnStateChange func(name string, from, to gobreaker.State)
}

// BreakerSource wraps a store with a circuit breaker. Reads are never retried.
type BreakerSource struct {
	next    sensor.Store
	circuit *gobreaker.CircuitBreaker
}

// NewBreakerSource wraps next with a breaker named after the store.
func NewBreakerSource(name string, next sensor.Store, opts BreakerOptions) *BreakerSource {
	failures := opts.ConsecutiveFailures
	if failures == 0 {
		failures = 5
	}
	openTimeout := opts.OpenTimeout
	if openTimeout <= 0 {
		openTimeout = 30 * time.Second
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     openTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("store circuit breaker changed state", "breaker", name, "from", from.String(), "to", to.String())
			if opts.OnStateChange != nil {
				opts.OnStateChange(name, from, to)
			}
		},
	})

	return &BreakerSource{
		next:    next,
		circuit: cb,
	}
}

// FetchAll reads through the breaker.
func (b *BreakerSource) FetchAll(ctx context.Context) (sensor.Snapshot, error) {
	result, err := b.circuit.Execute(func() (interface{}, error) {
		return b.next.FetchAll(ctx)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", ErrCircuitOpen, err)
		}
		return nil, err
	}

	snap, ok := result.(sensor.Snapshot)
	if !ok {
		return nil, errUnexpectedResult
	}
	return snap, nil
}

// Ping bypasses the breaker so health probes see the real store state.
func (b *BreakerSource) Ping(ctx context.Context) error {
	return b.next.Ping(ctx)
}

// State returns the current breaker state.
func (b *BreakerSource) State() gobreaker.State {
	return b.circuit.State()
}
