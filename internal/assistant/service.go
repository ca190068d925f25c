package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/i474232898/gas-sensor-assistant/internal/sensor"
)

// DefaultFetchTimeout bounds a store read when none is configured.
const DefaultFetchTimeout = 5 * time.Second

// Outcomes reported to the Observer.
const (
	OutcomeStatic   = "static"
	OutcomeAnswered = "answered"
	OutcomeNoData   = "no_data"
	OutcomeError    = "error"
)

// Observer receives per-request measurements. metrics.Metrics implements it.
type Observer interface {
	ObserveFulfillment(intent, outcome string)
	ObserveStoreRead(elapsed time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveFulfillment(string, string)     {}
func (nopObserver) ObserveStoreRead(time.Duration, error) {}

// Service answers intents from the latest sensor readings.
type Service struct {
	source       sensor.Source
	fetchTimeout time.Duration
	observer     Observer
}

// NewService creates a new Service. A non-positive timeout falls back to
// DefaultFetchTimeout.
func NewService(source sensor.Source, fetchTimeout time.Duration) *Service {
	if fetchTimeout <= 0 {
		fetchTimeout = DefaultFetchTimeout
	}
	return &Service{
		source:       source,
		fetchTimeout: fetchTimeout,
		observer:     nopObserver{},
	}
}

// WithObserver sets the observer and returns the service.
func (s *Service) WithObserver(o Observer) *Service {
	if o != nil {
		s.observer = o
	}
	return s
}

// Fulfill returns the sentence answering intent. Only store failures are
// returned as errors; missing data is answered with an apology.
func (s *Service) Fulfill(ctx context.Context, intent Intent) (string, error) {
	field, needsData := intent.Field()
	if !needsData {
		s.observer.ObserveFulfillment(intent.String(), OutcomeStatic)
		return describe(intent, nil), nil
	}

	snap, err := s.fetch(ctx)
	if err != nil {
		s.observer.ObserveFulfillment(intent.String(), OutcomeError)
		return "", err
	}

	entry, ok := sensor.Select(snap, field)
	if !ok {
		slog.Info("no sensor record for intent", "intent", intent.String(), "records", len(snap))
		s.observer.ObserveFulfillment(intent.String(), OutcomeNoData)
		return NoDataText, nil
	}

	slog.Debug("selected sensor record",
		"intent", intent.String(),
		"key", entry.Key,
		"timestamp", entry.Record.Timestamp(),
	)
	s.observer.ObserveFulfillment(intent.String(), OutcomeAnswered)
	return describe(intent, entry.Record), nil
}

func (s *Service) fetch(ctx context.Context) (sensor.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	start := time.Now()
	snap, err := s.source.FetchAll(ctx)
	s.observer.ObserveStoreRead(time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("fetch sensor records: %w", err)
	}
	return snap, nil
}
