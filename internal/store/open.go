package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/i474232898/gas-sensor-assistant/internal/sensor"
)

// Supported backends.
const (
	BackendFirebase = "firebase"
	BackendMemory   = "memory"
)

// Options selects and configures the backing store.
type Options struct {
	Backend     string
	Firebase    FirebaseOptions
	FixtureFile string
	Breaker     BreakerOptions
}

// Open builds the configured store. It never fails: when initialization
// does, the error is logged and an Unavailable store is returned so the
// service can still answer requests that need no data.
func Open(ctx context.Context, opts Options) sensor.Store {
	st, err := open(ctx, opts)
	if err != nil {
		slog.Error("sensor store unavailable", "backend", opts.Backend, "error", err)
		return Unavailable{Cause: err}
	}
	slog.Info("sensor store initialized", "backend", opts.Backend)
	return NewBreakerSource(opts.Backend, st, opts.Breaker)
}

func open(ctx context.Context, opts Options) (sensor.Store, error) {
	switch opts.Backend {
	case BackendFirebase, "":
		return NewFirebaseStore(ctx, opts.Firebase)
	case BackendMemory:
		if opts.FixtureFile == "" {
			return NewMemoryStore(), nil
		}
		return LoadFixture(opts.FixtureFile)
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}
