package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/i474232898/gas-sensor-assistant/internal/sensor"
)

// ErrUnavailable is returned by every read when the store could not be
// initialized at start-up.
var ErrUnavailable = errors.New("sensor store not initialized")

// Unavailable is the degraded store used when initialization failed. The
// process keeps serving; every data read fails with ErrUnavailable.
type Unavailable struct {
	Cause error
}

func (u Unavailable) err() error {
	if u.Cause == nil {
		return ErrUnavailable
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, u.Cause)
}

func (u Unavailable) FetchAll(context.Context) (sensor.Snapshot, error) {
	return nil, u.err()
}

func (u Unavailable) Ping(context.Context) error {
	return u.err()
}
