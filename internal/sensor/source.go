package sensor

import "context"

// Source abstracts the backing key-value store holding sensor records.
// Every call returns a fresh snapshot; callers must not keep it across
// requests.
type Source interface {
	FetchAll(ctx context.Context) (Snapshot, error)
}

// Pinger is implemented by stores that can cheaply check reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Store is what the service wires at start-up.
type Store interface {
	Source
	Pinger
}
