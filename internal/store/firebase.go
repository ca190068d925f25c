package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"google.golang.org/api/option"

	"github.com/i474232898/gas-sensor-assistant/internal/sensor"
)

var (
	// ErrNoCredentials is returned when neither a credentials blob nor a
	// readable credentials file is configured.
	ErrNoCredentials = errors.New("firebase credentials not configured")
)

// FirebaseOptions configures the Realtime Database connection.
type FirebaseOptions struct {
	DatabaseURL     string
	Path            string
	CredentialsJSON string
	CredentialsFile string
}

// FirebaseStore reads sensor records from a Firebase Realtime Database path.
type FirebaseStore struct {
	path string
	ref  *db.Ref
}

// NewFirebaseStore initializes the Firebase app and database client once.
func NewFirebaseStore(ctx context.Context, opts FirebaseOptions) (*FirebaseStore, error) {
	if opts.DatabaseURL == "" {
		return nil, errors.New("firebase database url is not configured")
	}
	if opts.Path == "" {
		return nil, errors.New("firebase path is not configured")
	}

	// The SDK authenticates emulator URLs itself and rejects a second
	// credentials option.
	var clientOpts []option.ClientOption
	if !isEmulatorURL(opts.DatabaseURL) {
		cred, err := credentialsOption(opts)
		if err != nil {
			return nil, err
		}
		clientOpts = append(clientOpts, cred)
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{DatabaseURL: opts.DatabaseURL}, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize realtime database client: %w", err)
	}

	return &FirebaseStore{
		path: opts.Path,
		ref:  client.NewRef(opts.Path),
	}, nil
}

// isEmulatorURL reports whether url points at a Realtime Database emulator,
// e.g. "localhost:9000?ns=my-project". Hosted databases are always https.
func isEmulatorURL(url string) bool {
	return !strings.HasPrefix(url, "https://")
}

// credentialsOption prefers the inline JSON blob and falls back to the file.
func credentialsOption(opts FirebaseOptions) (option.ClientOption, error) {
	if opts.CredentialsJSON != "" {
		if !json.Valid([]byte(opts.CredentialsJSON)) {
			return nil, errors.New("firebase credentials are not valid JSON")
		}
		return option.WithCredentialsJSON([]byte(opts.CredentialsJSON)), nil
	}

	if opts.CredentialsFile == "" {
		return nil, ErrNoCredentials
	}
	if _, err := os.Stat(opts.CredentialsFile); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoCredentials, err)
	}
	return option.WithCredentialsFile(opts.CredentialsFile), nil
}

// FetchAll reads the whole collection. A missing path yields a nil snapshot.
func (s *FirebaseStore) FetchAll(ctx context.Context) (sensor.Snapshot, error) {
	var snap sensor.Snapshot
	if err := s.ref.Get(ctx, &snap); err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return snap, nil
}

// Ping reads a single key to check the database is reachable.
func (s *FirebaseStore) Ping(ctx context.Context) error {
	var first map[string]json.RawMessage
	if err := s.ref.OrderByKey().LimitToFirst(1).Get(ctx, &first); err != nil {
		return fmt.Errorf("ping %s: %w", s.path, err)
	}
	return nil
}
