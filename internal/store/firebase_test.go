package store

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/i474232898/gas-sensor-assistant/internal/sensor"
)

// fakeDatabase serves the Realtime Database REST API the way the emulator does.
type fakeDatabase struct {
	mu       sync.Mutex
	bodies   map[string]string
	requests []*url.URL
}

func (f *fakeDatabase) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.URL)
	body, ok := f.bodies[r.URL.Path]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Permission denied"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(body))
}

func (f *fakeDatabase) lastRequest() *url.URL {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[len(f.requests)-1]
}

func newEmulatorStore(t *testing.T, path string, bodies map[string]string) (*FirebaseStore, *fakeDatabase) {
	t.Helper()

	fake := &fakeDatabase{bodies: bodies}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	if err != nil {
		t.Fatalf("parse server url: %v", err)
	}

	st, err := NewFirebaseStore(context.Background(), FirebaseOptions{
		DatabaseURL: "localhost:" + u.Port() + "?ns=test",
		Path:        path,
	})
	if err != nil {
		t.Fatalf("NewFirebaseStore: %v", err)
	}
	return st, fake
}

func TestFirebaseStoreFetchAll(t *testing.T) {
	st, fake := newEmulatorStore(t, "sensor_data", map[string]string{
		"/sensor_data.json": `{
			"-Nold": {"mq7": 120, "temperature": 21.5, "timestamp": "2024-05-01T08:00:00Z"},
			"-Nnew": {"mq7": 480, "timestamp": "2024-05-01T09:00:00Z"}
		}`,
	})

	snap, err := st.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap) != 2 {
		t.Fatalf("expected 2 records, got %d", len(snap))
	}

	req := fake.lastRequest()
	if req.Path != "/sensor_data.json" || req.Query().Get("ns") != "test" {
		t.Fatalf("unexpected request %s", req)
	}

	entry, ok := sensor.Select(snap, sensor.FieldCO)
	if !ok || entry.Key != "-Nnew" {
		t.Fatalf("expected newest record, got %+v (ok=%v)", entry, ok)
	}
	if co, _ := entry.Record.Value(sensor.FieldCO); co != 480 {
		t.Fatalf("expected mq7=480, got %v", co)
	}

	entry, ok = sensor.Select(snap, sensor.FieldTemperature)
	if !ok || entry.Key != "-Nold" {
		t.Fatalf("expected fallback to record with temperature, got %+v (ok=%v)", entry, ok)
	}
}

func TestFirebaseStoreFetchAllMissingPath(t *testing.T) {
	st, _ := newEmulatorStore(t, "sensor_data", map[string]string{
		"/sensor_data.json": `null`,
	})

	snap, err := st.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap) != 0 {
		t.Fatalf("expected empty snapshot, got %v", snap)
	}
	if _, ok := sensor.Select(snap, sensor.FieldCO); ok {
		t.Fatal("expected no record from an empty snapshot")
	}
}

func TestFirebaseStoreReadError(t *testing.T) {
	st, _ := newEmulatorStore(t, "sensor_data", nil)

	_, err := st.FetchAll(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.HasPrefix(err.Error(), "read sensor_data: ") {
		t.Fatalf("expected read error wrapped with path, got %v", err)
	}

	if err := st.Ping(context.Background()); err == nil || !strings.HasPrefix(err.Error(), "ping sensor_data: ") {
		t.Fatalf("expected ping error wrapped with path, got %v", err)
	}
}

func TestFirebaseStorePing(t *testing.T) {
	st, fake := newEmulatorStore(t, "sensor_data", map[string]string{
		"/sensor_data.json": `{"-Nold": {"mq7": 120}}`,
	})

	if err := st.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	q := fake.lastRequest().Query()
	if q.Get("orderBy") != `"$key"` || q.Get("limitToFirst") != "1" {
		t.Fatalf("expected a single-key query, got %s", q.Encode())
	}
}

func TestIsEmulatorURL(t *testing.T) {
	cases := map[string]bool{
		"https://example.firebaseio.com/": false,
		"localhost:9000?ns=test":          true,
		"http://127.0.0.1:9000?ns=test":   true,
	}
	for u, want := range cases {
		if got := isEmulatorURL(u); got != want {
			t.Errorf("isEmulatorURL(%q)=%v want %v", u, got, want)
		}
	}
}
