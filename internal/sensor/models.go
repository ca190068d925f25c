package sensor

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// Field names a measurement stored on a sensor record.
type Field string

const (
	FieldCO          Field = "mq7" // carbon monoxide, ppm
	FieldLPG         Field = "mq5" // liquefied petroleum gas, ppm
	FieldTemperature Field = "temperature"
	FieldHumidity    Field = "humidity"
	FieldTimestamp   Field = "timestamp"
)

// DefaultTimestamp is used for records written without a timestamp.
const DefaultTimestamp = "1970-01-01T00:00:00Z"

// Record is one stored sensor reading, exactly as decoded from the store.
// Records are read-only: nothing in this module writes to one.
type Record map[string]any

// Has reports whether the field key is present, even with a null value.
func (r Record) Has(f Field) bool {
	_, ok := r[string(f)]
	return ok
}

// Value returns the numeric value of f. ok is false when the field is
// absent, null or not a number.
func (r Record) Value(f Field) (v float64, ok bool) {
	raw, present := r[string(f)]
	if !present || raw == nil {
		return 0, false
	}
	return toFloat(raw)
}

// Timestamp returns the record timestamp as written by the device.
func (r Record) Timestamp() string {
	switch ts := r[string(FieldTimestamp)].(type) {
	case string:
		return ts
	case nil:
		return DefaultTimestamp
	default:
		// Some firmware revisions push epoch seconds.
		if secs, ok := toFloat(ts); ok {
			return time.Unix(int64(secs), 0).UTC().Format(time.RFC3339)
		}
		return DefaultTimestamp
	}
}

// Snapshot is the full content of the sensor collection, keyed by the
// store's opaque record key. Values that are not mappings are ignored.
type Snapshot map[string]any

// Entry is a record together with its key in the snapshot.
type Entry struct {
	Key    string
	Record Record
}

func asRecord(v any) (Record, bool) {
	switch m := v.(type) {
	case Record:
		return m, m != nil
	case map[string]any:
		return Record(m), m != nil
	default:
		return nil, false
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
