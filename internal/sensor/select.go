package sensor

import (
	"sort"
	"time"
)

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

type rankedEntry struct {
	Entry
	raw    string
	at     time.Time
	parsed bool
}

// Select returns the freshest record carrying field.
//
// Records without the field key are dropped. The rest are ranked newest
// first; if the newest one has no usable value for field, the first older
// record that has one is returned instead. When no record has a usable
// value the newest record is returned as is. ok is false only when nothing
// is left after filtering.
func Select(snap Snapshot, field Field) (entry Entry, ok bool) {
	ranked := make([]rankedEntry, 0, len(snap))
	for key, raw := range snap {
		rec, isRecord := asRecord(raw)
		if !isRecord || !rec.Has(field) {
			continue
		}
		ranked = append(ranked, newRankedEntry(key, rec))
	}
	if len(ranked) == 0 {
		return Entry{}, false
	}

	sort.Slice(ranked, func(i, j int) bool {
		return newer(ranked[i], ranked[j])
	})

	for _, r := range ranked {
		if _, usable := r.Record.Value(field); usable {
			return r.Entry, true
		}
	}
	return ranked[0].Entry, true
}

func newRankedEntry(key string, rec Record) rankedEntry {
	r := rankedEntry{
		Entry: Entry{Key: key, Record: rec},
		raw:   rec.Timestamp(),
	}
	for _, layout := range timestampLayouts {
		if at, err := time.Parse(layout, r.raw); err == nil {
			r.at = at
			r.parsed = true
			break
		}
	}
	return r
}

// newer orders parseable timestamps chronologically, unparseable ones
// after them by string, and equal timestamps by key.
func newer(a, b rankedEntry) bool {
	if a.parsed != b.parsed {
		return a.parsed
	}
	if a.parsed && !a.at.Equal(b.at) {
		return a.at.After(b.at)
	}
	if !a.parsed && a.raw != b.raw {
		return a.raw > b.raw
	}
	return a.Key < b.Key
}
