// Package incremental tracks per-file content fingerprints across
// backup runs so that incremental collects only pick up files whose
// content actually changed.
package incremental

import (
	"github.com/rs/zerolog/log"
)

// Store persists one fingerprint record set per collect directory.
// *db.SQLLiteDB satisfies this.
type Store interface {
	LoadDigests(dir string) (map[string]string, error)
	SaveDigests(dir string, digests map[string]string) error
	ClearAll() error
}

// State of a tracker for one collect directory.
type State string

const (
	// Fresh means no usable record set exists: first run, post-reset,
	// or an unreadable store. Everything gets backed up.
	Fresh State = "fresh"
	// Tracking means a record set is loaded and incremental
	// comparisons are possible.
	Tracking State = "tracking"
)

// Tracker holds the fingerprint records for a single collect
// directory. It is not safe for concurrent use; backup actions are
// sequential by design.
type Tracker struct {
	store   Store
	dir     string
	records map[string]string
	state   State
}

// NewTracker loads the record set for a collect directory. With reset
// set (full backup or start of week) the stored records are ignored
// and the tracker starts fresh. An unreadable store also degrades to
// fresh: losing the incremental optimization is acceptable, failing
// the backup is not.
func NewTracker(store Store, dir string, reset bool) *Tracker {
	t := &Tracker{store: store, dir: dir, records: make(map[string]string), state: Fresh}
	if reset {
		log.Debug().Str("dir", dir).Msg("digest reset requested, starting fresh")
		return t
	}
	records, err := store.LoadDigests(dir)
	if err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("fingerprint store unreadable, backing up everything")
		return t
	}
	if len(records) > 0 {
		t.records = records
		t.state = Tracking
	}
	return t
}

// State reports whether the tracker has usable records.
func (t *Tracker) State() State {
	return t.state
}

// ShouldBackUp reports whether the file at path needs backing up:
// true when no record exists or the recorded fingerprint differs.
func (t *Tracker) ShouldBackUp(path, fingerprint string) bool {
	recorded, ok := t.records[path]
	return !ok || recorded != fingerprint
}

// RecordBackedUp upserts the record for a path. Call it only after the
// path was successfully backed up.
func (t *Tracker) RecordBackedUp(path, fingerprint string) {
	t.records[path] = fingerprint
}

// Flush persists the current record set.
func (t *Tracker) Flush() error {
	if err := t.store.SaveDigests(t.dir, t.records); err != nil {
		return err
	}
	t.state = Tracking
	return nil
}

// ResetForNewWeek clears the records of every tracked collect
// directory, in memory and in the store. Run it once at the configured
// week start or on a full-backup override; clearing more often breaks
// incremental correctness.
func (t *Tracker) ResetForNewWeek() error {
	t.records = make(map[string]string)
	t.state = Fresh
	return t.store.ClearAll()
}
