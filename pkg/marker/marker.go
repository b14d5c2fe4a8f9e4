// Package marker implements the readiness protocol between backup
// phases. A phase that finished its work for a peer and day drops a
// zero-byte sentinel file; the next phase only proceeds where it finds
// one. Presence of the marker is the sole source of truth, there is no
// other coordination between the processes involved.
package marker

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Phase names double as the sentinel file names.
type Phase string

const (
	CollectComplete Phase = "cback.collect"
	StageComplete   Phase = "cback.stage"
	StoreComplete   Phase = "cback.store"
)

// DayFormat is the daily directory layout, YYYY/MM/DD.
const DayFormat = "2006/01/02"

// Day formats a point in time as a protocol day.
func Day(t time.Time) string {
	return t.Format(DayFormat)
}

// IsIndicator reports whether a file name is one of the sentinel
// files. Staging and purging must never treat these as data.
func IsIndicator(name string) bool {
	switch Phase(name) {
	case CollectComplete, StageComplete, StoreComplete:
		return true
	}
	return false
}

// Store is the readiness signal interface. Peer may be empty for
// markers on the shared staging tree.
type Store interface {
	Exists(peer, day string, phase Phase) bool
	Create(peer, day string, phase Phase) error
}

// FS keeps markers as files under root/<peer>/<day>/<phase>.
type FS struct {
	root string
}

func NewFS(root string) *FS {
	return &FS{root: root}
}

func (fs *FS) path(peer, day string, phase Phase) string {
	return filepath.Join(fs.root, peer, filepath.FromSlash(day), string(phase))
}

func (fs *FS) Exists(peer, day string, phase Phase) bool {
	info, err := os.Stat(fs.path(peer, day, phase))
	return err == nil && !info.IsDir()
}

// Create drops the sentinel, creating the day directory if needed. The
// file is created empty and never mutated afterwards.
func (fs *FS) Create(peer, day string, phase Phase) error {
	return CreateIn(filepath.Dir(fs.path(peer, day, phase)), phase)
}

// CreateIn drops a sentinel directly into dir, for callers that
// already hold the daily directory path.
func CreateIn(dir string, phase Phase) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating marker directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, string(phase))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating marker %s: %w", path, err)
	}
	return f.Close()
}
