// Package peers implements the master side of the pool protocol:
// staging collected data from each peer and purging aged data, both
// gated on the readiness markers the collect and stage phases drop.
package peers

import (
	"fmt"

	"github.com/gentoomaniac/backup-pool/pkg/marker"
)

// IgnoreFailureMode controls whether a peer that is not ready to be
// staged is reported as an error or quietly skipped.
type IgnoreFailureMode string

const (
	IgnoreNone   IgnoreFailureMode = "none"
	IgnoreAll    IgnoreFailureMode = "all"
	IgnoreDaily  IgnoreFailureMode = "daily"
	IgnoreWeekly IgnoreFailureMode = "weekly"
)

// ParseIgnoreFailureMode validates a configured mode. An empty string
// means none.
func ParseIgnoreFailureMode(name string) (IgnoreFailureMode, error) {
	if name == "" {
		return IgnoreNone, nil
	}
	switch IgnoreFailureMode(name) {
	case IgnoreNone, IgnoreAll, IgnoreDaily, IgnoreWeekly:
		return IgnoreFailureMode(name), nil
	}
	return "", fmt.Errorf("unknown ignore-failures mode %q", name)
}

// Suppresses reports whether a not-ready failure should be downgraded
// to an informational skip. Full backups and start-of-week runs count
// as weekly runs, everything else as daily.
func (m IgnoreFailureMode) Suppresses(full, startOfWeek bool) bool {
	switch m {
	case IgnoreAll:
		return true
	case IgnoreNone, "":
		return false
	}
	if full || startOfWeek {
		return m == IgnoreWeekly
	}
	return m == IgnoreDaily
}

// Peer is one machine in the backup pool, identified by name, with the
// directory its collect phase writes into.
type Peer struct {
	Name           string
	CollectDir     string
	IgnoreFailures IgnoreFailureMode
}

// Markers returns the peer's readiness markers, which live inside its
// collect directory tree.
func (p Peer) Markers() *marker.FS {
	return marker.NewFS(p.CollectDir)
}
