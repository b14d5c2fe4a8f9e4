package peers

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/gentoomaniac/backup-pool/pkg/fsutil"
	"github.com/gentoomaniac/backup-pool/pkg/marker"
)

// StageResult is the per-peer outcome of a staging run.
type StageResult struct {
	Peer   string
	Staged int
	// Skipped is set when the peer was not ready and its
	// ignore-failures mode suppressed the error.
	Skipped bool
	Err     error
}

// StagePeers copies each ready peer's data for the given day into its
// directory under dailyDir and writes the stage indicators. A peer
// without a collect indicator is not ready: that is an error for the
// peer unless its ignore-failures mode suppresses it, and it never
// stops the other peers from being staged. The run is retryable; once
// the missing indicator appears a later run will pick the peer up.
//
// After the loop, the stage indicator is written to dailyDir itself so
// the store phase knows the directory is ready.
func StagePeers(pool []Peer, dailyDir, day string, full, startOfWeek bool) []StageResult {
	results := make([]StageResult, 0, len(pool))
	for _, peer := range pool {
		log.Info().Str("peer", peer.Name).Str("day", day).Msg("staging peer")
		results = append(results, stagePeer(peer, dailyDir, day, full, startOfWeek))
	}
	masterMarkers := marker.NewFS(dailyDir)
	if err := masterMarkers.Create("", day, marker.StageComplete); err != nil {
		log.Error().Err(err).Str("day", day).Msg("failed writing daily stage indicator")
	}
	return results
}

func stagePeer(peer Peer, dailyDir, day string, full, startOfWeek bool) StageResult {
	result := StageResult{Peer: peer.Name}
	markers := peer.Markers()
	if !markers.Exists("", day, marker.CollectComplete) {
		if peer.IgnoreFailures.Suppresses(full, startOfWeek) {
			log.Info().Str("peer", peer.Name).Str("day", day).Msg("peer was not ready to be staged")
			result.Skipped = true
			return result
		}
		log.Error().Str("peer", peer.Name).Str("day", day).Msg("peer was not ready to be staged")
		result.Err = fmt.Errorf("peer %s has no collect indicator for %s", peer.Name, day)
		return result
	}

	sourceDir := filepath.Join(peer.CollectDir, filepath.FromSlash(day))
	targetDir := filepath.Join(dailyDir, peer.Name)
	count, err := fsutil.CopyTree(sourceDir, targetDir, marker.IsIndicator)
	if err != nil {
		log.Error().Err(err).Str("peer", peer.Name).Str("day", day).Msg("error staging peer")
		result.Err = fmt.Errorf("staging peer %s: %w", peer.Name, err)
		return result
	}
	result.Staged = count
	log.Info().Str("peer", peer.Name).Int("files", count).Msg("staged peer")

	if err := markers.Create("", day, marker.StageComplete); err != nil {
		log.Error().Err(err).Str("peer", peer.Name).Msg("failed writing stage indicator")
		result.Err = err
	}
	return result
}
