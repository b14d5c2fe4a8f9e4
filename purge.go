package main

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gentoomaniac/backup-pool/pkg/config"
	"github.com/gentoomaniac/backup-pool/pkg/peers"
)

type PurgeCmd struct {
}

// purge removes aged data from each configured purge directory. A
// failing directory is logged and the rest are still processed.
func purge(cfg *config.Config, params *PurgeCmd, now time.Time) error {
	var lastErr error
	for _, dir := range cfg.Purge.Dirs {
		result, err := peers.Purge(dir.Path, dir.RetainDays, now)
		if err != nil {
			log.Error().Err(err).Str("dir", dir.Path).Msg("failed purging directory")
			lastErr = err
			continue
		}
		log.Info().
			Str("dir", dir.Path).
			Int("retainDays", dir.RetainDays).
			Int("files", result.FilesRemoved).
			Int("dirs", result.DirsRemoved).
			Msg("purged directory")
	}
	return lastErr
}
