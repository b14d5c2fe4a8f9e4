package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gentoomaniac/backup-pool/pkg/config"
	"github.com/gentoomaniac/backup-pool/pkg/marker"
	"github.com/gentoomaniac/backup-pool/pkg/peers"
	"github.com/gentoomaniac/backup-pool/pkg/sched"
)

type StageCmd struct {
}

// stage copies every ready peer's collected data into the daily
// staging directory. The daily directory is derived once up front in
// case the run spans midnight.
func stage(cfg *config.Config, params *StageCmd, full bool, now time.Time) error {
	startOfWeek, err := sched.IsStartOfWeek(cfg.Options.StartingDay, now)
	if err != nil {
		return err
	}
	day := marker.Day(now)
	dailyDir := filepath.Join(cfg.Stage.TargetDir, filepath.FromSlash(day))
	if _, err := os.Stat(dailyDir); err == nil {
		log.Warn().Str("dir", dailyDir).Msg("staging directory already existed")
	} else if err := os.MkdirAll(dailyDir, 0755); err != nil {
		return fmt.Errorf("unable to create staging directory: %w", err)
	}

	results := peers.StagePeers(cfg.Pool(), dailyDir, day, full, startOfWeek)
	failed := 0
	staged := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
			continue
		}
		if !result.Skipped {
			staged++
		}
	}
	log.Info().Int("staged", staged).Int("failed", failed).Str("day", day).Msg("stage complete")
	if failed > 0 {
		return fmt.Errorf("%d peer(s) failed staging", failed)
	}
	return nil
}
