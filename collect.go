package main

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gentoomaniac/backup-pool/pkg/archive"
	"github.com/gentoomaniac/backup-pool/pkg/config"
	"github.com/gentoomaniac/backup-pool/pkg/crypt/aes256"
	"github.com/gentoomaniac/backup-pool/pkg/db"
	"github.com/gentoomaniac/backup-pool/pkg/digest"
	"github.com/gentoomaniac/backup-pool/pkg/fsutil"
	"github.com/gentoomaniac/backup-pool/pkg/incremental"
	"github.com/gentoomaniac/backup-pool/pkg/marker"
	"github.com/gentoomaniac/backup-pool/pkg/media"
	"github.com/gentoomaniac/backup-pool/pkg/sched"
)

type CollectCmd struct {
}

// collect archives every participating collect directory into the
// day's collect directory and, once all of them succeeded, drops the
// collect-complete indicator for the stage phase to find. No indicator
// is written on a partial run.
func collect(cfg *config.Config, params *CollectCmd, full bool, now time.Time) error {
	startOfWeek, err := sched.IsStartOfWeek(cfg.Options.StartingDay, now)
	if err != nil {
		return err
	}
	reset := full || startOfWeek
	day := marker.Day(now)
	log.Debug().Bool("full", full).Bool("startOfWeek", startOfWeek).Str("day", day).Msg("starting collect")

	if err := os.MkdirAll(cfg.Options.WorkingDir, 0755); err != nil {
		return err
	}
	store, err := db.NewSQLLite(cfg.Options.DBPath)
	if err != nil {
		return fmt.Errorf("opening fingerprint store %s: %w", cfg.Options.DBPath, err)
	}
	defer store.Close()
	if err := store.Init(); err != nil {
		log.Warn().Err(err).Msg("fingerprint store could not be initialised, backing up everything")
	}
	if reset {
		// The weekly reset happens once, before any directory is
		// collected, so every incremental directory starts fresh.
		if err := store.ClearAll(); err != nil {
			log.Warn().Err(err).Msg("failed clearing fingerprint store for new week")
		}
	}

	var secret []byte
	if cfg.Collect.EncryptSecret != "" {
		secret, err = base64.StdEncoding.DecodeString(cfg.Collect.EncryptSecret)
		if err != nil {
			return fmt.Errorf("collect.encryptsecret is not valid base64: %w", err)
		}
	}

	dayDir := filepath.Join(cfg.Collect.TargetDir, filepath.FromSlash(day))
	failures := 0
	for _, dir := range cfg.Collect.Dirs {
		mode := dir.EffectiveMode(cfg.Collect)
		if !participates(mode, full, startOfWeek) {
			log.Debug().Str("dir", dir.Path).Str("mode", mode).Msg("directory does not participate today")
			continue
		}
		if err := collectDir(store, dir.Path, mode, reset, dayDir, secret); err != nil {
			log.Error().Err(err).Str("dir", dir.Path).Msg("failed collecting directory")
			failures++
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d collect director(ies) failed, no collect indicator written", failures)
	}
	if err := marker.CreateIn(dayDir, marker.CollectComplete); err != nil {
		return err
	}
	log.Info().Str("day", day).Msg("collect complete")
	return nil
}

// participates applies the collect-mode schedule: daily and incr
// directories run every day, weekly ones only at the start of the
// week, and a full backup includes everything.
func participates(mode string, full, startOfWeek bool) bool {
	if full || mode == "daily" || mode == "incr" {
		return true
	}
	return mode == "weekly" && startOfWeek
}

func collectDir(store db.Store, dirPath, mode string, reset bool, dayDir string, secret []byte) error {
	files, err := fsutil.ListFiles(dirPath)
	if err != nil {
		return err
	}

	var toArchive []string
	var pending map[string]string
	var tracker *incremental.Tracker
	if mode == "incr" {
		tracker = incremental.NewTracker(store, dirPath, reset)
		pending = make(map[string]string)
		for _, file := range files {
			fingerprint, err := digest.File(file.Path)
			if err != nil {
				// Unreadable files get backed up rather than skipped.
				log.Warn().Err(err).Str("path", file.Path).Msg("could not fingerprint file, backing it up")
				toArchive = append(toArchive, file.Path)
				continue
			}
			rel := digest.Relative(dirPath, file.Path)
			if tracker.ShouldBackUp(rel, fingerprint) {
				toArchive = append(toArchive, file.Path)
				pending[rel] = fingerprint
			} else {
				log.Debug().Str("path", file.Path).Msg("unchanged since last run")
			}
		}
	} else {
		for _, file := range files {
			toArchive = append(toArchive, file.Path)
		}
	}

	var totalBytes int64
	for _, file := range files {
		totalBytes += file.Size
	}
	log.Info().
		Str("dir", dirPath).
		Int("files", len(toArchive)).
		Str("size", media.DisplayBytes(totalBytes)).
		Msg("backing up directory")

	if len(toArchive) > 0 {
		tarfile := filepath.Join(dayDir, fsutil.NormalizedName(dirPath)+".tar.gz")
		if err := archive.TarGz(tarfile, dirPath, toArchive); err != nil {
			return err
		}
		if secret != nil {
			if err := aes256.EncryptFile(tarfile, tarfile+".aes", secret); err != nil {
				return err
			}
			if err := os.Remove(tarfile); err != nil {
				return err
			}
		}
	}

	if tracker != nil {
		// Fingerprints are only recorded after the archive was
		// produced, so an interrupted run retries the same files.
		for rel, fingerprint := range pending {
			tracker.RecordBackedUp(rel, fingerprint)
		}
		if err := tracker.Flush(); err != nil {
			log.Warn().Err(err).Str("dir", dirPath).Msg("failed persisting fingerprints, next run will re-collect")
		}
	}
	return nil
}
