package peers

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gentoomaniac/backup-pool/pkg/marker"
)

var dayDirPattern = regexp.MustCompile(`\d{4}[\\/]\d{2}[\\/]\d{2}`)

// PurgeResult accounts for one purge run over one directory.
type PurgeResult struct {
	FilesRemoved int
	DirsRemoved  int
}

// Purge removes files under root older than retainDays and prunes the
// directories this empties. Indicator files only fall with the rest of
// their directory. A day directory that was collected but never staged
// holds the only copy of its data, so its files are left alone until
// retention has independently expired; removing them then is logged as
// a warning because the data was never staged.
//
// retainDays of zero purges everything staged, immediately.
func Purge(root string, retainDays int, now time.Time) (PurgeResult, error) {
	result := PurgeResult{}
	cutoff := now.AddDate(0, 0, -retainDays)

	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return result, err
	}

	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		expired := info.ModTime().Before(cutoff)
		if !expired {
			continue
		}
		if dir, unstaged := unstagedDayDir(path); unstaged {
			log.Warn().Str("dir", dir).Str("path", path).Msg("purging collected but unstaged data, retention expired")
		}
		if err := os.Remove(path); err != nil {
			log.Error().Err(err).Str("path", path).Msg("failed removing aged file")
			continue
		}
		result.FilesRemoved++
		log.Debug().Str("path", path).Msg("removed aged file")
	}

	result.DirsRemoved = pruneEmptyDirs(root)
	return result, nil
}

// unstagedDayDir reports whether path sits inside a day directory that
// lacks the stage-complete indicator, and returns that directory.
func unstagedDayDir(path string) (string, bool) {
	loc := dayDirPattern.FindStringIndex(path)
	if loc == nil {
		return "", false
	}
	dayDir := path[:loc[1]]
	if _, err := os.Stat(filepath.Join(dayDir, string(marker.StageComplete))); err == nil {
		return dayDir, false
	}
	return dayDir, true
}

// pruneEmptyDirs removes directories left empty under root, deepest
// first. The root itself stays.
func pruneEmptyDirs(root string) int {
	var dirs []string
	filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err == nil && info.IsDir() && path != root {
			dirs = append(dirs, path)
		}
		return nil
	})
	sort.Sort(sort.Reverse(sort.StringSlice(dirs)))
	removed := 0
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil || len(entries) > 0 {
			continue
		}
		if os.Remove(dir) == nil {
			removed++
		}
	}
	return removed
}
