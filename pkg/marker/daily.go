package marker

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
)

var dailyDirPattern = regexp.MustCompile(`\d{4}[\\/]\d{2}[\\/]\d{2}$`)

// UnstoredDailyDirs returns the daily staging directories under
// stagingDir (layout YYYY/MM/DD) that do not yet carry the store
// indicator, i.e. those whose data still has to be written to media.
// Results are sorted for deterministic processing order.
func UnstoredDailyDirs(stagingDir string) ([]string, error) {
	var dirs []string
	err := filepath.Walk(stagingDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() || !dailyDirPattern.MatchString(path) {
			return nil
		}
		if _, err := os.Stat(filepath.Join(path, string(StoreComplete))); os.IsNotExist(err) {
			dirs = append(dirs, path)
		}
		return filepath.SkipDir
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(dirs)
	return dirs, nil
}
