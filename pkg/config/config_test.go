package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gentoomaniac/backup-pool/pkg/peers"
)

const fullConfig = `
options:
  startingday: sunday
  workingdir: /tmp/pool
  dbpath: /tmp/pool/fingerprints.db
collect:
  targetdir: /backup/collect
  mode: daily
  dirs:
    - path: /etc
    - path: /home
      mode: incr
    - path: /opt/archive
      mode: weekly
stage:
  targetdir: /backup/staging
  peers:
    - name: machine1
      collectdir: /backup/collect
    - name: machine2
      collectdir: /mnt/machine2/collect
      ignorefailures: daily
store:
  mediatype: cdrw-80
  cushionpct: 5.5
  blankmode: weekly
  blankfactor: 1.2
purge:
  dirs:
    - path: /backup/staging
      retaindays: 7
    - path: /backup/collect
      retaindays: 2
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, fullConfig))
	require.NoError(t, err)

	assert.Equal(t, "sunday", cfg.Options.StartingDay)
	assert.Equal(t, "/tmp/pool", cfg.Options.WorkingDir)
	assert.Equal(t, "/tmp/pool/fingerprints.db", cfg.Options.DBPath)

	require.Len(t, cfg.Collect.Dirs, 3)
	assert.Equal(t, "daily", cfg.Collect.Dirs[0].EffectiveMode(cfg.Collect))
	assert.Equal(t, "incr", cfg.Collect.Dirs[1].EffectiveMode(cfg.Collect))
	assert.Equal(t, "weekly", cfg.Collect.Dirs[2].EffectiveMode(cfg.Collect))

	assert.Equal(t, "/backup/staging", cfg.Stage.TargetDir)
	require.Len(t, cfg.Stage.Peers, 2)

	assert.Equal(t, "cdrw-80", cfg.Store.MediaType)
	capacity, err := cfg.Store.NominalCapacity()
	require.NoError(t, err)
	assert.Equal(t, int64(358400*2048), capacity)

	behavior := cfg.Store.BlankBehavior()
	require.NotNil(t, behavior)
	assert.Equal(t, 1.2, behavior.Factor)

	require.Len(t, cfg.Purge.Dirs, 2)
	assert.Equal(t, 7, cfg.Purge.Dirs[0].RetainDays)
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "collect:\n  targetdir: /backup/collect\n"))
	require.NoError(t, err)

	assert.Equal(t, "monday", cfg.Options.StartingDay)
	assert.Equal(t, "/var/tmp/backup-pool", cfg.Options.WorkingDir)
	assert.Equal(t, filepath.Join("/var/tmp/backup-pool", "digests.db"), cfg.Options.DBPath)
	assert.Equal(t, "daily", cfg.Collect.Mode)
	assert.Equal(t, "cdrw-74", cfg.Store.MediaType)
	assert.Equal(t, 4.0, cfg.Store.CushionPct)
	assert.Nil(t, cfg.Store.BlankBehavior())
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Setenv("BACKUP_POOL_OPTIONS_STARTINGDAY", "friday")
	t.Setenv("BACKUP_POOL_STORE_MEDIATYPE", "dvd+rw")

	cfg, err := Load(writeConfig(t, fullConfig))
	require.NoError(t, err)
	assert.Equal(t, "friday", cfg.Options.StartingDay)
	assert.Equal(t, "dvd+rw", cfg.Store.MediaType)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		message string
	}{
		{"bad starting day", func(c *Config) { c.Options.StartingDay = "someday" }, "options.startingday"},
		{"bad media type", func(c *Config) { c.Store.MediaType = "floppy" }, "store.mediatype"},
		{"bad cushion", func(c *Config) { c.Store.CushionPct = 100 }, "store.cushionpct"},
		{"bad blank mode", func(c *Config) { c.Store.BlankMode = "hourly" }, "store.blankmode"},
		{"bad collect mode", func(c *Config) { c.Collect.Mode = "monthly" }, "collect.mode"},
		{"bad dir mode", func(c *Config) { c.Collect.Dirs = []CollectDir{{Path: "/etc", Mode: "hourly"}} }, "collect dir"},
		{"bad ignore mode", func(c *Config) {
			c.Stage.Peers = []PeerConfig{{Name: "p", IgnoreFailures: "sometimes"}}
		}, "peer p"},
		{"negative retention", func(c *Config) { c.Purge.Dirs = []PurgeDir{{Path: "/x", RetainDays: -1}} }, "retain days"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			assert.ErrorContains(t, err, tt.message)
		})
	}
}

func TestCapacityOverride(t *testing.T) {
	store := StoreConfig{MediaType: "cdrw-74", CapacityBytes: 999}
	capacity, err := store.NominalCapacity()
	require.NoError(t, err)
	assert.Equal(t, int64(999), capacity)
}

func TestPool(t *testing.T) {
	cfg, err := Load(writeConfig(t, fullConfig))
	require.NoError(t, err)

	pool := cfg.Pool()
	require.Len(t, pool, 2)
	assert.Equal(t, "machine1", pool[0].Name)
	assert.Equal(t, peers.IgnoreFailureMode(""), pool[0].IgnoreFailures)
	assert.Equal(t, peers.IgnoreDaily, pool[1].IgnoreFailures)
}
