// Package config loads and validates the pool configuration. Values
// come from defaults, then the YAML config file, then BACKUP_POOL_*
// environment overrides. Validation happens once at the boundary so
// the actions can rely on the shapes they are handed.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/gentoomaniac/backup-pool/pkg/media"
	"github.com/gentoomaniac/backup-pool/pkg/peers"
	"github.com/gentoomaniac/backup-pool/pkg/sched"
)

// envPrefix is stripped from environment overrides, so
// BACKUP_POOL_STORE_CUSHION sets store.cushion.
const envPrefix = "BACKUP_POOL_"

type Config struct {
	Options OptionsConfig `koanf:"options"`
	Collect CollectConfig `koanf:"collect"`
	Stage   StageConfig   `koanf:"stage"`
	Store   StoreConfig   `koanf:"store"`
	Purge   PurgeConfig   `koanf:"purge"`
}

// OptionsConfig is the general section shared by all actions.
type OptionsConfig struct {
	// StartingDay is the English name of the weekday the backup week
	// begins on.
	StartingDay string `koanf:"startingday"`
	WorkingDir  string `koanf:"workingdir"`
	// DBPath locates the incremental fingerprint database.
	DBPath string `koanf:"dbpath"`
}

type CollectConfig struct {
	// TargetDir receives the day's archives.
	TargetDir string `koanf:"targetdir"`
	// Mode is the default collect mode: daily, weekly or incr.
	Mode string `koanf:"mode"`
	// EncryptSecret, when set, is the base64 AES-256 key archives are
	// encrypted with.
	EncryptSecret string       `koanf:"encryptsecret"`
	Dirs          []CollectDir `koanf:"dirs"`
}

type CollectDir struct {
	Path string `koanf:"path"`
	// Mode overrides the collect section's default for this directory.
	Mode string `koanf:"mode"`
}

// EffectiveMode resolves the directory's collect mode against the
// section default.
func (d CollectDir) EffectiveMode(section CollectConfig) string {
	if d.Mode != "" {
		return d.Mode
	}
	return section.Mode
}

type StageConfig struct {
	// TargetDir is the root of the staging tree.
	TargetDir string       `koanf:"targetdir"`
	Peers     []PeerConfig `koanf:"peers"`
}

type PeerConfig struct {
	Name           string `koanf:"name"`
	CollectDir     string `koanf:"collectdir"`
	IgnoreFailures string `koanf:"ignorefailures"`
}

type StoreConfig struct {
	MediaType string `koanf:"mediatype"`
	// CapacityBytes overrides the media type's nominal capacity when
	// non-zero.
	CapacityBytes int64 `koanf:"capacitybytes"`
	// CushionPct is the percentage of capacity set aside as safety
	// margin.
	CushionPct  float64 `koanf:"cushionpct"`
	BlankMode   string  `koanf:"blankmode"`
	BlankFactor float64 `koanf:"blankfactor"`
}

// NominalCapacity resolves the configured override or the media type
// table.
func (s StoreConfig) NominalCapacity() (int64, error) {
	if s.CapacityBytes > 0 {
		return s.CapacityBytes, nil
	}
	return media.Capacity(s.MediaType)
}

// BlankBehavior returns the optimized-reuse policy, or nil when no
// blank mode is configured (default behavior).
func (s StoreConfig) BlankBehavior() *media.BlankBehavior {
	if s.BlankMode == "" {
		return nil
	}
	return &media.BlankBehavior{Mode: media.BlankMode(s.BlankMode), Factor: s.BlankFactor}
}

type PurgeConfig struct {
	Dirs []PurgeDir `koanf:"dirs"`
}

type PurgeDir struct {
	Path       string `koanf:"path"`
	RetainDays int    `koanf:"retaindays"`
}

// Pool converts the configured peers into their runtime form.
func (c *Config) Pool() []peers.Peer {
	pool := make([]peers.Peer, 0, len(c.Stage.Peers))
	for _, p := range c.Stage.Peers {
		pool = append(pool, peers.Peer{
			Name:           p.Name,
			CollectDir:     p.CollectDir,
			IgnoreFailures: peers.IgnoreFailureMode(p.IgnoreFailures),
		})
	}
	return pool
}

func defaults() Config {
	return Config{
		Options: OptionsConfig{
			StartingDay: "monday",
			WorkingDir:  "/var/tmp/backup-pool",
		},
		Collect: CollectConfig{
			Mode: "daily",
		},
		Store: StoreConfig{
			MediaType:  "cdrw-74",
			CushionPct: 4.0,
		},
	}
}

// Load reads the config file at path and applies environment
// overrides. All validation errors name the offending value.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaults(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("loading config file %s: %w", path, err)
	}
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment overrides: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if cfg.Options.DBPath == "" {
		cfg.Options.DBPath = filepath.Join(cfg.Options.WorkingDir, "digests.db")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects bad configuration before any backup work starts.
func (c *Config) Validate() error {
	if _, err := sched.DayOfWeek(c.Options.StartingDay); err != nil {
		return fmt.Errorf("options.startingday: %w", err)
	}
	if _, err := c.Store.NominalCapacity(); err != nil {
		return fmt.Errorf("store.mediatype: %w", err)
	}
	if c.Store.CushionPct < 0 || c.Store.CushionPct >= 100 {
		return fmt.Errorf("store.cushionpct: %.2f is outside [0, 100)", c.Store.CushionPct)
	}
	if c.Store.BlankMode != "" {
		if _, err := media.ParseBlankMode(c.Store.BlankMode); err != nil {
			return fmt.Errorf("store.blankmode: %w", err)
		}
	}
	if err := validateCollectMode(c.Collect.Mode); err != nil {
		return fmt.Errorf("collect.mode: %w", err)
	}
	for _, dir := range c.Collect.Dirs {
		if dir.Mode != "" {
			if err := validateCollectMode(dir.Mode); err != nil {
				return fmt.Errorf("collect dir %s: %w", dir.Path, err)
			}
		}
	}
	for _, peer := range c.Stage.Peers {
		if _, err := peers.ParseIgnoreFailureMode(peer.IgnoreFailures); err != nil {
			return fmt.Errorf("peer %s: %w", peer.Name, err)
		}
	}
	for _, dir := range c.Purge.Dirs {
		if dir.RetainDays < 0 {
			return fmt.Errorf("purge dir %s: retain days %d is negative", dir.Path, dir.RetainDays)
		}
	}
	return nil
}

func validateCollectMode(mode string) error {
	switch mode {
	case "daily", "weekly", "incr":
		return nil
	}
	return fmt.Errorf("unknown collect mode %q", mode)
}
