package integration

import (
	"fmt"

	"github.com/Fantom-foundation/lachesis-base/kvdb"
	"github.com/Fantom-foundation/lachesis-base/kvdb/leveldb"
	"github.com/Fantom-foundation/lachesis-base/kvdb/memorydb"
)

// Database backends.
const (
	LevelDBBackend = "leveldb"
	MemoryBackend  = "memory"
)

// PresetConfig bundles database settings under a name.
type PresetConfig struct {
	Name    string // human-readable identifier (e.g., "lite", "full")
	Backend string // LevelDBBackend or MemoryBackend
	CacheMB int    // LevelDB block cache size
	Handles int    // LevelDB open file limit
}

// DefaultPreset suits a workstation running the CLI now and then.
func DefaultPreset() PresetConfig {
	return PresetConfig{
		Name:    "default",
		Backend: LevelDBBackend,
		CacheMB: 64,
		Handles: 256,
	}
}

// LitePreset keeps the footprint small for constrained environments.
func LitePreset() PresetConfig {
	cfg := DefaultPreset()
	cfg.Name = "lite"
	cfg.CacheMB = 16
	cfg.Handles = 64
	return cfg
}

// FullPreset is for long-running automation that touches many NCNs.
func FullPreset() PresetConfig {
	cfg := DefaultPreset()
	cfg.Name = "full"
	cfg.CacheMB = 512
	cfg.Handles = 1024
	return cfg
}

// MemoryPreset keeps everything in memory and forgets it on exit.
// Useful for dry runs and tests.
func MemoryPreset() PresetConfig {
	return PresetConfig{
		Name:    "memory",
		Backend: MemoryBackend,
	}
}

// GetPresetByName returns the preset registered under name.
func GetPresetByName(name string) (PresetConfig, error) {
	switch name {
	case "lite":
		return LitePreset(), nil
	case "full":
		return FullPreset(), nil
	case "memory":
		return MemoryPreset(), nil
	case "default":
		return DefaultPreset(), nil
	default:
		return PresetConfig{}, fmt.Errorf("unknown preset: %q (valid: lite, full, memory, default)", name)
	}
}

// ApplyPreset copies the non-zero fields of preset into target.
func ApplyPreset(target *PresetConfig, preset PresetConfig) {
	if preset.Backend != "" {
		target.Backend = preset.Backend
	}
	if preset.CacheMB > 0 {
		target.CacheMB = preset.CacheMB
	}
	if preset.Handles > 0 {
		target.Handles = preset.Handles
	}
	if preset.Name != "" {
		target.Name = preset.Name
	}
}

// OpenDB opens the database described by preset. path is ignored by the
// memory backend.
func OpenDB(preset PresetConfig, path string) (kvdb.Store, error) {
	switch preset.Backend {
	case MemoryBackend:
		return memorydb.New(), nil
	case LevelDBBackend:
		db, err := leveldb.New(path, preset.CacheMB, preset.Handles, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("open leveldb %s: %w", path, err)
		}
		return db, nil
	}
	return nil, fmt.Errorf("unknown database backend %q", preset.Backend)
}
