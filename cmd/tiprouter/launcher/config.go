package launcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-tiprouter/integration"
	"github.com/rony4d/go-tiprouter/logger"
	"github.com/rony4d/go-tiprouter/tiprouter"
)

// Config is everything a command needs to run.
type Config struct {
	Node    NodeConfig
	Rules   tiprouter.Rules
	Clock   ClockConfig
	DB      integration.PresetConfig
	Logging logger.Config
	Signer  SignerConfig
}

type NodeConfig struct {
	DataDir string
}

// ClockConfig pins the ledger clock. A nil field is derived from wall-clock
// time.
type ClockConfig struct {
	Slot  *uint64
	Epoch *uint64
}

// Pinned reports whether both slot and epoch are pinned.
func (c ClockConfig) Pinned() bool {
	return c.Slot != nil && c.Epoch != nil
}

type SignerConfig struct {
	Keypair string
	FakeKey int // negative when unset
}

// DBPath is where the leveldb backend keeps its files.
func (c Config) DBPath() string {
	return filepath.Join(c.Node.DataDir, "chaindata")
}

func defaultConfig() (Config, error) {
	defaults := DefaultConfig()

	rules, err := tiprouter.RulesByName(defaults.Network.Name)
	if err != nil {
		return Config{}, err
	}
	preset, err := integration.GetPresetByName(defaults.Storage.Preset)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Node: NodeConfig{
			DataDir: resolvePath(defaults.Node.DataDir),
		},
		Rules: rules,
		DB:    preset,
		Logging: logger.Config{
			Verbosity: defaults.Logging.Verbosity,
			Format:    defaults.Logging.Format,
			Color:     defaults.Logging.Color,
		},
		Signer: SignerConfig{
			FakeKey: -1,
		},
	}, nil
}

// MakeAllConfigs builds the configuration in three layers: built-in
// defaults, then the database preset, then explicit CLI flags.
// Works from the app context and from command contexts alike.
func MakeAllConfigs(ctx *cli.Context) (Config, error) {
	cfg, err := defaultConfig()
	if err != nil {
		return Config{}, err
	}

	if ctx.GlobalIsSet("db.preset") {
		preset, err := integration.GetPresetByName(ctx.GlobalString("db.preset"))
		if err != nil {
			return Config{}, err
		}
		integration.ApplyPreset(&cfg.DB, preset)
	}

	if err := applyCLIOverrides(ctx, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Rules.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyCLIOverrides(ctx *cli.Context, cfg *Config) error {
	if ctx.GlobalIsSet("datadir") {
		cfg.Node.DataDir = resolvePath(ctx.GlobalString("datadir"))
	}

	if ctx.GlobalIsSet("network") {
		rules, err := tiprouter.RulesByName(ctx.GlobalString("network"))
		if err != nil {
			return err
		}
		cfg.Rules = rules
	}
	if ctx.GlobalIsSet("clock.slot") {
		slot := ctx.GlobalUint64("clock.slot")
		cfg.Clock.Slot = &slot
	}
	if ctx.GlobalIsSet("clock.epoch") {
		epoch := ctx.GlobalUint64("clock.epoch")
		cfg.Clock.Epoch = &epoch
	}

	if ctx.GlobalIsSet("cache") {
		cfg.DB.CacheMB = ctx.GlobalInt("cache")
	}
	if ctx.GlobalIsSet("handles") {
		cfg.DB.Handles = ctx.GlobalInt("handles")
	}

	if ctx.GlobalIsSet("log.format") {
		cfg.Logging.Format = ctx.GlobalString("log.format")
	}
	if ctx.GlobalIsSet("log.verbosity") {
		cfg.Logging.Verbosity = ctx.GlobalInt("log.verbosity")
	}
	if ctx.GlobalIsSet("log.color") {
		cfg.Logging.Color = ctx.GlobalBool("log.color")
	}
	if dsn := ctx.GlobalString("log.sentry"); dsn != "" {
		cfg.Logging.SentryDSN = dsn
	}

	if ctx.GlobalIsSet("keypair") {
		cfg.Signer.Keypair = resolvePath(ctx.GlobalString("keypair"))
	}
	if ctx.GlobalIsSet("fakekey") {
		cfg.Signer.FakeKey = ctx.GlobalInt("fakekey")
	}
	return nil
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create datadir %s: %w", dir, err)
	}
	return nil
}

func resolvePath(p string) string {
	if strings.HasPrefix(p, "~") {
		return filepath.Join(GuessHomeDir(), strings.TrimPrefix(p, "~"))
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(GuessWorkDir(), p)
}

// GuessWorkDir returns the working directory, or "." if it is unknown.
func GuessWorkDir() string {
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// GuessHomeDir returns the home directory, or "." if it is unknown.
func GuessHomeDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return dir
	}
	return "."
}
