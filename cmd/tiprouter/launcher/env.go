package launcher

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/gagliardetto/solana-go"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-tiprouter/integration"
	"github.com/rony4d/go-tiprouter/inter"
	"github.com/rony4d/go-tiprouter/logger"
	"github.com/rony4d/go-tiprouter/processor"
	"github.com/rony4d/go-tiprouter/store"
	"github.com/rony4d/go-tiprouter/tiprouter"
)

var errNoSigner = errors.New("no signer: use --keypair or --fakekey")

// env is what a command runs against.
type env struct {
	cfg   Config
	log   *logrus.Logger
	store *store.Store
	proc  *processor.Processor
	out   io.Writer
}

func openEnv(ctx *cli.Context) (*env, error) {
	cfg, err := MakeAllConfigs(ctx)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Logging)
	if err != nil {
		return nil, err
	}

	if cfg.DB.Backend != integration.MemoryBackend {
		if err := ensureDir(cfg.Node.DataDir); err != nil {
			return nil, err
		}
	}
	db, err := integration.OpenDB(cfg.DB, cfg.DBPath())
	if err != nil {
		return nil, err
	}
	s := store.New(db)

	log.WithFields(logrus.Fields{
		"network": cfg.Rules.Name,
		"db":      cfg.DB.Name,
	}).Debug("Opened record store")

	return &env{
		cfg:   cfg,
		log:   log,
		store: s,
		proc:  processor.New(s, cfg.Rules, makeClock(cfg), log.WithField("network", cfg.Rules.Name)),
		out:   ctx.App.Writer,
	}, nil
}

func (e *env) Close() error {
	return e.store.Close()
}

// makeClock pins whatever the config pins and derives the rest.
func makeClock(cfg Config) processor.Clock {
	slotsPerEpoch := cfg.Rules.Epochs.SlotsPerEpoch
	switch {
	case cfg.Clock.Pinned():
		return &processor.FixedClock{Slot: *cfg.Clock.Slot, Epoch: *cfg.Clock.Epoch}
	case cfg.Clock.Slot != nil:
		return &processor.FixedClock{Slot: *cfg.Clock.Slot, Epoch: *cfg.Clock.Slot / slotsPerEpoch}
	case cfg.Clock.Epoch != nil:
		return &processor.FixedClock{Slot: *cfg.Clock.Epoch * slotsPerEpoch, Epoch: *cfg.Clock.Epoch}
	}
	return processor.NewSlotClock(clockwork.NewRealClock(), cfg.Rules.Epochs)
}

func (e *env) signer() (solana.PrivateKey, error) {
	if e.cfg.Signer.FakeKey >= 0 {
		return tiprouter.FakeKey(e.cfg.Signer.FakeKey), nil
	}
	if e.cfg.Signer.Keypair != "" {
		key, err := solana.PrivateKeyFromSolanaKeygenFile(e.cfg.Signer.Keypair)
		if err != nil {
			return nil, fmt.Errorf("load keypair %s: %w", e.cfg.Signer.Keypair, err)
		}
		return key, nil
	}
	return nil, errNoSigner
}

// submit signs ix with the configured signer and runs it through the
// processor in its encoded form.
func (e *env) submit(ix inter.Instruction) error {
	signer, err := e.signer()
	if err != nil {
		return err
	}
	data, err := inter.EncodeInstruction(ix)
	if err != nil {
		return err
	}
	return e.proc.Execute(signer.PublicKey(), data)
}

func (e *env) print(v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.out, string(b))
	return err
}

// withEnv wraps a command action with opening and closing the environment.
func withEnv(fn func(ctx *cli.Context, e *env) error) func(*cli.Context) error {
	return func(ctx *cli.Context) error {
		e, err := openEnv(ctx)
		if err != nil {
			return err
		}
		defer e.Close()
		return fn(ctx, e)
	}
}

func keyArg(ctx *cli.Context, name string) (solana.PublicKey, error) {
	raw := ctx.String(name)
	if raw == "" {
		return solana.PublicKey{}, fmt.Errorf("--%s is required", name)
	}
	key, err := solana.PublicKeyFromBase58(raw)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("--%s: %w", name, err)
	}
	return key, nil
}

// keyArgOr is keyArg with a fallback for an absent flag.
func keyArgOr(ctx *cli.Context, name string, fallback solana.PublicKey) (solana.PublicKey, error) {
	if !ctx.IsSet(name) {
		return fallback, nil
	}
	return keyArg(ctx, name)
}

func optionalUint64(ctx *cli.Context, name string) *uint64 {
	if !ctx.IsSet(name) {
		return nil
	}
	v := ctx.Uint64(name)
	return &v
}

func mintsArg(ctx *cli.Context) ([]solana.PublicKey, error) {
	raw := ctx.StringSlice("mints")
	mints := make([]solana.PublicKey, 0, len(raw))
	for _, s := range raw {
		mint, err := solana.PublicKeyFromBase58(s)
		if err != nil {
			return nil, fmt.Errorf("--mints %q: %w", s, err)
		}
		mints = append(mints, mint)
	}
	return mints, nil
}
