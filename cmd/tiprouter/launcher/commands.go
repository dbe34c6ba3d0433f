package launcher

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gagliardetto/solana-go"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-tiprouter/flags"
	"github.com/rony4d/go-tiprouter/inter"
	"github.com/rony4d/go-tiprouter/tiprouter"
)

func commands() []cli.Command {
	return []cli.Command{
		{
			Name:     "register-ncn",
			Usage:    "Record an NCN and its admins",
			Category: "NCN COMMANDS",
			Flags:    []cli.Flag{flags.NcnFlag, flags.AdminFlag, flags.WeightTableAdminFlag},
			Action:   withEnv(registerNcn),
		},
		{
			Name:     "ncns",
			Usage:    "List registered NCNs",
			Category: "NCN COMMANDS",
			Action:   withEnv(listNcns),
		},
		{
			Name:     "init-config",
			Usage:    "Create the config and fee schedule of an NCN",
			Category: "CONFIG COMMANDS",
			Flags: []cli.Flag{
				flags.NcnFlag,
				flags.WalletFlag,
				flags.TieBreakerAdminFlag,
				flags.DaoFeeFlag,
				flags.NcnFeeFlag,
				flags.BlockEngineFeeFlag,
			},
			Action: withEnv(initConfig),
		},
		{
			Name:     "set-fees",
			Usage:    "Schedule a fee change for the next epoch",
			Category: "CONFIG COMMANDS",
			Flags: []cli.Flag{
				flags.NcnFlag,
				flags.WalletFlag,
				flags.DaoFeeFlag,
				flags.NcnFeeFlag,
				flags.BlockEngineFeeFlag,
			},
			Action: withEnv(setFees),
		},
		{
			Name:     "set-admin",
			Usage:    "Replace the fee admin or the tie-breaker admin",
			Category: "CONFIG COMMANDS",
			Flags:    []cli.Flag{flags.NcnFlag, flags.RoleFlag, flags.AdminFlag},
			Action:   withEnv(setAdmin),
		},
		{
			Name:     "fees",
			Usage:    "Show the fee schedule of an NCN",
			Category: "CONFIG COMMANDS",
			Flags:    []cli.Flag{flags.NcnFlag},
			Action:   withEnv(showFees),
		},
		{
			Name:     "init-weight-table",
			Usage:    "Create the weight table of an epoch",
			Category: "WEIGHT TABLE COMMANDS",
			Flags:    []cli.Flag{flags.NcnFlag, flags.EpochFlag},
			Action:   withEnv(initWeightTable),
		},
		{
			Name:     "set-weight",
			Usage:    "Set the weight of a mint",
			Category: "WEIGHT TABLE COMMANDS",
			Flags:    []cli.Flag{flags.NcnFlag, flags.EpochFlag, flags.MintFlag, flags.WeightFlag},
			Action:   withEnv(setWeight),
		},
		{
			Name:     "finalize-weight-table",
			Usage:    "Seal a weight table after checking its mints",
			Category: "WEIGHT TABLE COMMANDS",
			Flags:    []cli.Flag{flags.NcnFlag, flags.EpochFlag, flags.MintsFlag},
			Action:   withEnv(finalizeWeightTable),
		},
		{
			Name:     "weight-table",
			Usage:    "Show a weight table",
			Category: "WEIGHT TABLE COMMANDS",
			Flags:    []cli.Flag{flags.NcnFlag, flags.EpochFlag},
			Action:   withEnv(showWeightTable),
		},
		{
			Name:     "mint-hash",
			Usage:    "Compute the mint hash of a set of mints",
			Category: "WEIGHT TABLE COMMANDS",
			Flags:    []cli.Flag{flags.MintsFlag},
			Action:   mintHash,
		},
	}
}

func registerNcn(ctx *cli.Context, e *env) error {
	signer, err := e.signer()
	if err != nil {
		return err
	}
	ncn, err := keyArg(ctx, flags.NcnFlag.Name)
	if err != nil {
		return err
	}
	admin, err := keyArgOr(ctx, flags.AdminFlag.Name, signer.PublicKey())
	if err != nil {
		return err
	}
	wtAdmin, err := keyArgOr(ctx, flags.WeightTableAdminFlag.Name, admin)
	if err != nil {
		return err
	}
	return e.submit(&inter.RegisterNcn{
		Ncn:              ncn,
		Admin:            admin,
		WeightTableAdmin: wtAdmin,
	})
}

type ncnView struct {
	Address          solana.PublicKey `json:"address"`
	Admin            solana.PublicKey `json:"admin"`
	WeightTableAdmin solana.PublicKey `json:"weightTableAdmin"`
}

func listNcns(ctx *cli.Context, e *env) error {
	views := []ncnView{}
	err := e.store.ForEachNcn(func(n *tiprouter.Ncn) bool {
		views = append(views, ncnView{
			Address:          n.Address,
			Admin:            n.Admin,
			WeightTableAdmin: n.WeightTableAdmin,
		})
		return true
	})
	if err != nil {
		return err
	}
	return e.print(views)
}

func initConfig(ctx *cli.Context, e *env) error {
	signer, err := e.signer()
	if err != nil {
		return err
	}
	ncn, err := keyArg(ctx, flags.NcnFlag.Name)
	if err != nil {
		return err
	}
	wallet, err := keyArg(ctx, flags.WalletFlag.Name)
	if err != nil {
		return err
	}
	tieBreaker, err := keyArgOr(ctx, flags.TieBreakerAdminFlag.Name, signer.PublicKey())
	if err != nil {
		return err
	}

	ix := &inter.InitializeConfig{
		Ncn:               ncn,
		FeeWallet:         wallet,
		TieBreakerAdmin:   tieBreaker,
		DaoFeeBps:         e.cfg.Rules.Fees.DaoFeeBps,
		NcnFeeBps:         e.cfg.Rules.Fees.NcnFeeBps,
		BlockEngineFeeBps: e.cfg.Rules.Fees.BlockEngineFeeBps,
	}
	if v := optionalUint64(ctx, flags.DaoFeeFlag.Name); v != nil {
		ix.DaoFeeBps = *v
	}
	if v := optionalUint64(ctx, flags.NcnFeeFlag.Name); v != nil {
		ix.NcnFeeBps = *v
	}
	if v := optionalUint64(ctx, flags.BlockEngineFeeFlag.Name); v != nil {
		ix.BlockEngineFeeBps = *v
	}
	return e.submit(ix)
}

func setFees(ctx *cli.Context, e *env) error {
	ncn, err := keyArg(ctx, flags.NcnFlag.Name)
	if err != nil {
		return err
	}
	ix := &inter.SetConfigFees{
		Ncn:                  ncn,
		NewDaoFeeBps:         optionalUint64(ctx, flags.DaoFeeFlag.Name),
		NewNcnFeeBps:         optionalUint64(ctx, flags.NcnFeeFlag.Name),
		NewBlockEngineFeeBps: optionalUint64(ctx, flags.BlockEngineFeeFlag.Name),
	}
	if ctx.IsSet(flags.WalletFlag.Name) {
		wallet, err := keyArg(ctx, flags.WalletFlag.Name)
		if err != nil {
			return err
		}
		ix.NewFeeWallet = &wallet
	}
	return e.submit(ix)
}

func setAdmin(ctx *cli.Context, e *env) error {
	ncn, err := keyArg(ctx, flags.NcnFlag.Name)
	if err != nil {
		return err
	}
	role, err := inter.ParseAdminRole(ctx.String(flags.RoleFlag.Name))
	if err != nil {
		return err
	}
	admin, err := keyArg(ctx, flags.AdminFlag.Name)
	if err != nil {
		return err
	}
	return e.submit(&inter.SetNewAdmin{
		Ncn:      ncn,
		Role:     role,
		NewAdmin: admin,
	})
}

type feesView struct {
	Ncn             solana.PublicKey `json:"ncn"`
	Epoch           uint64           `json:"epoch"`
	FeeAdmin        solana.PublicKey `json:"feeAdmin"`
	TieBreakerAdmin solana.PublicKey `json:"tieBreakerAdmin"`
	Current         inter.Fee        `json:"current"`
	DaoFeeBps       uint64           `json:"daoFeeBps"`
	NcnFeeBps       uint64           `json:"ncnFeeBps"`
	Schedule        inter.Fees       `json:"schedule"`
}

func showFees(ctx *cli.Context, e *env) error {
	ncn, err := keyArg(ctx, flags.NcnFlag.Name)
	if err != nil {
		return err
	}
	cfg, err := e.proc.Config(ncn)
	if err != nil {
		return err
	}
	_, epoch := e.proc.Now()
	dao, err := cfg.Fees.DaoFee(epoch)
	if err != nil {
		return err
	}
	ncnFee, err := cfg.Fees.NcnFee(epoch)
	if err != nil {
		return err
	}
	return e.print(feesView{
		Ncn:             ncn,
		Epoch:           epoch,
		FeeAdmin:        cfg.FeeAdmin,
		TieBreakerAdmin: cfg.TieBreakerAdmin,
		Current:         cfg.Fees.CurrentFee(epoch),
		DaoFeeBps:       dao,
		NcnFeeBps:       ncnFee,
		Schedule:        cfg.Fees,
	})
}

// epochArg defaults to the current epoch.
func epochArg(ctx *cli.Context, e *env) uint64 {
	if ctx.IsSet(flags.EpochFlag.Name) {
		return ctx.Uint64(flags.EpochFlag.Name)
	}
	_, epoch := e.proc.Now()
	return epoch
}

func initWeightTable(ctx *cli.Context, e *env) error {
	ncn, err := keyArg(ctx, flags.NcnFlag.Name)
	if err != nil {
		return err
	}
	return e.submit(&inter.InitializeWeightTable{
		Ncn:   ncn,
		Epoch: epochArg(ctx, e),
	})
}

func setWeight(ctx *cli.Context, e *env) error {
	ncn, err := keyArg(ctx, flags.NcnFlag.Name)
	if err != nil {
		return err
	}
	mint, err := keyArg(ctx, flags.MintFlag.Name)
	if err != nil {
		return err
	}
	weight, err := inter.ParseShare(ctx.String(flags.WeightFlag.Name))
	if err != nil {
		return err
	}
	return e.submit(&inter.AdminUpdateWeightTable{
		Ncn:    ncn,
		Epoch:  epochArg(ctx, e),
		Mint:   mint,
		Weight: weight,
	})
}

func finalizeWeightTable(ctx *cli.Context, e *env) error {
	ncn, err := keyArg(ctx, flags.NcnFlag.Name)
	if err != nil {
		return err
	}
	mints, err := mintsArg(ctx)
	if err != nil {
		return err
	}
	if len(mints) > inter.MaxTableEntries {
		return fmt.Errorf("--mints: at most %d mints fit a weight table", inter.MaxTableEntries)
	}
	return e.submit(&inter.FinalizeWeightTable{
		Ncn:       ncn,
		Epoch:     epochArg(ctx, e),
		MintHash:  inter.MintHash(mints),
		MintCount: uint8(len(mints)),
	})
}

type weightTableView struct {
	Ncn           solana.PublicKey    `json:"ncn"`
	NcnEpoch      uint64              `json:"ncnEpoch"`
	SlotCreated   uint64              `json:"slotCreated"`
	SlotFinalized *uint64             `json:"slotFinalized,omitempty"`
	Entries       []inter.WeightEntry `json:"entries"`
	MintHash      hexutil.Uint64      `json:"mintHash"`
	Hash          string              `json:"hash"`
}

func showWeightTable(ctx *cli.Context, e *env) error {
	ncn, err := keyArg(ctx, flags.NcnFlag.Name)
	if err != nil {
		return err
	}
	wt, err := e.proc.WeightTable(ncn, epochArg(ctx, e))
	if err != nil {
		return err
	}
	view := weightTableView{
		Ncn:         wt.Ncn(),
		NcnEpoch:    wt.NcnEpoch(),
		SlotCreated: wt.SlotCreated(),
		Entries:     wt.Entries(),
		MintHash:    hexutil.Uint64(inter.MintHash(wt.Mints())),
		Hash:        wt.Hash().String(),
	}
	if wt.Finalized() {
		slot := wt.SlotFinalized()
		view.SlotFinalized = &slot
	}
	return e.print(view)
}

type mintHashView struct {
	MintHash  hexutil.Uint64 `json:"mintHash"`
	MintCount int            `json:"mintCount"`
}

// mintHash needs no record store.
func mintHash(ctx *cli.Context) error {
	mints, err := mintsArg(ctx)
	if err != nil {
		return err
	}
	e := &env{out: ctx.App.Writer}
	return e.print(mintHashView{
		MintHash:  hexutil.Uint64(inter.MintHash(mints)),
		MintCount: len(mints),
	})
}
