package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// Command arguments.
var (
	NcnFlag = cli.StringFlag{
		Name:  "ncn",
		Usage: "NCN address (base58)",
	}
	AdminFlag = cli.StringFlag{
		Name:  "admin",
		Usage: "Admin address (base58)",
	}
	WeightTableAdminFlag = cli.StringFlag{
		Name:  "weight-table-admin",
		Usage: "Weight table admin address (base58), defaults to the admin",
	}
	WalletFlag = cli.StringFlag{
		Name:  "wallet",
		Usage: "Fee wallet address (base58)",
	}
	TieBreakerAdminFlag = cli.StringFlag{
		Name:  "tie-breaker-admin",
		Usage: "Tie-breaker admin address (base58), defaults to the signer",
	}
	DaoFeeFlag = cli.Uint64Flag{
		Name:  "dao-bps",
		Usage: "DAO fee share in basis points",
	}
	NcnFeeFlag = cli.Uint64Flag{
		Name:  "ncn-bps",
		Usage: "NCN fee share in basis points",
	}
	BlockEngineFeeFlag = cli.Uint64Flag{
		Name:  "block-engine-bps",
		Usage: "Block engine fee in basis points",
	}
	RoleFlag = cli.StringFlag{
		Name:  "role",
		Usage: "Admin role to replace (fee|tie-breaker)",
	}
	EpochFlag = cli.Uint64Flag{
		Name:  "epoch",
		Usage: "NCN epoch of the weight table",
	}
	MintFlag = cli.StringFlag{
		Name:  "mint",
		Usage: "Token mint address (base58)",
	}
	WeightFlag = cli.StringFlag{
		Name:  "weight",
		Usage: "Weight in raw units, decimal or 0x hex, up to 128 bits",
	}
	MintsFlag = cli.StringSliceFlag{
		Name:  "mints",
		Usage: "Token mint addresses the table is expected to hold (repeatable)",
	}
)
