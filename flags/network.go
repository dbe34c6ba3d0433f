package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// NetworkFlags select the network rules and pin the ledger clock.
func NetworkFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "network",
			Usage: "Network rules to use (main|test|fake)",
			Value: "main",
		},
		cli.Uint64Flag{
			Name:  "clock.slot",
			Usage: "Pin the current slot instead of deriving it from wall-clock time",
		},
		cli.Uint64Flag{
			Name:  "clock.epoch",
			Usage: "Pin the current epoch instead of deriving it from wall-clock time",
		},
	}
}
