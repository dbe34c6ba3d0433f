package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// StorageFlags tune the record database.
func StorageFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "db.preset",
			Usage: "Database preset (default|lite|full|memory)",
			Value: "default",
		},
		cli.IntFlag{
			Name:  "cache",
			Usage: "Megabytes of memory allocated to database caching",
		},
		cli.IntFlag{
			Name:  "handles",
			Usage: "Number of open files the database may use",
		},
	}
}

// SignerFlags select the key instructions are signed with.
func SignerFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "keypair",
			Usage: "Path to a solana-keygen JSON keypair file",
		},
		cli.IntFlag{
			Name:  "fakekey",
			Usage: "Sign with the n-th deterministic fake network key (testing only)",
			Value: -1,
		},
	}
}
