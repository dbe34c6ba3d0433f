package launcher

import (
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-tiprouter/flags"
)

// NewApp builds the tiprouter command line app.
func NewApp() *cli.App {
	app := flags.NewApp()
	app.Flags = flags.AllGlobalFlags()
	app.Commands = commands()
	return app
}

// Launch runs the app with the given command line.
func Launch(args []string) error {
	return NewApp().Run(args)
}
