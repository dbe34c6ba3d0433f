package launcher

// Defaults are the values a Config starts from before presets and flags are
// applied.
type Defaults struct {
	Node    NodeDefaults
	Network NetworkDefaults
	Storage StorageDefaults
	Logging LoggingDefaults
}

type NodeDefaults struct {
	DataDir string // Filesystem root of the record database. Changing it keeps test data isolated.
}

type NetworkDefaults struct {
	Name string // Network rules preset (main, test, fake).
}

type StorageDefaults struct {
	Preset string // Database preset, see integration.GetPresetByName.
}

type LoggingDefaults struct {
	Verbosity int    // Log level numeric (0=fatal, 1=error, 2=warn, 3=info, 4=debug, 5=trace).
	Format    string // Log output format (text vs json).
	Color     bool   // Whether to use ANSI color codes in logs.
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Defaults {
	return Defaults{
		Node: NodeDefaults{
			DataDir: "~/.tiprouter",
		},
		Network: NetworkDefaults{
			Name: "main",
		},
		Storage: StorageDefaults{
			Preset: "default",
		},
		Logging: LoggingDefaults{
			Verbosity: 3,
			Format:    "text",
			Color:     false,
		},
	}
}
