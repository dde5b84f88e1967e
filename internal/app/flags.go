package app

import (
	"github.com/urfave/cli/v2"
)

// NewActorFlag builds the --actor/-a flag, falling back to $BEE_ACTOR then
// $USER. The value is carried in action.Context.Actor; it is not written
// to task history entries.
func NewActorFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "actor",
		Aliases: []string{"a"},
		Usage:   "Actor name for this invocation (default: $BEE_ACTOR or $USER)",
		EnvVars: []string{"BEE_ACTOR", "USER"},
	}
}

// NewLogLevelFlag builds the --log-level/-l flag.
func NewLogLevelFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "log-level",
		Aliases: []string{"l"},
		Usage:   "Log level (off, error, warn, info, debug)",
		Value:   "off",
		EnvVars: []string{"BEE_LOG_LEVEL"},
	}
}

// NewDataHomeFlag builds the --data-home flag, overriding BEE_DATA_HOME
// for this invocation.
func NewDataHomeFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "data-home",
		Usage: "Directory holding bee-data.json and bee-logged-tasks.json (overrides $BEE_DATA_HOME)",
	}
}

// NewConfigFlag builds the --config flag, an explicit path to the TOML
// configuration file.
func NewConfigFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "config",
		Usage: "Path to the bee.toml configuration file",
	}
}
