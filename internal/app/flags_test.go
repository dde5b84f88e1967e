package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli/v2"
)

func getUsage(flag cli.Flag) string {
	switch f := flag.(type) {
	case *cli.StringFlag:
		return f.Usage
	default:
		return ""
	}
}

func TestNewActorFlag(t *testing.T) {
	flag := NewActorFlag()
	assert.Equal(t, "actor", flag.Names()[0])
	assert.Contains(t, flag.Names(), "a")

	sf, ok := flag.(*cli.StringFlag)
	assert.True(t, ok)
	assert.Equal(t, []string{"BEE_ACTOR", "USER"}, sf.EnvVars)
}

func TestNewLogLevelFlag(t *testing.T) {
	flag := NewLogLevelFlag()
	assert.Equal(t, "log-level", flag.Names()[0])
	assert.Equal(t, "Log level (off, error, warn, info, debug)", getUsage(flag))

	sf, ok := flag.(*cli.StringFlag)
	assert.True(t, ok)
	assert.Equal(t, "off", sf.Value)
}

func TestNewDataHomeFlag(t *testing.T) {
	flag := NewDataHomeFlag()
	assert.Equal(t, "data-home", flag.Names()[0])
}

func TestNewConfigFlag(t *testing.T) {
	flag := NewConfigFlag()
	assert.Equal(t, "config", flag.Names()[0])
}

func TestFlagsIntegration(t *testing.T) {
	flags := []cli.Flag{
		NewActorFlag(),
		NewLogLevelFlag(),
		NewDataHomeFlag(),
		NewConfigFlag(),
	}

	expected := "off"
	app := &cli.App{
		Name:  "test",
		Flags: flags,
		Action: func(c *cli.Context) error {
			assert.Equal(t, expected, c.String("log-level"))
			return nil
		},
	}

	assert.NoError(t, app.Run([]string{"test"}))
	expected = "debug"
	assert.NoError(t, app.Run([]string{"test", "--log-level", "debug", "-a", "bob"}))
}
