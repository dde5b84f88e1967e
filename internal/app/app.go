// Package app wires the config/store/printer/action layers together behind
// a single urfave/cli/v2 shell: one catch-all Action that hands the raw
// argv to internal/cmdline, dispatches through internal/action, and
// persists whatever changed.
package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/Nelyah/bee/internal/action"
	"github.com/Nelyah/bee/internal/cmdline"
	"github.com/Nelyah/bee/internal/config"
	bedrrors "github.com/Nelyah/bee/internal/errors"
	"github.com/Nelyah/bee/internal/logger"
	"github.com/Nelyah/bee/internal/printer"
	"github.com/Nelyah/bee/internal/query"
	"github.com/Nelyah/bee/internal/shared"
	"github.com/Nelyah/bee/internal/store"
	"github.com/Nelyah/bee/internal/task"
)

// undoWindow is how many past action records the store retains, matching
// the original CLI's fixed depth of one reversible action.
const undoWindow = 1

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersionFromBuild lets cmd/bee inject build-time version metadata.
func SetVersionFromBuild(v, c, d string) {
	version, commit, date = v, c, d
}

// App wraps the urfave/cli application.
type App struct {
	*cli.App
}

// isUserInputError reports whether err should be printed as a clean
// one-liner rather than logged as an internal failure.
func isUserInputError(err error) bool {
	if err == nil {
		return false
	}
	if _, ok := err.(*bedrrors.EnhancedError); ok {
		return true
	}

	errMsg := err.Error()
	for _, pattern := range []string{
		"Required flag",
		"flag provided but not defined",
		"invalid value",
		"command not found",
		"incorrect usage",
		"flag needs an argument",
		"No help topic for",
	} {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}

// New builds the CLI application.
func New() (*App, error) {
	cliApp := &cli.App{
		Name:    "bee",
		Usage:   "a small command-line task manager",
		Version: fmt.Sprintf("%s (%s, built %s)", version, commit, date),
		Flags: []cli.Flag{
			NewActorFlag(),
			NewLogLevelFlag(),
			NewDataHomeFlag(),
			NewConfigFlag(),
		},
		Before: func(c *cli.Context) error {
			logger.SetLogLevel(c.String("log-level"))
			return nil
		},
		Action: func(c *cli.Context) error {
			return runCommand(c)
		},
	}
	return &App{App: cliApp}, nil
}

func runCommand(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	st := store.NewJSONStore(c.String("data-home"))
	data, err := st.LoadTasks()
	if err != nil {
		return err
	}

	now := time.Now()
	coeffs := cfg.Coefficients()
	if err := data.Upkeep(now, coeffs); err != nil {
		return err
	}

	undos, err := st.LoadUndos(undoWindow)
	if err != nil {
		return err
	}
	data.Undos = undos

	parsed := cmdline.Parse(c.Args().Slice(), cfg.ReportNames())

	var filtered []*task.Task
	if strings.TrimSpace(parsed.FilterText) != "" {
		fp, err := query.NewFilterParser(parsed.FilterText, now)
		if err != nil {
			return bedrrors.NewParseError("filter expression", err)
		}
		f, err := fp.Parse()
		if err != nil {
			return bedrrors.NewParseError("filter expression", err)
		}
		filtered = data.Filter(f)
	} else {
		filtered = data.Filter(query.Root{})
	}

	p := printer.New(cfg, os.Stdout, os.Stderr)

	ctx := action.Context{
		Data:         data,
		Filtered:     filtered,
		Arguments:    parsed.Arguments,
		Report:       parsed.Report,
		Actor:        shared.GetActorFromContext(c),
		Now:          now,
		Coefficients: coeffs,
	}

	if _, err := action.Dispatch(action.Verb(parsed.Verb), ctx, p); err != nil {
		return err
	}

	if err := data.Upkeep(now, coeffs); err != nil {
		return err
	}
	if err := st.WriteTasks(data); err != nil {
		return err
	}
	return st.LogUndo(undoWindow, data.Undos)
}

// Run executes the application, routing user input errors to a clean
// stderr line and internal errors through the structured logger.
func (a *App) Run(args []string) error {
	defer logger.Sync()

	if err := a.App.Run(args); err != nil {
		if isUserInputError(err) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return err
		}
		logger.GetLogger().Error("application error", zap.Error(err))
		return err
	}
	return nil
}
