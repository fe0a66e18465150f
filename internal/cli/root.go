package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cart/internal/store"
	"cart/internal/tui"
)

// App carries the wired dependencies into every command.
type App struct {
	Store *store.Store
	Log   *zap.Logger
}

func NewRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "cart",
		Short:        "cart — local-first shopping lists (CLI + TUI)",
		SilenceUsage: true,
		// Commands print their own styled failures; keep cobra quiet.
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  cart

  # Scriptable commands
  cart cats add Produce
  cart add 1 Apples 6
  cart toggle 1 1757000000000
  cart cats ls
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if len(args) == 0 {
				return tui.Run(app.Store)
			}
			return cmd.Help()
		},
	}

	cmd.AddCommand(
		newCatsCmd(app),
		newLsCmd(app),
		newAddCmd(app),
		newEditCmd(app),
		newRmCmd(app),
		newToggleCmd(app),
	)
	return cmd
}

// Execute runs the root command and maps failures to an exit code.
func Execute(app *App) int {
	root := NewRootCmd(app)
	if err := root.Execute(); err != nil {
		var re reportedError
		if !errors.As(err, &re) {
			fail(err.Error())
		}
		return 2
	}
	return 0
}

// parseID parses a positional id argument.
func parseID(what, s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: not a number: %s", what, s)
	}
	return id, nil
}

// reportedError marks a failure the command already printed, so Execute
// does not report it twice.
type reportedError struct {
	err error
}

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// reject prints a styled validation failure, records it in the log, and
// returns it to cobra.
func (a *App) reject(err error) error {
	a.Log.Debug("input rejected", zap.Error(err))
	fail(err.Error())
	return reportedError{err: err}
}
