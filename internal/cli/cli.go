package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/originals/internal/app"
	"github.com/specialistvlad/originals/internal/binding"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
//
// Precedence, lowest first: built-in defaults, the --config file, flags
// given on the command line.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	defaults := app.DefaultConfig()

	flagSet := flag.NewFlagSet("originals", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, `
originals - a script realm whose original built-ins survive tampering.

Usage:
  originals [options] [SCRIPT]

Arguments:
  SCRIPT
    A script to run in a fresh realm. Without it, and without --list,
    an interactive session starts.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to a TOML config file.")
	manifestsFlag := flagSet.String("manifests", "", "Extra manifest file or directory loaded on top of the built-in ones.")
	realmFlag := flagSet.String("realm", string(defaults.RealmKind), fmt.Sprintf("Realm kind. Options: %v.", binding.RealmKinds()))
	logFormatFlag := flagSet.String("log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	inspectPortFlag := flagSet.Int("inspect-port", 0, "Port for the HTTP inspect server. 0 is disabled.")
	listFlag := flagSet.Bool("list", false, "Print the realm's original bindings and exit.")
	historyFlag := flagSet.String("history", "", "REPL history file.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("expected at most one script, got %d", flagSet.NArg())}
	}
	slog.Debug("Arguments parsed successfully.")

	cfg := defaults
	if *configFlag != "" {
		if err := app.LoadFileConfig(*configFlag, &cfg); err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
		slog.Debug("Config file applied.", "path", *configFlag)
	}

	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "manifests":
			cfg.ManifestsPath = *manifestsFlag
		case "realm":
			cfg.RealmKind = binding.RealmKind(*realmFlag)
		case "log-format":
			cfg.LogFormat = *logFormatFlag
		case "log-level":
			cfg.LogLevel = *logLevelFlag
		case "inspect-port":
			cfg.InspectPort = *inspectPortFlag
		case "history":
			cfg.HistoryPath = *historyFlag
		}
	})
	cfg.List = *listFlag
	cfg.ScriptPath = flagSet.Arg(0)

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
