package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/justtree/internal/app"
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
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("justtree", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
justtree - render recipe documents to their canonical syntax tree.

Usage:
  justtree [options] [PATH]

Arguments:
  PATH
    Path to a single .hcl recipe document or a directory containing them.

Options:
`)
		flagSet.PrintDefaults()
	}

	pathFlag := flagSet.String("path", "", "Path to the recipe document or directory.")
	pFlag := flagSet.String("p", "", "Path to the recipe document or directory (shorthand).")
	formatFlag := flagSet.String("format", app.FormatSexpr, "Output format. Options: 'sexpr' or 'json'.")
	checkFlag := flagSet.Bool("check", false, "Compare each rendered tree with its .tree golden file.")
	updateFlag := flagSet.Bool("update", false, "Rewrite the .tree golden files from the rendered trees.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *pathFlag != "" {
		path = *pathFlag
	} else if *pFlag != "" {
		path = *pFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Document path determined.", "path", path)

	if path == "" {
		slog.Debug("No document path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		Path:      path,
		Format:    strings.ToLower(*formatFlag),
		Check:     *checkFlag,
		Update:    *updateFlag,
		LogFormat: logFormat,
		LogLevel:  logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
