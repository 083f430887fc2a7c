// Package cli provides the command-line interface for errnogen.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/user/errnogen/internal/config"
	"github.com/user/errnogen/internal/logging"
)

// Global flags
var (
	jsonOutput bool
	configPath string
	quiet      bool
	verbose    bool
	noColor    bool
)

// Output colors for human-readable messages
var (
	green = color.New(color.FgGreen).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
)

// Loaded by the root command before any subcommand runs
var (
	cfg    *config.Config
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "errnogen",
	Short: "Export the host errno table as an interpreter header fragment",
	Long: `Errnogen reads a platform's symbolic error numbers and writes a C header
fragment that registers each E* constant with an interpreter runtime:

  /* Generated by errnogen, do not edit */
  #define W(x) (space->wrap_int(context, (x)))
  add_def("EPERM", W(1));
  ...
  #undef W

Features:
  - Sources: the running host, YAML/JSON table files, SQLite snapshots
  - Stable output: entries sorted by name (or code) for byte-identical builds
  - CI guard: generate --check fails when the committed header is stale
  - Watch mode: regenerate whenever a table file changes`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadRuntime,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		ExitWithError(err)
	}
}

func init() {
	// Global flags available to all commands
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ./errnogen.yaml if present)")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

// loadRuntime reads configuration and builds the logger.
func loadRuntime(cmd *cobra.Command, args []string) error {
	if noColor {
		color.NoColor = true
	}

	c, err := config.Load(configPath)
	if err != nil {
		return err
	}

	level := c.Log.Level
	switch {
	case IsVerbose():
		level = "debug"
	case IsQuiet():
		level = "error"
	}

	cfg = c
	logger = logging.New(logging.Options{
		Level:  level,
		Format: c.Log.Format,
		Output: cmd.ErrOrStderr(),
	})
	if cfg.File != "" {
		logger.Debug("loaded config", "file", cfg.File)
	}
	return nil
}

// ExitCode is used to communicate exit codes for testing
var ExitCode int

// ExitFunc is the function called to exit the program
// Can be overridden for testing
var ExitFunc = os.Exit

// Exit sets the exit code and calls the exit function
func Exit(code int) {
	ExitCode = code
	ExitFunc(code)
}

// GetJSONOutput returns whether JSON output is enabled
func GetJSONOutput() bool {
	return jsonOutput
}

// IsQuiet returns whether quiet mode is enabled
func IsQuiet() bool {
	return quiet
}

// IsVerbose returns whether verbose mode is enabled
func IsVerbose() bool {
	return verbose
}

// firstNonEmpty returns the first non-empty value, so flags win over config.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
