// Package cli implements the strokeset command-line interface.
//
// This package exposes the dataset preparation pipeline as cobra commands.
// `prepare` runs every stage; `rasterize`, `split` and `pack` run one stage
// each so a failed or interrupted run can be resumed; `inspect` and `export`
// read a dataset without writing images.
//
// # Configuration
//
// Settings come from built-in defaults, then strokeset.toml in the work
// directory (or the file named by --config), then command-line flags.
// Connection strings are read from MONGODB_URI and REDIS_URL only.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Every
// invocation gets a run ID that is attached to each log line.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/strokeset/pkg/buildinfo"
	"github.com/matzehuels/strokeset/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "strokeset"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Getenv looks up connection strings. Defaults to os.Getenv.
	Getenv func(string) string

	// RunID identifies this invocation in log output.
	RunID string

	verbose    bool
	configPath string
}

// New creates a new CLI instance logging to w at the given level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Getenv: os.Getenv,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Strokeset turns stroke recordings into an image classification dataset",
		Long: `Strokeset loads labeled pen-stroke samples, renders each one to a small
grayscale PNG, splits the images into train, val and test sets and packs the
result into images.tar.xz.`,
		Version:      buildinfo.Resolved(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			c.RunID = uuid.NewString()
			c.Logger = c.Logger.With("run", c.RunID[:8])
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: <workdir>/"+configFileName+")")

	// Register all subcommands
	root.AddCommand(c.prepareCommand())
	root.AddCommand(c.rasterizeCommand())
	root.AddCommand(c.splitCommand())
	root.AddCommand(c.packCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}
