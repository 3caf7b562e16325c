// Package cli implements the nifstream command-line interface.
//
// This package provides commands for probing and decoding scene-graph
// files, exporting and rendering their block graphs, and scanning asset
// directories. The CLI is built using cobra and supports verbose logging
// via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - probe: Identify a file's format version without decoding it
//   - dump: Decode a file and list or export its block graph
//   - render: Draw the block graph as a DOT or SVG diagram
//   - walk: Scan a directory tree and classify every matching file
//   - cache: Manage the probe result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nifstream/pkg/buildinfo"
)

// appName is the application name used for directories and display.
const appName = "nifstream"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "nifstream reads and writes NetImmerse/Gamebryo scene-graph files",
		Long:         `nifstream is a CLI tool for inspecting NetImmerse/Gamebryo ("NIF") scene-graph files across the full historical version range: probing versions, decoding block graphs, and rendering their reference structure.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.probeCommand())
	root.AddCommand(c.dumpCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.walkCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
