// Package cli provides the Cobra command structure for gomdhl.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdhl/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root gomdhl command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "gomdhl",
		Short: "Incremental syntax highlighting for Markdown code blocks",
		Long: `gomdhl highlights the code blocks of Markdown documents.

It keeps a per-block decoration cache that survives edits: blocks an edit
does not touch are served from the cache with their positions shifted, and
only changed blocks go back through the highlighter. Blocks without a
language are detected automatically, and the detected language can be
written back into the source fence.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newHighlightCommand())
	rootCmd.AddCommand(newReplayCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	applyHelp(rootCmd)

	return rootCmd
}
