package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdhl/internal/logging"
	"github.com/yaklabco/gomdhl/internal/ui/pretty"
	"github.com/yaklabco/gomdhl/pkg/config"
	"github.com/yaklabco/gomdhl/pkg/reporter"
	"github.com/yaklabco/gomdhl/pkg/runner"
)

type highlightFlags struct {
	format      string
	flavor      string
	classPrefix string
	nodeTypes   []string
	ignore      []string
	persist     bool
	noMemo      bool
	check       bool
	compact     bool
	includeText bool
	summary     bool
}

func newHighlightCommand() *cobra.Command {
	var cfg config.Config
	flags := &highlightFlags{}

	cmd := &cobra.Command{
		Use:     "highlight [paths...]",
		Short:   "Highlight the code blocks of Markdown files",
		Long:    highlightLongDescription,
		Example: highlightExamples,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHighlight(cmd, args, &cfg, flags)
		},
	}

	addHighlightFlags(cmd, &cfg, flags)

	return cmd
}

const highlightLongDescription = `Highlight the code blocks of Markdown files.

By default, highlights all .md and .markdown files in the current directory
and subdirectories. Specify paths to highlight specific files or directories.

Blocks without a language are detected automatically. With --persist the
detected languages are recorded in the fence info string; --write applies
those edits to the files.`

const highlightExamples = `  gomdhl highlight                        # Highlight current directory
  gomdhl highlight docs/                  # Highlight docs directory
  gomdhl highlight README.md --format html
  gomdhl highlight --persist --write      # Record detected languages
  gomdhl highlight --persist --check      # Fail if languages are missing
  gomdhl highlight --node-type code_block --node-type paragraph`

func runHighlight(cmd *cobra.Command, args []string, cfg *config.Config, flags *highlightFlags) error {
	logger := logging.Default()
	start := time.Now()

	// Only set values that were explicitly provided via CLI flags.
	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if cmd.Flags().Changed("flavor") {
		cfg.Flavor = config.Flavor(flags.flavor)
	}
	if cmd.Flags().Changed("class-prefix") {
		cfg.ClassPrefix = flags.classPrefix
	}
	if cmd.Flags().Changed("node-type") {
		cfg.NodeTypes = flags.nodeTypes
	}
	if cmd.Flags().Changed("persist") {
		cfg.PersistDetected = config.Bool(flags.persist)
	}
	if flags.noMemo {
		cfg.Memo.Enabled = config.Bool(false)
	}
	cfg.Ignore = flags.ignore

	ctx := commandContext(cmd)

	finalCfg, workDir, err := loadConfig(ctx, cmd, cfg)
	if err != nil {
		return err
	}

	format, err := reporter.ParseFormat(string(finalCfg.Format))
	if err != nil {
		return errors.Join(ErrUsage, err)
	}
	if finalCfg.Write && !finalCfg.ShouldPersist() {
		logger.Warn("--write has no effect without --persist")
	}

	hl, memo := runner.NewHighlighter(finalCfg)
	hlRunner := runner.New(runner.NewPipeline(finalCfg, hl))

	runOpts := runner.Options{
		Paths:        args,
		WorkingDir:   workDir,
		Extensions:   runner.DefaultExtensions(),
		ExcludeGlobs: finalCfg.Ignore,
		Jobs:         finalCfg.Jobs,
		Config:       finalCfg,
	}

	logger.Debug("starting highlight run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := hlRunner.Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("highlight run failed: %w", err)
	}

	fields := []any{
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesModified, result.Stats.FilesModified,
		logging.FieldFilesFailed, result.Stats.FilesErrored,
		logging.FieldBlocks, result.Stats.Blocks,
		logging.FieldRendered, result.Stats.Rendered,
		logging.FieldReused, result.Stats.Reused,
		logging.FieldDetected, result.Stats.Detected,
		logging.FieldDuration, time.Since(start),
	}
	if memo != nil {
		fields = append(fields, logging.FieldMemoHits, memo.Stats().Hits)
	}
	logger.Debug("highlight run finished", fields...)

	for _, outcome := range result.Files {
		if outcome.Error != nil {
			logger.Debug("file failed", logging.FieldPath, outcome.Path, logging.FieldError, outcome.Error)
		}
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode,
		ShowSummary: format == reporter.FormatText || format == reporter.FormatANSI,
		Compact:     flags.compact,
		IncludeText: flags.includeText,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if flags.summary {
		styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.ErrOrStderr()))
		fmt.Fprint(cmd.ErrOrStderr(), styles.FormatSummary(result.Stats))
	}

	switch ExitCodeFromResult(result, flags.check) {
	case ExitFilesFailed:
		return ErrFilesFailed
	case ExitPendingWrites:
		return ErrPendingWrites
	default:
		return nil
	}
}

func addHighlightFlags(cmd *cobra.Command, cfg *config.Config, flags *highlightFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, html, ansi")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.nodeTypes, "node-type", nil, "node types to highlight (default: code_block)")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "commonmark", "Markdown flavor: commonmark, gfm")
	cmd.Flags().StringVar(&flags.classPrefix, "class-prefix", config.DefaultClassPrefix, "prefix for scope class names")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&flags.persist, "persist", false, "record detected languages in fence info strings")
	cmd.Flags().BoolVar(&cfg.Write, "write", false, "write recorded languages back to the files")
	cmd.Flags().BoolVar(&flags.check, "check", false, "exit non-zero when detected languages are not written")
	cmd.Flags().BoolVar(&flags.noMemo, "no-memo", false, "disable highlight memoization across files")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().BoolVar(&flags.includeText, "include-text", false, "include block text in JSON output")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print a summary table to stderr")
}
