package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdhl/internal/logging"
	"github.com/yaklabco/gomdhl/internal/replay"
	"github.com/yaklabco/gomdhl/pkg/config"
	"github.com/yaklabco/gomdhl/pkg/editor"
	"github.com/yaklabco/gomdhl/pkg/fsutil"
	"github.com/yaklabco/gomdhl/pkg/highlight"
	"github.com/yaklabco/gomdhl/pkg/runner"
)

func newReplayCommand() *cobra.Command {
	var nodeTypes []string

	cmd := &cobra.Command{
		Use:   "replay <file> <script.yaml>",
		Short: "Replay scripted edits and report cache reuse",
		Long: `Open a Markdown file in an in-memory editor, apply the edits of a YAML
script one by one, and print the highlight cache work each edit caused:
how many blocks were reused from the cache, rendered again, or evicted.

The file itself is never modified. Positions in the script are document
positions: a block at p has its text at p+1.

Script format:
  steps:
    - name: type into the first block
      op: insert_text        # insert_text, replace_text, delete,
      pos: 12                # insert_nodes, delete_nodes,
      text: "x"              # set_language, undo
    - op: insert_nodes
      pos: 0
      markdown: "` + "```" + `\nplain block\n` + "```" + `\n"
    - op: undo`,
		Example: `  gomdhl replay README.md edits.yaml
  gomdhl replay --node-type document notes.md edits.yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCfg := &config.Config{}
			if cmd.Flags().Changed("node-type") {
				cliCfg.NodeTypes = nodeTypes
			}
			return runReplay(cmd, args[0], args[1], cliCfg)
		},
	}

	cmd.Flags().StringSliceVar(&nodeTypes, "node-type", nil, "node types to highlight (default: code_block)")

	return cmd
}

func runReplay(cmd *cobra.Command, path, scriptPath string, cliCfg *config.Config) error {
	ctx := commandContext(cmd)

	cfg, _, err := loadConfig(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}

	script, err := replay.Load(scriptPath)
	if err != nil {
		return err
	}

	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	hl, _ := runner.NewHighlighter(cfg)
	pipeline := runner.NewPipeline(cfg, hl)
	doc, err := pipeline.Parser.Parse(ctx, content)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	ed, applied, err := editor.New(doc, hl, highlight.PluginConfig{NodeTypes: cfg.NodeTypes})
	if err != nil {
		return fmt.Errorf("highlight %s: %w", path, err)
	}

	ctx = logging.WithFile(logging.WithLogger(ctx, logging.NewWithWriter(cmd.OutOrStdout(), "info")), path)

	initStats := ed.InitStats()
	for _, a := range applied {
		initStats = initStats.Add(a.Stats)
	}
	logging.FromContext(ctx).Info("initial highlight", append(logging.StatsFields(initStats),
		logging.FieldBlocks, len(highlight.Locate(ed.Doc(), cfg.NodeTypes)),
		logging.FieldRanges, ed.Decorations().Len(),
	)...)

	results, runErr := replay.Run(ctx, ed, script, pipeline.Parser)
	for _, r := range results {
		logging.FromContext(logging.WithStep(ctx, r.Index)).Info(r.Step.Label(), append(logging.StatsFields(r.Stats),
			logging.FieldFollowUps, r.FollowUps(),
			logging.FieldRanges, r.Ranges,
		)...)
	}
	if runErr != nil {
		return fmt.Errorf("replay %s: %w", scriptPath, runErr)
	}

	logging.Default().Debug("replay finished",
		logging.FieldPath, path,
		logging.FieldSteps, len(results),
		logging.FieldHistory, len(ed.History()),
	)
	return nil
}
