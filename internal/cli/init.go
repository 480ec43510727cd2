package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gomdhl/internal/logging"
	"github.com/yaklabco/gomdhl/pkg/config"
	"github.com/yaklabco/gomdhl/pkg/fsutil"
)

// defaultConfigFile is the file name init writes by default.
const defaultConfigFile = ".gomdhl.yml"

const configHeader = `# gomdhl configuration.
#
# Values here apply to every run below this directory and can be
# overridden by GOMDHL_* environment variables and command-line flags.`

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new gomdhl configuration file",
		Long: `Create a new .gomdhl.yml configuration file in the current directory
holding the default settings.`,
		Example: `  gomdhl init                       # Create .gomdhl.yml
  gomdhl init --output custom.yml   # Write to a custom file path
  gomdhl init --force               # Overwrite an existing file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultConfigFile, "Output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), "info")

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("%w: file %q already exists; use --force to overwrite", ErrUsage, flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	content, err := config.NewConfig().ToYAMLWithHeader(configHeader)
	if err != nil {
		return fmt.Errorf("generate config: %w", err)
	}

	if err := fsutil.WriteAtomic(commandContext(cmd), absPath, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("customize your configuration by editing the file")

	return nil
}
