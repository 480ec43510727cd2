package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/gomdhl/internal/ui/pretty"
	"github.com/yaklabco/gomdhl/pkg/highlight"
	"github.com/yaklabco/gomdhl/pkg/highlighter"
)

// exampleLanguage is the language command examples are highlighted as.
const exampleLanguage = "bash"

// helpFormatter renders command help in the palette used for highlighted
// code. Examples are shell code and go through the highlighter.
type helpFormatter struct {
	styles *pretty.Styles

	// engine is nil when colour is off.
	engine *highlighter.Engine
}

func newHelpFormatter(colorMode string, w io.Writer) *helpFormatter {
	enabled := pretty.IsColorEnabled(colorMode, w)
	h := &helpFormatter{styles: pretty.NewStyles(enabled)}
	if enabled {
		h.engine = highlighter.New()
	}
	return h
}

const helpTemplate = `{{with (or .Long .Short)}}{{ trim . }}

{{end}}{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}
{{- if .HasExample}}

{{ heading "Examples:" }}
{{ example .Example }}{{end}}
{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand .Name .NamePadding }} {{ .Short }}{{end}}{{end}}{{end}}
{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}{{end}}
{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}{{end}}
{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.{{end}}
`

func (h *helpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"heading": h.styles.SummaryTitle.Render,
		"command": h.styles.FilePath.Render,
		"subcommand": func(name string, padding int) string {
			return h.styles.Language.Render(name) + strings.Repeat(" ", max(padding-len(name), 0))
		},
		"example": h.example,
		"flags":   h.flags,
		"trim":    trimTrailingWhitespaces,
	}
}

// render writes the help of cmd to w.
func (h *helpFormatter) render(w io.Writer, cmd *cobra.Command) error {
	tmpl, err := template.New("help").Funcs(h.funcs()).Parse(helpTemplate)
	if err != nil {
		return fmt.Errorf("parse help template: %w", err)
	}
	return tmpl.Execute(w, cmd)
}

// exampleRanges highlights command examples. Nil when colour is off or the
// examples cannot be highlighted.
func (h *helpFormatter) exampleRanges(text string) []highlight.Range {
	if h.engine == nil {
		return nil
	}
	result, err := h.engine.Highlight(text, exampleLanguage)
	if err != nil {
		return nil
	}
	ranges, err := highlight.Render(result.Tree.Events(), -1, result.ClassPrefix)
	if err != nil {
		return nil
	}
	return ranges
}

func (h *helpFormatter) example(text string) string {
	return h.styles.RenderCode(text, 0, h.exampleRanges(text))
}

// flagRow is one line of a flag listing before styling.
type flagRow struct {
	name  string
	usage string
}

// flags lists the visible flags of fs with their usage aligned.
func (h *helpFormatter) flags(fs *pflag.FlagSet) string {
	var (
		rows  []flagRow
		width int
	)
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		name := "    --" + f.Name
		if f.Shorthand != "" {
			name = "-" + f.Shorthand + ", --" + f.Name
		}
		typ, usage := pflag.UnquoteUsage(f)
		if typ != "" {
			name += " " + typ
		}
		if def := flagDefault(f); def != "" {
			usage += " (default " + def + ")"
		}
		rows = append(rows, flagRow{name: name, usage: usage})
		width = max(width, len(name))
	})

	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		pad := strings.Repeat(" ", width-len(r.name)+3)
		lines = append(lines, "  "+h.styles.Language.Render(r.name)+pad+r.usage)
	}
	return strings.Join(lines, "\n")
}

// flagDefault formats a flag's default, or "" when it is the zero value.
func flagDefault(f *pflag.Flag) string {
	switch f.DefValue {
	case "", "false", "0", "[]":
		return ""
	}
	if f.Value.Type() == "string" {
		return fmt.Sprintf("%q", f.DefValue)
	}
	return f.DefValue
}

// applyHelp installs the help renderer on cmd and its subcommands. The
// colour mode is read from the --color flag when help is shown.
func applyHelp(cmd *cobra.Command) {
	formatter := func(command *cobra.Command) *helpFormatter {
		mode := "auto"
		if f := command.Root().PersistentFlags().Lookup("color"); f != nil {
			mode = f.Value.String()
		}
		return newHelpFormatter(mode, command.OutOrStdout())
	}

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := formatter(command).render(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return formatter(command).render(command.OutOrStderr(), command)
	})
}

// trimTrailingWhitespaces removes trailing whitespace from lines.
func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
