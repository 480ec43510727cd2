// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Status styles
	Error   lipgloss.Style
	Warning lipgloss.Style

	// Block headers
	FilePath lipgloss.Style
	Location lipgloss.Style
	Language lipgloss.Style
	Detected lipgloss.Style
	Classes  lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style

	// scopes styles code by the head of its scope name.
	scopes map[string]lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Error:   fg("9").Bold(true),
		Warning: fg("11").Bold(true),

		FilePath: lipgloss.NewStyle().Bold(true),
		Location: fg("8"),
		Language: fg("12"),
		Detected: fg("12").Italic(true),
		Classes:  fg("8"),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),
		Success:      fg("10").Bold(true),
		Failure:      fg("9").Bold(true),

		Dim:  fg("8"),
		Bold: lipgloss.NewStyle().Bold(true),

		scopes: map[string]lipgloss.Style{
			"keyword":     fg("13").Bold(true),
			"built_in":    fg("6"),
			"type":        fg("11"),
			"literal":     fg("14"),
			"number":      fg("14"),
			"string":      fg("10"),
			"regexp":      fg("2"),
			"char":        fg("3"),
			"subst":       fg("15"),
			"symbol":      fg("3"),
			"comment":     fg("8").Italic(true),
			"meta":        fg("5"),
			"title":       fg("12"),
			"name":        fg("12"),
			"attr":        fg("11"),
			"variable":    fg("9"),
			"property":    fg("6"),
			"section":     lipgloss.NewStyle().Bold(true),
			"emphasis":    lipgloss.NewStyle().Italic(true),
			"strong":      lipgloss.NewStyle().Bold(true),
			"addition":    fg("10"),
			"deletion":    fg("9"),
			"operator":    lipgloss.NewStyle(),
			"punctuation": lipgloss.NewStyle(),
		},
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error:        plain,
		Warning:      plain,
		FilePath:     plain,
		Location:     plain,
		Language:     plain,
		Detected:     plain,
		Classes:      plain,
		SummaryTitle: plain,
		SummaryValue: plain,
		Success:      plain,
		Failure:      plain,
		Dim:          plain,
		Bold:         plain,
	}
}

// Scope returns the style for a scope name such as "title.function". The
// head of a dotted name picks the style; unknown scopes are unstyled.
func (s *Styles) Scope(scope string) (lipgloss.Style, bool) {
	head, _, _ := strings.Cut(scope, ".")
	style, ok := s.scopes[head]
	return style, ok
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
