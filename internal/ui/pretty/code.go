package pretty

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/gomdhl/pkg/highlight"
)

// RenderCode styles a block's text with its decorations. start is the
// document position of text[0]; ranges use document positions and may nest.
// Each segment takes the style of the innermost range covering it. Ranges
// outside the text are clipped.
func (s *Styles) RenderCode(text string, start int, ranges []highlight.Range) string {
	if text == "" {
		return ""
	}

	// Boundaries at every range edge split text into uniformly styled segments.
	cuts := []int{0, len(text)}
	for _, r := range ranges {
		cuts = append(cuts, clamp(r.From-start, len(text)), clamp(r.To-start, len(text)))
	}
	cuts = sortedUnique(cuts)

	var out strings.Builder
	for i := 0; i+1 < len(cuts); i++ {
		from, to := cuts[i], cuts[i+1]
		segment := text[from:to]
		scope := innermostScope(ranges, start+from, start+to)
		style, ok := s.Scope(scope)
		if !ok {
			out.WriteString(segment)
			continue
		}
		writeStyled(&out, style.TabWidth(lipgloss.NoTabConversion).Render, segment)
	}
	return out.String()
}

// writeStyled renders each line separately so newlines pass through
// unstyled.
func writeStyled(out *strings.Builder, render func(...string) string, segment string) {
	for i, line := range strings.Split(segment, "\n") {
		if i > 0 {
			out.WriteByte('\n')
		}
		if line != "" {
			out.WriteString(render(line))
		}
	}
}

// innermostScope returns the scope of the shortest range covering
// [from, to), or "" when no range does.
func innermostScope(ranges []highlight.Range, from, to int) string {
	scope, width := "", -1
	for _, r := range ranges {
		if r.From <= from && to <= r.To && (width < 0 || r.To-r.From <= width) {
			scope, width = r.Scope, r.To-r.From
		}
	}
	return scope
}

func clamp(v, hi int) int {
	if v < 0 {
		return 0
	}
	if v > hi {
		return hi
	}
	return v
}

func sortedUnique(values []int) []int {
	sort.Ints(values)
	out := values[:0]
	for _, v := range values {
		if len(out) == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
