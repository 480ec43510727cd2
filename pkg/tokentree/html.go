package tokentree

import (
	"strings"

	"golang.org/x/net/html"
)

// HTML renders the tree as escaped text wrapped in <span class="..."> elements,
// one per scope. Scopes without a class produce no element.
func (t *Tree) HTML(prefix string) string {
	var sb strings.Builder
	var open []bool
	for ev := range t.Events() {
		switch ev.Kind {
		case EventText:
			sb.WriteString(html.EscapeString(ev.Text))
		case EventOpen:
			class := ClassName(ev.Scope, ev.Sublanguage, prefix)
			open = append(open, class != "")
			if class != "" {
				sb.WriteString(`<span class="`)
				sb.WriteString(class)
				sb.WriteString(`">`)
			}
		case EventClose:
			if len(open) == 0 {
				continue
			}
			if open[len(open)-1] {
				sb.WriteString("</span>")
			}
			open = open[:len(open)-1]
		}
	}
	return sb.String()
}
