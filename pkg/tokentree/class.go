package tokentree

import "strings"

// DefaultClassPrefix is prepended to scope class names.
const DefaultClassPrefix = "hljs-"

// ClassName expands a scope into its space-separated CSS classes.
//
// A sublanguage scope becomes "language-<name>". A plain scope becomes
// prefix+name. A dotted scope "head.a.b" becomes "<prefix>head a_ b__":
// each trailing part gets one more underscore than the one before it.
func ClassName(scope string, sublanguage bool, prefix string) string {
	if scope == "" {
		return ""
	}
	if sublanguage {
		return "language-" + scope
	}
	if !strings.Contains(scope, ".") {
		return prefix + scope
	}

	parts := strings.Split(scope, ".")
	classes := make([]string, 0, len(parts))
	classes = append(classes, prefix+parts[0])
	for i, part := range parts[1:] {
		classes = append(classes, part+strings.Repeat("_", i+1))
	}
	return strings.Join(classes, " ")
}
