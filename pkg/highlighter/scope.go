package highlighter

import "github.com/alecthomas/chroma/v2"

// scopes maps chroma token types to highlight.js scope names. Types missing
// here fall back to their category in scopeOf.
var scopes = map[chroma.TokenType]string{
	chroma.KeywordConstant: "literal",
	chroma.KeywordType:     "type",

	chroma.NameBuiltin:       "built_in",
	chroma.NameBuiltinPseudo: "variable.language",
	chroma.NameFunction:      "title.function",
	chroma.NameFunctionMagic: "title.function",
	chroma.NameClass:         "title.class",
	chroma.NameException:     "title.class",
	chroma.NameTag:           "name",
	chroma.NameAttribute:     "attr",
	chroma.NameVariable:      "variable",
	chroma.NameConstant:      "variable.constant",
	chroma.NameProperty:      "property",
	chroma.NameDecorator:     "meta",
	chroma.NameLabel:         "symbol",
	chroma.NameNamespace:     "title",
	chroma.NameEntity:        "symbol",

	chroma.LiteralStringRegex:    "regexp",
	chroma.LiteralStringEscape:   "char.escape",
	chroma.LiteralStringInterpol: "subst",
	chroma.LiteralStringSymbol:   "symbol",
	chroma.LiteralDate:           "number",

	chroma.OperatorWord: "keyword",
	chroma.Operator:     "operator",
	chroma.Punctuation:  "punctuation",

	chroma.CommentPreproc:     "meta",
	chroma.CommentPreprocFile: "string",

	chroma.GenericHeading:    "section",
	chroma.GenericSubheading: "section",
	chroma.GenericEmph:       "emphasis",
	chroma.GenericStrong:     "strong",
	chroma.GenericInserted:   "addition",
	chroma.GenericDeleted:    "deletion",
}

// scopeOf returns the scope for a token type, or "" for plain text.
func scopeOf(tt chroma.TokenType) string {
	if scope, ok := scopes[tt]; ok {
		return scope
	}
	switch tt.SubCategory() {
	case chroma.LiteralString:
		return "string"
	case chroma.LiteralNumber:
		return "number"
	}
	switch tt.Category() {
	case chroma.Keyword:
		return "keyword"
	case chroma.Comment:
		return "comment"
	}
	return ""
}

// nestsInString reports scopes that appear inside string literals.
func nestsInString(scope string) bool {
	return scope == "char.escape" || scope == "subst"
}
