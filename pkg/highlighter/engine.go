// Package highlighter turns source text into scoped token trees using chroma
// lexers, with scope names in the highlight.js vocabulary.
package highlighter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/yaklabco/gomdhl/pkg/langdetect"
	"github.com/yaklabco/gomdhl/pkg/tokentree"
)

// ErrUnknownLanguage is returned by Highlight for languages without a lexer.
var ErrUnknownLanguage = errors.New("unknown language")

// Result is the outcome of highlighting one piece of text.
type Result struct {
	// Tree holds the scoped tokens. Its text equals the input.
	Tree *tokentree.Tree

	// Language is the language used. For HighlightAuto it is the detected
	// language, or empty when nothing was detected.
	Language string

	// ClassPrefix is prepended to scope class names when rendering.
	ClassPrefix string
}

// Source is anything that can highlight text.
type Source interface {
	Highlight(text, language string) (Result, error)
	HighlightAuto(text string) (Result, error)
	Known(language string) bool
}

// Engine highlights text with chroma lexers.
type Engine struct {
	prefix string
}

// Option configures an Engine.
type Option func(*Engine)

// WithClassPrefix sets the class prefix reported in results.
func WithClassPrefix(prefix string) Option {
	return func(e *Engine) {
		e.prefix = prefix
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{prefix: tokentree.DefaultClassPrefix}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Known reports whether a lexer is registered for language.
func (e *Engine) Known(language string) bool {
	return language != "" && lexers.Get(language) != nil
}

// Highlight tokenizes text as language.
func (e *Engine) Highlight(text, language string) (Result, error) {
	lexer := lexers.Get(language)
	if language == "" || lexer == nil {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, language)
	}
	tree, err := tokenize(lexer, text)
	if err != nil {
		return Result{}, fmt.Errorf("highlight %s: %w", language, err)
	}
	return Result{Tree: tree, Language: language, ClassPrefix: e.prefix}, nil
}

// HighlightAuto detects the language of text and tokenizes it. Detection
// tries langdetect first and chroma's analysers second. Text in no known
// language comes back as a single unscoped run with an empty Language.
func (e *Engine) HighlightAuto(text string) (Result, error) {
	lexer, language := detect(text)
	if lexer == nil {
		return Result{Tree: tokentree.Plain(text), ClassPrefix: e.prefix}, nil
	}
	tree, err := tokenize(lexer, text)
	if err != nil {
		return Result{}, fmt.Errorf("highlight %s: %w", language, err)
	}
	return Result{Tree: tree, Language: language, ClassPrefix: e.prefix}, nil
}

func detect(text string) (chroma.Lexer, string) {
	if lang, ok := langdetect.Guess(text); ok {
		if lexer := lexers.Get(lang); lexer != nil {
			return lexer, lang
		}
	}
	lexer := lexers.Analyse(text)
	if lexer == nil {
		return nil, ""
	}
	return lexer, lexerName(lexer)
}

// lexerName prefers the first alias, which is what people write after a fence.
func lexerName(lexer chroma.Lexer) string {
	cfg := lexer.Config()
	if len(cfg.Aliases) > 0 {
		return cfg.Aliases[0]
	}
	return strings.ToLower(cfg.Name)
}

func tokenize(lexer chroma.Lexer, text string) (*tokentree.Tree, error) {
	if text == "" {
		return tokentree.Plain(""), nil
	}
	tokens, err := chroma.Tokenise(chroma.Coalesce(lexer), &chroma.TokeniseOptions{State: "root"}, text)
	if err != nil {
		return nil, err
	}
	pieces, ok := toPieces(tokens, text)
	if !ok {
		return tokentree.Plain(text), nil
	}
	return buildTree(pieces)
}

// toPieces converts tokens to scoped pieces. It reports false when the
// tokens do not reproduce text exactly.
func toPieces(tokens []chroma.Token, text string) ([]piece, bool) {
	pieces := make([]piece, 0, len(tokens))
	rest := text
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType || rest == "" {
			break
		}
		value := tok.Value
		if len(value) > len(rest) {
			value = value[:len(rest)]
		}
		if value == "" {
			continue
		}
		if !strings.HasPrefix(rest, value) {
			return nil, false
		}
		rest = rest[len(value):]
		pieces = append(pieces, piece{scope: scopeOf(tok.Type), text: value})
	}
	return pieces, rest == ""
}
