// Package langdetect guesses the language of a code snippet. It backs the
// autodetection stage of the highlighter when a code block names no language.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Text is returned when no language could be determined.
const Text = "text"

// rule recognises one language from content. trimmed is content without
// surrounding whitespace.
type rule struct {
	lang  string
	match func(content, trimmed []byte) bool
}

// rules are tried in order; the first match wins.
var rules = []rule{
	{"go", func(_, trimmed []byte) bool {
		return bytes.HasPrefix(trimmed, []byte("package "))
	}},
	{"python", matchPython},
	{"html", func(_, trimmed []byte) bool {
		return containsAny(bytes.ToLower(trimmed), "<!doctype html", "<html", "<head>", "<body>")
	}},
	{"json", func(_, trimmed []byte) bool {
		return (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
			bytes.Contains(trimmed, []byte(`"`))
	}},
	{"dockerfile", func(content, trimmed []byte) bool {
		return bytes.HasPrefix(trimmed, []byte("FROM ")) ||
			(bytes.Contains(content, []byte("\nFROM ")) && bytes.Contains(content, []byte("\nRUN "))) ||
			(bytes.Contains(content, []byte("WORKDIR ")) && bytes.Contains(content, []byte("COPY ")))
	}},
	{"sql", func(_, trimmed []byte) bool {
		upper := bytes.ToUpper(trimmed)
		for _, kw := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
			if bytes.HasPrefix(upper, []byte(kw)) {
				return true
			}
		}
		return false
	}},
	{"rust", func(content, _ []byte) bool {
		return containsAny(content, "fn main()", "println!", "let mut ")
	}},
	{"csharp", func(content, _ []byte) bool {
		return containsAny(content, "using System", "Console.WriteLine", "namespace ") &&
			bytes.Contains(content, []byte(";"))
	}},
	{"javascript", func(content, _ []byte) bool {
		return containsAny(content, "=>", "const ", "let ", "console.log")
	}},
	{"yaml", matchYAML},
}

// classifierCandidates limits the go-enry classifier to common fence languages.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "C#", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// fenceNames maps go-enry names to the fence tags people write.
var fenceNames = map[string]string{
	"Shell": "bash",
	"C#":    "csharp",
	"C++":   "cpp",
}

// Detect returns the detected language for content, or Text.
//
// A shebang wins over everything else, followed by the content rules and
// finally the go-enry classifier when it is confident.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return Text
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	trimmed := bytes.TrimSpace(content)
	for _, r := range rules {
		if r.match(content, trimmed) {
			return r.lang
		}
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return Text
}

// Guess is Detect for strings. ok is false when no language was found.
func Guess(content string) (lang string, ok bool) {
	lang = Detect([]byte(content))
	return lang, lang != Text
}

func matchPython(content, trimmed []byte) bool {
	s := string(content)
	if strings.Contains(s, "def ") && strings.Contains(s, "):") {
		return true
	}
	// Go uses "import (".
	if strings.Contains(s, "import ") && !strings.Contains(s, "import (") {
		if strings.Contains(s, "from ") || bytes.HasPrefix(trimmed, []byte("import ")) {
			return true
		}
	}
	return containsAny(content, "__name__", "__main__")
}

// matchYAML counts key: value pairs and root list items.
func matchYAML(content, _ []byte) bool {
	keys := 0
	for line := range bytes.SplitSeq(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || bytes.HasPrefix(line, []byte("#")) {
			continue
		}
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.ContainsAny(line, "({") &&
			!bytes.HasPrefix(line, []byte(`"`)) {
			keys++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			keys++
		}
	}
	return keys >= 2
}

func containsAny(content []byte, needles ...string) bool {
	for _, n := range needles {
		if bytes.Contains(content, []byte(n)) {
			return true
		}
	}
	return false
}

func normalize(lang string) string {
	if name, ok := fenceNames[lang]; ok {
		return name
	}
	return strings.ToLower(lang)
}
