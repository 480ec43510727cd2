// Package replay applies scripted edits to a document through the editor
// host, recording the cache work each edit causes.
package replay

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Op names an edit operation.
type Op string

// Supported operations.
const (
	OpInsertText  Op = "insert_text"
	OpReplaceText Op = "replace_text"
	OpDelete      Op = "delete"
	OpInsertNodes Op = "insert_nodes"
	OpDeleteNodes Op = "delete_nodes"
	OpSetLanguage Op = "set_language"
	OpUndo        Op = "undo"
)

// ErrEmptyScript indicates a script without steps.
var ErrEmptyScript = errors.New("script has no steps")

// Script is an ordered list of edits.
type Script struct {
	Steps []Step `yaml:"steps"`
}

// Step is one edit. Which fields apply depends on Op:
//
//	insert_text:  pos, text
//	replace_text: from, to, text
//	delete:       from, to
//	insert_nodes: pos, markdown (parsed; its top-level blocks are inserted)
//	delete_nodes: from, to
//	set_language: pos, language
//	undo:         no fields
type Step struct {
	Name     string `yaml:"name,omitempty"`
	Op       Op     `yaml:"op"`
	Pos      int    `yaml:"pos,omitempty"`
	From     int    `yaml:"from,omitempty"`
	To       int    `yaml:"to,omitempty"`
	Text     string `yaml:"text,omitempty"`
	Markdown string `yaml:"markdown,omitempty"`
	Language string `yaml:"language,omitempty"`

	// History set to false keeps the edit out of undo history.
	History *bool `yaml:"history,omitempty"`
}

// Label returns the step name, or its operation when unnamed.
func (s Step) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return string(s.Op)
}

// Validate checks that the step carries the fields its operation needs.
func (s Step) Validate() error {
	switch s.Op {
	case OpInsertText:
		if s.Text == "" {
			return fmt.Errorf("%s: text is required", s.Op)
		}
	case OpReplaceText, OpDelete, OpDeleteNodes:
		if s.From > s.To {
			return fmt.Errorf("%s: from %d is after to %d", s.Op, s.From, s.To)
		}
	case OpInsertNodes:
		if s.Markdown == "" {
			return fmt.Errorf("%s: markdown is required", s.Op)
		}
	case OpSetLanguage:
		if s.Language == "" {
			return fmt.Errorf("%s: language is required", s.Op)
		}
	case OpUndo:
	case "":
		return errors.New("op is required")
	default:
		return fmt.Errorf("unknown op %q", s.Op)
	}
	return nil
}

// Parse decodes and validates a YAML script. Unknown fields are rejected.
func Parse(data []byte) (*Script, error) {
	var script Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&script); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, ErrEmptyScript
	}
	for i, step := range script.Steps {
		if err := step.Validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &script, nil
}

// Load reads and parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	script, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return script, nil
}
