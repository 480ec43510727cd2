package transform

import (
	"fmt"
	"slices"

	"github.com/yaklabco/gomdhl/pkg/mdast"
)

// Well-known metadata keys.
const (
	// MetaAddToHistory set to false keeps a transaction out of undo history.
	MetaAddToHistory = "addToHistory"

	// MetaDetectedLanguages marks a transaction that writes detected
	// languages back onto code blocks.
	MetaDetectedLanguages = "detectedLanguages"
)

// Transaction groups the steps of one document update. Every step produces
// a new document; the starting document is never modified.
type Transaction struct {
	before  *mdast.Node
	doc     *mdast.Node
	steps   []Step
	docs    []*mdast.Node
	mapping Mapping
	meta    map[string]any
}

// New starts a transaction on doc.
func New(doc *mdast.Node) *Transaction {
	return &Transaction{before: doc, doc: doc}
}

// Step applies s to the current document and records it.
func (tr *Transaction) Step(s Step) error {
	next, err := s.Apply(tr.doc)
	if err != nil {
		return err
	}
	tr.docs = append(tr.docs, tr.doc)
	tr.steps = append(tr.steps, s)
	tr.mapping.Append(s.Map())
	tr.doc = next
	return nil
}

// InsertText inserts text at pos, which must be inside a textblock.
func (tr *Transaction) InsertText(pos int, text string) error {
	return tr.Step(ReplaceText{From: pos, To: pos, Text: text})
}

// ReplaceText replaces the text between from and to.
func (tr *Transaction) ReplaceText(from, to int, text string) error {
	return tr.Step(ReplaceText{From: from, To: to, Text: text})
}

// Delete removes the content between from and to. Ranges inside a single
// textblock delete text; other ranges must cover whole nodes.
func (tr *Transaction) Delete(from, to int) error {
	if from == to {
		return nil
	}
	if _, _, ok := tr.doc.TextblockAt(from, to); ok {
		return tr.Step(ReplaceText{From: from, To: to})
	}
	return tr.Step(ReplaceNodes{From: from, To: to})
}

// InsertNodes inserts nodes at pos, which must be a child boundary.
func (tr *Transaction) InsertNodes(pos int, nodes ...*mdast.Node) error {
	return tr.Step(ReplaceNodes{From: pos, To: pos, Nodes: nodes})
}

// DeleteNodes removes the nodes between from and to.
func (tr *Transaction) DeleteNodes(from, to int) error {
	return tr.Step(ReplaceNodes{From: from, To: to})
}

// SetLanguage records a detected language on the code block at pos.
func (tr *Transaction) SetLanguage(pos int, language string) error {
	return tr.Step(SetLanguage{Pos: pos, Language: language})
}

// Before returns the document the transaction started from.
func (tr *Transaction) Before() *mdast.Node {
	return tr.before
}

// Doc returns the current document.
func (tr *Transaction) Doc() *mdast.Node {
	return tr.doc
}

// Steps returns the applied steps.
func (tr *Transaction) Steps() []Step {
	return slices.Clone(tr.steps)
}

// Mapping returns the combined position mapping of all steps.
func (tr *Transaction) Mapping() *Mapping {
	return &tr.mapping
}

// MapResult maps a position in Before() to the current document.
func (tr *Transaction) MapResult(pos, assoc int) MapResult {
	return tr.mapping.MapResult(pos, assoc)
}

// DocChanged reports whether any step was applied.
func (tr *Transaction) DocChanged() bool {
	return len(tr.steps) > 0
}

// SetMeta stores a metadata value and returns the transaction.
func (tr *Transaction) SetMeta(key string, value any) *Transaction {
	if tr.meta == nil {
		tr.meta = make(map[string]any)
	}
	tr.meta[key] = value
	return tr
}

// Meta returns a metadata value.
func (tr *Transaction) Meta(key string) (any, bool) {
	v, ok := tr.meta[key]
	return v, ok
}

// AddToHistory reports whether the transaction belongs in undo history.
// Transactions are part of history unless MetaAddToHistory is false.
func (tr *Transaction) AddToHistory() bool {
	v, ok := tr.meta[MetaAddToHistory].(bool)
	return !ok || v
}

// Invert builds a transaction on doc that undoes tr. doc must be tr.Doc()
// or a document reached from it by steps that move no positions.
func (tr *Transaction) Invert(doc *mdast.Node) (*Transaction, error) {
	inv := New(doc)
	for i := len(tr.steps) - 1; i >= 0; i-- {
		s, err := tr.steps[i].Invert(tr.docs[i])
		if err != nil {
			return nil, fmt.Errorf("invert step %d: %w", i, err)
		}
		if err := inv.Step(s); err != nil {
			return nil, fmt.Errorf("apply inverted step %d: %w", i, err)
		}
	}
	return inv, nil
}
