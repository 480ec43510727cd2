// Package editor provides a minimal editor host: it owns the current
// document, applies transactions one at a time and keeps the highlight
// plugin state in step with the document.
package editor

import (
	"errors"
	"fmt"

	"github.com/yaklabco/gomdhl/pkg/highlight"
	"github.com/yaklabco/gomdhl/pkg/mdast"
	"github.com/yaklabco/gomdhl/pkg/transform"
)

// DefaultMaxFollowUps bounds the follow-up transactions drained after one
// dispatch. Plugins that keep queueing transactions for each other would
// otherwise never settle.
const DefaultMaxFollowUps = 10

var (
	// ErrStale indicates a transaction that was not started on the current
	// document.
	ErrStale = errors.New("transaction does not start at the current document")

	// ErrNothingToUndo indicates an empty history.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrTooManyFollowUps indicates the follow-up queue did not drain.
	ErrTooManyFollowUps = errors.New("too many follow-up transactions")
)

// Applied records one transaction applied by the editor and the work the
// plugin did for it.
type Applied struct {
	Transaction *transform.Transaction
	Stats       highlight.Stats

	// FollowUp is true for transactions queued by the plugin.
	FollowUp bool
}

// State is the editor state after the last applied transaction.
type State struct {
	Doc       *mdast.Node
	Highlight highlight.State
}

// queue collects transactions dispatched by the plugin while a
// transaction is being applied.
type queue struct {
	pending []*transform.Transaction
}

func (q *queue) Dispatch(tr *transform.Transaction) {
	q.pending = append(q.pending, tr)
}

func (q *queue) pop() (*transform.Transaction, bool) {
	if len(q.pending) == 0 {
		return nil, false
	}
	tr := q.pending[0]
	q.pending = q.pending[1:]
	return tr, true
}

// Editor applies transactions to a document.
type Editor struct {
	plugin  *highlight.Plugin
	queue   *queue
	state   State
	history []*transform.Transaction
	initial highlight.Stats

	maxFollowUps int
}

// Option configures an Editor.
type Option func(*Editor)

// WithMaxFollowUps overrides DefaultMaxFollowUps.
func WithMaxFollowUps(n int) Option {
	return func(e *Editor) {
		e.maxFollowUps = n
	}
}

// New creates an editor for doc and highlights it. The plugin is built from
// hl and cfg; cfg.Dispatcher is replaced by the editor's own queue.
//
// Transactions the plugin dispatches during initialisation are applied
// before New returns; they are returned as well.
func New(doc *mdast.Node, hl highlight.Highlighter, cfg highlight.PluginConfig, opts ...Option) (*Editor, []Applied, error) {
	e := &Editor{
		queue:        &queue{},
		maxFollowUps: DefaultMaxFollowUps,
	}
	for _, opt := range opts {
		opt(e)
	}
	cfg.Dispatcher = e.queue
	e.plugin = highlight.NewPlugin(hl, cfg)

	hs, err := e.plugin.Init(doc)
	if err != nil {
		return nil, nil, fmt.Errorf("initialise highlight state: %w", err)
	}
	e.state = State{Doc: doc, Highlight: hs}
	e.initial = hs.Stats

	applied, err := e.drain(nil)
	if err != nil {
		return nil, nil, err
	}
	return e, applied, nil
}

// State returns the current state.
func (e *Editor) State() State {
	return e.state
}

// InitStats returns the plugin's work for the initial highlight, before
// any follow-up transaction applied.
func (e *Editor) InitStats() highlight.Stats {
	return e.initial
}

// Doc returns the current document.
func (e *Editor) Doc() *mdast.Node {
	return e.state.Doc
}

// Decorations returns the current decorations.
func (e *Editor) Decorations() highlight.DecorationSet {
	return e.plugin.Decorations(e.state.Highlight)
}

// Begin starts a transaction on the current document.
func (e *Editor) Begin() *transform.Transaction {
	return transform.New(e.state.Doc)
}

// History returns the transactions that undo can revert, oldest first.
func (e *Editor) History() []*transform.Transaction {
	return append([]*transform.Transaction(nil), e.history...)
}

// Dispatch applies tr, then every transaction the plugin queued while
// doing so, one at a time and in order. The returned slice starts with tr.
//
// On error the editor keeps the state of the last transaction that applied
// cleanly and discards the rest of the queue.
func (e *Editor) Dispatch(tr *transform.Transaction) ([]Applied, error) {
	if tr.Before() != e.state.Doc {
		return nil, ErrStale
	}
	first, err := e.apply(tr, false)
	if err != nil {
		return nil, err
	}
	return e.drain([]Applied{first})
}

// Undo reverts the most recent transaction in history. The inverse is
// applied like any other transaction but is kept out of history itself.
func (e *Editor) Undo() ([]Applied, error) {
	if len(e.history) == 0 {
		return nil, ErrNothingToUndo
	}
	last := e.history[len(e.history)-1]

	inv, err := last.Invert(e.state.Doc)
	if err != nil {
		return nil, fmt.Errorf("undo: %w", err)
	}
	inv.SetMeta(transform.MetaAddToHistory, false)

	applied, err := e.Dispatch(inv)
	if err != nil {
		return nil, fmt.Errorf("undo: %w", err)
	}
	e.history = e.history[:len(e.history)-1]
	return applied, nil
}

func (e *Editor) apply(tr *transform.Transaction, followUp bool) (Applied, error) {
	hs, err := e.plugin.Apply(tr, e.state.Highlight)
	if err != nil {
		e.queue.pending = nil
		return Applied{}, fmt.Errorf("apply transaction: %w", err)
	}
	e.state = State{Doc: tr.Doc(), Highlight: hs}
	if tr.DocChanged() && tr.AddToHistory() {
		e.history = append(e.history, tr)
	}
	return Applied{Transaction: tr, Stats: hs.Stats, FollowUp: followUp}, nil
}

func (e *Editor) drain(applied []Applied) ([]Applied, error) {
	for n := 0; ; n++ {
		tr, ok := e.queue.pop()
		if !ok {
			return applied, nil
		}
		if n >= e.maxFollowUps {
			e.queue.pending = nil
			return applied, ErrTooManyFollowUps
		}
		// Follow-ups are built on the document they were queued against.
		// One queued before an earlier follow-up applied is stale.
		if tr.Before() != e.state.Doc {
			e.queue.pending = nil
			return applied, fmt.Errorf("follow-up transaction: %w", ErrStale)
		}
		a, err := e.apply(tr, true)
		if err != nil {
			return applied, err
		}
		applied = append(applied, a)
	}
}
