package highlight

import (
	"fmt"

	"github.com/yaklabco/gomdhl/pkg/mdast"
	"github.com/yaklabco/gomdhl/pkg/transform"
)

// DefaultNodeTypes are highlighted when PluginConfig.NodeTypes is empty.
var DefaultNodeTypes = []string{mdast.NodeCodeBlock.String()}

// Dispatcher accepts follow-up transactions. Dispatch is called while a
// change is being applied, so implementations must queue tr rather than
// apply it right away.
type Dispatcher interface {
	Dispatch(tr *transform.Transaction)
}

// PluginConfig configures a Plugin.
type PluginConfig struct {
	// NodeTypes lists the node kinds to highlight. Defaults to
	// DefaultNodeTypes.
	NodeTypes []string

	// Language extracts block languages. Defaults to DefaultLanguage.
	Language LanguageFunc

	// Dispatcher receives transactions that record detected languages on
	// their code blocks. Nil disables the write-back.
	Dispatcher Dispatcher
}

// Stats describes the work done to produce a State.
type Stats struct {
	// Reused counts blocks served from the cache.
	Reused int
	// Rendered counts blocks that were highlighted.
	Rendered int
	// Evicted counts cache entries dropped by invalidation.
	Evicted int
	// Detected counts blocks whose language was autodetected.
	Detected int
}

// Add returns the field-wise sum of s and other.
func (s Stats) Add(other Stats) Stats {
	return Stats{
		Reused:   s.Reused + other.Reused,
		Rendered: s.Rendered + other.Rendered,
		Evicted:  s.Evicted + other.Evicted,
		Detected: s.Detected + other.Detected,
	}
}

// State is the plugin state for one version of a document. States are
// values: Apply derives a new one and leaves the previous one intact.
type State struct {
	Cache       *Cache
	Decorations DecorationSet
	Stats       Stats
}

// Plugin keeps decorations up to date across document changes.
type Plugin struct {
	hl         Highlighter
	nodeTypes  []string
	language   LanguageFunc
	dispatcher Dispatcher
}

// NewPlugin creates a plugin highlighting with hl.
func NewPlugin(hl Highlighter, cfg PluginConfig) *Plugin {
	p := &Plugin{
		hl:         hl,
		nodeTypes:  cfg.NodeTypes,
		language:   cfg.Language,
		dispatcher: cfg.Dispatcher,
	}
	if len(p.nodeTypes) == 0 {
		p.nodeTypes = DefaultNodeTypes
	}
	if p.language == nil {
		p.language = DefaultLanguage
	}
	return p
}

// NodeTypes returns the node kinds the plugin highlights.
func (p *Plugin) NodeTypes() []string {
	return p.nodeTypes
}

type detection struct {
	block    Block
	language string
}

// pass records what happens during one Compute call.
type pass struct {
	cache    *Cache
	reuse    bool
	stats    Stats
	detected []detection
}

func (r *pass) hooks() Hooks {
	return HookFuncs{
		LookupFunc: func(b Block) ([]Range, bool) {
			if !r.reuse {
				return nil, false
			}
			ranges, ok := r.cache.Lookup(b)
			if ok {
				r.stats.Reused++
			}
			return ranges, ok
		},
		StoreFunc: func(b Block, ranges []Range) {
			r.stats.Rendered++
			r.cache.Store(b, ranges)
		},
		DetectedFunc: func(b Block, language string) {
			r.stats.Detected++
			r.detected = append(r.detected, detection{block: b, language: language})
		},
	}
}

// Init computes the state of a new document.
func (p *Plugin) Init(doc *mdast.Node) (State, error) {
	return p.compute(doc, &pass{cache: NewCache()})
}

// Apply derives the state after change from prev.
//
// The cache is always invalidated first. A change that leaves the content
// alone only maps the previous decorations. Otherwise every block is
// computed again, with blocks that survived invalidation served from the
// cache.
func (p *Plugin) Apply(change Change, prev State) (State, error) {
	cache := prev.Cache.Invalidate(change)
	evicted := prev.Cache.Len() - cache.Len()

	if !change.DocChanged() {
		return State{
			Cache:       cache,
			Decorations: prev.Decorations.Map(change),
			Stats:       Stats{Evicted: evicted},
		}, nil
	}

	state, err := p.compute(change.Doc(), &pass{cache: cache, reuse: true})
	if err != nil {
		return State{}, err
	}
	state.Stats.Evicted = evicted
	return state, nil
}

// Decorations returns the decorations of s.
func (p *Plugin) Decorations(s State) DecorationSet {
	return s.Decorations
}

func (p *Plugin) compute(doc *mdast.Node, r *pass) (State, error) {
	ranges, err := Compute(doc, p.hl, ComputeOptions{
		NodeTypes: p.nodeTypes,
		Language:  p.language,
		Hooks:     r.hooks(),
	})
	if err != nil {
		return State{}, err
	}
	if err := p.writeBack(doc, r.detected); err != nil {
		return State{}, err
	}
	return State{
		Cache:       r.cache,
		Decorations: NewDecorationSet(ranges),
		Stats:       r.stats,
	}, nil
}

// writeBack dispatches one transaction recording every detected language.
// It is kept out of undo history.
func (p *Plugin) writeBack(doc *mdast.Node, detected []detection) error {
	if p.dispatcher == nil || len(detected) == 0 {
		return nil
	}
	tr := transform.New(doc)
	for _, d := range detected {
		offset, ok := d.block.Pos.Offset()
		if !ok || d.block.Node.Kind != mdast.NodeCodeBlock {
			continue
		}
		if err := tr.SetLanguage(offset, d.language); err != nil {
			return fmt.Errorf("record detected language: %w", err)
		}
	}
	if !tr.DocChanged() {
		return nil
	}
	tr.SetMeta(transform.MetaAddToHistory, false).
		SetMeta(transform.MetaDetectedLanguages, true)
	p.dispatcher.Dispatch(tr)
	return nil
}
