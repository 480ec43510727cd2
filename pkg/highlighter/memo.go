package highlighter

import (
	"strconv"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	gocache "github.com/patrickmn/go-cache"
)

// autoKey stands in for the language of HighlightAuto calls.
const autoKey = "\x00auto"

type memoEntry struct {
	text   string
	result Result
}

// MemoStats counts memo lookups.
type MemoStats struct {
	Hits   int64
	Misses int64
	Size   int
}

// Memo remembers highlight results by language and text. It is safe for
// concurrent use. Entries expire after the configured TTL; expired entries
// are dropped when they are next looked up, never in the background.
type Memo struct {
	src    Source
	ttl    time.Duration
	store  *gocache.Cache
	hits   atomic.Int64
	misses atomic.Int64
}

var _ Source = (*Memo)(nil)

// NewMemo wraps src. A ttl of zero keeps entries forever.
func NewMemo(src Source, ttl time.Duration) *Memo {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	return &Memo{
		src:   src,
		ttl:   ttl,
		store: gocache.New(ttl, 0),
	}
}

func memoKey(language, text string) string {
	return language + "\x00" + strconv.FormatUint(xxhash.Sum64String(text), 16)
}

// Highlight implements Source.
func (m *Memo) Highlight(text, language string) (Result, error) {
	return m.lookup(language, text, func() (Result, error) {
		return m.src.Highlight(text, language)
	})
}

// HighlightAuto implements Source.
func (m *Memo) HighlightAuto(text string) (Result, error) {
	return m.lookup(autoKey, text, func() (Result, error) {
		return m.src.HighlightAuto(text)
	})
}

// Known implements Source.
func (m *Memo) Known(language string) bool {
	return m.src.Known(language)
}

func (m *Memo) lookup(language, text string, compute func() (Result, error)) (Result, error) {
	key := memoKey(language, text)
	if v, found := m.store.Get(key); found {
		// Hash collisions fall through to a recompute.
		if e, ok := v.(memoEntry); ok && e.text == text {
			m.hits.Add(1)
			return e.result, nil
		}
	}
	m.misses.Add(1)

	result, err := compute()
	if err != nil {
		return Result{}, err
	}
	m.store.Set(key, memoEntry{text: text, result: result}, m.ttl)
	return result, nil
}

// Stats returns lookup counters and the number of stored entries.
func (m *Memo) Stats() MemoStats {
	return MemoStats{
		Hits:   m.hits.Load(),
		Misses: m.misses.Load(),
		Size:   m.store.ItemCount(),
	}
}

// Flush drops every stored entry.
func (m *Memo) Flush() {
	m.store.Flush()
}
