package tokentree

import "fmt"

// EventKind identifies an event in a token stream.
type EventKind uint8

const (
	// EventOpen starts a scope.
	EventOpen EventKind = iota
	// EventText covers source text.
	EventText
	// EventClose ends the most recently opened scope.
	EventClose
)

var eventKindNames = [...]string{
	EventOpen:  "open",
	EventText:  "text",
	EventClose: "close",
}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "unknown"
}

// Event is one step of a depth-first token tree walk.
type Event struct {
	Kind        EventKind
	Scope       string
	Sublanguage bool
	Text        string
}

// Open returns an open event for scope.
func Open(scope string) Event {
	return Event{Kind: EventOpen, Scope: scope}
}

// Close returns a close event for scope.
func Close(scope string) Event {
	return Event{Kind: EventClose, Scope: scope}
}

// TextEvent returns a text event.
func TextEvent(text string) Event {
	return Event{Kind: EventText, Text: text}
}

func (e Event) String() string {
	switch e.Kind {
	case EventText:
		return fmt.Sprintf("text(%q)", e.Text)
	default:
		return fmt.Sprintf("%s(%s)", e.Kind, e.Scope)
	}
}
