package match3

import "slices"

// EventKind distinguishes the two event variants.
type EventKind int

const (
	EventMatch EventKind = iota
	EventRefill
)

// String returns a human-readable name for the kind.
func (k EventKind) String() string {
	switch k {
	case EventMatch:
		return "match"
	case EventRefill:
		return "refill"
	default:
		return "unknown"
	}
}

// Event is a notification produced while a board settles.
// It is either a MatchEvent or a RefillEvent.
type Event[T comparable] interface {
	Kind() EventKind
	boardEvent()
}

// MatchEvent reports one match that is about to be removed.
// Pass is the 1-based settle pass that found it.
type MatchEvent[T comparable] struct {
	Match Match[T]
	Pass  int
}

// Kind returns EventMatch.
func (MatchEvent[T]) Kind() EventKind { return EventMatch }

func (MatchEvent[T]) boardEvent() {}

// RefillEvent reports that a pass finished refilling the board.
// Board is a snapshot of the grid right after the refill.
type RefillEvent[T comparable] struct {
	Pass  int
	Board [][]T
}

// Kind returns EventRefill.
func (RefillEvent[T]) Kind() EventKind { return EventRefill }

func (RefillEvent[T]) boardEvent() {}

// Listener receives board events.
type Listener[T comparable] func(Event[T])

type listenerEntry[T comparable] struct {
	id int
	fn Listener[T]
}

// AddListener registers fn to receive every event produced by Move and
// Settle. The returned function unregisters it; calling it more than once is
// harmless. CanMove never notifies listeners.
func (b *Board[T]) AddListener(fn Listener[T]) (remove func()) {
	if fn == nil {
		return func() {}
	}
	b.nextListener++
	id := b.nextListener
	b.listeners = append(b.listeners, listenerEntry[T]{id: id, fn: fn})

	return func() {
		b.listeners = slices.DeleteFunc(b.listeners, func(e listenerEntry[T]) bool {
			return e.id == id
		})
	}
}

// RemoveListeners unregisters every listener.
func (b *Board[T]) RemoveListeners() {
	b.listeners = nil
}

// dispatch delivers events to the listeners registered when it starts, in
// order, each event to each listener exactly once.
func (b *Board[T]) dispatch(events []Event[T]) {
	if len(events) == 0 || len(b.listeners) == 0 {
		return
	}
	listeners := slices.Clone(b.listeners)
	for _, ev := range events {
		for _, l := range listeners {
			l.fn(ev)
		}
	}
}
