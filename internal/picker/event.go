package picker

import "fmt"

// EventKind enumerates the keyboard-independent inputs of the controller.
type EventKind int

const (
	// EventNone is unrecognized input; it never changes anything.
	EventNone EventKind = iota
	EventChar
	EventBackspace
	EventClear
	EventUp
	EventDown
	EventPageUp
	EventPageDown
	EventHome
	EventEnd
	EventConfirm
	EventCancel
)

var kindNames = map[EventKind]string{
	EventNone:      "none",
	EventChar:      "char",
	EventBackspace: "backspace",
	EventClear:     "clear",
	EventUp:        "up",
	EventDown:      "down",
	EventPageUp:    "page-up",
	EventPageDown:  "page-down",
	EventHome:      "home",
	EventEnd:       "end",
	EventConfirm:   "confirm",
	EventCancel:    "cancel",
}

func (k EventKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is one discrete input. Rune is set only for EventChar.
type Event struct {
	Kind EventKind
	Rune rune
}

// Char returns a character event.
func Char(r rune) Event { return Event{Kind: EventChar, Rune: r} }

// Key returns a non-character event.
func Key(k EventKind) Event { return Event{Kind: k} }

// Type returns one Char event per rune of s.
func Type(s string) []Event {
	events := make([]Event, 0, len(s))
	for _, r := range s {
		events = append(events, Char(r))
	}
	return events
}

func (e Event) String() string {
	if e.Kind == EventChar {
		return fmt.Sprintf("char(%q)", e.Rune)
	}
	return e.Kind.String()
}
