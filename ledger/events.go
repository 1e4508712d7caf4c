package ledger

import (
	"context"
	"fmt"
)

// Attribute is a key/value pair attached to an Event.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Event is emitted by modules while executing an operation. Events of a
// failed operation are dropped together with its writes.
type Event struct {
	Type       string      `json:"type"`
	Attributes []Attribute `json:"attributes"`
}

// NewEvent creates an Event of the given type.
func NewEvent(ty string, attrs ...Attribute) Event {
	return Event{Type: ty, Attributes: attrs}
}

// NewAttribute creates an Attribute.
func NewAttribute(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Attribute returns the value of the first attribute named key.
func (e Event) Attribute(key string) (string, bool) {
	for _, a := range e.Attributes {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

func (e Event) String() string {
	return fmt.Sprintf("%s%v", e.Type, e.Attributes)
}

// EmitEvent records ev in the running operation.
func EmitEvent(ctx context.Context, ev Event) {
	f := frameFrom(ctx)
	*f.events = append(*f.events, ev)
}

// EventsFromContext returns the events recorded so far in the current branch.
func EventsFromContext(ctx context.Context) []Event {
	f := frameFrom(ctx)
	out := make([]Event, len(*f.events))
	copy(out, *f.events)
	return out
}
