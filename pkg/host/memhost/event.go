package memhost

import "fmt"

// Event is passed to listeners registered as func(*Event).
type Event struct {
	Type    string
	Target  *Node
	Payload any
}

// Dispatch invokes n's listeners for event in registration order and returns
// how many ran. Supported listener shapes are func() and func(*Event).
//
// Listeners may re-render synchronously and replace n; the listener list is
// snapshotted before the first call.
func (n *Node) Dispatch(event string, payload any) (int, error) {
	var matched []any
	for _, l := range n.listeners {
		if l.event == event {
			matched = append(matched, l.handler)
		}
	}
	ev := &Event{Type: event, Target: n, Payload: payload}
	for i, h := range matched {
		switch fn := h.(type) {
		case func():
			fn()
		case func(*Event):
			fn(ev)
		default:
			return i, fmt.Errorf("memhost: unsupported %q listener type %T", event, h)
		}
	}
	return len(matched), nil
}
