package event

import "context"

// Func adapts an ordinary function to the Event interface
type Func func(ctx context.Context) error

// Handle calls f(ctx)
func (f Func) Handle(ctx context.Context) error {
	return f(ctx)
}

type named struct {
	Event
	name string
}

// Named wraps e so that it reports name through Namer. The identity of the
// wrapped event is preserved.
func Named(name string, e Event) Event {
	return &named{Event: e, name: name}
}

func (n *named) EventName() (string, bool) {
	return n.name, n.name != ""
}

func (n *named) EventClassName() string {
	return ClassName(n.Event)
}
