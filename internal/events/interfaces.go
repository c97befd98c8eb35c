package events

//go:generate mockgen -destination=mock/mock_event_listener.go -package=mockevents -source=interfaces.go

// EventListener represents an object that can handle game events
type EventListener interface {
	HandleEvent(event *GameEvent) error
	Priority() int
}

// Emitter is the publishing side of the bus, handed to services that only emit
type Emitter interface {
	Emit(event *GameEvent) error
}

// FuncListener adapts a function to EventListener. Use it by pointer so
// Unsubscribe can find it again.
type FuncListener struct {
	Fn   func(event *GameEvent) error
	Prio int
}

func (f *FuncListener) HandleEvent(event *GameEvent) error { return f.Fn(event) }
func (f *FuncListener) Priority() int                      { return f.Prio }
