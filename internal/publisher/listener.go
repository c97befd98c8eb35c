package publisher

import (
	"context"
	"log"

	"github.com/KirkDiggler/horde-survivor/internal/events"
)

// ListenerPriority runs the publisher after every game listener
const ListenerPriority = 1000

// Listener forwards every bus event of one run to a Publisher.
// Publish failures are logged and never interrupt the run.
type Listener struct {
	ctx       context.Context
	runID     string
	publisher Publisher
	failures  int
}

func NewListener(ctx context.Context, runID string, publisher Publisher) *Listener {
	return &Listener{ctx: ctx, runID: runID, publisher: publisher}
}

func (l *Listener) HandleEvent(event *events.GameEvent) error {
	if err := l.publisher.Publish(l.ctx, l.runID, event); err != nil {
		l.failures++
		log.Printf("Publisher: failed to publish %s for run %s: %v", event.Type, l.runID, err)
	}
	return nil
}

func (l *Listener) Priority() int {
	return ListenerPriority
}

// Failures is the number of events that could not be published
func (l *Listener) Failures() int {
	return l.failures
}
