// Package publisher streams game events of a run to Redis so external
// tools can follow or replay it.
package publisher

import (
	"context"
	"time"

	"github.com/KirkDiggler/horde-survivor/internal/events"
)

//go:generate mockgen -destination=mock/mock_publisher.go -package=mockpublisher github.com/KirkDiggler/horde-survivor/internal/publisher Publisher

// Publisher sends events of one run somewhere outside the process
type Publisher interface {
	Publish(ctx context.Context, runID string, event *events.GameEvent) error
}

// Envelope is the wire form of a published event
type Envelope struct {
	RunID     string         `json:"run_id"`
	Timestamp time.Time      `json:"timestamp"`
	Type      string         `json:"type"`
	EntityID  string         `json:"entity_id,omitempty"`
	Context   map[string]any `json:"context,omitempty"`
}

func newEnvelope(runID string, at time.Time, event *events.GameEvent) Envelope {
	return Envelope{
		RunID:     runID,
		Timestamp: at,
		Type:      event.Type.String(),
		EntityID:  event.EntityID,
		Context:   event.Context,
	}
}
