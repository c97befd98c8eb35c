package events

// GameEvent is a single occurrence routed through the EventBus
type GameEvent struct {
	Type      EventType      `json:"type"`
	EntityID  string         `json:"entity_id,omitempty"`
	Context   map[string]any `json:"context,omitempty"`
	Cancelled bool           `json:"-"`
}

// NewGameEvent creates a new game event
func NewGameEvent(eventType EventType) *GameEvent {
	return &GameEvent{
		Type:    eventType,
		Context: make(map[string]any),
	}
}

// WithEntity sets the entity the event is about
func (e *GameEvent) WithEntity(id string) *GameEvent {
	e.EntityID = id
	return e
}

// WithContext adds context data to the event
func (e *GameEvent) WithContext(key string, value any) *GameEvent {
	e.Context[key] = value
	return e
}

// Cancel stops propagation to lower priority listeners
func (e *GameEvent) Cancel() {
	e.Cancelled = true
}

func (e *GameEvent) IsCancelled() bool {
	return e.Cancelled
}

// GetContext retrieves a value from the context
func (e *GameEvent) GetContext(key string) (any, bool) {
	val, exists := e.Context[key]
	return val, exists
}

// GetIntContext retrieves an int value from the context
func (e *GameEvent) GetIntContext(key string) (int, bool) {
	val, exists := e.Context[key]
	if !exists {
		return 0, false
	}
	intVal, ok := val.(int)
	return intVal, ok
}

// GetFloatContext retrieves a float64 value from the context
func (e *GameEvent) GetFloatContext(key string) (float64, bool) {
	val, exists := e.Context[key]
	if !exists {
		return 0, false
	}
	f, ok := val.(float64)
	return f, ok
}

// GetStringContext retrieves a string value from the context
func (e *GameEvent) GetStringContext(key string) (string, bool) {
	val, exists := e.Context[key]
	if !exists {
		return "", false
	}
	strVal, ok := val.(string)
	return strVal, ok
}
