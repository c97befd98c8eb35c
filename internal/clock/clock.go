// Package clock provides wall-clock time for event timestamps. Simulated
// game time lives in the scheduler.
package clock

import "time"

//go:generate mockgen -destination=mock/mock_time_provider.go -package=mockclock github.com/KirkDiggler/horde-survivor/internal/clock TimeProvider

type TimeProvider interface {
	Now() time.Time
}

type RealTimeProvider struct{}

func (r *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// FixedTimeProvider always returns the same instant
type FixedTimeProvider struct {
	At time.Time
}

func (f *FixedTimeProvider) Now() time.Time {
	return f.At
}
