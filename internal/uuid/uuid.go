// Package uuid generates entity and run identifiers behind an interface so
// tests and seeded simulations can control them.
package uuid

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

//go:generate mockgen -destination=mock/mock_generator.go -package=mockuuid -source=uuid.go

// Generator produces unique string identifiers
type Generator interface {
	New() string
}

// GoogleUUIDGenerator returns random v4 UUIDs
type GoogleUUIDGenerator struct{}

func (g *GoogleUUIDGenerator) New() string {
	return uuid.New().String()
}

func NewGoogleUUIDGenerator() *GoogleUUIDGenerator {
	return &GoogleUUIDGenerator{}
}

// SequentialGenerator returns prefix-1, prefix-2, ... so a seeded run
// produces the same IDs every time.
type SequentialGenerator struct {
	prefix string
	next   atomic.Uint64
}

func NewSequentialGenerator(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

func (g *SequentialGenerator) New() string {
	return fmt.Sprintf("%s-%d", g.prefix, g.next.Add(1))
}
