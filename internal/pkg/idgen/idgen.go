// Package idgen generates game identifiers
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator generates unique identifiers
type Generator interface {
	Generate() string
}

// UUIDGenerator produces "<prefix>_<uuid>" ids, or a bare uuid without a
// prefix.
type UUIDGenerator struct {
	prefix string
}

// NewUUID creates a uuid generator with an optional prefix
func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// Generate returns a new id
func (g *UUIDGenerator) Generate() string {
	id := uuid.NewString()
	if g.prefix == "" {
		return id
	}
	return g.prefix + "_" + id
}

// SequentialGenerator yields prefix_1, prefix_2, ... and is safe for
// concurrent use. Tests use it for predictable game ids.
type SequentialGenerator struct {
	prefix  string
	counter uint64
}

// NewSequential creates a new sequential generator
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate returns the next id in sequence
func (g *SequentialGenerator) Generate() string {
	n := atomic.AddUint64(&g.counter, 1)
	if g.prefix == "" {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s_%d", g.prefix, n)
}
