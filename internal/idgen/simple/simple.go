// internal/idgen/simple/simple.go
package simple

import (
	"context"
	"sync/atomic"
)

// Generator hands out a monotonically increasing id sequence. Seed it with
// the highest id already persisted so restarts never reuse an id.
type Generator struct {
	counter atomic.Int64
}

func New(seed int64) *Generator {
	g := &Generator{}
	g.counter.Store(seed)
	return g
}

func (g *Generator) NextID(_ context.Context) (int64, error) {
	return g.counter.Add(1), nil
}
