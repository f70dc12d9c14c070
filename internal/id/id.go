// Package id generates collision-resistant string identifiers for
// domain records.
package id

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// UUIDFactory returns a random identifier, or "" when the platform
// source is unavailable.
type UUIDFactory func() string

// RandomUUID is the default UUIDFactory backed by github.com/google/uuid.
func RandomUUID() string {
	u, err := uuid.NewRandom()
	if err != nil {
		return ""
	}
	return u.String()
}

// Generator produces identifiers that are distinct for the lifetime of
// the instance. When the UUID factory yields nothing it falls back to
// prefix-timestamp-counter, so two calls within the same millisecond
// still differ.
type Generator struct {
	mu      sync.Mutex
	factory UUIDFactory
	counter uint64
	now     func() time.Time
}

func NewGenerator(factory UUIDFactory) *Generator {
	return &Generator{factory: factory, now: time.Now}
}

func (g *Generator) Generate(prefix string) string {
	if g.factory != nil {
		if v := g.factory(); v != "" {
			return v
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return prefix + "-" + strconv.FormatInt(g.now().UnixMilli(), 10) + "-" + strconv.FormatUint(g.counter, 10)
}
