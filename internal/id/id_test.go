package id

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerator_UsesFactoryValue(t *testing.T) {
	g := NewGenerator(func() string { return "fixed-uuid" })

	assert.Equal(t, "fixed-uuid", g.Generate("order"))
	assert.Equal(t, "fixed-uuid", g.Generate("visitor"))
}

func TestGenerator_FallbackIsUniqueWithinSameTick(t *testing.T) {
	g := NewGenerator(func() string { return "" })
	g.now = func() time.Time { return time.UnixMilli(1700000000000) }

	first := g.Generate("order")
	second := g.Generate("order")

	assert.Equal(t, "order-1700000000000-1", first)
	assert.Equal(t, "order-1700000000000-2", second)
	assert.NotEqual(t, first, second)
}

func TestGenerator_NilFactoryFallsBack(t *testing.T) {
	g := NewGenerator(nil)
	g.now = func() time.Time { return time.UnixMilli(42) }

	assert.Equal(t, "visitor-42-1", g.Generate("visitor"))
}

func TestGenerator_CountersAreIndependentPerInstance(t *testing.T) {
	first := NewGenerator(func() string { return "" })
	second := NewGenerator(func() string { return "" })
	first.now = func() time.Time { return time.UnixMilli(7) }
	second.now = func() time.Time { return time.UnixMilli(7) }

	first.Generate("order")

	assert.Equal(t, "order-7-2", first.Generate("order"))
	assert.Equal(t, "order-7-1", second.Generate("order"))
}

func TestRandomUUID_ReturnsValue(t *testing.T) {
	assert.NotEmpty(t, RandomUUID())
}
