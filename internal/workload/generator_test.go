package workload

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_DeterministicGivenSeed(t *testing.T) {
	cfg := DefaultConfig()
	g1 := New(cfg, rand.NewPCG(1, 2))
	g2 := New(cfg, rand.NewPCG(1, 2))

	for i := 0; i < 50; i++ {
		require.Equal(t, g1.Next(), g2.Next())
	}
}

func TestGenerator_CancelsOnlyTargetLiveOrders(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CancelOdds = 1.0 // force a cancel whenever possible
	g := New(cfg, rand.NewPCG(7, 7))

	add := g.Next()
	require.False(t, add.IsCancel)

	cancel := g.Next()
	require.True(t, cancel.IsCancel)
	assert.Equal(t, add.OrderID, cancel.CancelTargetID)
}

func TestGenerator_NoCancelWhenBookEmpty(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CancelOdds = 1.0
	g := New(cfg, rand.NewPCG(3, 4))

	op := g.Next()
	assert.False(t, op.IsCancel, "cannot cancel with no live orders yet")
}
