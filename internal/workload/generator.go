// Package workload generates a synthetic stream of add/cancel
// commands for exercising the matching engine outside of a real
// client population. The random walk (a wandering mid-price, a small
// chance of a cancel instead of a new order) mirrors the driver loop
// in the original implementation's main entry point.
package workload

import (
	"math/rand/v2"

	"matchbook/internal/engine"
)

// Config controls the shape of the generated order flow.
type Config struct {
	StartPrice    float64 // initial mid price
	PriceStep     float64 // max absolute random walk step per tick
	MinQuantity   int64
	MaxQuantity   int64
	CancelOdds    float64 // probability [0,1] that a tick cancels instead of adding
	UserPoolSize  int64   // number of distinct synthetic user ids to draw from
}

// DefaultConfig mirrors the constants the original workload hard-codes:
// a $100 mid price, 50-cent steps, quantities 1-100, and roughly 1-in-10
// ticks being a cancel.
func DefaultConfig() Config {
	return Config{
		StartPrice:   100.00,
		PriceStep:    0.50,
		MinQuantity:  1,
		MaxQuantity:  100,
		CancelOdds:   0.1,
		UserPoolSize: 50,
	}
}

// Op is one generated step: either an order to add, or an order id to
// cancel.
type Op struct {
	IsCancel bool

	// Populated when IsCancel is false.
	OrderID  int64
	Price    float64
	Quantity int64
	IsBuy    bool
	UserID   int64
	TIF      engine.TimeInForce

	// Populated when IsCancel is true.
	CancelTargetID int64
}

// Generator produces a deterministic (given its rand.Source) stream of
// Ops and tracks the order ids it has issued and not yet cancelled, so
// a cancel never targets an id it has not issued or already cancelled.
// It does not see fills: a fully filled order's id stays tracked and
// can still be picked as a cancel target.
type Generator struct {
	cfg        Config
	rng        *rand.Rand
	mid        float64
	nextID     int64
	liveOrders []int64
}

// New builds a Generator seeded by src.
func New(cfg Config, src rand.Source) *Generator {
	return &Generator{
		cfg:    cfg,
		rng:    rand.New(src),
		mid:    cfg.StartPrice,
		nextID: 1,
	}
}

// Next produces the next Op. A cancel is only ever emitted when there
// is at least one tracked live order.
func (g *Generator) Next() Op {
	if len(g.liveOrders) > 0 && g.rng.Float64() < g.cfg.CancelOdds {
		idx := g.rng.IntN(len(g.liveOrders))
		target := g.liveOrders[idx]
		g.liveOrders[idx] = g.liveOrders[len(g.liveOrders)-1]
		g.liveOrders = g.liveOrders[:len(g.liveOrders)-1]
		return Op{IsCancel: true, CancelTargetID: target}
	}

	step := (g.rng.Float64()*2 - 1) * g.cfg.PriceStep
	g.mid += step
	if g.mid < g.cfg.PriceStep {
		g.mid = g.cfg.PriceStep
	}

	id := g.nextID
	g.nextID++

	op := Op{
		OrderID:  id,
		Price:    roundCents(g.mid),
		Quantity: g.cfg.MinQuantity + g.rng.Int64N(g.cfg.MaxQuantity-g.cfg.MinQuantity+1),
		IsBuy:    g.rng.IntN(2) == 0,
		UserID:   1 + g.rng.Int64N(g.cfg.UserPoolSize),
		TIF:      engine.GTC,
	}
	g.liveOrders = append(g.liveOrders, id)
	return op
}

func roundCents(x float64) float64 {
	return float64(int64(x*100+0.5)) / 100
}
