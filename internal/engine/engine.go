// Package engine is the core matching engine: a single-symbol,
// in-memory limit order book with price-time priority, self-match
// prevention, and GTC/IOC/FOK time-in-force semantics.
//
// The engine is single-threaded cooperative: it processes one command
// to completion, including every trade it produces, before accepting
// the next. Callers that drive it from multiple goroutines must
// serialize their own calls (see internal/ingest for the supplied
// single-writer queue).
package engine

import (
	"matchbook/internal/clock"
	"matchbook/internal/price"
)

// MatchingEngine orchestrates incoming commands, runs the matching
// loop, and emits trades. It owns both sides of the book and the
// index that makes cancel/modify fast.
type MatchingEngine struct {
	bids  *book
	asks  *book
	index *OrderIndex
	clk   clock.Clock
}

// New builds an empty MatchingEngine. A nil clock defaults to
// clock.System{} (wall-clock milliseconds).
func New(clk clock.Clock) *MatchingEngine {
	if clk == nil {
		clk = clock.System{}
	}
	return &MatchingEngine{
		bids:  newBidBook(),
		asks:  newAskBook(),
		index: newOrderIndex(),
		clk:   clk,
	}
}

func (m *MatchingEngine) bookFor(s Side) *book {
	if s == Buy {
		return m.bids
	}
	return m.asks
}

// AddOrder submits a new order. It returns the trades produced, in
// consumption order (best price first; within a level, FIFO modulo
// self-match skips). A FOK order that cannot be immediately filled in
// full is silently rejected: it returns (nil, nil), indistinguishable
// from "no trades produced", by design — the caller cannot use the
// response to probe book depth.
func (m *MatchingEngine) AddOrder(id int64, priceValue float64, quantity int64, isBuy bool, userID int64, tif TimeInForce) ([]Trade, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	p, err := price.FromFloat(priceValue)
	if err != nil {
		return nil, err
	}
	if _, exists := m.index.lookup(id); exists {
		return nil, ErrDuplicateID
	}

	side := Sell
	if isBuy {
		side = Buy
	}
	opposite := m.bookFor(side.Opposite())
	own := m.bookFor(side)

	if tif == FOK && !m.canFillFOK(opposite, isBuy, p, userID, quantity) {
		return nil, nil
	}

	t := m.clk.Now()
	remaining := quantity
	var trades []Trade

	for _, lvl := range m.crossingLevels(opposite, isBuy, p) {
		if remaining == 0 {
			break
		}
		m.matchLevel(lvl, id, userID, &remaining, t, &trades)
		opposite.removeIfEmpty(lvl)
	}

	if remaining > 0 && tif == GTC {
		lvl := own.insertLevelIfAbsent(p)
		o := &Order{ID: id, Price: p, Quantity: remaining, Timestamp: t, UserID: userID}
		lvl.pushBack(o)
		// Duplicate ids were ruled out above; this can only fail if an
		// invariant has already been violated elsewhere.
		if err := m.index.insert(id, side, p, o.queueKey()); err != nil {
			return trades, err
		}
	}
	// IOC residuals are discarded by construction: we simply never rest
	// them. FOK residuals cannot occur given the pre-check above.

	return trades, nil
}

// CancelOrder removes a resting order from the book. Returns
// ErrNotFound if id is not currently resting.
func (m *MatchingEngine) CancelOrder(id int64) error {
	loc, ok := m.index.lookup(id)
	if !ok {
		return ErrNotFound
	}

	b := m.bookFor(loc.side)
	if lvl, ok := b.levelAt(loc.price); ok {
		// Removal is keyed on the locator's stored queue key, never a
		// freshly-constructed one — this is the fix for the source's
		// unsound cancel (spec §9).
		lvl.remove(loc.key)
		b.removeIfEmpty(lvl)
	}
	m.index.remove(id)
	return nil
}

// ModifyOrder is cancel-and-replace with loss of time priority: the
// order is removed and re-added at its new price/quantity with a fresh
// timestamp, so it goes to the tail of its new level and may cross
// immediately if the new price does.
func (m *MatchingEngine) ModifyOrder(id int64, newPriceValue float64, newQuantity int64) ([]Trade, error) {
	loc, ok := m.index.lookup(id)
	if !ok {
		return nil, ErrNotFound
	}
	if newQuantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	if _, err := price.FromFloat(newPriceValue); err != nil {
		return nil, err
	}

	b := m.bookFor(loc.side)
	lvl, ok := b.levelAt(loc.price)
	if !ok {
		return nil, ErrNotFound
	}
	existing, ok := lvl.get(loc.key)
	if !ok {
		return nil, ErrNotFound
	}
	userID := existing.UserID
	isBuy := loc.side == Buy

	if err := m.CancelOrder(id); err != nil {
		return nil, err
	}
	return m.AddOrder(id, newPriceValue, newQuantity, isBuy, userID, GTC)
}

// crossingLevels returns, in best-to-worst order, every level on
// opposite whose price still satisfies the aggressor's limit. The
// slice is a snapshot taken before any mutation, so deleting emptied
// levels afterward never disturbs this traversal — including the case
// where a level's only liquidity is same-user and nothing is ever
// removed from it.
func (m *MatchingEngine) crossingLevels(opposite *book, isBuy bool, limit price.Price) []*PriceLevel {
	var levels []*PriceLevel
	opposite.ascendLevels(func(lvl *PriceLevel) bool {
		if isBuy && lvl.Price > limit {
			return false
		}
		if !isBuy && lvl.Price < limit {
			return false
		}
		levels = append(levels, lvl)
		return true
	})
	return levels
}

// matchLevel consumes as much of lvl as remaining allows, skipping any
// order owned by aggressorUserID (self-match prevention: the order is
// passed over, never consumed, and the scan continues to the next
// entry). Trades are appended to *trades in consumption order.
func (m *MatchingEngine) matchLevel(lvl *PriceLevel, aggressorID, aggressorUserID int64, remaining *int64, t int64, trades *[]Trade) {
	var queue []*Order
	lvl.ascend(func(o *Order) bool {
		queue = append(queue, o)
		return true
	})

	for _, o := range queue {
		if *remaining == 0 {
			return
		}
		if o.UserID == aggressorUserID {
			continue
		}

		fill := min(*remaining, o.Quantity)
		*trades = append(*trades, Trade{
			PassiveID:    o.ID,
			AggressiveID: aggressorID,
			Price:        lvl.Price,
			Quantity:     fill,
			Timestamp:    t,
		})

		if fill == o.Quantity {
			lvl.remove(o.queueKey())
			m.index.remove(o.ID)
		} else {
			o.Quantity -= fill
		}
		*remaining -= fill
	}
}

// canFillFOK runs the fill-or-kill dry-run pass: it walks the opposite
// side from best to worst, accumulating quantity from resting orders
// that are not owned by userID, and stops as soon as the accumulated
// quantity covers the request. It never mutates the book.
func (m *MatchingEngine) canFillFOK(opposite *book, isBuy bool, limit price.Price, userID int64, quantity int64) bool {
	var available int64
	for _, lvl := range m.crossingLevels(opposite, isBuy, limit) {
		lvl.ascend(func(o *Order) bool {
			if o.UserID != userID {
				available += o.Quantity
			}
			return available < quantity
		})
		if available >= quantity {
			return true
		}
	}
	return available >= quantity
}
