package engine

import (
	"matchbook/internal/price"

	"github.com/tidwall/btree"
)

// PriceLevel is the time-ordered collection of resting orders at one
// price. It is backed by an ordered set keyed by queue key
// (timestamp, id) — spec §9's own recommendation for a systems-language
// port — reusing the same tidwall/btree the book type uses for its
// price-ordered map, just nested one level deeper.
type PriceLevel struct {
	Price  price.Price
	orders *btree.BTreeG[*Order]
}

// newPriceLevel creates an empty level at price p.
func newPriceLevel(p price.Price) *PriceLevel {
	return &PriceLevel{
		Price: p,
		orders: btree.NewBTreeG(func(a, b *Order) bool {
			return a.queueKey().less(b.queueKey())
		}),
	}
}

// pushBack appends an order under the price-time rule. Callers must
// ensure o.Price == pl.Price and that o's queue key is not already
// present (true of every freshly-timestamped incoming order).
func (pl *PriceLevel) pushBack(o *Order) {
	pl.orders.Set(o)
}

// peekFront returns the head of the queue without removing it.
func (pl *PriceLevel) peekFront() (*Order, bool) {
	return pl.orders.Min()
}

// popFront removes and returns the head of the queue.
func (pl *PriceLevel) popFront() (*Order, bool) {
	return pl.orders.PopMin()
}

// remove deletes the order with the given queue key, returning false if
// no such order is present. This is the critical fix for the source's
// defect (spec §9): removal must be keyed on the order's actual,
// stored queue key, never a freshly-constructed one.
func (pl *PriceLevel) remove(key queueKey) (*Order, bool) {
	dummy := &Order{Timestamp: key.timestamp, ID: key.id}
	return pl.orders.Delete(dummy)
}

// get returns the order at the given queue key without removing it.
func (pl *PriceLevel) get(key queueKey) (*Order, bool) {
	dummy := &Order{Timestamp: key.timestamp, ID: key.id}
	return pl.orders.Get(dummy)
}

// isEmpty reports whether the level has no resting orders.
func (pl *PriceLevel) isEmpty() bool {
	return pl.orders.Len() == 0
}

// len returns the number of resting orders at this level.
func (pl *PriceLevel) len() int {
	return pl.orders.Len()
}

// ascend calls fn for every order at this level in queue-key order,
// head to tail, stopping early if fn returns false.
func (pl *PriceLevel) ascend(fn func(o *Order) bool) {
	pl.orders.Scan(fn)
}

// replaceHeadQuantity rewrites the head order's remaining size in
// place. The order's queue key is untouched, since quantity does not
// participate in queue ordering.
func (pl *PriceLevel) replaceHeadQuantity(newQty int64) {
	head, ok := pl.peekFront()
	if !ok {
		return
	}
	head.Quantity = newQty
}

// totalQuantity sums the remaining quantity of every resting order at
// this level. Used by Snapshot.
func (pl *PriceLevel) totalQuantity() int64 {
	var total int64
	pl.ascend(func(o *Order) bool {
		total += o.Quantity
		return true
	})
	return total
}
