package engine

import "matchbook/internal/price"

// locator is what OrderIndex stores for a resting order: enough to find
// it again without owning it. PriceLevel and book own the Order; this
// is a logical pointer (side tag + price + queue key), never an
// aliasing reference to the Order itself, so a level that gets
// destroyed can never leave a dangling locator behind — CancelOrder and
// matchLevel always clear the index entry in the same step that removes
// the order from its level.
type locator struct {
	side  Side
	price price.Price
	key   queueKey
}

// OrderIndex maps an order id to its location in the book, which is
// what makes cancel/modify O(1) here (at least as good as the O(log N)
// ceiling spec §3 requires) instead of the O(N) scan an unindexed book
// would need.
type OrderIndex struct {
	byID map[int64]locator
}

func newOrderIndex() *OrderIndex {
	return &OrderIndex{byID: make(map[int64]locator)}
}

// insert records the location of a newly-resting order. Returns
// ErrDuplicateID if id is already indexed — the source silently
// overwrites here, orphaning the earlier entry; we refuse instead.
func (idx *OrderIndex) insert(id int64, side Side, p price.Price, key queueKey) error {
	if _, exists := idx.byID[id]; exists {
		return ErrDuplicateID
	}
	idx.byID[id] = locator{side: side, price: p, key: key}
	return nil
}

// lookup returns the location of a resting order, or false if id is not
// currently resting.
func (idx *OrderIndex) lookup(id int64) (locator, bool) {
	loc, ok := idx.byID[id]
	return loc, ok
}

// remove deletes the index entry for id. No-op if absent.
func (idx *OrderIndex) remove(id int64) {
	delete(idx.byID, id)
}

// len returns the number of currently-resting, indexed orders.
func (idx *OrderIndex) len() int {
	return len(idx.byID)
}
