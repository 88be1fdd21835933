package engine

import (
	"matchbook/internal/price"

	"github.com/tidwall/btree"
)

// book is one side of the order book: a price-ordered map from Price to
// PriceLevel, backed by tidwall/btree the same way the teacher's
// OrderBook keys its bids/asks — here generalized to share one
// implementation between the bid and ask sides, parameterized only by
// comparator direction.
type book struct {
	side   Side
	levels *btree.BTreeG[*PriceLevel]
}

// newBidBook returns a book ordered highest price first (best bid is
// the minimum under this comparator, matching Min()/PopMin() semantics
// used throughout PriceLevel and book).
func newBidBook() *book {
	return &book{
		side: Buy,
		levels: btree.NewBTreeG(func(a, b *PriceLevel) bool {
			return a.Price > b.Price
		}),
	}
}

// newAskBook returns a book ordered lowest price first.
func newAskBook() *book {
	return &book{
		side: Sell,
		levels: btree.NewBTreeG(func(a, b *PriceLevel) bool {
			return a.Price < b.Price
		}),
	}
}

// bestLevel returns the best (highest bid / lowest ask) non-empty
// level, or false if the side has no resting orders.
func (b *book) bestLevel() (*PriceLevel, bool) {
	return b.levels.Min()
}

// levelAt returns the level at exactly p, if one exists.
func (b *book) levelAt(p price.Price) (*PriceLevel, bool) {
	return b.levels.Get(newPriceLevel(p))
}

// insertLevelIfAbsent returns the level at p, creating and inserting an
// empty one first if necessary.
func (b *book) insertLevelIfAbsent(p price.Price) *PriceLevel {
	if lvl, ok := b.levelAt(p); ok {
		return lvl
	}
	lvl := newPriceLevel(p)
	b.levels.Set(lvl)
	return lvl
}

// removeLevel deletes the level at p. No-op if absent.
func (b *book) removeLevel(p price.Price) {
	b.levels.Delete(newPriceLevel(p))
}

// removeIfEmpty deletes lvl from the side if it has no resting orders
// left. Invariant 2 (no empty levels) is maintained by calling this
// after every removal from a level.
func (b *book) removeIfEmpty(lvl *PriceLevel) {
	if lvl.isEmpty() {
		b.removeLevel(lvl.Price)
	}
}

// ascendLevels calls fn for every level from best to worst, stopping
// early if fn returns false.
func (b *book) ascendLevels(fn func(lvl *PriceLevel) bool) {
	b.levels.Scan(fn)
}

// len returns the number of non-empty price levels on this side.
func (b *book) len() int {
	return b.levels.Len()
}
