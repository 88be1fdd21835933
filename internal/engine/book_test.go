package engine

import (
	"testing"

	"matchbook/internal/price"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBidBook_BestIsHighestPrice(t *testing.T) {
	b := newBidBook()
	b.insertLevelIfAbsent(price.MustFromFloat(99.0))
	b.insertLevelIfAbsent(price.MustFromFloat(101.0))
	b.insertLevelIfAbsent(price.MustFromFloat(100.0))

	best, ok := b.bestLevel()
	require.True(t, ok)
	assert.Equal(t, price.MustFromFloat(101.0), best.Price)
}

func TestAskBook_BestIsLowestPrice(t *testing.T) {
	b := newAskBook()
	b.insertLevelIfAbsent(price.MustFromFloat(99.0))
	b.insertLevelIfAbsent(price.MustFromFloat(101.0))
	b.insertLevelIfAbsent(price.MustFromFloat(100.0))

	best, ok := b.bestLevel()
	require.True(t, ok)
	assert.Equal(t, price.MustFromFloat(99.0), best.Price)
}

func TestBook_RemoveIfEmptyDeletesLevel(t *testing.T) {
	b := newAskBook()
	p := price.MustFromFloat(100.0)
	lvl := b.insertLevelIfAbsent(p)
	lvl.pushBack(&Order{ID: 1, Timestamp: 1, Quantity: 5})

	b.removeIfEmpty(lvl)
	_, ok := b.levelAt(p)
	assert.True(t, ok, "non-empty level must survive removeIfEmpty")

	lvl.popFront()
	b.removeIfEmpty(lvl)
	_, ok = b.levelAt(p)
	assert.False(t, ok, "empty level must be removed")
}

func TestBook_AscendLevelsStopsEarly(t *testing.T) {
	b := newAskBook()
	b.insertLevelIfAbsent(price.MustFromFloat(100.0))
	b.insertLevelIfAbsent(price.MustFromFloat(101.0))
	b.insertLevelIfAbsent(price.MustFromFloat(102.0))
	b.insertLevelIfAbsent(price.MustFromFloat(103.0))

	var seen []price.Price
	b.ascendLevels(func(lvl *PriceLevel) bool {
		seen = append(seen, lvl.Price)
		return lvl.Price.Less(price.MustFromFloat(101.5))
	})
	assert.Equal(t, []price.Price{price.MustFromFloat(100.0), price.MustFromFloat(101.0), price.MustFromFloat(102.0)}, seen)
}
