package engine

import (
	"testing"

	"matchbook/internal/price"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceLevel_PushBackOrdersByQueueKey(t *testing.T) {
	lvl := newPriceLevel(price.MustFromFloat(100.0))

	lvl.pushBack(&Order{ID: 3, Timestamp: 5})
	lvl.pushBack(&Order{ID: 1, Timestamp: 1})
	lvl.pushBack(&Order{ID: 2, Timestamp: 1})

	var ids []int64
	lvl.ascend(func(o *Order) bool {
		ids = append(ids, o.ID)
		return true
	})
	assert.Equal(t, []int64{1, 2, 3}, ids, "equal timestamps break ties by id")
}

func TestPriceLevel_RemoveByQueueKey(t *testing.T) {
	lvl := newPriceLevel(price.MustFromFloat(100.0))
	lvl.pushBack(&Order{ID: 1, Timestamp: 1})
	lvl.pushBack(&Order{ID: 2, Timestamp: 2})

	removed, ok := lvl.remove(queueKey{timestamp: 1, id: 1})
	require.True(t, ok)
	assert.Equal(t, int64(1), removed.ID)
	assert.Equal(t, 1, lvl.len())

	_, ok = lvl.get(queueKey{timestamp: 1, id: 1})
	assert.False(t, ok)
}

func TestPriceLevel_PopFrontAndIsEmpty(t *testing.T) {
	lvl := newPriceLevel(price.MustFromFloat(100.0))
	assert.True(t, lvl.isEmpty())

	lvl.pushBack(&Order{ID: 1, Timestamp: 1, Quantity: 10})
	head, ok := lvl.popFront()
	require.True(t, ok)
	assert.Equal(t, int64(1), head.ID)
	assert.True(t, lvl.isEmpty())
}

func TestPriceLevel_ReplaceHeadQuantityKeepsQueueKey(t *testing.T) {
	lvl := newPriceLevel(price.MustFromFloat(100.0))
	lvl.pushBack(&Order{ID: 1, Timestamp: 1, Quantity: 10})
	lvl.pushBack(&Order{ID: 2, Timestamp: 2, Quantity: 5})

	lvl.replaceHeadQuantity(4)

	head, ok := lvl.peekFront()
	require.True(t, ok)
	assert.Equal(t, int64(1), head.ID)
	assert.Equal(t, int64(4), head.Quantity)
}

func TestPriceLevel_TotalQuantity(t *testing.T) {
	lvl := newPriceLevel(price.MustFromFloat(100.0))
	lvl.pushBack(&Order{ID: 1, Timestamp: 1, Quantity: 10})
	lvl.pushBack(&Order{ID: 2, Timestamp: 2, Quantity: 5})
	assert.Equal(t, int64(15), lvl.totalQuantity())
}
