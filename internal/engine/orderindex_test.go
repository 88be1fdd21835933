package engine

import (
	"testing"

	"matchbook/internal/price"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderIndex_InsertLookupRemove(t *testing.T) {
	idx := newOrderIndex()
	key := queueKey{timestamp: 1, id: 7}

	require.NoError(t, idx.insert(7, Buy, price.MustFromFloat(100.0), key))

	loc, ok := idx.lookup(7)
	require.True(t, ok)
	assert.Equal(t, Buy, loc.side)
	assert.Equal(t, price.MustFromFloat(100.0), loc.price)
	assert.Equal(t, key, loc.key)

	idx.remove(7)
	_, ok = idx.lookup(7)
	assert.False(t, ok)
}

func TestOrderIndex_DuplicateInsertRejected(t *testing.T) {
	idx := newOrderIndex()
	key := queueKey{timestamp: 1, id: 7}
	require.NoError(t, idx.insert(7, Buy, price.MustFromFloat(100.0), key))

	err := idx.insert(7, Sell, price.MustFromFloat(200.0), queueKey{timestamp: 2, id: 7})
	assert.ErrorIs(t, err, ErrDuplicateID)

	// Original entry must be untouched.
	loc, ok := idx.lookup(7)
	require.True(t, ok)
	assert.Equal(t, Buy, loc.side)
}
