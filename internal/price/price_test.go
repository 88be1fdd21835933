package price

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFloat_RoundsHalfUp(t *testing.T) {
	p, err := FromFloat(100.0)
	require.NoError(t, err)
	assert.Equal(t, Price(10000), p)

	p, err = FromFloat(100.005)
	require.NoError(t, err)
	assert.Equal(t, Price(10001), p, "half-up at cent precision")

	p, err = FromFloat(0.004)
	require.NoError(t, err)
	assert.Equal(t, Price(0), p)
}

func TestFromFloat_RejectsNonFinite(t *testing.T) {
	_, err := FromFloat(math.NaN())
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = FromFloat(math.Inf(1))
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = FromFloat(-1.0)
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestPrice_Float64_RoundTrip(t *testing.T) {
	p := MustFromFloat(101.50)
	assert.InDelta(t, 101.50, p.Float64(), 1e-9)
	assert.Equal(t, "101.50", p.String())
}

func TestPrice_Ordering(t *testing.T) {
	low := MustFromFloat(99.99)
	high := MustFromFloat(100.00)
	assert.True(t, low.Less(high))
	assert.False(t, high.Less(low))
	assert.False(t, low.Less(low))
}
