package clock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSystem_NowIsPositive(t *testing.T) {
	var c Clock = System{}
	assert.Greater(t, c.Now(), int64(0))
}

func TestFixed_AlwaysReturnsSameValue(t *testing.T) {
	c := Fixed(42)
	assert.Equal(t, int64(42), c.Now())
	assert.Equal(t, int64(42), c.Now())
}

func TestSequence_StrictlyIncreasing(t *testing.T) {
	s := NewSequence(5)
	assert.Equal(t, int64(5), s.Now())
	assert.Equal(t, int64(6), s.Now())
	assert.Equal(t, int64(7), s.Now())
}
