// Package clock supplies the monotonic millisecond timestamps the
// matching core stamps onto orders and trades. The core never calls
// time.Now() directly; it consumes a Clock so tests (and callers that
// care about determinism) can inject their own.
package clock

import "time"

// Clock produces a monotonic, non-decreasing integer timestamp.
type Clock interface {
	Now() int64
}

// System is the default Clock: wall-clock time at millisecond
// resolution.
type System struct{}

// Now returns the current time in Unix milliseconds.
func (System) Now() int64 {
	return time.Now().UnixMilli()
}

// Fixed always returns the same timestamp. Useful for tests that don't
// care about time ordering at all.
type Fixed int64

// Now returns the fixed timestamp.
func (f Fixed) Now() int64 {
	return int64(f)
}

// Sequence returns a strictly increasing timestamp on every call,
// starting at the value given to NewSequence. It exists for tests that need deterministic,
// always-distinct (timestamp, id) queue keys without sleeping.
type Sequence struct {
	next int64
}

// NewSequence builds a Sequence clock starting at start.
func NewSequence(start int64) *Sequence {
	return &Sequence{next: start}
}

// Now returns the next value in the sequence and advances it.
func (s *Sequence) Now() int64 {
	v := s.next
	s.next++
	return v
}
