package engine

import "errors"

// Sentinel errors for the taxonomy in spec §7. These are kinds, not a
// custom error hierarchy — callers compare with errors.Is, the same way
// the teacher's ErrNotEnoughLiquidity/ErrRejection are compared.
var (
	// ErrInvalidQuantity is returned when quantity is zero or negative.
	// The source accepts zero-quantity orders silently; we reject them.
	ErrInvalidQuantity = errors.New("engine: quantity must be positive")

	// ErrDuplicateID is returned by AddOrder when id already identifies
	// a currently resting order. The source silently overwrites its
	// index on a duplicate id, orphaning the earlier entry; we reject
	// instead.
	ErrDuplicateID = errors.New("engine: order id already resting")

	// ErrNotFound is returned by CancelOrder/ModifyOrder when id does
	// not identify a currently resting order.
	ErrNotFound = errors.New("engine: order not found")
)
