package engine

import "matchbook/internal/price"

// Trade is an immutable execution record. Price is always the passive
// (resting) order's price — price improvement accrues to the aggressor.
type Trade struct {
	PassiveID    int64
	AggressiveID int64
	Price        price.Price
	Quantity     int64
	Timestamp    int64
}
