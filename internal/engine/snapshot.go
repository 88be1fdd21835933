package engine

import (
	"fmt"
	"strings"

	"matchbook/internal/price"
)

// LevelSnapshot is a read-only aggregate view of one price level.
type LevelSnapshot struct {
	Price      price.Price
	Quantity   int64
	OrderCount int
}

// BookSnapshot is a read-only view of both sides of the book, best
// level first on each side. It never aliases live Order pointers, so
// holding one cannot tear OrderIndex against book state (spec §5).
type BookSnapshot struct {
	Bids []LevelSnapshot
	Asks []LevelSnapshot
}

// Snapshot returns the current aggregate state of both sides of the
// book. This is the optional operation named in spec §6; it supplies
// the data a market-data fan-out layer would need without this engine
// implementing that fan-out itself.
func (m *MatchingEngine) Snapshot() BookSnapshot {
	return BookSnapshot{
		Bids: snapshotSide(m.bids),
		Asks: snapshotSide(m.asks),
	}
}

func snapshotSide(b *book) []LevelSnapshot {
	var out []LevelSnapshot
	b.ascendLevels(func(lvl *PriceLevel) bool {
		out = append(out, LevelSnapshot{
			Price:      lvl.Price,
			Quantity:   lvl.totalQuantity(),
			OrderCount: lvl.len(),
		})
		return true
	})
	return out
}

// String renders the snapshot the way the original implementation's
// printOrderBook did: bids first (price descending), then asks (price
// ascending).
func (s BookSnapshot) String() string {
	var sb strings.Builder
	sb.WriteString("BIDS (price desc):\n")
	for _, lvl := range s.Bids {
		fmt.Fprintf(&sb, "  %s x %d (%d orders)\n", lvl.Price, lvl.Quantity, lvl.OrderCount)
	}
	sb.WriteString("ASKS (price asc):\n")
	for _, lvl := range s.Asks {
		fmt.Fprintf(&sb, "  %s x %d (%d orders)\n", lvl.Price, lvl.Quantity, lvl.OrderCount)
	}
	return sb.String()
}
