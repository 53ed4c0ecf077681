package store

import (
	"context"

	"github.com/lovenest/storefront/internal/catalog"
	"github.com/shopspring/decimal"
)

// CartItem is a product plus how many of it the shopper wants. The embedded
// product fields are flattened in JSON, matching the cached snapshot shape.
type CartItem struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// LineTotal is price multiplied by quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// SnapshotPort persists the cart between visits. Implementations must be safe
// for use from the store's background writer goroutine.
type SnapshotPort interface {
	// Load returns the stored cart, or nil with a nil error when nothing is stored.
	Load(ctx context.Context) ([]CartItem, error)
	Save(ctx context.Context, items []CartItem) error
	Clear(ctx context.Context) error
}

// State is a consistent copy of everything an observer renders.
type State struct {
	Cart      []CartItem        `json:"items"`
	Wishlist  []catalog.Product `json:"wishlist"`
	CartTotal decimal.Decimal   `json:"total"`
	CartCount int               `json:"count"`
}

// Listener receives the state after every mutation that changed something.
// Listeners run synchronously on the mutating goroutine. They may read the
// store but must not mutate it.
type Listener func(State)

// CartTotal folds price x quantity over items.
func CartTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// CartCount folds quantity over items.
func CartCount(items []CartItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

// Sanitize drops entries without an id or with a non-positive quantity and
// merges repeated ids by summing quantities, keeping first-seen order.
func Sanitize(items []CartItem) []CartItem {
	out := make([]CartItem, 0, len(items))
	index := make(map[string]int, len(items))
	for _, item := range items {
		if item.ID == "" || item.Quantity < 1 {
			continue
		}
		if idx, ok := index[item.ID]; ok {
			out[idx].Quantity += item.Quantity
			continue
		}
		index[item.ID] = len(out)
		out = append(out, item)
	}
	return out
}
