package catalog

import (
	"github.com/lovenest/storefront/pkg/enums"
	"github.com/shopspring/decimal"
)

// Product is an immutable catalog entry. The JSON shape matches what the
// storefront caches in cart snapshots, so field names stay camelCase.
type Product struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Description   string                `json:"description"`
	Price         decimal.Decimal       `json:"price"`
	OriginalPrice *decimal.Decimal      `json:"originalPrice,omitempty"`
	Category      enums.ProductCategory `json:"category"`
	Rating        float64               `json:"rating"`
	Reviews       int                   `json:"reviews"`
	InStock       bool                  `json:"inStock"`
	Badge         enums.ProductBadge    `json:"badge,omitempty"`
	Image         string                `json:"image"`
}

// HasBadge reports whether the product carries any promotional badge.
func (p Product) HasBadge() bool {
	return p.Badge != ""
}

// OnSale reports whether the product lists a struck-through original price.
func (p Product) OnSale() bool {
	return p.OriginalPrice != nil
}

// Savings is OriginalPrice - Price, or zero when the product is not on sale.
func (p Product) Savings() decimal.Decimal {
	if p.OriginalPrice == nil {
		return decimal.Zero
	}
	return p.OriginalPrice.Sub(p.Price)
}

// Category is a browsable product grouping with its display metadata.
type Category struct {
	ID   enums.ProductCategory `json:"id"`
	Name string                `json:"name"`
	Icon string                `json:"icon"`
}

var categories = []Category{
	{ID: enums.ProductCategoryGiftsForHer, Name: "Gifts for Her", Icon: "heart"},
	{ID: enums.ProductCategoryGiftsForHim, Name: "Gifts for Him", Icon: "gift"},
	{ID: enums.ProductCategoryCoupleGifts, Name: "Couple Gifts", Icon: "hearts"},
}

// Categories returns every category in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}
