package enums

import "fmt"

// ProductCategory represents the canonical gift categories supported by the catalog.
type ProductCategory string

const (
	ProductCategoryGiftsForHer ProductCategory = "gifts-for-her"
	ProductCategoryGiftsForHim ProductCategory = "gifts-for-him"
	ProductCategoryCoupleGifts ProductCategory = "couple-gifts"
)

var validProductCategories = []ProductCategory{
	ProductCategoryGiftsForHer,
	ProductCategoryGiftsForHim,
	ProductCategoryCoupleGifts,
}

// ProductCategories returns the categories in display order.
func ProductCategories() []ProductCategory {
	out := make([]ProductCategory, len(validProductCategories))
	copy(out, validProductCategories)
	return out
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}

// ProductBadge is a promotional label rendered on product cards.
type ProductBadge string

const (
	ProductBadgeBestSeller       ProductBadge = "Best Seller"
	ProductBadgeValentineSpecial ProductBadge = "Valentine Special"
	ProductBadgeLimitedEdition   ProductBadge = "Limited Edition"
	ProductBadgeTopRated         ProductBadge = "Top Rated"
	ProductBadgeBestValue        ProductBadge = "Best Value"
)

func (b ProductBadge) String() string {
	return string(b)
}
