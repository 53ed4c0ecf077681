package enums

import "fmt"

// SortKey selects the single ordering applied to a filtered product listing.
type SortKey string

const (
	SortKeyFeatured  SortKey = "featured"
	SortKeyPriceLow  SortKey = "price-low"
	SortKeyPriceHigh SortKey = "price-high"
	SortKeyRating    SortKey = "rating"
	SortKeyNewest    SortKey = "newest"
)

var validSortKeys = []SortKey{
	SortKeyFeatured,
	SortKeyPriceLow,
	SortKeyPriceHigh,
	SortKeyRating,
	SortKeyNewest,
}

func (s SortKey) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SortKey.
func (s SortKey) IsValid() bool {
	for _, candidate := range validSortKeys {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSortKey converts raw input into a SortKey. Empty input selects featured.
func ParseSortKey(value string) (SortKey, error) {
	if value == "" {
		return SortKeyFeatured, nil
	}
	for _, candidate := range validSortKeys {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid sort key %q", value)
}

// PriceBand identifies one of the fixed price intervals used for filtering.
type PriceBand string

const (
	PriceBandUnder25  PriceBand = "0-25"
	PriceBand25To50   PriceBand = "25-50"
	PriceBand50To100  PriceBand = "50-100"
	PriceBand100AndUp PriceBand = "100+"
)

var validPriceBands = []PriceBand{
	PriceBandUnder25,
	PriceBand25To50,
	PriceBand50To100,
	PriceBand100AndUp,
}

// PriceBands returns the bands in display order.
func PriceBands() []PriceBand {
	out := make([]PriceBand, len(validPriceBands))
	copy(out, validPriceBands)
	return out
}

func (p PriceBand) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PriceBand.
func (p PriceBand) IsValid() bool {
	for _, candidate := range validPriceBands {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePriceBand converts raw input into a PriceBand.
func ParsePriceBand(value string) (PriceBand, error) {
	for _, candidate := range validPriceBands {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid price band %q", value)
}
