package catalog

import (
	"testing"

	"github.com/lovenest/storefront/pkg/enums"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(products []Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestDefaultCatalogShape(t *testing.T) {
	c := Default()
	products := c.Products()
	require.Len(t, products, 12)

	seen := map[string]bool{}
	for _, p := range products {
		assert.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
		assert.True(t, p.Category.IsValid(), p.ID)
		assert.False(t, p.Price.IsNegative(), p.ID)
		assert.GreaterOrEqual(t, p.Rating, 0.0)
		assert.LessOrEqual(t, p.Rating, 5.0)
		if p.OriginalPrice != nil {
			assert.True(t, p.OriginalPrice.GreaterThanOrEqual(p.Price), p.ID)
		}
	}
}

func TestProductByID(t *testing.T) {
	c := Default()

	p, ok := c.ProductByID("4")
	require.True(t, ok)
	assert.Equal(t, "Couple Rings Set", p.Name)
	assert.True(t, decimal.RequireFromString("50").Equal(p.Savings()))

	_, ok = c.ProductByID("404")
	assert.False(t, ok)
}

func TestProductsByCategory(t *testing.T) {
	c := Default()
	assert.Equal(t, []string{"3", "7", "11", "12"}, ids(c.ProductsByCategory(enums.ProductCategoryGiftsForHim)))
	assert.Empty(t, c.ProductsByCategory(enums.ProductCategory("flowers")))
}

func TestBestSellersCapAndOrder(t *testing.T) {
	got := Default().BestSellers()
	assert.Equal(t, []string{"1", "2", "4", "6"}, ids(got))
	for _, p := range got {
		assert.True(t, p.Badge == enums.ProductBadgeBestSeller || p.Rating >= 4.8)
	}
}

func TestFeaturedDeals(t *testing.T) {
	got := Default().FeaturedDeals()
	assert.Equal(t, []string{"1", "2", "4", "6"}, ids(got))
	for _, p := range got {
		assert.True(t, p.OnSale())
	}
}

func TestBestSellersUnderCap(t *testing.T) {
	c := New([]Product{
		{ID: "a", Rating: 4.9},
		{ID: "b", Rating: 3.0, Badge: enums.ProductBadgeBestSeller},
		{ID: "c", Rating: 4.0},
	})
	assert.Equal(t, []string{"a", "b"}, ids(c.BestSellers()))
}

func TestRelated(t *testing.T) {
	c := Default()
	assert.Equal(t, []string{"2", "6", "10"}, ids(c.Related("1", 0)))
	assert.Equal(t, []string{"2"}, ids(c.Related("1", 1)))
	assert.Empty(t, c.Related("missing", 4))
}

func TestNewIgnoresDuplicateIDs(t *testing.T) {
	c := New([]Product{{ID: "a", Name: "first"}, {ID: "a", Name: "second"}})
	require.Len(t, c.Products(), 1)
	p, _ := c.ProductByID("a")
	assert.Equal(t, "first", p.Name)
}

func TestFilterAndSort(t *testing.T) {
	c := Default()

	tests := []struct {
		name  string
		query Query
		want  []string
	}{
		{
			name:  "featured default puts badges first and keeps order",
			query: Query{},
			want:  []string{"1", "2", "4", "6", "9", "3", "5", "7", "8", "10", "11", "12"},
		},
		{
			name:  "newest reverses catalog order",
			query: Query{Sort: enums.SortKeyNewest},
			want:  []string{"12", "11", "10", "9", "8", "7", "6", "5", "4", "3", "2", "1"},
		},
		{
			name:  "bands are OR-ed",
			query: Query{PriceBands: []enums.PriceBand{enums.PriceBandUnder25, enums.PriceBand100AndUp}, Sort: enums.SortKeyPriceLow},
			want:  []string{"7", "12", "8", "4", "9"},
		},
		{
			name:  "category then price high",
			query: Query{Categories: []enums.ProductCategory{enums.ProductCategoryCoupleGifts}, Sort: enums.SortKeyPriceHigh},
			want:  []string{"9", "4", "5", "8"},
		},
		{
			name:  "rating desc is stable",
			query: Query{Sort: enums.SortKeyRating},
			want:  []string{"9", "1", "4", "2", "6", "3", "8", "11", "5", "10", "7", "12"},
		},
		{
			name: "categories and bands combine",
			query: Query{
				Categories: []enums.ProductCategory{enums.ProductCategoryGiftsForHer, enums.ProductCategoryGiftsForHim},
				PriceBands: []enums.PriceBand{enums.PriceBand50To100},
				Sort:       enums.SortKeyPriceLow,
			},
			want: []string{"11", "3", "6"},
		},
		{
			name:  "unknown sort key behaves like featured",
			query: Query{Categories: []enums.ProductCategory{enums.ProductCategoryGiftsForHim}, Sort: enums.SortKey("bogus")},
			want:  []string{"3", "7", "11", "12"},
		},
		{
			name:  "newest applies after filtering",
			query: Query{PriceBands: []enums.PriceBand{enums.PriceBand25To50}, Sort: enums.SortKeyNewest},
			want:  []string{"10", "5", "2", "1"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(c.Query(tc.query)))
		})
	}
}

func TestFilterAndSortDoesNotMutateInput(t *testing.T) {
	products := Default().Products()
	before := ids(products)
	FilterAndSort(products, Query{Sort: enums.SortKeyNewest})
	FilterAndSort(products, Query{Sort: enums.SortKeyPriceHigh})
	assert.Equal(t, before, ids(products))
}

func TestInPriceBandBoundaries(t *testing.T) {
	d := decimal.RequireFromString
	assert.True(t, InPriceBand(d("0"), enums.PriceBandUnder25))
	assert.True(t, InPriceBand(d("24.99"), enums.PriceBandUnder25))
	assert.False(t, InPriceBand(d("25"), enums.PriceBandUnder25))
	assert.True(t, InPriceBand(d("25"), enums.PriceBand25To50))
	assert.False(t, InPriceBand(d("50"), enums.PriceBand25To50))
	assert.True(t, InPriceBand(d("50"), enums.PriceBand50To100))
	assert.False(t, InPriceBand(d("100"), enums.PriceBand50To100))
	assert.True(t, InPriceBand(d("100"), enums.PriceBand100AndUp))
	assert.False(t, InPriceBand(d("10"), enums.PriceBand("cheap")))
}

func TestCategories(t *testing.T) {
	got := Categories()
	require.Len(t, got, 3)
	assert.Equal(t, "Gifts for Her", got[0].Name)
	assert.Equal(t, "hearts", got[2].Icon)
}
