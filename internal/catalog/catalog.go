package catalog

import (
	"sort"

	"github.com/lovenest/storefront/pkg/enums"
	"github.com/shopspring/decimal"
)

const (
	// CuratedLimit caps the best-seller and featured-deal shelves.
	CuratedLimit = 4
	// DefaultRelatedLimit is how many related products a detail page shows.
	DefaultRelatedLimit = 4

	bestSellerMinRating = 4.8
)

// Catalog is the read-only product list. Lookups never fail: unknown ids and
// empty filters produce absent or empty results.
type Catalog struct {
	products []Product
	byID     map[string]int
}

// New builds a catalog over products, keeping their order. Later duplicates of
// an id are ignored.
func New(products []Product) *Catalog {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	for _, p := range products {
		if _, dup := c.byID[p.ID]; dup {
			continue
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c
}

// Default returns the storefront's static catalog.
func Default() *Catalog {
	return New(seedProducts)
}

// Products returns the whole catalog in catalog order.
func (c *Catalog) Products() []Product {
	return clone(c.products)
}

// ProductByID returns the product with id, if any.
func (c *Catalog) ProductByID(id string) (Product, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return Product{}, false
	}
	return c.products[idx], true
}

// ProductsByCategory returns the products of one category in catalog order.
func (c *Catalog) ProductsByCategory(category enums.ProductCategory) []Product {
	return filter(c.products, func(p Product) bool { return p.Category == category })
}

// BestSellers returns up to CuratedLimit products badged "Best Seller" or rated
// at least 4.8, in catalog order.
func (c *Catalog) BestSellers() []Product {
	out := filter(c.products, func(p Product) bool {
		return p.Badge == enums.ProductBadgeBestSeller || p.Rating >= bestSellerMinRating
	})
	return limit(out, CuratedLimit)
}

// FeaturedDeals returns up to CuratedLimit products that list an original price.
func (c *Catalog) FeaturedDeals() []Product {
	return limit(filter(c.products, Product.OnSale), CuratedLimit)
}

// Related returns up to n other products from the same category as id. n <= 0
// selects DefaultRelatedLimit.
func (c *Catalog) Related(id string, n int) []Product {
	product, ok := c.ProductByID(id)
	if !ok {
		return []Product{}
	}
	if n <= 0 {
		n = DefaultRelatedLimit
	}
	out := filter(c.products, func(p Product) bool {
		return p.Category == product.Category && p.ID != product.ID
	})
	return limit(out, n)
}

// Query runs FilterAndSort over the whole catalog.
func (c *Catalog) Query(q Query) []Product {
	return FilterAndSort(c.products, q)
}

// Query describes one listing request: category and price-band filters
// (OR within each, empty meaning all) followed by a single sort.
type Query struct {
	Categories []enums.ProductCategory
	PriceBands []enums.PriceBand
	Sort       enums.SortKey
}

// FilterAndSort applies the category filter, then the price-band filter, then
// exactly one stable sort. The input slice is never modified. Unknown sort keys
// fall back to featured.
func FilterAndSort(products []Product, q Query) []Product {
	out := filter(products, func(p Product) bool {
		return matchesCategory(p, q.Categories) && matchesPriceBands(p, q.PriceBands)
	})

	switch q.Sort {
	case enums.SortKeyPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
	case enums.SortKeyPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.GreaterThan(out[j].Price) })
	case enums.SortKeyRating:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	case enums.SortKeyNewest:
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].HasBadge() && !out[j].HasBadge() })
	}
	return out
}

func matchesCategory(p Product, categories []enums.ProductCategory) bool {
	if len(categories) == 0 {
		return true
	}
	for _, c := range categories {
		if p.Category == c {
			return true
		}
	}
	return false
}

func matchesPriceBands(p Product, bands []enums.PriceBand) bool {
	if len(bands) == 0 {
		return true
	}
	for _, band := range bands {
		if InPriceBand(p.Price, band) {
			return true
		}
	}
	return false
}

var (
	twentyFive = decimal.NewFromInt(25)
	fifty      = decimal.NewFromInt(50)
	hundred    = decimal.NewFromInt(100)
)

// InPriceBand reports whether price falls in band. Bands are half-open:
// [0,25), [25,50), [50,100), [100,inf). Unknown bands match nothing.
func InPriceBand(price decimal.Decimal, band enums.PriceBand) bool {
	switch band {
	case enums.PriceBandUnder25:
		return price.LessThan(twentyFive)
	case enums.PriceBand25To50:
		return price.GreaterThanOrEqual(twentyFive) && price.LessThan(fifty)
	case enums.PriceBand50To100:
		return price.GreaterThanOrEqual(fifty) && price.LessThan(hundred)
	case enums.PriceBand100AndUp:
		return price.GreaterThanOrEqual(hundred)
	default:
		return false
	}
}

func filter(products []Product, keep func(Product) bool) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func limit(products []Product, n int) []Product {
	if len(products) > n {
		return products[:n]
	}
	return products
}

func clone(products []Product) []Product {
	out := make([]Product, len(products))
	copy(out, products)
	return out
}
