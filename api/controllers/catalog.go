package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lovenest/storefront/api/responses"
	"github.com/lovenest/storefront/api/validators"
	"github.com/lovenest/storefront/internal/catalog"
	"github.com/lovenest/storefront/pkg/enums"
	pkgerrors "github.com/lovenest/storefront/pkg/errors"
	"github.com/lovenest/storefront/pkg/logger"
)

const maxRelatedLimit = 12

func CategoryList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, catalog.Categories())
	}
}

// ProductList filters and sorts the catalog. category and price accept
// repeated or comma separated values; an unknown sort falls back to featured.
func ProductList(cat *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		query, err := parseProductQuery(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, cat.Query(query))
	}
}

func parseProductQuery(r *http.Request) (catalog.Query, error) {
	var q catalog.Query
	for _, raw := range validators.ParseQueryList(r, "category") {
		category, err := enums.ParseProductCategory(raw)
		if err != nil {
			return catalog.Query{}, pkgerrors.InvalidField("category", raw, "unknown category")
		}
		q.Categories = append(q.Categories, category)
	}
	for _, raw := range validators.ParseQueryList(r, "price") {
		band, err := parsePriceBand(raw)
		if err != nil {
			return catalog.Query{}, pkgerrors.InvalidField("price", raw, "unknown price range")
		}
		q.PriceBands = append(q.PriceBands, band)
	}
	q.Sort = enums.SortKeyFeatured
	if raw := validators.SanitizeString(r.URL.Query().Get("sort"), 32); raw != "" {
		if key, err := enums.ParseSortKey(raw); err == nil {
			q.Sort = key
		}
	}
	return q, nil
}

// parsePriceBand tolerates an unescaped "100+", whose plus sign arrives as a
// space and is trimmed off with the rest of the whitespace.
func parsePriceBand(raw string) (enums.PriceBand, error) {
	band, err := enums.ParsePriceBand(raw)
	if err == nil {
		return band, nil
	}
	if alt, altErr := enums.ParsePriceBand(raw + "+"); altErr == nil {
		return alt, nil
	}
	return "", err
}

func ProductBestSellers(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, cat.BestSellers())
	}
}

func ProductDeals(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, cat.FeaturedDeals())
	}
}

func ProductGet(cat *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := lookupProduct(cat, chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// ProductRelated lists same-category products, excluding the product itself.
func ProductRelated(cat *catalog.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		product, err := lookupProduct(cat, chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", catalog.DefaultRelatedLimit, 1, maxRelatedLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, cat.Related(product.ID, limit))
	}
}
