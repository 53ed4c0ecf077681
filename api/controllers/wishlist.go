package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lovenest/storefront/api/responses"
	"github.com/lovenest/storefront/api/validators"
	"github.com/lovenest/storefront/internal/catalog"
	"github.com/lovenest/storefront/pkg/logger"
)

type addWishlistItemPayload struct {
	ProductID string `json:"product_id" validate:"required,max=64"`
}

type wishlistMembership struct {
	ProductID  string `json:"product_id"`
	InWishlist bool   `json:"in_wishlist"`
}

func WishlistList(stores SessionStores, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := sessionStore(r, stores)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, s.Wishlist())
	}
}

// WishlistAdd saves a product; adding one already saved is a no-op.
func WishlistAdd(cat *catalog.Catalog, stores SessionStores, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload addWishlistItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		product, err := lookupProduct(cat, validators.SanitizeString(payload.ProductID, 64))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		s, err := sessionStore(r, stores)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		s.AddToWishlist(product)
		responses.WriteSuccess(w, s.Wishlist())
	}
}

func WishlistRemove(cat *catalog.Catalog, stores SessionStores, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		product, err := lookupProduct(cat, chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		s, err := sessionStore(r, stores)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		s.RemoveFromWishlist(product.ID)
		responses.WriteSuccess(w, s.Wishlist())
	}
}

func WishlistContains(cat *catalog.Catalog, stores SessionStores, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		product, err := lookupProduct(cat, chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		s, err := sessionStore(r, stores)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, wishlistMembership{
			ProductID:  product.ID,
			InWishlist: s.IsInWishlist(product.ID),
		})
	}
}
