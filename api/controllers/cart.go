package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/lovenest/storefront/api/responses"
	"github.com/lovenest/storefront/api/validators"
	"github.com/lovenest/storefront/internal/catalog"
	"github.com/lovenest/storefront/internal/store"
	"github.com/lovenest/storefront/pkg/logger"
)

type cartResponse struct {
	Items []store.CartItem `json:"items"`
	Total decimal.Decimal  `json:"total"`
	Count int              `json:"count"`
}

func newCartResponse(s *store.Store) cartResponse {
	state := s.State()
	return cartResponse{
		Items: state.Cart,
		Total: state.CartTotal,
		Count: state.CartCount,
	}
}

// addCartItemRequest omits quantity or sends 0 to add a single unit.
type addCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,max=64"`
	Quantity  int    `json:"quantity" validate:"min=0,max=99"`
}

// updateCartItemRequest allows zero and negative quantities, which remove the line.
type updateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required,max=99"`
}

func CartGet(stores SessionStores, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := sessionStore(r, stores)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(s))
	}
}

// CartAddItem adds a catalog product to the session cart, merging with an
// existing line for the same product.
func CartAddItem(cat *catalog.Catalog, stores SessionStores, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req addCartItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		product, err := lookupProduct(cat, validators.SanitizeString(req.ProductID, 64))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		s, err := sessionStore(r, stores)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		s.AddToCart(product, req.Quantity)
		responses.WriteSuccess(w, newCartResponse(s))
	}
}

func CartUpdateItem(cat *catalog.Catalog, stores SessionStores, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		product, err := lookupProduct(cat, chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var req updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		s, err := sessionStore(r, stores)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		s.UpdateQuantity(product.ID, *req.Quantity)
		responses.WriteSuccess(w, newCartResponse(s))
	}
}

func CartRemoveItem(cat *catalog.Catalog, stores SessionStores, logg *logger.Logger) http.HandlerFunc {
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

		s.RemoveFromCart(product.ID)
		responses.WriteSuccess(w, newCartResponse(s))
	}
}

func CartClear(stores SessionStores, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := sessionStore(r, stores)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		s.ClearCart()
		responses.WriteSuccess(w, newCartResponse(s))
	}
}
