package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lovenest/storefront/api/responses"
	"github.com/lovenest/storefront/api/validators"
	"github.com/lovenest/storefront/internal/checkout"
	"github.com/lovenest/storefront/pkg/enums"
	pkgerrors "github.com/lovenest/storefront/pkg/errors"
	"github.com/lovenest/storefront/pkg/logger"
)

type quoteRequest struct {
	PromoCode string `json:"promo_code" validate:"max=32"`
	GiftWrap  bool   `json:"gift_wrap"`
}

type stepResponse struct {
	Step     enums.CheckoutStep `json:"step"`
	Valid    bool               `json:"valid"`
	NextStep enums.CheckoutStep `json:"next_step,omitempty"`
}

// CheckoutQuote prices the session cart with an optional promo code and
// gift wrap.
func CheckoutQuote(svc checkout.Service, stores SessionStores, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var req quoteRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		s, err := sessionStore(r, stores)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		quote, err := svc.Quote(s.Cart(), validators.SanitizeString(req.PromoCode, 32), req.GiftWrap)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

// CheckoutStep validates the fields owned by one step of the checkout flow
// and names the step that follows it.
func CheckoutStep(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		step, err := enums.ParseCheckoutStep(chi.URLParam(r, "step"))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "unknown checkout step"))
			return
		}
		var details checkout.Details
		if err := validators.DecodeJSON(r, &details); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.ValidateStep(step, details); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		next, _ := step.Next()
		responses.WriteSuccess(w, stepResponse{Step: step, Valid: true, NextStep: next})
	}
}

// CheckoutPlaceOrder confirms the session cart as an order and empties it.
func CheckoutPlaceOrder(svc checkout.Service, stores SessionStores, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var details checkout.Details
		if err := validators.DecodeJSON(r, &details); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		s, err := sessionStore(r, stores)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		order, err := svc.PlaceOrder(ctx, s, details)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
