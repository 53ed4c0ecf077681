package checkout

import (
	"strings"

	"github.com/lovenest/storefront/internal/store"
	"github.com/lovenest/storefront/pkg/config"
	pkgerrors "github.com/lovenest/storefront/pkg/errors"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Rules holds the pricing knobs applied on top of the cart subtotal.
type Rules struct {
	FreeShippingThreshold decimal.Decimal
	ShippingFee           decimal.Decimal
	GiftWrapFee           decimal.Decimal
	PromoCode             string
	PromoPercent          decimal.Decimal
}

// DefaultRules mirrors the storefront's published pricing.
func DefaultRules() Rules {
	return Rules{
		FreeShippingThreshold: decimal.NewFromInt(50),
		ShippingFee:           decimal.RequireFromString("5.99"),
		GiftWrapFee:           decimal.RequireFromString("4.99"),
		PromoCode:             "LOVE10",
		PromoPercent:          decimal.NewFromInt(10),
	}
}

func RulesFromConfig(cfg config.CheckoutConfig) Rules {
	return Rules{
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		ShippingFee:           cfg.ShippingFee,
		GiftWrapFee:           cfg.GiftWrapFee,
		PromoCode:             cfg.PromoCode,
		PromoPercent:          cfg.PromoPercent,
	}
}

// Quote is the price breakdown shown in the order summary.
type Quote struct {
	ItemCount            int             `json:"item_count"`
	Subtotal             decimal.Decimal `json:"subtotal"`
	PromoCode            string          `json:"promo_code,omitempty"`
	Discount             decimal.Decimal `json:"discount"`
	Shipping             decimal.Decimal `json:"shipping"`
	FreeShipping         bool            `json:"free_shipping"`
	AmountToFreeShipping decimal.Decimal `json:"amount_to_free_shipping"`
	GiftWrap             decimal.Decimal `json:"gift_wrap"`
	Total                decimal.Decimal `json:"total"`
}

// Quote prices a subtotal. Shipping is judged on the subtotal before any
// discount. A blank promo code means no promo; any other code must match the
// configured one, ignoring case, or the quote fails with VALIDATION_ERROR.
func (r Rules) Quote(subtotal decimal.Decimal, promoCode string, giftWrap bool) (Quote, error) {
	q := Quote{
		Subtotal:             subtotal,
		Discount:             decimal.Zero,
		Shipping:             decimal.Zero,
		AmountToFreeShipping: decimal.Zero,
		GiftWrap:             decimal.Zero,
	}

	code := strings.TrimSpace(promoCode)
	if code != "" {
		if !strings.EqualFold(code, r.PromoCode) {
			return Quote{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid promo code").
				WithDetails(map[string]any{"promo_code": code})
		}
		q.PromoCode = strings.ToUpper(r.PromoCode)
		q.Discount = subtotal.Mul(r.PromoPercent).Div(hundred).Round(2)
	}

	switch {
	case subtotal.IsZero():
		q.FreeShipping = false
		q.AmountToFreeShipping = r.FreeShippingThreshold
	case subtotal.GreaterThanOrEqual(r.FreeShippingThreshold):
		q.FreeShipping = true
	default:
		q.Shipping = r.ShippingFee
		q.AmountToFreeShipping = r.FreeShippingThreshold.Sub(subtotal)
	}

	if giftWrap {
		q.GiftWrap = r.GiftWrapFee
	}

	q.Total = subtotal.Sub(q.Discount).Add(q.Shipping).Add(q.GiftWrap).Round(2)
	return q, nil
}

// QuoteCart prices the given cart lines.
func (r Rules) QuoteCart(items []store.CartItem, promoCode string, giftWrap bool) (Quote, error) {
	q, err := r.Quote(store.CartTotal(items), promoCode, giftWrap)
	if err != nil {
		return Quote{}, err
	}
	q.ItemCount = store.CartCount(items)
	return q, nil
}
