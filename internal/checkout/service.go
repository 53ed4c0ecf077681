package checkout

import (
	"context"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lovenest/storefront/internal/store"
	"github.com/lovenest/storefront/pkg/enums"
	pkgerrors "github.com/lovenest/storefront/pkg/errors"
	"github.com/lovenest/storefront/pkg/logger"
	"github.com/lovenest/storefront/pkg/metrics"
	"github.com/lovenest/storefront/pkg/validation"
)

const (
	orderNumberPrefix = "LN"
	orderNumberLen    = 6
)

// orderNumberSpace is 36^6, the number of distinct order number suffixes.
const orderNumberSpace = 2176782336

// Cart is the part of a session store checkout needs.
type Cart interface {
	Cart() []store.CartItem
	TakeCart() []store.CartItem
}

// Service prices carts and turns them into order confirmations.
type Service interface {
	Rules() Rules
	Quote(items []store.CartItem, promoCode string, giftWrap bool) (Quote, error)
	ValidateStep(step enums.CheckoutStep, details Details) error
	PlaceOrder(ctx context.Context, cart Cart, details Details) (*Order, error)
}

// Order is the confirmation returned once a cart has been checked out.
type Order struct {
	Number        string              `json:"order_number"`
	Items         []store.CartItem    `json:"items"`
	Quote         Quote               `json:"quote"`
	Shipping      ShippingDetails     `json:"shipping"`
	PaymentMethod enums.PaymentMethod `json:"payment_method"`
	CardLast4     string              `json:"card_last4,omitempty"`
	PlacedAt      time.Time           `json:"placed_at"`
}

type ServiceParams struct {
	Rules   Rules
	Metrics *metrics.StoreMetrics
	Logger  *logger.Logger
	Now     func() time.Time
}

type service struct {
	rules   Rules
	metrics *metrics.StoreMetrics
	logg    *logger.Logger
	now     func() time.Time
}

// NewService builds the checkout service.
func NewService(params ServiceParams) (Service, error) {
	if params.Rules.PromoPercent.IsNegative() || params.Rules.PromoPercent.GreaterThan(hundred) {
		return nil, fmt.Errorf("promo percent must be between 0 and 100")
	}
	if params.Rules.ShippingFee.IsNegative() || params.Rules.GiftWrapFee.IsNegative() {
		return nil, fmt.Errorf("fees must not be negative")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		rules:   params.Rules,
		metrics: params.Metrics,
		logg:    logg,
		now:     now,
	}, nil
}

func (s *service) Rules() Rules {
	return s.rules
}

func (s *service) Quote(items []store.CartItem, promoCode string, giftWrap bool) (Quote, error) {
	return s.rules.QuoteCart(items, promoCode, giftWrap)
}

// ValidateStep checks the fields owned by step. Review owns nothing of its
// own and re-checks every earlier step.
func (s *service) ValidateStep(step enums.CheckoutStep, details Details) error {
	switch step {
	case enums.CheckoutStepShipping:
		return validation.Struct(details.Shipping)
	case enums.CheckoutStepPayment:
		return validation.Struct(details.Payment)
	case enums.CheckoutStepReview:
		if err := validation.Struct(details.Shipping); err != nil {
			return err
		}
		return validation.Struct(details.Payment)
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "unknown checkout step").
		WithDetails(map[string]any{"step": string(step)})
}

func (s *service) PlaceOrder(ctx context.Context, cart Cart, details Details) (*Order, error) {
	if cart == nil || len(cart.Cart()) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}
	if err := s.ValidateStep(enums.CheckoutStepReview, details); err != nil {
		return nil, err
	}
	if _, err := s.rules.QuoteCart(cart.Cart(), details.PromoCode, details.GiftWrap); err != nil {
		return nil, err
	}

	taken := cart.TakeCart()
	if len(taken) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty")
	}
	quote, err := s.rules.QuoteCart(taken, details.PromoCode, details.GiftWrap)
	if err != nil {
		return nil, err
	}

	order := &Order{
		Number:        NewOrderNumber(uuid.New()),
		Items:         taken,
		Quote:         quote,
		Shipping:      details.Shipping,
		PaymentMethod: details.Payment.Method,
		CardLast4:     details.Payment.CardLast4(),
		PlacedAt:      s.now().UTC(),
	}
	s.metrics.IncOrders()

	ctx = s.logg.WithFields(s.logg.WithOrderNumber(ctx, order.Number), map[string]any{
		"item_count": quote.ItemCount,
		"total":      quote.Total.StringFixed(2),
	})
	s.logg.Info(ctx, "order placed")
	return order, nil
}

// NewOrderNumber derives a confirmation number such as LN3K9Z0A from id.
func NewOrderNumber(id uuid.UUID) string {
	n := binary.BigEndian.Uint64(id[:8]) % orderNumberSpace
	suffix := strings.ToUpper(strconv.FormatUint(n, 36))
	if pad := orderNumberLen - len(suffix); pad > 0 {
		suffix = strings.Repeat("0", pad) + suffix
	}
	return orderNumberPrefix + suffix
}
