package checkout

import (
	"strings"

	"github.com/lovenest/storefront/pkg/enums"
)

// ShippingDetails is collected on the shipping step.
type ShippingDetails struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,min=7,max=20"`
	Address   string `json:"address" validate:"required,max=255"`
	City      string `json:"city" validate:"required,max=100"`
	State     string `json:"state" validate:"required,max=100"`
	Zip       string `json:"zip" validate:"required,min=3,max=12"`
}

// PaymentDetails is collected on the payment step. Card fields are only
// checked for card payments and the UPI id only for UPI.
type PaymentDetails struct {
	Method     enums.PaymentMethod `json:"method" validate:"required,oneof=card upi cod"`
	CardNumber string              `json:"card_number,omitempty" validate:"required_if=Method card,omitempty,credit_card"`
	Expiry     string              `json:"expiry,omitempty" validate:"required_if=Method card,omitempty,datetime=01/06"`
	CVV        string              `json:"cvv,omitempty" validate:"required_if=Method card,omitempty,numeric,min=3,max=4"`
	CardName   string              `json:"card_name,omitempty" validate:"required_if=Method card,omitempty,max=100"`
	UPIID      string              `json:"upi_id,omitempty" validate:"required_if=Method upi,omitempty,contains=@"`
}

// CardLast4 returns the trailing four digits of a card number, or "" for
// non-card payments.
func (p PaymentDetails) CardLast4() string {
	if p.Method != enums.PaymentMethodCard {
		return ""
	}
	digits := strings.ReplaceAll(p.CardNumber, " ", "")
	if len(digits) < 4 {
		return ""
	}
	return digits[len(digits)-4:]
}

// Details is everything the shopper enters across the checkout steps.
type Details struct {
	Shipping  ShippingDetails `json:"shipping"`
	Payment   PaymentDetails  `json:"payment"`
	GiftWrap  bool            `json:"gift_wrap"`
	PromoCode string          `json:"promo_code,omitempty"`
}
