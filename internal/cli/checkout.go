package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lovenest/storefront/internal/checkout"
	"github.com/lovenest/storefront/internal/store"
)

func (a *app) checkoutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Price the persisted cart",
	}

	var promo string
	var giftWrap bool
	quote := &cobra.Command{
		Use:   "quote",
		Short: "Show subtotal, discount, shipping and total for the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd.Context(), func(s *store.Store) error {
				q, err := a.rules.QuoteCart(s.Cart(), promo, giftWrap)
				if err != nil {
					return err
				}
				return a.printQuote(q)
			})
		},
	}
	quote.Flags().StringVar(&promo, "promo", "", "promo code")
	quote.Flags().BoolVar(&giftWrap, "gift-wrap", false, "add gift wrapping")

	cmd.AddCommand(quote)
	return cmd
}

func (a *app) printQuote(q checkout.Quote) error {
	if a.output() == outputJSON {
		return a.writeJSON(q)
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Items\t%d\n", q.ItemCount)
	fmt.Fprintf(tw, "Subtotal\t%s\n", q.Subtotal.StringFixed(2))
	if q.PromoCode != "" {
		fmt.Fprintf(tw, "Discount (%s)\t-%s\n", q.PromoCode, q.Discount.StringFixed(2))
	}
	if q.FreeShipping {
		fmt.Fprintln(tw, "Shipping\tFREE")
	} else {
		fmt.Fprintf(tw, "Shipping\t%s\n", q.Shipping.StringFixed(2))
		fmt.Fprintf(tw, "Add for free shipping\t%s\n", q.AmountToFreeShipping.StringFixed(2))
	}
	if q.GiftWrap.IsPositive() {
		fmt.Fprintf(tw, "Gift wrap\t%s\n", q.GiftWrap.StringFixed(2))
	}
	fmt.Fprintf(tw, "Total\t%s\n", q.Total.StringFixed(2))
	return tw.Flush()
}
