package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/lovenest/storefront/internal/store"
)

type cartView struct {
	Items []store.CartItem `json:"items"`
	Total string           `json:"total"`
	Count int              `json:"count"`
}

// withStore opens the session's cart, runs fn and flushes the snapshot.
func (a *app) withStore(ctx context.Context, fn func(*store.Store) error) (err error) {
	s, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, closeStore())
	}()
	return fn(s)
}

func (a *app) cartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the persisted cart",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd.Context(), a.printCart)
		},
	}

	var quantity int
	add := &cobra.Command{
		Use:   "add <id>",
		Short: "Add a product to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			product, err := a.lookup(args[0])
			if err != nil {
				return err
			}
			return a.withStore(cmd.Context(), func(s *store.Store) error {
				s.AddToCart(product, quantity)
				return a.printCart(s)
			})
		},
	}
	add.Flags().IntVarP(&quantity, "qty", "q", 1, "quantity to add")

	update := &cobra.Command{
		Use:   "update <id> <quantity>",
		Short: "Set a line's quantity; zero or less removes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			product, err := a.lookup(args[0])
			if err != nil {
				return err
			}
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("quantity %q is not a number", args[1])
			}
			return a.withStore(cmd.Context(), func(s *store.Store) error {
				s.UpdateQuantity(product.ID, qty)
				return a.printCart(s)
			})
		},
	}

	remove := &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a product from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			product, err := a.lookup(args[0])
			if err != nil {
				return err
			}
			return a.withStore(cmd.Context(), func(s *store.Store) error {
				s.RemoveFromCart(product.ID)
				return a.printCart(s)
			})
		},
	}

	clearCart := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withStore(cmd.Context(), func(s *store.Store) error {
				s.ClearCart()
				return a.printCart(s)
			})
		},
	}

	cmd.AddCommand(show, add, update, remove, clearCart)
	return cmd
}

func (a *app) printCart(s *store.Store) error {
	items := s.Cart()
	if a.output() == outputJSON {
		return a.writeJSON(cartView{
			Items: items,
			Total: s.CartTotal().StringFixed(2),
			Count: s.CartCount(),
		})
	}
	if len(items) == 0 {
		_, err := fmt.Fprintln(a.out, "cart is empty")
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tQTY\tPRICE\tLINE TOTAL")
	for _, item := range items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n", item.ID, item.Name, item.Quantity, item.Price.StringFixed(2), item.LineTotal().StringFixed(2))
	}
	fmt.Fprintf(tw, "\t\t%d\t\t%s\n", s.CartCount(), s.CartTotal().StringFixed(2))
	return tw.Flush()
}
