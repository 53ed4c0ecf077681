package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/cucumber/godog"
	"github.com/lovenest/storefront/internal/catalog"
)

type storeTestContext struct {
	catalog *catalog.Catalog
	port    *fakePort
	store   *Store
}

func (c *storeTestContext) reset() {
	if c.store != nil {
		_ = c.store.Close()
	}
	c.catalog = catalog.Default()
	c.port = &fakePort{}
	c.store = New(context.Background(), Options{SessionID: "bdd", Snapshot: c.port})
}

func (c *storeTestContext) product(id string) (catalog.Product, error) {
	p, ok := c.catalog.ProductByID(id)
	if !ok {
		return catalog.Product{}, fmt.Errorf("unknown product %q", id)
	}
	return p, nil
}

func (c *storeTestContext) anEmptyStore() error {
	if len(c.store.Cart()) != 0 || len(c.store.Wishlist()) != 0 {
		return fmt.Errorf("store is not empty")
	}
	return nil
}

func (c *storeTestContext) iAddProductWithQuantity(id string, quantity int) error {
	p, err := c.product(id)
	if err != nil {
		return err
	}
	c.store.AddToCart(p, quantity)
	return nil
}

func (c *storeTestContext) iSetTheQuantityOfProductTo(id string, quantity int) error {
	c.store.UpdateQuantity(id, quantity)
	return nil
}

func (c *storeTestContext) iRemoveProductFromTheCart(id string) error {
	c.store.RemoveFromCart(id)
	return nil
}

func (c *storeTestContext) iAddProductToTheWishlist(id string) error {
	p, err := c.product(id)
	if err != nil {
		return err
	}
	c.store.AddToWishlist(p)
	return nil
}

func (c *storeTestContext) iClearTheCart() error {
	c.store.ClearCart()
	return nil
}

func (c *storeTestContext) iComeBackInANewVisit() error {
	if err := c.store.Close(); err != nil {
		return err
	}
	c.store = New(context.Background(), Options{SessionID: "bdd", Snapshot: c.port})
	return nil
}

func (c *storeTestContext) theCartHasLines(n int) error {
	if got := len(c.store.Cart()); got != n {
		return fmt.Errorf("expected %d lines, got %d", n, got)
	}
	return nil
}

func (c *storeTestContext) theCartIsEmpty() error {
	return c.theCartHasLines(0)
}

func (c *storeTestContext) theQuantityOfProductIs(id string, quantity int) error {
	for _, item := range c.store.Cart() {
		if item.ID == id {
			if item.Quantity != quantity {
				return fmt.Errorf("expected quantity %d for %q, got %d", quantity, id, item.Quantity)
			}
			return nil
		}
	}
	return fmt.Errorf("product %q is not in the cart", id)
}

func (c *storeTestContext) theCartCountIs(n int) error {
	if got := c.store.CartCount(); got != n {
		return fmt.Errorf("expected count %d, got %d", n, got)
	}
	return nil
}

func (c *storeTestContext) theCartTotalIs(total string) error {
	if got := c.store.CartTotal().StringFixed(2); got != total {
		return fmt.Errorf("expected total %s, got %s", total, got)
	}
	return nil
}

func (c *storeTestContext) theWishlistHasProducts(n int) error {
	if got := len(c.store.Wishlist()); got != n {
		return fmt.Errorf("expected %d wishlist products, got %d", n, got)
	}
	return nil
}

func (c *storeTestContext) productIsInTheWishlist(id string) error {
	if !c.store.IsInWishlist(id) {
		return fmt.Errorf("product %q is not in the wishlist", id)
	}
	return nil
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := &storeTestContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})
	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if tc.store != nil {
			_ = tc.store.Close()
		}
		return ctx, nil
	})

	// Given steps
	ctx.Step(`^an empty store$`, tc.anEmptyStore)
	ctx.Step(`^product "([^"]*)" is in the cart with quantity (-?\d+)$`, tc.iAddProductWithQuantity)

	// When steps
	ctx.Step(`^I add product "([^"]*)" with quantity (-?\d+)$`, tc.iAddProductWithQuantity)
	ctx.Step(`^I set the quantity of product "([^"]*)" to (-?\d+)$`, tc.iSetTheQuantityOfProductTo)
	ctx.Step(`^I remove product "([^"]*)" from the cart$`, tc.iRemoveProductFromTheCart)
	ctx.Step(`^I add product "([^"]*)" to the wishlist$`, tc.iAddProductToTheWishlist)
	ctx.Step(`^I clear the cart$`, tc.iClearTheCart)
	ctx.Step(`^I come back in a new visit$`, tc.iComeBackInANewVisit)

	// Then steps
	ctx.Step(`^the cart has (\d+) lines?$`, tc.theCartHasLines)
	ctx.Step(`^the cart is empty$`, tc.theCartIsEmpty)
	ctx.Step(`^the quantity of product "([^"]*)" is (\d+)$`, tc.theQuantityOfProductIs)
	ctx.Step(`^the cart count is (\d+)$`, tc.theCartCountIs)
	ctx.Step(`^the cart total is "([^"]*)"$`, tc.theCartTotalIs)
	ctx.Step(`^the wishlist has (\d+) products?$`, tc.theWishlistHasProducts)
	ctx.Step(`^product "([^"]*)" is in the wishlist$`, tc.productIsInTheWishlist)
}

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
