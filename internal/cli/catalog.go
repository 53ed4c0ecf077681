package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/lovenest/storefront/internal/catalog"
	"github.com/lovenest/storefront/pkg/enums"
)

const defaultRelatedLimit = 4

func (a *app) catalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse products",
	}

	var categories, bands []string
	var sortKey string
	list := &cobra.Command{
		Use:   "list",
		Short: "List products with optional filters and sort",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := buildQuery(categories, bands, sortKey)
			if err != nil {
				return err
			}
			return a.printProducts(a.cat.Query(q))
		},
	}
	list.Flags().StringSliceVar(&categories, "category", nil, "category filter (repeatable)")
	list.Flags().StringSliceVar(&bands, "price", nil, "price band: 0-25|25-50|50-100|100+ (repeatable)")
	list.Flags().StringVar(&sortKey, "sort", enums.SortKeyFeatured.String(), "featured|price-low|price-high|rating|newest")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			product, err := a.lookup(args[0])
			if err != nil {
				return err
			}
			if a.output() == outputJSON {
				return a.writeJSON(product)
			}
			return a.printProducts([]catalog.Product{product})
		},
	}

	bestSellers := &cobra.Command{
		Use:   "best-sellers",
		Short: "List the best sellers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printProducts(a.cat.BestSellers())
		},
	}

	deals := &cobra.Command{
		Use:   "deals",
		Short: "List the featured deals",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.printProducts(a.cat.FeaturedDeals())
		},
	}

	var limit int
	related := &cobra.Command{
		Use:   "related <id>",
		Short: "List products from the same category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			product, err := a.lookup(args[0])
			if err != nil {
				return err
			}
			if limit < 1 {
				return fmt.Errorf("--limit must be at least 1")
			}
			return a.printProducts(a.cat.Related(product.ID, limit))
		},
	}
	related.Flags().IntVar(&limit, "limit", defaultRelatedLimit, "maximum number of products")

	cmd.AddCommand(list, get, bestSellers, deals, related)
	return cmd
}

// buildQuery rejects unknown categories and price bands; an unknown sort key
// falls back to featured like the HTTP API does.
func buildQuery(categories, bands []string, sortKey string) (catalog.Query, error) {
	var q catalog.Query
	for _, raw := range categories {
		category, err := enums.ParseProductCategory(raw)
		if err != nil {
			return catalog.Query{}, err
		}
		q.Categories = append(q.Categories, category)
	}
	for _, raw := range bands {
		band, err := enums.ParsePriceBand(raw)
		if err != nil {
			return catalog.Query{}, err
		}
		q.PriceBands = append(q.PriceBands, band)
	}
	q.Sort = enums.SortKeyFeatured
	if key, err := enums.ParseSortKey(sortKey); err == nil {
		q.Sort = key
	}
	return q, nil
}

func (a *app) printProducts(products []catalog.Product) error {
	if a.output() == outputJSON {
		return a.writeJSON(products)
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICE\tRATING\tBADGE")
	for _, p := range products {
		badge := "-"
		if p.HasBadge() {
			badge = string(p.Badge)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.1f\t%s\n", p.ID, p.Name, p.Category, p.Price.StringFixed(2), p.Rating, badge)
	}
	return tw.Flush()
}
