package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"storefront/internal/catalog"
	"storefront/internal/models"
	"storefront/internal/services"
	"storefront/internal/shop"
	"storefront/internal/storage"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newCatalogCmd(c *cli) *cobra.Command {
	var (
		seed        int64
		perCategory int
		format      string
		category    string
	)
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Print the generated product catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("seed") {
				seed = c.cfg.CatalogSeed
			}
			if !cmd.Flags().Changed("per-category") {
				perCategory = c.cfg.CatalogPerCategory
			}
			products := catalog.NewGenerator(seed, perCategory).Generate()
			if category != "" && category != services.AllCategories {
				if !catalog.IsCategory(models.Category(category)) {
					return fmt.Errorf("unknown category %q", category)
				}
				kept := products[:0]
				for _, p := range products {
					if string(p.Category) == category {
						kept = append(kept, p)
					}
				}
				products = kept
			}
			return writeFormatted(cmd.OutOrStdout(), format, products)
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 draws a random one; defaults to CATALOG_SEED)")
	cmd.Flags().IntVar(&perCategory, "per-category", catalog.DefaultPerCategory, "items per category")
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")
	cmd.Flags().StringVar(&category, "category", "", "only print this category")
	return cmd
}

func writeFormatted(w io.Writer, format string, v interface{}) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// openState opens the local storage and the cart/wishlist store on it.
func (c *cli) openState() (storage.Storage, *shop.Store, error) {
	st, err := storage.NewLocal(c.fs, c.cfg.StateDir)
	if err != nil {
		return nil, nil, err
	}
	store, err := shop.NewStore(st)
	if err != nil {
		return nil, nil, err
	}
	return st, store, nil
}

// findProduct looks id up in the catalog generated from the configured seed.
func (c *cli) findProduct(id string) (models.Product, error) {
	for _, p := range catalog.NewGenerator(c.cfg.CatalogSeed, c.cfg.CatalogPerCategory).Generate() {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, fmt.Errorf("unknown product %q", id)
}

func newCartCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the local shopping cart",
	}

	var size, color string
	add := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add one unit of a product in a size and color",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			product, err := c.findProduct(args[0])
			if err != nil {
				return err
			}
			if size == "" && len(product.Sizes) > 0 {
				size = product.Sizes[0]
			}
			if color == "" && len(product.Colors) > 0 {
				color = product.Colors[0]
			}
			_, store, err := c.openState()
			if err != nil {
				return err
			}
			if err := store.AddToCart(product, size, color); err != nil {
				return err
			}
			return printCart(cmd.OutOrStdout(), store)
		},
	}
	add.Flags().StringVar(&size, "size", "", "size (defaults to the first offered)")
	add.Flags().StringVar(&color, "color", "", "color (defaults to the first offered)")

	var lineSize string
	remove := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product from the cart (every size unless --size is given)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := c.openState()
			if err != nil {
				return err
			}
			if lineSize != "" {
				err = store.RemoveLine(args[0], lineSize)
			} else {
				err = store.RemoveFromCart(args[0])
			}
			if err != nil {
				return err
			}
			return printCart(cmd.OutOrStdout(), store)
		},
	}
	remove.Flags().StringVar(&lineSize, "size", "", "only remove this size")

	qty := &cobra.Command{
		Use:   "qty <product-id> <delta>",
		Short: "Change a product's quantity by delta (never below 1)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			delta, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid delta %q: %w", args[1], err)
			}
			_, store, err := c.openState()
			if err != nil {
				return err
			}
			if err := store.UpdateQuantity(args[0], delta); err != nil {
				return err
			}
			return printCart(cmd.OutOrStdout(), store)
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the cart and its totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := c.openState()
			if err != nil {
				return err
			}
			return printCart(cmd.OutOrStdout(), store)
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := c.openState()
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return err
			}
			return printCart(cmd.OutOrStdout(), store)
		},
	}

	cmd.AddCommand(add, remove, qty, show, clearCmd)
	return cmd
}

func printCart(w io.Writer, store *shop.Store) error {
	cart := store.Cart()
	if len(cart) == 0 {
		_, err := fmt.Fprintln(w, "Cart is empty")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSIZE\tCOLOR\tQTY\tPRICE")
	for _, line := range cart {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%.2f\n", line.ID, line.Name, line.SelectedSize, line.SelectedColor, line.Quantity, line.Price)
	}
	fmt.Fprintf(tw, "\t\t\t\t%d\t%.2f\n", store.TotalItems(), store.TotalPrice())
	return tw.Flush()
}

func newWishlistCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wishlist",
		Short: "Manage the local wishlist",
	}
	toggle := &cobra.Command{
		Use:   "toggle <product-id>",
		Short: "Add a product to the wishlist, or remove it if present",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := c.openState()
			if err != nil {
				return err
			}
			if err := store.ToggleWishlist(args[0]); err != nil {
				return err
			}
			state := "removed from"
			if store.InWishlist(args[0]) {
				state = "added to"
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s wishlist\n", args[0], state)
			return err
		},
	}
	list := &cobra.Command{
		Use:   "list",
		Short: "Print the wishlisted product ids",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := c.openState()
			if err != nil {
				return err
			}
			for _, id := range store.Wishlist() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), id); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.AddCommand(toggle, list)
	return cmd
}
