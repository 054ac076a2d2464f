// Copyright (c) 2026 Bidaro. All rights reserved.
// Author: minh.tranvo.dev@gmail.com

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/minhtranvo/bidaro/internal/order"
)

var (
	ordersPage int
	ordersAll  bool
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Show the order history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()

		application, cleanup, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		userID, err := requireUser(application)
		if err != nil {
			return err
		}

		if ordersAll {
			all, err := application.Orders.AllByUser(ctx, userID)
			if err != nil {
				return err
			}
			printOrders(all)
			return nil
		}

		page, err := application.Orders.PageByUser(ctx, userID, ordersPage)
		if err != nil {
			return err
		}
		printOrders(page.Orders)
		fmt.Printf("Page %d/%d\n", page.Meta.Page, page.Meta.TotalPages)
		return nil
	},
}

var buyAgainCmd = &cobra.Command{
	Use:   "buy-again ORDER_ID",
	Short: "Re-select a past order's items in the cart",
	Long: `Reloads the cart and selects only the items of the given past order
that still exist in it. Follow with 'bidaro checkout' to pay for them.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()

		application, cleanup, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		userID, err := requireUser(application)
		if err != nil {
			return err
		}

		// Find the order across the whole history.
		all, err := application.Orders.AllByUser(ctx, userID)
		if err != nil {
			return err
		}

		var target *order.Order
		for i := range all {
			if all[i].OrderID == args[0] {
				target = &all[i]
				break
			}
		}
		if target == nil {
			return fmt.Errorf("order %s not found", args[0])
		}

		// Fresh snapshot with the preset selection restored.
		if err := application.Cart.LoadPreset(ctx, userID, target.ProductIDs()); err != nil {
			return err
		}

		selected := application.Cart.SelectedLines()
		fmt.Printf("Selected %d of %d cart line(s) from order %s\n",
			len(selected), application.Cart.Len(), target.OrderID)
		return nil
	},
}

// printOrders renders orders in a compact fixed-width table.
func printOrders(orders []order.Order) {
	if len(orders) == 0 {
		fmt.Println("No orders")
		return
	}

	for _, o := range orders {
		fmt.Printf("%-24s %-12s %12.0f  %s\n",
			o.OrderID, o.Status, o.TotalPrice, o.CreatedAt.Format("2006-01-02"))
		for _, item := range o.Items {
			fmt.Printf("    %-24s x%d\n", item.Name, item.Quantity)
		}
	}
}

func init() {
	ordersCmd.Flags().IntVar(&ordersPage, "page", 1, "Page number")
	ordersCmd.Flags().BoolVar(&ordersAll, "all", false, "Aggregate all pages")

	ordersCmd.AddCommand(buyAgainCmd)
	rootCmd.AddCommand(ordersCmd)
}
