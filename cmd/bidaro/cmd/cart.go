// Copyright (c) 2026 Bidaro. All rights reserved.
// Author: minh.tranvo.dev@gmail.com

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show the current cart snapshot",
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

		// Fresh snapshot: the local mirror is only trusted right after a load.
		if err := application.Cart.Load(ctx, userID); err != nil {
			return err
		}

		lines := application.Cart.Lines()
		if len(lines) == 0 {
			fmt.Println("Cart is empty")
			return nil
		}

		for _, line := range lines {
			marker := " "
			if application.Cart.IsSelected(line.ProductID) {
				marker = "*"
			}
			fmt.Printf("%s %-24s x%-3d %12.0f  (%s)\n", marker, line.Name, line.Quantity, line.Subtotal(), line.ProductID)
		}
		fmt.Printf("Selected subtotal: %.0f\n", application.Cart.SelectedSubtotal())
		return nil
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add PRODUCT_ID QUANTITY",
	Short: "Add a product (or update its quantity), then re-fetch",
	Args:  cobra.ExactArgs(2),
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

		quantity, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("quantity must be a number: %q", args[1])
		}

		// Mutate, then refetch: the server snapshot is the only truth.
		if err := application.Cart.AddOrUpdate(ctx, userID, args[0], quantity); err != nil {
			return err
		}
		if err := application.Cart.Load(ctx, userID); err != nil {
			return err
		}

		fmt.Printf("Cart: %d line(s), subtotal %.0f\n", application.Cart.Len(), application.Cart.Subtotal())
		return nil
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove PRODUCT_ID",
	Short: "Remove a product, then re-fetch",
	Args:  cobra.ExactArgs(1),
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

		if err := application.Cart.Remove(ctx, userID, args[0]); err != nil {
			return err
		}
		if err := application.Cart.Load(ctx, userID); err != nil {
			return err
		}

		fmt.Printf("Cart: %d line(s), subtotal %.0f\n", application.Cart.Len(), application.Cart.Subtotal())
		return nil
	},
}

func init() {
	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartRemoveCmd)
	rootCmd.AddCommand(cartCmd)
}
