// Copyright (c) 2026 Bidaro. All rights reserved.
// Author: minh.tranvo.dev@gmail.com

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var productsCmd = &cobra.Command{
	Use:   "products [PRODUCT_ID]",
	Short: "Browse the storefront catalog",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()

		application, cleanup, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		if len(args) == 1 {
			product, err := application.Catalog.Get(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", product.Name)
			fmt.Printf("Price:  %.0f\n", product.Price)
			fmt.Printf("Stock:  %t\n", product.InStock)
			fmt.Printf("ID:     %s\n", product.ProductID)
			if product.Description != "" {
				fmt.Printf("\n%s\n", product.Description)
			}
			return nil
		}

		products, err := application.Catalog.List(ctx)
		if err != nil {
			return err
		}
		if len(products) == 0 {
			fmt.Println("No products")
			return nil
		}
		for _, product := range products {
			fmt.Printf("%-24s %12.0f  (%s)\n", product.Name, product.Price, product.ProductID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(productsCmd)
}
