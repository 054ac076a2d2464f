// Copyright (c) 2026 Bidaro. All rights reserved.
// Author: minh.tranvo.dev@gmail.com

package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/minhtranvo/bidaro/internal/payment"
)

var (
	checkoutAddress string
	checkoutPhone   string
	checkoutNote    string
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Pay for the selected cart lines",
	Long: `Creates a payment for the currently selected cart lines and prints the
external payment redirect URL. The cart is left untouched unless
BIDARO_CLEAR_CART_ON_CHECKOUT is enabled.`,
	Args: cobra.NoArgs,
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

		// Fresh snapshot; all lines selected by default.
		if err := application.Cart.Load(ctx, userID); err != nil {
			return err
		}

		var items []payment.Item
		for _, line := range application.Cart.SelectedLines() {
			items = append(items, payment.Item{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
			})
		}

		paymentURL, err := application.Payments.CreateCartPayment(ctx, payment.CartInput{
			Address:     checkoutAddress,
			PhoneNumber: checkoutPhone,
			Note:        checkoutNote,
			UserID:      userID,
			Items:       items,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Pay at: %s\n", paymentURL)
		return nil
	},
}

var checkoutDirectCmd = &cobra.Command{
	Use:   "direct PRODUCT_ID QUANTITY",
	Short: "Pay for a single product without touching the cart",
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

		paymentURL, err := application.Payments.CreateDirectPayment(ctx, payment.DirectInput{
			Address:     checkoutAddress,
			PhoneNumber: checkoutPhone,
			Note:        checkoutNote,
			UserID:      userID,
			Product: payment.Item{
				ProductID: args[0],
				Quantity:  quantity,
			},
		})
		if err != nil {
			return err
		}

		fmt.Printf("Pay at: %s\n", paymentURL)
		return nil
	},
}

func init() {
	for _, command := range []*cobra.Command{checkoutCmd, checkoutDirectCmd} {
		command.Flags().StringVar(&checkoutAddress, "address", "", "Shipping address (required)")
		command.Flags().StringVar(&checkoutPhone, "phone", "", "Contact phone number (required)")
		command.Flags().StringVar(&checkoutNote, "note", "", "Optional order note")
	}

	checkoutCmd.AddCommand(checkoutDirectCmd)
	rootCmd.AddCommand(checkoutCmd)
}
