// Copyright (c) 2026 Bidaro. All rights reserved.
// Author: minh.tranvo.dev@gmail.com

package payment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/minhtranvo/bidaro/internal/platform/apperr"
	"github.com/minhtranvo/bidaro/internal/platform/httpx"
	"github.com/minhtranvo/bidaro/internal/platform/validate"
)

// # Contracts & Types

// PurchaseFinalizer removes purchased lines from the cart after checkout.
//
// Wired only when post-checkout clearing is enabled; the cart manager
// implements it with sequential removes followed by one refetch.
type PurchaseFinalizer interface {
	RemovePurchased(context context.Context, userID string, productIDs []string) error
}

// Flow implements the order/payment handoff.
type Flow struct {
	api            *httpx.Client
	log            *slog.Logger
	finalizer      PurchaseFinalizer
	clearPurchased bool
}

// Option customizes a [Flow] during construction.
type Option func(*Flow)

// WithPurchaseClearing enables post-checkout removal of purchased cart lines.
func WithPurchaseClearing(finalizer PurchaseFinalizer) Option {
	return func(flow *Flow) {
		flow.finalizer = finalizer
		flow.clearPurchased = finalizer != nil
	}
}

// NewFlow constructs the payment [Flow] over the shared API client.
func NewFlow(api *httpx.Client, logger *slog.Logger, options ...Option) *Flow {
	flow := &Flow{api: api, log: logger}
	for _, option := range options {
		option(flow)
	}
	return flow
}

// # Wire Payloads

type directPaymentRequest struct {
	Address     string `json:"address"`
	Note        string `json:"note"`
	PhoneNumber string `json:"phone_number"`
	Product     Item   `json:"product"`
	UserID      string `json:"user_id"`
}

type cartPaymentRequest struct {
	Address     string `json:"address"`
	Items       []Item `json:"items"`
	Note        string `json:"note"`
	PhoneNumber string `json:"phone_number"`
	UserID      string `json:"user_id"`
}

type paymentResponse struct {
	Message string `json:"message"`
}

// # Checkout Flows

/*
CreateDirectPayment runs a single-product checkout.

POST /payments/create/direct

Description: Validates shipping details and quantity before any network call,
then extracts the redirect URL from the opaque response message.

Parameters:
  - ctx: context.Context
  - input: DirectInput

Returns:
  - string: The external payment redirect URL
  - error: VALIDATION_ERROR before the request, NO_PAYMENT_URL or transport
    failures after
*/
func (flow *Flow) CreateDirectPayment(ctx context.Context, input DirectInput) (string, error) {

	validator := &validate.Validator{}
	validateShipping(validator, input.Address, input.PhoneNumber, input.UserID).
		Required("product_id", input.Product.ProductID).
		Min(FieldQuantity, input.Product.Quantity, 1)
	if err := validator.Err(); err != nil {
		return "", err
	}

	var response paymentResponse
	err := flow.api.Post(ctx, "/payments/create/direct", directPaymentRequest{
		Address:     input.Address,
		Note:        input.Note,
		PhoneNumber: input.PhoneNumber,
		Product:     input.Product,
		UserID:      input.UserID,
	}, &response)
	if err != nil {
		return "", fmt.Errorf("payment_direct_request_failed: %w", err)
	}

	paymentURL, err := ExtractURL(response.Message)
	if err != nil {
		return "", err
	}

	flow.finalizePurchase(ctx, input.UserID, []Item{input.Product})

	return paymentURL, nil
}

/*
CreateCartPayment runs a multi-item checkout.

POST /payments/create/cart

Parameters:
  - ctx: context.Context
  - input: CartInput (items must be non-empty)

Returns:
  - string: The external payment redirect URL
  - error: VALIDATION_ERROR before the request (including an empty item list,
    rejected without a network call), NO_PAYMENT_URL or transport failures after
*/
func (flow *Flow) CreateCartPayment(ctx context.Context, input CartInput) (string, error) {

	validator := &validate.Validator{}
	validateShipping(validator, input.Address, input.PhoneNumber, input.UserID).
		NonEmpty(FieldItems, len(input.Items))
	for _, item := range input.Items {
		validator.Min(FieldQuantity, item.Quantity, 1)
	}
	if err := validator.Err(); err != nil {
		return "", err
	}

	var response paymentResponse
	err := flow.api.Post(ctx, "/payments/create/cart", cartPaymentRequest{
		Address:     input.Address,
		Items:       input.Items,
		Note:        input.Note,
		PhoneNumber: input.PhoneNumber,
		UserID:      input.UserID,
	}, &response)
	if err != nil {
		return "", fmt.Errorf("payment_cart_request_failed: %w", err)
	}

	paymentURL, err := ExtractURL(response.Message)
	if err != nil {
		return "", err
	}

	flow.finalizePurchase(ctx, input.UserID, input.Items)

	return paymentURL, nil
}

// # URL Extraction

// ExtractURL pulls the redirect URL out of the opaque payment message.
//
// Fails explicitly with NO_PAYMENT_URL when no well-formed URL is embedded;
// proceeding without a redirect target is never acceptable.
func ExtractURL(message string) (string, error) {
	match := urlPattern.FindString(message)
	if match == "" {
		return "", apperr.NoPaymentURL()
	}
	return match, nil
}

// finalizePurchase removes purchased lines when clearing is enabled.
//
// A clearing failure is logged, not surfaced: the redirect URL was already
// obtained and the purchase must proceed.
func (flow *Flow) finalizePurchase(ctx context.Context, userID string, items []Item) {
	if !flow.clearPurchased {
		return
	}

	productIDs := make([]string, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
	}

	if err := flow.finalizer.RemovePurchased(ctx, userID, productIDs); err != nil {
		flow.log.Warn("payment_purchase_clearing_failed",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
	}
}
