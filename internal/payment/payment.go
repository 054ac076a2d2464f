// Copyright (c) 2026 Bidaro. All rights reserved.
// Author: minh.tranvo.dev@gmail.com

/*
Package payment converts a checkout selection into an external payment redirect.

The payment endpoints answer with an opaque message expected to embed a
redirect URL (e.g. "{https://pay.payos.vn/web/…}"). Extraction is strict: no
well-formed URL means a NO_PAYMENT_URL failure, never a silent success.

# Cart Interaction

This flow does not mutate the cart by itself. Clearing purchased lines after a
successful redirect is explicit and configurable; by default the backend owns
cart clearing through its payment webhook.
*/
package payment

import (
	"regexp"

	"github.com/minhtranvo/bidaro/internal/platform/validate"
)

// urlPattern matches the redirect URL embedded in the payment message.
// Braces terminate the match because the backend wraps the URL in "{...}".
var urlPattern = regexp.MustCompile(`https?://[^\s}]+`)

// # Inputs

// Item is one product/quantity pair in a checkout.
type Item struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// DirectInput is the payload for a single-product checkout.
type DirectInput struct {
	Address     string
	PhoneNumber string
	Note        string // empty permitted
	UserID      string
	Product     Item
}

// CartInput is the payload for a multi-item checkout.
type CartInput struct {
	Address     string
	PhoneNumber string
	Note        string // empty permitted
	UserID      string
	Items       []Item
}

// # Field Identifiers

const (
	FieldAddress     = "address"
	FieldPhoneNumber = "phone_number"
	FieldItems       = "items"
	FieldQuantity    = "quantity"
	FieldUserID      = "user_id"
)

// validateShipping runs the shared address/phone preflight.
func validateShipping(validator *validate.Validator, address, phoneNumber, userID string) *validate.Validator {
	return validator.
		Required(FieldAddress, address).
		Required(FieldPhoneNumber, phoneNumber).
		Required(FieldUserID, userID)
}
