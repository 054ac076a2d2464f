// Copyright (c) 2026 Bidaro. All rights reserved.
// Author: minh.tranvo.dev@gmail.com

/*
Package cart maintains a server-accurate mirror of the active user's cart.

# Consistency Model

Mutate-then-refetch: a mutation never touches the local snapshot. The server
is the only source of truth for prices and line totals (VIP pricing,
promotions), so optimistic local math would drift. After any add or remove the
caller re-fetches; until then the local cart is not considered consistent.

The mirror is bound 1:1 to the authenticated user and is cleared (not merely
emptied) on logout, so nothing leaks into the next session.
*/
package cart

import "github.com/minhtranvo/bidaro/internal/platform/apperr"

// # Domain Entities

// Line is one product entry in the cart, priced by the server.
type Line struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	ImageURL  string  `json:"image_url"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Subtotal returns the server-priced line total.
func (l Line) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// # Errors

// ErrInvalidQuantity rejects mutations with a quantity below one, before any
// network call is issued.
var ErrInvalidQuantity = apperr.ValidationError("Validation failed", apperr.FieldError{
	Field:   "quantity",
	Message: "Must be at least 1",
})
