// Copyright (c) 2026 Bidaro. All rights reserved.
// Author: minh.tranvo.dev@gmail.com

/*
Package order provides the client for the user's order history.

The backend delivers orders as numbered pages ({data, page_number,
total_pages}); this package wraps single-page fetches, whole-history
aggregation, and the buy-again helper that feeds the cart's selection preset.
*/
package order

import (
	"time"

	"github.com/minhtranvo/bidaro/pkg/pagination"
)

// # Domain Entities

// Item is one purchased product line inside an order.
type Item struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Order is one past purchase, as reported by the server.
type Order struct {
	OrderID    string    `json:"order_id"`
	Status     string    `json:"status"`
	TotalPrice float64   `json:"total_price"`
	Address    string    `json:"address"`
	CreatedAt  time.Time `json:"created_at"`
	Items      []Item    `json:"items"`
}

// ProductIDs returns the product IDs of the order's items, in order.
//
// This is the buy-again preset: the cart loads a fresh snapshot and selects
// only those of these IDs that still exist in it.
func (o Order) ProductIDs() []string {
	ids := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		ids = append(ids, item.ProductID)
	}
	return ids
}

// Page is one page of order history plus its pagination metadata.
type Page struct {
	Orders []Order
	Meta   pagination.Meta
}
