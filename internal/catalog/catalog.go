// Copyright (c) 2026 Bidaro. All rights reserved.
// Author: minh.tranvo.dev@gmail.com

/*
Package catalog provides the storefront product browsing client.

Read-only: products are created and priced server-side; this client only
lists and fetches them for display and for feeding product IDs into the cart
and checkout flows.
*/
package catalog

import (
	"context"
	"encoding/json"

	"github.com/minhtranvo/bidaro/internal/platform/apperr"
	"github.com/minhtranvo/bidaro/internal/platform/httpx"
)

// # Domain Entities

// Product is one storefront product, priced by the server.
type Product struct {
	ProductID   string  `json:"product_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	CategoryID  string  `json:"category_id"`
	InStock     bool    `json:"in_stock"`
}

// Browser is the product catalog client.
type Browser struct {
	api *httpx.Client
}

// NewBrowser constructs a [Browser] over the shared API client.
func NewBrowser(api *httpx.Client) *Browser {
	return &Browser{api: api}
}

/*
List returns the storefront product listing.

GET /products/customer-ui

Description: The backend answers either a bare product array or a
{data: [...]} envelope; both are accepted.
*/
func (browser *Browser) List(ctx context.Context) ([]Product, error) {
	var raw json.RawMessage
	if err := browser.api.Get(ctx, "/products/customer-ui", &raw); err != nil {
		return nil, apperr.Fetch("products", err)
	}

	var products []Product
	if err := json.Unmarshal(raw, &products); err == nil {
		return products, nil
	}

	var envelope struct {
		Data []Product `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, apperr.Fetch("products", err)
	}

	return envelope.Data, nil
}

/*
Get returns a single product by ID.

GET /products/{product_id}

Returns:
  - *Product: The product record
  - error: NOT_FOUND for an unknown ID, FETCH_ERROR otherwise
*/
func (browser *Browser) Get(ctx context.Context, productID string) (*Product, error) {
	var product Product

	if err := browser.api.Get(ctx, "/products/"+productID, &product); err != nil {
		if apperr.IsCode(err, apperr.CodeNotFound) {
			return nil, apperr.NotFound("Product")
		}
		return nil, apperr.Fetch("product", err)
	}

	return &product, nil
}
