// Copyright (c) 2026 Bidaro. All rights reserved.
// Author: minh.tranvo.dev@gmail.com

package cart

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/minhtranvo/bidaro/internal/platform/apperr"
	"github.com/minhtranvo/bidaro/internal/platform/httpx"
)

// HTTPGateway implements [Gateway] against the storefront API.
type HTTPGateway struct {
	api *httpx.Client
}

// NewHTTPGateway creates a [Gateway] over the shared API client.
func NewHTTPGateway(api *httpx.Client) *HTTPGateway {
	return &HTTPGateway{api: api}
}

// addItemRequest mirrors the backend's nested add-item shape.
type addItemRequest struct {
	Quantity int `json:"quantity"`
	Request  struct {
		ProductID string `json:"product_id"`
		UserID    string `json:"user_id"`
	} `json:"request"`
}

// removeItemRequest is the DELETE body for item removal.
type removeItemRequest struct {
	ProductID string `json:"product_id"`
	UserID    string `json:"user_id"`
}

/*
FetchLines returns the full server-side cart.

GET /carts/{user_id}

Description: The backend answers either a bare line array or a {data: [...]}
envelope depending on the route version; both are accepted.
*/
func (gateway *HTTPGateway) FetchLines(context context.Context, userID string) ([]Line, error) {
	var raw json.RawMessage

	if err := gateway.api.Get(context, "/carts/"+userID, &raw); err != nil {
		return nil, apperr.Fetch("cart", err)
	}

	// Bare array first, the common case.
	var lines []Line
	if err := json.Unmarshal(raw, &lines); err == nil {
		return lines, nil
	}

	var envelope struct {
		Data []Line `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, apperr.Fetch("cart", fmt.Errorf("cart_gateway_decode_failed: %w", err))
	}

	return envelope.Data, nil
}

/*
AddItem adds or updates one product in the server-side cart.

POST /carts/item/add
*/
func (gateway *HTTPGateway) AddItem(context context.Context, userID, productID string, quantity int) error {
	payload := addItemRequest{Quantity: quantity}
	payload.Request.ProductID = productID
	payload.Request.UserID = userID

	if err := gateway.api.Post(context, "/carts/item/add", payload, nil); err != nil {
		return fmt.Errorf("cart_gateway_add_failed: %w", err)
	}

	return nil
}

/*
RemoveItem removes one product from the server-side cart.

DELETE /carts/item/remove (payload in the request body, per the backend contract)
*/
func (gateway *HTTPGateway) RemoveItem(context context.Context, userID, productID string) error {
	payload := removeItemRequest{ProductID: productID, UserID: userID}

	if err := gateway.api.Delete(context, "/carts/item/remove", payload, nil); err != nil {
		return fmt.Errorf("cart_gateway_remove_failed: %w", err)
	}

	return nil
}
