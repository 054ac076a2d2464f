// Copyright (c) 2026 Bidaro. All rights reserved.
// Author: minh.tranvo.dev@gmail.com

package order

import (
	"context"
	"fmt"
	"strconv"

	"github.com/minhtranvo/bidaro/internal/platform/apperr"
	"github.com/minhtranvo/bidaro/internal/platform/httpx"
	"github.com/minhtranvo/bidaro/pkg/pagination"
)

// History is the order-history client.
type History struct {
	api *httpx.Client
}

// NewHistory constructs a [History] over the shared API client.
func NewHistory(api *httpx.Client) *History {
	return &History{api: api}
}

// pageResponse mirrors the backend's paged envelope.
type pageResponse struct {
	Data       []Order `json:"data"`
	PageNumber int     `json:"page_number"`
	TotalPages int     `json:"total_pages"`
}

/*
PageByUser fetches one page of the user's order history.

GET /orders/user/{user_id}?page_number=N

Parameters:
  - ctx: context.Context
  - userID: string
  - page: int (clamped to a sane range)

Returns:
  - *Page: Orders plus normalized pagination metadata
  - error: FETCH_ERROR on retrieval failure
*/
func (history *History) PageByUser(ctx context.Context, userID string, page int) (*Page, error) {
	page = pagination.ClampPage(page)

	var response pageResponse
	path := "/orders/user/" + userID + "?page_number=" + strconv.Itoa(page)
	if err := history.api.Get(ctx, path, &response); err != nil {
		return nil, apperr.Fetch("orders", err)
	}

	meta := pagination.Normalize(pagination.Meta{
		Page:       response.PageNumber,
		TotalPages: response.TotalPages,
	}, page)

	return &Page{Orders: response.Data, Meta: meta}, nil
}

/*
AllByUser aggregates every page of the user's order history.

Description: Page one discovers the total; remaining pages are fetched
sequentially. Intended for client-side filtering only; each page is a
separate request.

Returns:
  - []Order: The full history, in server page order
  - error: The first page failure encountered
*/
func (history *History) AllByUser(ctx context.Context, userID string) ([]Order, error) {
	first, err := history.PageByUser(ctx, userID, pagination.DefaultPage)
	if err != nil {
		return nil, err
	}

	all := append([]Order{}, first.Orders...)

	totalPages := first.Meta.TotalPages
	if totalPages > pagination.MaxAggregatedPages {
		totalPages = pagination.MaxAggregatedPages
	}

	for page := pagination.DefaultPage + 1; page <= totalPages; page++ {
		next, err := history.PageByUser(ctx, userID, page)
		if err != nil {
			return nil, fmt.Errorf("order_history_page_%d_failed: %w", page, err)
		}
		all = append(all, next.Orders...)
	}

	return all, nil
}
