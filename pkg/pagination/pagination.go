// Copyright (c) 2026 Bidaro. All rights reserved.
// Author: minh.tranvo.dev@gmail.com

// Package pagination provides shared types and helpers for paged API responses.
//
// # Overview
//
// The storefront API delivers order history as numbered pages
// ({data, page_number, total_pages}). This package standardizes how those
// pages are requested and how the resulting metadata is interpreted on the
// client side.
package pagination

const (
	// DefaultPage is the starting page (1-indexed).
	DefaultPage = 1

	// MaxAggregatedPages caps all-pages aggregation to protect the client
	// from a runaway total_pages value in a buggy response.
	MaxAggregatedPages = 500
)

// Meta is the pagination metadata carried by paged API responses.
type Meta struct {
	Page       int `json:"page_number"`
	TotalPages int `json:"total_pages"`
}

// Normalize clamps nonsensical response values to usable ones.
//
// # Clamping
//
// A missing or non-positive page number falls back to the requested page;
// a non-positive total collapses to a single page.
func Normalize(meta Meta, requestedPage int) Meta {
	if meta.Page < 1 {
		meta.Page = requestedPage
	}
	if meta.Page < 1 {
		meta.Page = DefaultPage
	}
	if meta.TotalPages < 1 {
		meta.TotalPages = 1
	}
	return meta
}

// HasNext reports whether another page exists after the current one.
func (m Meta) HasNext() bool {
	return m.Page < m.TotalPages
}

// ClampPage bounds a requested page to [1, MaxAggregatedPages].
func ClampPage(page int) int {
	if page < 1 {
		return DefaultPage
	}
	if page > MaxAggregatedPages {
		return MaxAggregatedPages
	}
	return page
}
