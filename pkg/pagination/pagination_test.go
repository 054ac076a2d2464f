// Copyright (c) 2026 Bidaro. All rights reserved.
// Author: minh.tranvo.dev@gmail.com

package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minhtranvo/bidaro/pkg/pagination"
)

/*
TestNormalize tests the clamping of nonsensical response metadata.
*/
func TestNormalize(t *testing.T) {
	tests := []struct {
		name      string
		meta      pagination.Meta
		requested int
		want      pagination.Meta
	}{
		{"well_formed", pagination.Meta{Page: 2, TotalPages: 5}, 2, pagination.Meta{Page: 2, TotalPages: 5}},
		{"missing_page", pagination.Meta{Page: 0, TotalPages: 5}, 3, pagination.Meta{Page: 3, TotalPages: 5}},
		{"missing_everything", pagination.Meta{}, 0, pagination.Meta{Page: 1, TotalPages: 1}},
		{"negative_total", pagination.Meta{Page: 1, TotalPages: -4}, 1, pagination.Meta{Page: 1, TotalPages: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pagination.Normalize(tt.meta, tt.requested))
		})
	}
}

/*
TestMeta_HasNext tests the next-page predicate.
*/
func TestMeta_HasNext(t *testing.T) {
	assert.True(t, pagination.Meta{Page: 1, TotalPages: 3}.HasNext())
	assert.False(t, pagination.Meta{Page: 3, TotalPages: 3}.HasNext())
	assert.False(t, pagination.Meta{Page: 1, TotalPages: 1}.HasNext())
}

/*
TestClampPage tests the request-side page bounds.
*/
func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, pagination.ClampPage(0))
	assert.Equal(t, 1, pagination.ClampPage(-7))
	assert.Equal(t, 42, pagination.ClampPage(42))
	assert.Equal(t, pagination.MaxAggregatedPages, pagination.ClampPage(pagination.MaxAggregatedPages+1))
}
