// Copyright (c) 2026 Bidaro. All rights reserved.
// Author: minh.tranvo.dev@gmail.com

package catalog_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhtranvo/bidaro/internal/catalog"
	"github.com/minhtranvo/bidaro/internal/platform/apperr"
	"github.com/minhtranvo/bidaro/internal/platform/httpx"
)

type anonymousTokens struct{}

func (anonymousTokens) AccessToken() string { return "" }

func newBrowser(t *testing.T, router chi.Router) *catalog.Browser {
	t.Helper()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return catalog.NewBrowser(httpx.New(server.URL, anonymousTokens{}, logger))
}

/*
TestBrowser_List tests the listing for both backend response shapes.
*/
func TestBrowser_List(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bare_array", `[{"product_id":"cue-01","name":"Carbon Break Cue","price":250000,"in_stock":true}]`},
		{"data_envelope", `{"data":[{"product_id":"cue-01","name":"Carbon Break Cue","price":250000,"in_stock":true}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := chi.NewRouter()
			router.Get("/products/customer-ui", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			})
			browser := newBrowser(t, router)

			products, err := browser.List(context.Background())

			require.NoError(t, err)
			require.Len(t, products, 1)
			assert.Equal(t, "Carbon Break Cue", products[0].Name)
			assert.True(t, products[0].InStock)
		})
	}
}

/*
TestBrowser_Get tests single-product retrieval and the NOT_FOUND mapping.
*/
func TestBrowser_Get(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/products/{productID}", func(w http.ResponseWriter, r *http.Request) {
		if chi.URLParam(r, "productID") != "cue-01" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"product_id":"cue-01","name":"Carbon Break Cue","price":250000}`))
	})
	browser := newBrowser(t, router)

	t.Run("found", func(t *testing.T) {
		product, err := browser.Get(context.Background(), "cue-01")

		require.NoError(t, err)
		assert.Equal(t, "Carbon Break Cue", product.Name)
	})

	t.Run("not_found", func(t *testing.T) {
		product, err := browser.Get(context.Background(), "ghost-99")

		assert.Nil(t, product)
		assert.True(t, apperr.IsCode(err, apperr.CodeNotFound))
	})
}
