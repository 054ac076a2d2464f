// Copyright (c) 2026 Bidaro. All rights reserved.
// Author: minh.tranvo.dev@gmail.com

package cart_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhtranvo/bidaro/internal/cart"
	"github.com/minhtranvo/bidaro/internal/platform/httpx"
)

type anonymousTokens struct{}

func (anonymousTokens) AccessToken() string { return "" }

// capturedAdd records the decoded add-item payload received by the fake backend.
type capturedAdd struct {
	Quantity int `json:"quantity"`
	Request  struct {
		ProductID string `json:"product_id"`
		UserID    string `json:"user_id"`
	} `json:"request"`
}

type capturedRemove struct {
	ProductID string `json:"product_id"`
	UserID    string `json:"user_id"`
}

func newGateway(t *testing.T, router chi.Router) *cart.HTTPGateway {
	t.Helper()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return cart.NewHTTPGateway(httpx.New(server.URL, anonymousTokens{}, logger))
}

/*
TestHTTPGateway_FetchLines tests both response shapes the backend uses: a bare
line array and a {data: [...]} envelope.
*/
func TestHTTPGateway_FetchLines(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bare_array", `[{"product_id":"cue-01","name":"Carbon Break Cue","price":250000,"quantity":2}]`},
		{"data_envelope", `{"data":[{"product_id":"cue-01","name":"Carbon Break Cue","price":250000,"quantity":2}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := chi.NewRouter()
			router.Get("/carts/{userID}", func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "user-7f3a", chi.URLParam(r, "userID"))
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			})
			gateway := newGateway(t, router)

			lines, err := gateway.FetchLines(context.Background(), "user-7f3a")

			require.NoError(t, err)
			require.Len(t, lines, 1)
			assert.Equal(t, "cue-01", lines[0].ProductID)
			assert.Equal(t, 2, lines[0].Quantity)
			assert.InDelta(t, 500000, lines[0].Subtotal(), 0.001)
		})
	}
}

/*
TestHTTPGateway_AddItem tests the nested add-item payload shape.
*/
func TestHTTPGateway_AddItem(t *testing.T) {
	var received capturedAdd

	router := chi.NewRouter()
	router.Post("/carts/item/add", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	})
	gateway := newGateway(t, router)

	err := gateway.AddItem(context.Background(), "user-7f3a", "cue-01", 3)

	require.NoError(t, err)
	assert.Equal(t, 3, received.Quantity)
	assert.Equal(t, "cue-01", received.Request.ProductID)
	assert.Equal(t, "user-7f3a", received.Request.UserID)
}

/*
TestHTTPGateway_RemoveItem tests the DELETE-with-body removal contract.
*/
func TestHTTPGateway_RemoveItem(t *testing.T) {
	var received capturedRemove

	router := chi.NewRouter()
	router.Delete("/carts/item/remove", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	})
	gateway := newGateway(t, router)

	err := gateway.RemoveItem(context.Background(), "user-7f3a", "cue-01")

	require.NoError(t, err)
	assert.Equal(t, "cue-01", received.ProductID)
	assert.Equal(t, "user-7f3a", received.UserID)
}
