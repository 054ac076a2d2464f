// Copyright (c) 2026 Bidaro. All rights reserved.
// Author: minh.tranvo.dev@gmail.com

/*
Package app is the composition root of the client toolkit.

It wires configuration, the credential store, the authenticated HTTP client,
and the domain managers into one explicit object graph with a defined
lifecycle (Bootstrap/Close). No component in this repository reaches for
ambient global state; everything flows from here by reference.

Wiring order matters: the session manager is the HTTP client's token source,
and the gateways the manager calls are built on that same client, so the
manager is constructed first and its transport attached second.
*/
package app

import (
	"context"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"

	"github.com/minhtranvo/bidaro/internal/cart"
	"github.com/minhtranvo/bidaro/internal/catalog"
	"github.com/minhtranvo/bidaro/internal/order"
	"github.com/minhtranvo/bidaro/internal/payment"
	"github.com/minhtranvo/bidaro/internal/platform/config"
	"github.com/minhtranvo/bidaro/internal/platform/httpx"
	redisstore "github.com/minhtranvo/bidaro/internal/platform/redis"
	"github.com/minhtranvo/bidaro/internal/session"
	"github.com/minhtranvo/bidaro/internal/tokenstore"
)

// App bundles the wired component graph.
type App struct {
	Config *config.Config
	Log    *slog.Logger

	Tokens   tokenstore.Store
	API      *httpx.Client
	Session  *session.Manager
	Cart     *cart.Manager
	Payments *payment.Flow
	Orders   *order.History
	Catalog  *catalog.Browser

	redisClient *goredis.Client
}

// New constructs and wires the full component graph.
//
// # Startup Sequence
//
//  1. Select the credential store (file by default, Redis when configured).
//  2. Construct the session manager over the store.
//  3. Construct the HTTP client with the manager as its token source.
//  4. Attach the HTTP gateways and the cart binding to the manager.
//  5. Construct the payment, order, and catalog clients.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {

	// ── 1. Credential Store ───────────────────────────────────────────────
	var store tokenstore.Store
	var redisClient *goredis.Client

	if cfg.UseRedisStore() {
		client, err := redisstore.NewClient(ctx, cfg.RedisURL, log)
		if err != nil {
			return nil, fmt.Errorf("app_redis_store_failed: %w", err)
		}
		redisClient = client
		store = tokenstore.NewRedisStore(client, "")
	} else {
		path, err := cfg.ResolveCredentialsPath()
		if err != nil {
			return nil, fmt.Errorf("app_credentials_path_failed: %w", err)
		}
		store = tokenstore.NewFileStore(path)
	}

	// ── 2. Session Manager ────────────────────────────────────────────────
	sessionManager := session.NewManager(store, log)

	// ── 3. HTTP Client ────────────────────────────────────────────────────
	api := httpx.New(cfg.APIBaseURL, sessionManager, log,
		httpx.WithTimeout(cfg.RequestTimeout),
	)

	// ── 4. Domain Wiring ──────────────────────────────────────────────────
	cartManager := cart.NewManager(cart.NewHTTPGateway(api), log)
	sessionManager.Wire(
		session.NewHTTPAuthGateway(api),
		session.NewHTTPUserGateway(api),
		cartManager,
	)

	// ── 5. Flows & Read Clients ───────────────────────────────────────────
	var paymentOptions []payment.Option
	if cfg.ClearCartOnCheckout {
		paymentOptions = append(paymentOptions, payment.WithPurchaseClearing(cartManager))
	}

	return &App{
		Config:      cfg,
		Log:         log,
		Tokens:      store,
		API:         api,
		Session:     sessionManager,
		Cart:        cartManager,
		Payments:    payment.NewFlow(api, log, paymentOptions...),
		Orders:      order.NewHistory(api),
		Catalog:     catalog.NewBrowser(api),
		redisClient: redisClient,
	}, nil
}

// Bootstrap restores the session from the credential store.
//
// Invoked once at process start; behaves identically to the post-login path
// minus the network login call.
func (a *App) Bootstrap(ctx context.Context) error {
	return a.Session.Bootstrap(ctx)
}

// Close releases held connections.
func (a *App) Close() {
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.Log.Error("app_redis_close_failed", slog.Any("error", err))
		}
	}
}
