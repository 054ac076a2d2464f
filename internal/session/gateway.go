// Copyright (c) 2026 Bidaro. All rights reserved.
// Author: minh.tranvo.dev@gmail.com

package session

import (
	"context"

	"github.com/minhtranvo/bidaro/internal/tokenstore"
)

// # Remote Contracts

// AuthGateway defines the remote authentication contract.
type AuthGateway interface {

	/*
		Login exchanges credentials for a token pair.

		Parameters:
		  - context: context.Context
		  - email: string
		  - password: string

		Returns:
		  - *tokenstore.Credential: The issued pair
		  - error: UNAUTHORIZED for rejected credentials, transport failures otherwise
	*/
	Login(context context.Context, email, password string) (*tokenstore.Credential, error)

	/*
		Logout invalidates the current session server-side.

		Description: Best-effort by contract; the caller proceeds with the
		local clear regardless of the outcome.

		Parameters:
		  - context: context.Context

		Returns:
		  - error: Transport or upstream failures
	*/
	Logout(context context.Context) error
}

// UserGateway defines the remote user record contract.
type UserGateway interface {

	/*
		FindByID returns the user record for the given ID.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - *User: Hydrated record
		  - error: Retrieval failures
	*/
	FindByID(context context.Context, userID string) (*User, error)
}

// # Lifecycle Events

// CartBinding receives session lifecycle events.
//
// # Why an interface?
//
// The cart's load/clear side effects are bound to authentication transitions.
// Routing them through typed method calls (instead of dispatching action
// strings across modules) keeps the coupling explicit and compiler-checked.
type CartBinding interface {

	// OnAuthenticated is invoked after the user record loads successfully.
	// A failure here is surfaced to the caller as a cart error, never as a
	// session failure.
	OnAuthenticated(context context.Context, userID string) error

	// OnLoggedOut is invoked on every transition back to anonymous,
	// including failed authentication attempts. It must not block.
	OnLoggedOut()
}

// NopBinding is a [CartBinding] that ignores all events.
//
// Used when a consumer wants the session lifecycle without a cart (e.g. the
// catalog-only commands).
type NopBinding struct{}

// OnAuthenticated implements [CartBinding].
func (NopBinding) OnAuthenticated(context.Context, string) error { return nil }

// OnLoggedOut implements [CartBinding].
func (NopBinding) OnLoggedOut() {}
