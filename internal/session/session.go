// Copyright (c) 2026 Bidaro. All rights reserved.
// Author: minh.tranvo.dev@gmail.com

/*
Package session implements the client-side authentication lifecycle.

It owns the session state machine, derives identity from the stored access
token, and coordinates the dependent cart load through an explicit event
interface.

# Architecture

This layer is the "Truth" of the client. Only the session manager may write
the credential; every other component observes it read-only through
[Manager.AccessToken]. State transitions are total: any failure during
identity resolution or user loading ends in a full clear (credential, user,
cart), never a partially-authenticated state.
*/
package session

import "time"

// # Session States

// State is one position in the authentication state machine.
type State string

const (
	// StateAnonymous: no credential, no user. The boot and logout state.
	StateAnonymous State = "anonymous"

	// StateAuthenticating: a credential exists and identity resolution or
	// the user fetch is in flight.
	StateAuthenticating State = "authenticating"

	// StateAuthenticated: credential validated and the user record loaded.
	StateAuthenticated State = "authenticated"

	// StateError: the last authentication attempt failed. The credential has
	// already been discarded; the state exists so the login surface can show
	// the failure.
	StateError State = "error"
)

// # Domain Entities

// User represents the authenticated member of the Bidaro storefront.
//
// Fetched once per successful authentication; the server is authoritative.
type User struct {
	UserID        string    `json:"user_id"`
	FullName      string    `json:"full_name"`
	Email         string    `json:"email"`
	RoleID        string    `json:"role_id"`
	ProfileAvatar string    `json:"profile_avatar"`
	Gender        string    `json:"gender"`
	IsVIP         bool      `json:"is_vip"`
	CreatedAt     time.Time `json:"created_at"`
}

// # Field Identifiers

// Global field names for validation in the session domain.
const (
	FieldEmail    = "email"
	FieldPassword = "password"
)
